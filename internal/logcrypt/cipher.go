// cipher.go - Private log decryption.
//
// A private log is a fixed-length sequence of field elements: element 0 carries the
// ephemeral public key's x-coordinate, and the rest repack as a 31-bytes-per-element
// stream holding a sign flag, an encrypted 16-byte header, and the encrypted, padded
// body. The header's first two bytes give the true body ciphertext length.
//
// Encryption is intentionally not implemented here; senders live on the other side
// of the protocol.

package logcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	grumpkin "github.com/consensys/gnark-crypto/ecc/grumpkin"
	grumpkinfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"

	"ledgerclient/internal/field"
	"ledgerclient/internal/hashing"
)

// CiphertextLen is the exact number of field elements in a private log ciphertext.
const CiphertextLen = 18

const (
	headerSize   = 16
	streamUnit   = 31
	bodyCapacity = (CiphertextLen-1)*streamUnit - 1 - headerSize

	discHeader = 1
	discBody   = 2
)

var (
	// ErrLengthMismatch is returned when the ciphertext does not have exactly
	// CiphertextLen elements. It is reported before any cryptographic work.
	ErrLengthMismatch = errors.New("private log ciphertext has wrong element count")

	// ErrMissingParameter is returned when the recipient address or secret key is
	// absent.
	ErrMissingParameter = errors.New("recipient address and secret key are required")

	// ErrDecryptionFailed covers every lower-level cryptographic failure. Wrong key
	// and corrupted ciphertext are deliberately indistinguishable.
	ErrDecryptionFailed = errors.New("private log decryption failed")
)

// Decrypt recovers the plaintext field sequence of a private log addressed to the
// recipient identified by address and their incoming-viewing secret key.
func Decrypt(ct []fr.Element, address fr.Element, secretKey grumpkinfr.Element) ([]fr.Element, error) {
	if len(ct) != CiphertextLen {
		return nil, ErrLengthMismatch
	}

	stream := make([]byte, 0, (CiphertextLen-1)*streamUnit)
	for i := 1; i < CiphertextLen; i++ {
		b := field.Bytes31(&ct[i])
		stream = append(stream, b[:]...)
	}

	ephemeral, err := pointFromX(ct[0], stream[0] != 0)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	addressSecret := DeriveAddressSecret(address, secretKey)
	shared := sharedSecret(&ephemeral, &addressSecret)

	headerKey, headerIV := deriveKeyIV(&shared, discHeader)
	header, err := cbcDecrypt(headerKey, headerIV, stream[1:1+headerSize])
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	bodyLen := int(binary.BigEndian.Uint16(header[:2]))
	if bodyLen > bodyCapacity || bodyLen%aes.BlockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	bodyKey, bodyIV := deriveKeyIV(&shared, discBody)
	body, err := cbcDecrypt(bodyKey, bodyIV, stream[1+headerSize:1+headerSize+bodyLen])
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return repackFields(body), nil
}

// DecryptHex is Decrypt over the CLI's textual inputs.
func DecryptHex(ctHex []string, addressHex, secretKeyHex string) ([]fr.Element, error) {
	if addressHex == "" || secretKeyHex == "" {
		return nil, ErrMissingParameter
	}
	if len(ctHex) != CiphertextLen {
		return nil, ErrLengthMismatch
	}
	ct := make([]fr.Element, len(ctHex))
	for i, s := range ctHex {
		e, err := field.ParseElement(s)
		if err != nil {
			return nil, err
		}
		ct[i] = e
	}
	address, err := field.NormalizeAddress(addressHex)
	if err != nil {
		return nil, err
	}
	secretKey, err := ParseSecretKey(secretKeyHex)
	if err != nil {
		return nil, err
	}
	return Decrypt(ct, address, secretKey)
}

// deriveKeyIV expands the shared secret into one (key, iv) pair. The discriminator
// separates header from body material; the key and iv halves use distinct hashing
// stages. Each half is the low 16 bytes of a 32-byte digest.
func deriveKeyIV(shared *grumpkin.G1Affine, disc uint64) (key, iv [16]byte) {
	x := coordinate(&shared.X)
	y := coordinate(&shared.Y)
	var d fr.Element
	d.SetUint64(disc)

	kh := hashing.Hash(hashing.SymmetricKey, x, y, d)
	vh := hashing.Hash(hashing.SymmetricIV, x, y, d)
	kd := kh.Bytes()
	vd := vh.Bytes()
	copy(key[:], kd[16:])
	copy(iv[:], vd[16:])
	return key, iv
}

// cbcDecrypt runs AES-128-CBC over ct. Length padding is the caller's business; an
// empty ct yields an empty plaintext.
func cbcDecrypt(key, iv [16]byte, ct []byte) ([]byte, error) {
	if len(ct)%aes.BlockSize != 0 {
		return nil, ErrDecryptionFailed
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	pt := make([]byte, len(ct))
	if len(ct) > 0 {
		cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(pt, ct)
	}
	return pt, nil
}

// repackFields packs recovered plaintext bytes into 32-byte-aligned field elements.
func repackFields(pt []byte) []fr.Element {
	out := make([]fr.Element, 0, (len(pt)+31)/32)
	for off := 0; off < len(pt); off += 32 {
		end := off + 32
		if end > len(pt) {
			end = len(pt)
		}
		out = append(out, field.FromBytes32(pt[off:end]))
	}
	return out
}
