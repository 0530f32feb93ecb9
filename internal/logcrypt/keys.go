// keys.go - Key agreement for private log decryption.
//
// The sender transmits only the x-coordinate of a one-time curve point plus a sign
// flag; the recipient reconstructs the full point, derives their address secret from
// the master incoming-viewing secret key, and completes the ECDH exchange. The curve
// is the one whose base field is the ledger scalar field, so coordinates and field
// elements convert by canonical bytes.

package logcrypt

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	grumpkin "github.com/consensys/gnark-crypto/ecc/grumpkin"
	grumpkinfp "github.com/consensys/gnark-crypto/ecc/grumpkin/fp"
	grumpkinfr "github.com/consensys/gnark-crypto/ecc/grumpkin/fr"

	"ledgerclient/internal/field"
	"ledgerclient/internal/hashing"
)

// pointFromX reconstructs the ephemeral public key from its x-coordinate. A given x
// admits two curve points differing by sign; a set flag selects the
// lexicographically larger y.
func pointFromX(x fr.Element, flip bool) (grumpkin.G1Affine, error) {
	var p grumpkin.G1Affine
	xb := x.Bytes()
	var xc grumpkinfp.Element
	xc.SetBytes(xb[:])

	// y^2 = x^3 - 17
	var rhs grumpkinfp.Element
	rhs.Square(&xc).Mul(&rhs, &xc)
	var b grumpkinfp.Element
	b.SetInt64(-17)
	rhs.Add(&rhs, &b)

	var y grumpkinfp.Element
	if y.Sqrt(&rhs) == nil {
		return p, ErrDecryptionFailed
	}
	if y.LexicographicallyLargest() != flip {
		y.Neg(&y)
	}
	p.X = xc
	p.Y = y
	return p, nil
}

// DeriveAddressSecret combines the recipient's master incoming-viewing secret key
// with their address's preaddress value to produce the scalar used for log
// decryption. The matching public key is this scalar times the curve generator.
func DeriveAddressSecret(preaddress fr.Element, secretKey grumpkinfr.Element) grumpkinfr.Element {
	skb := secretKey.Bytes()
	var skField fr.Element
	skField.SetBytes(skb[:])

	h := hashing.Hash(hashing.AddressSecret, preaddress, skField)
	hb := h.Bytes()
	var s grumpkinfr.Element
	s.SetBytes(hb[:])
	return s
}

// sharedSecret completes the ECDH exchange between the address secret and the
// ephemeral public key.
func sharedSecret(ephemeral *grumpkin.G1Affine, addressSecret *grumpkinfr.Element) grumpkin.G1Affine {
	var shared grumpkin.G1Affine
	shared.ScalarMultiplication(ephemeral, addressSecret.BigInt(new(big.Int)))
	return shared
}

// ParseSecretKey parses a hex-encoded incoming-viewing secret key as a curve
// scalar. The hex digit count must be even, matching the field text convention.
func ParseSecretKey(s string) (grumpkinfr.Element, error) {
	rest, ok := strings.CutPrefix(s, "0x")
	if !ok {
		rest = s
	}
	if len(rest)%2 != 0 {
		return grumpkinfr.Element{}, field.ErrInvalidHexDigits
	}
	b, err := hex.DecodeString(rest)
	if err != nil {
		return grumpkinfr.Element{}, err
	}
	var e grumpkinfr.Element
	e.SetBytes(b)
	return e, nil
}

// coordinate converts a curve coordinate to a ledger field element. Both fields
// share the same modulus, so the canonical bytes round-trip exactly.
func coordinate(c *grumpkinfp.Element) fr.Element {
	b := c.Bytes()
	var e fr.Element
	e.SetBytes(b[:])
	return e
}
