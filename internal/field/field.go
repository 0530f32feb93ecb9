// field.go - Canonical conversion between textual input and ledger field elements.
//
// Every scalar the client handles lives in the BN254 scalar field. Inputs arrive as
// 0x-prefixed hex or as opaque UTF-8 text; outputs are fixed-width big-endian bytes.
// The 31-byte packing is used inside ciphertext streams: any 31-byte payload fits a
// field element without modular wraparound.

package field

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrInvalidHexDigits is returned for 0x-prefixed input with an odd number of hex
// digits. The byte boundary is ambiguous, so it is rejected rather than padded.
var ErrInvalidHexDigits = errors.New("hex input must have an even number of digits")

// Kind discriminates how a textual input was interpreted.
type Kind int

const (
	// HexValue means the input carried a 0x prefix and was decoded as hex bytes.
	HexValue Kind = iota
	// TextValue means the input was taken as opaque UTF-8 bytes.
	TextValue
)

// Value is the result of parsing one textual input: the interpretation that was
// chosen plus the resulting field element.
type Value struct {
	Kind    Kind
	Element fr.Element
}

// Parse converts a textual input to a field element. A 0x-prefixed string is decoded
// as big-endian hex and reduced mod p; anything else is treated as UTF-8 bytes,
// right-padded or truncated to 32 bytes, and interpreted big-endian.
func Parse(s string) (Value, error) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		if len(rest)%2 != 0 {
			return Value{}, ErrInvalidHexDigits
		}
		b, err := hex.DecodeString(rest)
		if err != nil {
			return Value{}, err
		}
		var e fr.Element
		e.SetBytes(b)
		return Value{Kind: HexValue, Element: e}, nil
	}

	var buf [32]byte
	copy(buf[:], s)
	var e fr.Element
	e.SetBytes(buf[:])
	return Value{Kind: TextValue, Element: e}, nil
}

// ParseElement is Parse for callers that only need the element.
func ParseElement(s string) (fr.Element, error) {
	v, err := Parse(s)
	if err != nil {
		return fr.Element{}, err
	}
	return v.Element, nil
}

// Bytes32 serializes e to its canonical 32-byte big-endian form.
func Bytes32(e *fr.Element) [32]byte {
	return e.Bytes()
}

// FromBytes32 interprets b as a big-endian integer reduced mod p.
func FromBytes32(b []byte) fr.Element {
	var e fr.Element
	e.SetBytes(b)
	return e
}

// Bytes31 serializes e to 32 bytes big-endian and drops the leading byte. The top
// byte of a canonical element below the modulus is not usable for payload, so the
// 31 remaining bytes are the unit used inside ciphertext packing.
func Bytes31(e *fr.Element) [31]byte {
	full := e.Bytes()
	var out [31]byte
	copy(out[:], full[1:])
	return out
}

// KeyKind discriminates how a storage map key was interpreted.
type KeyKind int

const (
	// AddressKey means the key was normalized as a contract or account address.
	AddressKey KeyKind = iota
	// FieldKey means the key followed the plain field text convention.
	FieldKey
)

// ParseKey classifies a storage map key as an address or a plain field value and
// parses it accordingly. Hex input that fits within an address width is normalized
// as one; everything else follows the field convention. The selection is a returned
// value, never a recovered parse failure.
func ParseKey(s string) (KeyKind, fr.Element, error) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok && len(rest) <= 64 {
		e, err := NormalizeAddress(s)
		return AddressKey, e, err
	}
	e, err := ParseElement(s)
	return FieldKey, e, err
}

// NormalizeAddress parses a hex address, tolerating input supplied without full
// zero padding by left-padding to 64 digits first.
func NormalizeAddress(s string) (fr.Element, error) {
	rest, ok := strings.CutPrefix(s, "0x")
	if !ok {
		rest = s
	}
	if len(rest) > 64 {
		return fr.Element{}, fmt.Errorf("address %q longer than 64 hex digits", s)
	}
	padded := strings.Repeat("0", 64-len(rest)) + rest
	b, err := hex.DecodeString(padded)
	if err != nil {
		return fr.Element{}, err
	}
	var e fr.Element
	e.SetBytes(b)
	return e, nil
}
