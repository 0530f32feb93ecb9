// notehash.go - Raw, siloed, and unique note hash derivation.
//
// A note's identifier is built in up to three stages: the raw hash commits to the
// note content and storage slot, siloing binds the hash to the emitting contract,
// and the unique hash binds it to the transaction that created it. The starting
// point is one of three mutually exclusive sources; each later stage is computed
// only when its inputs are present.

package notehash

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"ledgerclient/internal/hashing"
)

var (
	ErrMissingItems            = errors.New("note items are required")
	ErrMissingSlot             = errors.New("storage slot is required")
	ErrSiloRequiresContract    = errors.New("siloed note hash requires a contract address")
	ErrUniqueRequiresSiloed    = errors.New("note nonce requires a siloed note hash")
	ErrPartialRequiresTwoItems = errors.New("partial note requires at least two items")
)

// Source is the starting point of the pipeline: plaintext content, an already
// computed raw hash, or an already computed siloed hash.
type Source interface {
	isSource()
}

// FromItems starts from the note's plaintext field sequence and storage slot.
// Partial commits the leading items first and folds the last item in afterwards.
type FromItems struct {
	Items    []fr.Element
	Slot     fr.Element
	Partial  bool
	Contract *fr.Element
}

// FromRaw starts from an existing raw note hash.
type FromRaw struct {
	Raw      fr.Element
	Contract *fr.Element
}

// FromSiloed starts from an existing siloed note hash. The contract is required:
// a siloed hash is meaningless without the contract it is bound to.
type FromSiloed struct {
	Siloed   fr.Element
	Contract *fr.Element
}

func (FromItems) isSource()  {}
func (FromRaw) isSource()    {}
func (FromSiloed) isSource() {}

// Request selects a source and optionally the note nonce for the unique stage.
type Request struct {
	Source Source
	Nonce  *fr.Element
}

// Result holds whichever stages were actually computed.
type Result struct {
	Raw    *fr.Element
	Siloed *fr.Element
	Unique *fr.Element
}

// Bare reports whether the result is just a raw hash with no further stages, and
// returns it if so. Callers print a bare scalar in that case instead of the
// structured form.
func (r Result) Bare() (fr.Element, bool) {
	if r.Raw != nil && r.Siloed == nil && r.Unique == nil {
		return *r.Raw, true
	}
	return fr.Element{}, false
}

// Compute runs the pipeline for one request.
func Compute(req Request) (Result, error) {
	var res Result

	switch s := req.Source.(type) {
	case FromSiloed:
		if s.Contract == nil {
			return Result{}, ErrSiloRequiresContract
		}
		siloed := s.Siloed
		res.Siloed = &siloed

	case FromRaw:
		raw := s.Raw
		res.Raw = &raw
		if s.Contract != nil {
			siloed := Silo(*s.Contract, raw)
			res.Siloed = &siloed
		}

	case FromItems:
		if len(s.Items) == 0 {
			return Result{}, ErrMissingItems
		}
		raw, err := rawHash(s.Items, s.Slot, s.Partial)
		if err != nil {
			return Result{}, err
		}
		res.Raw = &raw
		if s.Contract != nil {
			siloed := Silo(*s.Contract, raw)
			res.Siloed = &siloed
		}

	default:
		return Result{}, fmt.Errorf("unsupported note hash source %T", req.Source)
	}

	if req.Nonce != nil {
		if res.Siloed == nil {
			return Result{}, ErrUniqueRequiresSiloed
		}
		unique := Unique(*req.Nonce, *res.Siloed)
		res.Unique = &unique
	}

	return res, nil
}

// rawHash commits to the note content and slot. In partial mode the leading items
// are committed first and the last item folded in afterwards, so the private part
// can be fixed before the final value is known.
func rawHash(items []fr.Element, slot fr.Element, partial bool) (fr.Element, error) {
	if !partial {
		return hashing.Hash(hashing.NoteContent, append(append([]fr.Element{}, items...), slot)...), nil
	}
	if len(items) < 2 {
		return fr.Element{}, ErrPartialRequiresTwoItems
	}
	private, value := splitPartial(items)
	commitment := hashing.Hash(hashing.NoteContent, append(append([]fr.Element{}, private...), slot)...)
	return hashing.Hash(hashing.NoteContent, commitment, value), nil
}

// splitPartial separates the later-revealed value from the private items. The
// protocol convention places the value last.
func splitPartial(items []fr.Element) (private []fr.Element, value fr.Element) {
	return items[:len(items)-1], items[len(items)-1]
}

// Silo binds a raw note hash to the contract that emitted it.
func Silo(contract, raw fr.Element) fr.Element {
	return hashing.Hash(hashing.SiloedNote, contract, raw)
}

// Unique binds a siloed note hash to its creating transaction via the note nonce.
func Unique(nonce, siloed fr.Element) fr.Element {
	return hashing.Hash(hashing.UniqueNote, nonce, siloed)
}

// MapSlot derives the storage slot of a map entry from the map's base slot and the
// entry key.
func MapSlot(base, key fr.Element) fr.Element {
	return hashing.Hash(hashing.StorageSlot, base, key)
}
