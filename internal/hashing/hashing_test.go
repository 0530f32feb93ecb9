package hashing

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func element(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func TestHashDeterminism(t *testing.T) {
	a := Hash(NoteContent, element(1), element(2))
	b := Hash(NoteContent, element(1), element(2))
	if !a.Equal(&b) {
		t.Fatalf("identical input should hash identically")
	}
}

func TestHashSeparatorsDisjoint(t *testing.T) {
	seps := []Separator{NoteContent, SiloedNote, UniqueNote, StorageSlot, AddressSecret, SymmetricKey, SymmetricIV}
	seen := make(map[string]Separator)
	for _, sep := range seps {
		d := Hash(sep, element(1), element(2))
		key := string(d.Marshal())
		if prev, ok := seen[key]; ok {
			t.Fatalf("separators %d and %d collide over identical input", prev, sep)
		}
		seen[key] = sep
	}
}

func TestHashInputSensitivity(t *testing.T) {
	base := Hash(NoteContent, element(1), element(2))

	changed := Hash(NoteContent, element(1), element(3))
	if base.Equal(&changed) {
		t.Errorf("changing an input should change the digest")
	}

	swapped := Hash(NoteContent, element(2), element(1))
	if base.Equal(&swapped) {
		t.Errorf("input order should matter")
	}

	extended := Hash(NoteContent, element(1), element(2), element(0))
	if base.Equal(&extended) {
		t.Errorf("appending an element should change the digest")
	}
}
