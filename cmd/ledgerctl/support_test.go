package main

import (
	"errors"
	"flag"
	"testing"

	"github.com/urfave/cli"

	"ledgerclient/internal/field"
	"ledgerclient/internal/notehash"
)

func noteHashContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("note-hash", flag.ContinueOnError)
	for _, f := range noteHashFlags() {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	return cli.NewContext(nil, set, nil)
}

func TestNoteHashRequestPriority(t *testing.T) {
	// siloed wins over raw and items
	req, err := noteHashRequest(noteHashContext(t,
		"--siloed", "0x2a",
		"--raw", "0x01",
		"--item", "0x02", "--slot", "0x07",
		"--contract", "0x03",
	))
	if err != nil {
		t.Fatalf("noteHashRequest failed: %v", err)
	}
	siloed, ok := req.Source.(notehash.FromSiloed)
	if !ok {
		t.Fatalf("expected FromSiloed source, got %T", req.Source)
	}
	want, _ := field.ParseElement("0x2a")
	if !siloed.Siloed.Equal(&want) {
		t.Errorf("siloed hash parsed to the wrong value")
	}
	if siloed.Contract == nil {
		t.Errorf("contract flag should reach the siloed source")
	}

	// raw wins over items
	req, err = noteHashRequest(noteHashContext(t,
		"--raw", "0x01",
		"--item", "0x02", "--slot", "0x07",
	))
	if err != nil {
		t.Fatalf("noteHashRequest failed: %v", err)
	}
	if _, ok := req.Source.(notehash.FromRaw); !ok {
		t.Fatalf("expected FromRaw source, got %T", req.Source)
	}

	// items are the fallback
	req, err = noteHashRequest(noteHashContext(t,
		"--item", "0x01", "--item", "0x02",
		"--slot", "0x07",
		"--partial",
	))
	if err != nil {
		t.Fatalf("noteHashRequest failed: %v", err)
	}
	items, ok := req.Source.(notehash.FromItems)
	if !ok {
		t.Fatalf("expected FromItems source, got %T", req.Source)
	}
	if len(items.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items.Items))
	}
	if !items.Partial {
		t.Errorf("partial flag should be carried")
	}
}

func TestNoteHashRequestNonce(t *testing.T) {
	req, err := noteHashRequest(noteHashContext(t,
		"--siloed", "0x2a", "--contract", "0x03",
		"--nonce", "0x05",
	))
	if err != nil {
		t.Fatalf("noteHashRequest failed: %v", err)
	}
	if req.Nonce == nil {
		t.Fatalf("nonce flag should be carried")
	}
	want, _ := field.ParseElement("0x05")
	if !req.Nonce.Equal(&want) {
		t.Errorf("nonce parsed to the wrong value")
	}

	req, err = noteHashRequest(noteHashContext(t, "--raw", "0x01"))
	if err != nil {
		t.Fatalf("noteHashRequest failed: %v", err)
	}
	if req.Nonce != nil {
		t.Errorf("absent nonce flag should stay nil")
	}
}

func TestNoteHashRequestErrors(t *testing.T) {
	if _, err := noteHashRequest(noteHashContext(t, "--item", "0x01")); !errors.Is(err, notehash.ErrMissingSlot) {
		t.Errorf("items without slot: expected ErrMissingSlot, got %v", err)
	}
	if _, err := noteHashRequest(noteHashContext(t)); !errors.Is(err, notehash.ErrMissingItems) {
		t.Errorf("no starting point: expected ErrMissingItems, got %v", err)
	}
	if _, err := noteHashRequest(noteHashContext(t, "--item", "0x1", "--slot", "0x07")); !errors.Is(err, field.ErrInvalidHexDigits) {
		t.Errorf("odd hex item: expected ErrInvalidHexDigits, got %v", err)
	}
}
