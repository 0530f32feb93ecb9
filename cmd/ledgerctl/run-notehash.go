// run-notehash.go - note-hash command
package main

import (
	"fmt"

	"github.com/urfave/cli"

	"ledgerclient/internal/notehash"
)

func runNoteHash(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	req, err := noteHashRequest(c)
	if err != nil {
		return err
	}

	result, err := notehash.Compute(req)
	if err != nil {
		return err
	}

	// a raw hash with no further stages prints as a bare scalar
	if bare, ok := result.Bare(); ok {
		fmt.Fprintln(m.w, hexElement(&bare))
		return nil
	}

	out := make(map[string]string, 3)
	if result.Raw != nil {
		out["rawNoteHash"] = hexElement(result.Raw)
	}
	if result.Siloed != nil {
		out["siloedNoteHash"] = hexElement(result.Siloed)
	}
	if result.Unique != nil {
		out["uniqueNoteHash"] = hexElement(result.Unique)
	}
	return printJson(m.w, out)
}
