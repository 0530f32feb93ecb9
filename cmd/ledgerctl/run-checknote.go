// run-checknote.go - check-note command
package main

import (
	"fmt"

	"github.com/urfave/cli"

	"ledgerclient/internal/field"
	"ledgerclient/internal/notehash"
)

func runCheckNote(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	txHash := c.String("tx")
	if txHash == "" {
		return fmt.Errorf("transaction hash is required")
	}

	req, err := noteHashRequest(c)
	if err != nil {
		return err
	}
	result, err := notehash.Compute(req)
	if err != nil {
		return err
	}
	if result.Unique == nil {
		return fmt.Errorf("check-note needs --nonce and --contract to compute the unique hash")
	}

	client := m.nodeClient()
	ctx, cancel := m.callContext()
	defer cancel()

	effects, err := client.TxEffects(ctx, txHash)
	if err != nil {
		return err
	}

	found := false
	for _, h := range effects.NoteHashes {
		e, err := field.ParseElement(h)
		if err != nil {
			m.log.Warn().Str("noteHash", h).Msg("skipping unparseable note hash from node")
			continue
		}
		if e.Equal(result.Unique) {
			found = true
			break
		}
	}

	return printJson(m.w, map[string]interface{}{
		"uniqueNoteHash": hexElement(result.Unique),
		"found":          found,
	})
}
