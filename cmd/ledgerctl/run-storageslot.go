// run-storageslot.go - storage-slot command
package main

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/urfave/cli"

	"ledgerclient/internal/field"
	"ledgerclient/internal/notehash"
)

func runStorageSlot(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var base fr.Element
	switch {
	case c.String("base") != "":
		e, err := field.ParseElement(c.String("base"))
		if err != nil {
			return err
		}
		base = e

	case c.String("contract") != "" && c.String("name") != "":
		client := m.nodeClient()
		ctx, cancel := m.callContext()
		defer cancel()

		layout, err := client.StorageLayout(ctx, c.String("contract"))
		if err != nil {
			return err
		}
		slotStr, ok := layout.Slot(c.String("name"))
		if !ok {
			return fmt.Errorf("contract has no storage field %q", c.String("name"))
		}
		e, err := field.ParseElement(slotStr)
		if err != nil {
			return err
		}
		base = e

	default:
		return fmt.Errorf("either --base or --contract with --name is required")
	}

	slot := base
	if k := c.String("key"); k != "" {
		kind, key, err := field.ParseKey(k)
		if err != nil {
			return err
		}
		m.log.Debug().Int("keyKind", int(kind)).Msg("deriving map slot")
		slot = notehash.MapSlot(base, key)
	}

	fmt.Fprintln(m.w, hexElement(&slot))
	return nil
}
