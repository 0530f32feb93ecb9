// support.go - Shared flag handling for the note hash commands
package main

import (
	"encoding/hex"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/urfave/cli"

	"ledgerclient/internal/field"
	"ledgerclient/internal/notehash"
)

func noteHashFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "raw, r",
			Value: "",
			Usage: "+existing raw note hash `FIELD`",
		},
		cli.StringFlag{
			Name:  "siloed, s",
			Value: "",
			Usage: "+existing siloed note hash `FIELD`, requires --contract",
		},
		cli.StringFlag{
			Name:  "contract, a",
			Value: "",
			Usage: " contract address `HEX` for siloing",
		},
		cli.StringSliceFlag{
			Name:  "item, i",
			Usage: "+one note item `FIELD`, repeated for the whole note",
		},
		cli.StringFlag{
			Name:  "slot, o",
			Value: "",
			Usage: " storage slot `FIELD`, required with --item",
		},
		cli.BoolFlag{
			Name:  "partial, p",
			Usage: " commit leading items before the final value",
		},
		cli.StringFlag{
			Name:  "nonce, u",
			Value: "",
			Usage: " note nonce `FIELD` for the unique hash",
		},
	}
}

// noteHashRequest builds the pipeline request from the command flags. Starting
// points are mutually exclusive by priority: siloed, then raw, then items.
func noteHashRequest(c *cli.Context) (notehash.Request, error) {
	var req notehash.Request

	var contract *fr.Element
	if s := c.String("contract"); s != "" {
		e, err := field.NormalizeAddress(s)
		if err != nil {
			return req, err
		}
		contract = &e
	}

	if s := c.String("nonce"); s != "" {
		e, err := field.ParseElement(s)
		if err != nil {
			return req, err
		}
		req.Nonce = &e
	}

	switch {
	case c.String("siloed") != "":
		e, err := field.ParseElement(c.String("siloed"))
		if err != nil {
			return req, err
		}
		req.Source = notehash.FromSiloed{Siloed: e, Contract: contract}

	case c.String("raw") != "":
		e, err := field.ParseElement(c.String("raw"))
		if err != nil {
			return req, err
		}
		req.Source = notehash.FromRaw{Raw: e, Contract: contract}

	default:
		itemStrs := c.StringSlice("item")
		if len(itemStrs) == 0 {
			return req, notehash.ErrMissingItems
		}
		if c.String("slot") == "" {
			return req, notehash.ErrMissingSlot
		}
		items := make([]fr.Element, len(itemStrs))
		for i, s := range itemStrs {
			e, err := field.ParseElement(s)
			if err != nil {
				return req, err
			}
			items[i] = e
		}
		slot, err := field.ParseElement(c.String("slot"))
		if err != nil {
			return req, err
		}
		req.Source = notehash.FromItems{
			Items:    items,
			Slot:     slot,
			Partial:  c.Bool("partial"),
			Contract: contract,
		}
	}

	return req, nil
}

// hexElement renders a field element as full-width 0x hex.
func hexElement(e *fr.Element) string {
	b := field.Bytes32(e)
	return "0x" + hex.EncodeToString(b[:])
}
