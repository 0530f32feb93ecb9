// run-decryptlog.go - decrypt-log command
package main

import (
	"github.com/urfave/cli"

	"ledgerclient/internal/logcrypt"
)

func runDecryptLog(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fields, err := logcrypt.DecryptHex(
		c.StringSlice("ciphertext"),
		c.String("address"),
		c.String("secret-key"),
	)
	if err != nil {
		return err
	}

	out := make([]string, len(fields))
	for i := range fields {
		out[i] = hexElement(&fields[i])
	}
	return printJson(m.w, out)
}
