// main.go - ledgerctl, a command-line client for a commitment-based private ledger.
//
// The client computes note hashes and storage slots, decrypts private logs, and
// queries a remote ledger node. All scalar inputs follow one text convention:
// 0x-prefixed even-length hex, or opaque UTF-8 text.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"ledgerclient/internal/noderpc"
)

type metadata struct {
	config  *Config
	log     zerolog.Logger
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "ledgerctl"
	app.Usage = "client for a commitment-based private ledger node"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: defaultConfigPath(),
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "node, n",
			Value: "",
			Usage: " ledger node endpoint `URL`, overrides the config file",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "note-hash",
			Usage:     "compute raw, siloed, and unique note hashes",
			ArgsUsage: "\n   (+ = select one starting point)",
			Flags:     noteHashFlags(),
			Action:    runNoteHash,
		},
		{
			Name:      "decrypt-log",
			Usage:     "decrypt a private log addressed to a recipient",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "ciphertext, t",
					Usage: "*one ciphertext `FIELD`, repeated for the whole log",
				},
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*recipient address `HEX`",
				},
				cli.StringFlag{
					Name:  "secret-key, s",
					Value: "",
					Usage: "*recipient incoming-viewing secret key `HEX`",
				},
			},
			Action: runDecryptLog,
		},
		{
			Name:      "storage-slot",
			Usage:     "derive a storage slot, resolving named slots via the node",
			ArgsUsage: "\n   (+ = select one of --base or --contract with --name)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "base, b",
					Value: "",
					Usage: "+base slot `FIELD`",
				},
				cli.StringFlag{
					Name:  "contract, c",
					Value: "",
					Usage: "+contract address `HEX` for named slot lookup",
				},
				cli.StringFlag{
					Name:  "name, f",
					Value: "",
					Usage: "+storage field `NAME` to resolve via the node",
				},
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: " map entry key `VALUE`, address or field",
				},
			},
			Action: runStorageSlot,
		},
		{
			Name:      "check-note",
			Usage:     "check a computed unique note hash against a transaction's effects",
			ArgsUsage: "\n   (* = required)",
			Flags: append(noteHashFlags(), cli.StringFlag{
				Name:  "tx, x",
				Value: "",
				Usage: "*transaction hash `HEX` to fetch effects for",
			}),
			Action: runCheckNote,
		},
		{
			Name:   "info",
			Usage:  "show ledger node status",
			Action: runInfo,
		},
	}

	app.Before = func(c *cli.Context) error {
		cfg, err := LoadConfig(c.GlobalString("config"))
		if err != nil {
			return err
		}
		if node := c.GlobalString("node"); node != "" {
			cfg.NodeEndpoint = node
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := NewLogger(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			config:  cfg,
			log:     logger,
			verbose: c.GlobalBool("verbose") || cfg.Verbose,
			e:       app.ErrWriter,
			w:       app.Writer,
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// nodeClient builds a client for the configured node endpoint.
func (m *metadata) nodeClient() *noderpc.Client {
	return noderpc.NewClient(m.config.NodeEndpoint, m.config.Timeout(), m.verbose, m.e, m.log)
}

// callContext bounds one node round trip by the configured timeout.
func (m *metadata) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.config.Timeout())
}
