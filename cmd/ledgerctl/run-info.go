// run-info.go - info command
package main

import (
	"github.com/urfave/cli"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client := m.nodeClient()
	ctx, cancel := m.callContext()
	defer cancel()

	info, err := client.Info(ctx)
	if err != nil {
		return err
	}
	info["_connection"] = m.config.NodeEndpoint

	return printJson(m.w, info)
}
