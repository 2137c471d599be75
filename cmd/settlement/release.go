package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var release = cli.Command{
	Name:      "release",
	Usage:     "release escrowed funds to the seller",
	ArgsUsage: "<transaction id>",
	Action:    releaseAction,
	Flags: []cli.Flag{
		&versionFlag,
		&actorFlag,
	},
}

var (
	versionFlag = cli.IntFlag{
		Name:  "version",
		Usage: "the last observed version, 0 lets the daemon retry conflicts",
	}

	actorFlag = cli.StringFlag{
		Name:  "actor",
		Usage: "who performs the transition",
		Value: "operator",
	}
)

func releaseAction(c *cli.Context) error {
	id, err := escrowIDFromArgs(c)
	if err != nil {
		return err
	}

	return callAPI(http.MethodPost, "/v1/escrows/"+id+"/release",
		map[string]interface{}{
			"expectedVersion": c.Int("version"),
			"actor":           c.String("actor"),
		})
}
