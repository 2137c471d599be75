package main

import (
	"errors"
	"net/http"

	"github.com/urfave/cli/v2"
)

var escrow = cli.Command{
	Name:      "escrow",
	Usage:     "show one escrow transaction",
	ArgsUsage: "<transaction id>",
	Action:    escrowAction,
	Subcommands: []*cli.Command{
		{
			Name:      "timeline",
			Usage:     "show the status history of one escrow transaction",
			ArgsUsage: "<transaction id>",
			Action:    escrowTimelineAction,
		},
	},
}

func escrowAction(c *cli.Context) error {
	id, err := escrowIDFromArgs(c)
	if err != nil {
		return err
	}
	return callAPI(http.MethodGet, "/v1/escrows/"+id, nil)
}

func escrowTimelineAction(c *cli.Context) error {
	id, err := escrowIDFromArgs(c)
	if err != nil {
		return err
	}
	return callAPI(http.MethodGet, "/v1/escrows/"+id+"/timeline", nil)
}

func escrowIDFromArgs(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", errors.New("transaction id is missing")
	}
	return c.Args().First(), nil
}
