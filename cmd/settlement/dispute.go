package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var dispute = cli.Command{
	Name:      "dispute",
	Usage:     "open a dispute on a pending escrow transaction",
	ArgsUsage: "<transaction id>",
	Action:    disputeAction,
	Flags: []cli.Flag{
		&versionFlag,
		&actorFlag,
		&cli.StringFlag{
			Name:     "reason",
			Usage:    "why the dispute is opened",
			Required: true,
		},
	},
}

func disputeAction(c *cli.Context) error {
	id, err := escrowIDFromArgs(c)
	if err != nil {
		return err
	}

	return callAPI(http.MethodPost, "/v1/escrows/"+id+"/dispute",
		map[string]interface{}{
			"expectedVersion": c.Int("version"),
			"actor":           c.String("actor"),
			"reason":          c.String("reason"),
		})
}
