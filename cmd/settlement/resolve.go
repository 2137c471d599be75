package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var resolve = cli.Command{
	Name:      "resolve",
	Usage:     "apply the arbiter decision on a disputed escrow transaction",
	ArgsUsage: "<transaction id>",
	Action:    resolveAction,
	Flags: []cli.Flag{
		&versionFlag,
		&actorFlag,
		&cli.StringFlag{
			Name:     "outcome",
			Usage:    "the decision: released or refunded",
			Required: true,
		},
	},
}

func resolveAction(c *cli.Context) error {
	id, err := escrowIDFromArgs(c)
	if err != nil {
		return err
	}

	outcome := c.String("outcome")
	if outcome != "released" && outcome != "refunded" {
		return fmt.Errorf("unknown outcome: %s", outcome)
	}

	return callAPI(http.MethodPost, "/v1/escrows/"+id+"/resolve",
		map[string]interface{}{
			"expectedVersion": c.Int("version"),
			"actor":           c.String("actor"),
			"outcome":         outcome,
		})
}
