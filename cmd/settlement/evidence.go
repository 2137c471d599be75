package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var evidence = cli.Command{
	Name:      "evidence",
	Usage:     "submit evidence on a disputed escrow transaction",
	ArgsUsage: "<transaction id>",
	Action:    evidenceAction,
	Flags: []cli.Flag{
		&versionFlag,
		&actorFlag,
		&cli.StringFlag{
			Name:     "note",
			Usage:    "the evidence note",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "attachment",
			Usage: "URI of an attached document or image",
		},
	},
}

func evidenceAction(c *cli.Context) error {
	id, err := escrowIDFromArgs(c)
	if err != nil {
		return err
	}

	return callAPI(http.MethodPost, "/v1/escrows/"+id+"/evidence",
		map[string]interface{}{
			"expectedVersion": c.Int("version"),
			"actor":           c.String("actor"),
			"note":            c.String("note"),
			"attachmentUri":   c.String("attachment"),
		})
}
