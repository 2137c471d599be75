package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var rates = cli.Command{
	Name:   "rates",
	Usage:  "show the recent exchange-rate snapshots",
	Action: ratesAction,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "max number of snapshots to show",
			Value: 20,
		},
	},
}

func ratesAction(c *cli.Context) error {
	path := fmt.Sprintf("/v1/rates/history?limit=%d", c.Int("limit"))
	return callAPI(http.MethodGet, path, nil)
}
