package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var analytics = cli.Command{
	Name:   "analytics",
	Usage:  "show aggregate statistics over all escrow transactions",
	Action: analyticsAction,
}

func analyticsAction(c *cli.Context) error {
	return callAPI(http.MethodGet, "/v1/analytics", nil)
}
