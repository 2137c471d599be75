package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var listescrows = cli.Command{
	Name:   "listescrows",
	Usage:  "list all escrow transactions",
	Action: listEscrowsAction,
}

func listEscrowsAction(c *cli.Context) error {
	return callAPI(http.MethodGet, "/v1/escrows", nil)
}
