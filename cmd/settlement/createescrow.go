package main

import (
	"net/http"
	"time"

	"github.com/urfave/cli/v2"
)

var createescrow = cli.Command{
	Name:   "createescrow",
	Usage:  "create a new escrow transaction for an order",
	Action: createEscrowAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "order",
			Usage:    "the order id the escrow belongs to",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "buyer",
			Usage:    "the buyer id",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "seller",
			Usage:    "the seller id",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "buyer_name",
			Usage: "the buyer display name",
		},
		&cli.StringFlag{
			Name:  "seller_name",
			Usage: "the seller display name",
		},
		&cli.Int64Flag{
			Name:     "cents",
			Usage:    "the escrowed amount in minor units",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "currency",
			Usage:    "the ISO currency code of the amount",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "release_days",
			Usage: "days until the escrow is due for release",
		},
	},
}

func createEscrowAction(c *cli.Context) error {
	payload := map[string]interface{}{
		"orderId":    c.String("order"),
		"buyerId":    c.String("buyer"),
		"sellerId":   c.String("seller"),
		"buyerName":  c.String("buyer_name"),
		"sellerName": c.String("seller_name"),
		"amount": map[string]interface{}{
			"cents":    c.Int64("cents"),
			"currency": c.String("currency"),
		},
	}
	if days := c.Int("release_days"); days > 0 {
		due := time.Now().AddDate(0, 0, days)
		payload["releaseDue"] = due
	}

	return callAPI(http.MethodPost, "/v1/escrows", payload)
}
