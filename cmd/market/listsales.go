package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

var listsales = cli.Command{
	Name:   "listsales",
	Usage:  "list all active fixed price sales",
	Action: listSalesAction,
}

func listSalesAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	sales, err := repoManager.SaleRepository().GetAllSales(context.Background())
	if err != nil {
		return err
	}

	view := make(map[string]domain.Sale, len(sales))
	for key, sale := range sales {
		view[key.String()] = *sale
	}
	printJSON(view)

	return nil
}
