package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

var listoffers = cli.Command{
	Name:      "listoffers",
	Usage:     "list the standing offers on an item",
	ArgsUsage: "<collection> <itemId>",
	Action:    listOffersAction,
}

func listOffersAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("expected <collection> <itemId>")
	}
	collection := ctx.Args().Get(0)
	itemID, err := strconv.ParseUint(ctx.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid itemId: %s", err)
	}

	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	offers, err := repoManager.OfferRepository().GetOffersForItem(
		context.Background(), domain.ItemKey{Collection: collection, ItemID: itemID},
	)
	if err != nil {
		return err
	}

	view := map[uint64]domain.Offer{}
	for index, offer := range offers {
		if offer.IsZero() {
			continue
		}
		view[uint64(index)] = offer
	}
	printJSON(view)

	return nil
}
