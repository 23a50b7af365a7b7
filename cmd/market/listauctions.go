package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

var listauctions = cli.Command{
	Name:   "listauctions",
	Usage:  "list all open auctions",
	Action: listAuctionsAction,
}

func listAuctionsAction(ctx *cli.Context) error {
	repoManager, err := openRepoManager(ctx)
	if err != nil {
		return err
	}
	defer repoManager.Close()

	auctions, err := repoManager.AuctionRepository().GetAllAuctions(
		context.Background(),
	)
	if err != nil {
		return err
	}

	view := make(map[string]domain.Auction, len(auctions))
	for key, auction := range auctions {
		view[key.String()] = *auction
	}
	printJSON(view)

	return nil
}
