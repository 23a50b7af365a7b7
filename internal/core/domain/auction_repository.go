package domain

import "context"

// AuctionRepository is the abstraction for any kind of database intended to
// persist open auctions keyed by (collection, itemId).
type AuctionRepository interface {
	// AddAuction stores a new auction for the given item. It fails with
	// ErrAuctionAlreadyExists if the item already has an open auction.
	AddAuction(ctx context.Context, key ItemKey, auction *Auction) error
	// GetAuction returns the open auction for the given item, or
	// ErrAuctionNotFound.
	GetAuction(ctx context.Context, key ItemKey) (*Auction, error)
	// GetAllAuctions returns every open auction keyed by item.
	GetAllAuctions(ctx context.Context) (map[ItemKey]*Auction, error)
	// UpdateAuction allows to commit multiple changes to the same auction in
	// a transactional way.
	UpdateAuction(
		ctx context.Context,
		key ItemKey,
		updateFn func(a *Auction) (*Auction, error),
	) error
	// DeleteAuction removes the auction for the given item, or
	// ErrAuctionNotFound.
	DeleteAuction(ctx context.Context, key ItemKey) error
}
