package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

// AuctionRecord is the persisted form of an auction, carrying its composite
// key fields so records can be listed and queried.
type AuctionRecord struct {
	Collection    string
	ItemID        uint64
	Seller        string
	StartPrice    uint64
	HighestBidder string
	HighestBid    uint64
	EndBlock      uint64
}

type auctionRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAuctionRepositoryImpl returns a new badger AuctionRepository
// implementation.
func NewAuctionRepositoryImpl(store *badgerhold.Store) domain.AuctionRepository {
	return auctionRepositoryImpl{store}
}

func (r auctionRepositoryImpl) AddAuction(
	_ context.Context, key domain.ItemKey, auction *domain.Auction,
) error {
	if err := r.store.Insert(key.String(), toAuctionRecord(key, auction)); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrAuctionAlreadyExists
		}
		return err
	}
	return nil
}

func (r auctionRepositoryImpl) GetAuction(
	_ context.Context, key domain.ItemKey,
) (*domain.Auction, error) {
	return r.getAuction(key)
}

func (r auctionRepositoryImpl) GetAllAuctions(
	_ context.Context,
) (map[domain.ItemKey]*domain.Auction, error) {
	var records []AuctionRecord
	if err := r.store.Find(&records, nil); err != nil {
		return nil, err
	}

	allAuctions := make(map[domain.ItemKey]*domain.Auction, len(records))
	for _, record := range records {
		key := domain.ItemKey{Collection: record.Collection, ItemID: record.ItemID}
		allAuctions[key] = record.toAuction()
	}
	return allAuctions, nil
}

func (r auctionRepositoryImpl) UpdateAuction(
	_ context.Context,
	key domain.ItemKey,
	updateFn func(a *domain.Auction) (*domain.Auction, error),
) error {
	currentAuction, err := r.getAuction(key)
	if err != nil {
		return err
	}

	updatedAuction, err := updateFn(currentAuction)
	if err != nil {
		return err
	}

	return r.store.Update(key.String(), toAuctionRecord(key, updatedAuction))
}

func (r auctionRepositoryImpl) DeleteAuction(
	_ context.Context, key domain.ItemKey,
) error {
	if err := r.store.Delete(key.String(), AuctionRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrAuctionNotFound
		}
		return err
	}
	return nil
}

func (r auctionRepositoryImpl) getAuction(key domain.ItemKey) (*domain.Auction, error) {
	var record AuctionRecord
	if err := r.store.Get(key.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	return record.toAuction(), nil
}

func toAuctionRecord(key domain.ItemKey, auction *domain.Auction) AuctionRecord {
	return AuctionRecord{
		Collection:    key.Collection,
		ItemID:        key.ItemID,
		Seller:        auction.Seller,
		StartPrice:    auction.StartPrice,
		HighestBidder: auction.HighestBidder,
		HighestBid:    auction.HighestBid,
		EndBlock:      auction.EndBlock,
	}
}

func (r AuctionRecord) toAuction() *domain.Auction {
	return &domain.Auction{
		Seller:        r.Seller,
		StartPrice:    r.StartPrice,
		HighestBidder: r.HighestBidder,
		HighestBid:    r.HighestBid,
		EndBlock:      r.EndBlock,
	}
}
