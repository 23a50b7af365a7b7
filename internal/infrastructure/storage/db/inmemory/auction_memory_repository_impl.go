package inmemory

import (
	"context"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

type auctionRepositoryImpl struct {
	store *auctionInmemoryStore
}

// NewAuctionRepositoryImpl returns a new inmemory AuctionRepository
// implementation.
func NewAuctionRepositoryImpl(store *auctionInmemoryStore) domain.AuctionRepository {
	return &auctionRepositoryImpl{store}
}

func (r auctionRepositoryImpl) AddAuction(
	_ context.Context, key domain.ItemKey, auction *domain.Auction,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.auctions[key]; ok {
		return domain.ErrAuctionAlreadyExists
	}
	r.store.auctions[key] = *auction
	return nil
}

func (r auctionRepositoryImpl) GetAuction(
	_ context.Context, key domain.ItemKey,
) (*domain.Auction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getAuction(key)
}

func (r auctionRepositoryImpl) GetAllAuctions(
	_ context.Context,
) (map[domain.ItemKey]*domain.Auction, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	allAuctions := make(map[domain.ItemKey]*domain.Auction, len(r.store.auctions))
	for key, auction := range r.store.auctions {
		auction := auction
		allAuctions[key] = &auction
	}
	return allAuctions, nil
}

func (r auctionRepositoryImpl) UpdateAuction(
	_ context.Context,
	key domain.ItemKey,
	updateFn func(a *domain.Auction) (*domain.Auction, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentAuction, err := r.getAuction(key)
	if err != nil {
		return err
	}

	updatedAuction, err := updateFn(currentAuction)
	if err != nil {
		return err
	}

	r.store.auctions[key] = *updatedAuction
	return nil
}

func (r auctionRepositoryImpl) DeleteAuction(
	_ context.Context, key domain.ItemKey,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.auctions[key]; !ok {
		return domain.ErrAuctionNotFound
	}
	delete(r.store.auctions, key)
	return nil
}

func (r auctionRepositoryImpl) getAuction(key domain.ItemKey) (*domain.Auction, error) {
	auction, ok := r.store.auctions[key]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return &auction, nil
}
