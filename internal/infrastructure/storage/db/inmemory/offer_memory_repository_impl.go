package inmemory

import (
	"context"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

type offerRepositoryImpl struct {
	store *offerInmemoryStore
}

// NewOfferRepositoryImpl returns a new inmemory OfferRepository
// implementation. Offer slots are append-only per item: cancelled and
// accepted offers leave a zeroed slot behind.
func NewOfferRepositoryImpl(store *offerInmemoryStore) domain.OfferRepository {
	return &offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddOffer(
	_ context.Context, key domain.ItemKey, offer *domain.Offer,
) (uint64, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	index := uint64(len(r.store.offers[key]))
	r.store.offers[key] = append(r.store.offers[key], *offer)
	return index, nil
}

func (r offerRepositoryImpl) GetOffer(
	_ context.Context, key domain.OfferKey,
) (*domain.Offer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	slots := r.store.offers[key.ItemKey]
	if key.Index >= uint64(len(slots)) {
		return nil, domain.ErrOfferNotFound
	}
	offer := slots[key.Index]
	if offer.IsZero() {
		return nil, domain.ErrOfferNotFound
	}
	return &offer, nil
}

func (r offerRepositoryImpl) GetOffersForItem(
	_ context.Context, key domain.ItemKey,
) ([]domain.Offer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	slots := r.store.offers[key]
	offers := make([]domain.Offer, len(slots))
	copy(offers, slots)
	return offers, nil
}

func (r offerRepositoryImpl) DeleteOffer(
	_ context.Context, key domain.OfferKey,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	slots := r.store.offers[key.ItemKey]
	if key.Index >= uint64(len(slots)) || slots[key.Index].IsZero() {
		return domain.ErrOfferNotFound
	}
	slots[key.Index] = domain.Offer{}
	return nil
}
