package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

// OfferRecord is the persisted form of all offer slots ever assigned for one
// item. Slots of cancelled or accepted offers are zeroed in place so indexes
// are never reused.
type OfferRecord struct {
	Collection string
	ItemID     uint64
	Slots      []domain.Offer
}

type offerRepositoryImpl struct {
	store *badgerhold.Store
}

// NewOfferRepositoryImpl returns a new badger OfferRepository implementation.
func NewOfferRepositoryImpl(store *badgerhold.Store) domain.OfferRepository {
	return offerRepositoryImpl{store}
}

func (r offerRepositoryImpl) AddOffer(
	_ context.Context, key domain.ItemKey, offer *domain.Offer,
) (uint64, error) {
	record, err := r.getRecord(key)
	if err != nil {
		if err != domain.ErrOfferNotFound {
			return 0, err
		}
		record = &OfferRecord{Collection: key.Collection, ItemID: key.ItemID}
		index := uint64(0)
		record.Slots = append(record.Slots, *offer)
		return index, r.store.Insert(key.String(), *record)
	}

	index := uint64(len(record.Slots))
	record.Slots = append(record.Slots, *offer)
	return index, r.store.Update(key.String(), *record)
}

func (r offerRepositoryImpl) GetOffer(
	_ context.Context, key domain.OfferKey,
) (*domain.Offer, error) {
	record, err := r.getRecord(key.ItemKey)
	if err != nil {
		return nil, err
	}
	if key.Index >= uint64(len(record.Slots)) {
		return nil, domain.ErrOfferNotFound
	}
	offer := record.Slots[key.Index]
	if offer.IsZero() {
		return nil, domain.ErrOfferNotFound
	}
	return &offer, nil
}

func (r offerRepositoryImpl) GetOffersForItem(
	_ context.Context, key domain.ItemKey,
) ([]domain.Offer, error) {
	record, err := r.getRecord(key)
	if err != nil {
		if err == domain.ErrOfferNotFound {
			return nil, nil
		}
		return nil, err
	}
	return record.Slots, nil
}

func (r offerRepositoryImpl) DeleteOffer(
	_ context.Context, key domain.OfferKey,
) error {
	record, err := r.getRecord(key.ItemKey)
	if err != nil {
		return err
	}
	if key.Index >= uint64(len(record.Slots)) || record.Slots[key.Index].IsZero() {
		return domain.ErrOfferNotFound
	}
	record.Slots[key.Index] = domain.Offer{}
	return r.store.Update(key.ItemKey.String(), *record)
}

func (r offerRepositoryImpl) getRecord(key domain.ItemKey) (*OfferRecord, error) {
	var record OfferRecord
	if err := r.store.Get(key.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOfferNotFound
		}
		return nil, err
	}
	return &record, nil
}
