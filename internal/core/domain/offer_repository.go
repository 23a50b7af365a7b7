package domain

import "context"

// OfferRepository is the abstraction for any kind of database intended to
// persist standing offers keyed by (collection, itemId, index). Slots of
// cancelled or accepted offers are zeroed, never compacted, so an index is
// never reused for the same item.
type OfferRepository interface {
	// AddOffer appends the offer at the next free index for the item and
	// returns that index.
	AddOffer(ctx context.Context, key ItemKey, offer *Offer) (uint64, error)
	// GetOffer returns the standing offer at the given index, or
	// ErrOfferNotFound if the index was never assigned or the slot is zeroed.
	GetOffer(ctx context.Context, key OfferKey) (*Offer, error)
	// GetOffersForItem returns all slots ever assigned for the item,
	// including zeroed ones, in index order.
	GetOffersForItem(ctx context.Context, key ItemKey) ([]Offer, error)
	// DeleteOffer zeroes the slot at the given index, or ErrOfferNotFound.
	DeleteOffer(ctx context.Context, key OfferKey) error
}
