package domain

import "fmt"

// ItemKey identifies a single non-fungible item within a collection.
type ItemKey struct {
	Collection string
	ItemID     uint64
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s:%d", k.Collection, k.ItemID)
}

// OfferKey identifies a standing offer on an item. Indexes are append-only
// per item and are never reused after an offer is cancelled or accepted.
type OfferKey struct {
	ItemKey
	Index uint64
}

func (k OfferKey) String() string {
	return fmt.Sprintf("%s:%d", k.ItemKey, k.Index)
}

// Custody represents who holds an item from the marketplace point of view.
type Custody int

const (
	// CustodyNone means the item is held by its owner, not by the marketplace.
	CustodyNone Custody = iota
	// CustodyForSale means the item is escrowed under an active sale.
	CustodyForSale
	// CustodyForAuction means the item is escrowed under an open auction.
	CustodyForAuction
)

func (c Custody) String() string {
	switch c {
	case CustodyForSale:
		return "escrowed_for_sale"
	case CustodyForAuction:
		return "escrowed_for_auction"
	default:
		return "held_by_owner"
	}
}
