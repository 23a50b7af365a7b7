package domain

// Offer is the data structure representing a standing buyer offer on an
// item. The offered amount is escrowed in full for the whole lifetime of the
// offer. Cancelled and accepted offers leave a zeroed slot behind so that
// offer indexes are never reused.
type Offer struct {
	Buyer  string
	Amount uint64
}

// NewOffer returns a new offer after validating the provided arguments.
func NewOffer(buyer string, amount uint64) (*Offer, error) {
	if buyer == "" {
		return nil, ErrInvalidAccount
	}
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	return &Offer{Buyer: buyer, Amount: amount}, nil
}

// IsZero returns whether the offer slot has been cleared.
func (o *Offer) IsZero() bool {
	return o.Buyer == "" && o.Amount == 0
}

// CancelableBy returns whether the given caller can cancel the offer.
func (o *Offer) CancelableBy(caller string) error {
	if caller != o.Buyer {
		return ErrNotOfferBuyer
	}
	return nil
}

// AcceptableBy returns whether the given caller can accept the offer.
func (o *Offer) AcceptableBy(caller string) error {
	if caller == o.Buyer {
		return ErrSelfTrade
	}
	return nil
}
