package domain

// Sale is the data structure representing a fixed-price listing. It exists
// only while the item sits in escrow under the seller's listing.
type Sale struct {
	Seller string
	Price  uint64
}

// NewSale returns a new sale after validating the provided arguments.
func NewSale(seller string, price uint64) (*Sale, error) {
	if seller == "" {
		return nil, ErrInvalidAccount
	}
	if price == 0 {
		return nil, ErrZeroPrice
	}
	return &Sale{Seller: seller, Price: price}, nil
}

// CancelableBy returns whether the given caller is allowed to cancel the sale.
func (s *Sale) CancelableBy(caller string) error {
	if caller != s.Seller {
		return ErrNotSeller
	}
	return nil
}

// SellableTo returns whether the sale can be settled against the given buyer.
func (s *Sale) SellableTo(buyer string) error {
	if buyer == s.Seller {
		return ErrSelfTrade
	}
	return nil
}
