package domain

// Auction is the data structure representing a timed English auction.
// HighestBid is initialized to the start price so that the first bid must be
// at least the start price, while every later bid must strictly exceed the
// current highest one.
type Auction struct {
	Seller        string
	StartPrice    uint64
	HighestBidder string
	HighestBid    uint64
	EndBlock      uint64
}

// NewAuction returns a new auction with no bids after validating the
// provided arguments. The end block must strictly exceed the current block.
func NewAuction(seller string, startPrice, endBlock, currentBlock uint64) (*Auction, error) {
	if seller == "" {
		return nil, ErrInvalidAccount
	}
	if startPrice == 0 {
		return nil, ErrZeroPrice
	}
	if endBlock <= currentBlock {
		return nil, ErrEndBlockNotInFuture
	}
	return &Auction{
		Seller:     seller,
		StartPrice: startPrice,
		HighestBid: startPrice,
		EndBlock:   endBlock,
	}, nil
}

// HasBids returns whether at least one bid has been placed.
func (a *Auction) HasBids() bool {
	return a.HighestBidder != ""
}

// PlaceBid records a new highest bid, returning the previously escrowed
// bidder and amount to refund, if any. A bid landing within
// extensionInterval blocks of the end block pushes the end block forward by
// the interval; extensions accumulate across repeated late bids.
func (a *Auction) PlaceBid(
	bidder string, amount, currentBlock, extensionInterval uint64,
) (prevBidder string, prevBid uint64, err error) {
	if bidder == "" {
		return "", 0, ErrInvalidAccount
	}
	if bidder == a.Seller {
		return "", 0, ErrSelfTrade
	}
	if currentBlock >= a.EndBlock {
		return "", 0, ErrAuctionEnded
	}
	if a.HasBids() {
		if amount <= a.HighestBid {
			return "", 0, ErrBidTooLow
		}
		prevBidder, prevBid = a.HighestBidder, a.HighestBid
	} else if amount < a.StartPrice {
		return "", 0, ErrBidTooLow
	}

	a.HighestBidder = bidder
	a.HighestBid = amount
	if a.EndBlock-currentBlock < extensionInterval {
		a.EndBlock += extensionInterval
	}
	return prevBidder, prevBid, nil
}

// Claimable returns whether the auction can be settled at the given block.
// Claiming requires the end block to have passed and at least one bid.
func (a *Auction) Claimable(currentBlock uint64) error {
	if !a.HasBids() {
		return ErrAuctionNoBids
	}
	if currentBlock < a.EndBlock {
		return ErrAuctionNotEnded
	}
	return nil
}

// CancelableBy returns whether the given caller can cancel the auction.
// Cancellation is forbidden forever once the first bid lands, regardless of
// whether the end block has passed.
func (a *Auction) CancelableBy(caller string) error {
	if caller != a.Seller {
		return ErrNotSeller
	}
	if a.HasBids() {
		return ErrAuctionHasBids
	}
	return nil
}
