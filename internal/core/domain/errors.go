package domain

import "errors"

var (
	// ErrCollectionNotTradable is thrown when creating exposure on a
	// collection that is not admitted by the registry or is currently banned.
	ErrCollectionNotTradable = errors.New("collection is not tradable")
	// ErrSaleNotFound is thrown when no active sale exists for an item.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrAuctionNotFound is thrown when no open auction exists for an item.
	ErrAuctionNotFound = errors.New("auction not found")
	// ErrOfferNotFound is thrown when no standing offer exists at the
	// requested index.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrNotSeller is thrown when the caller is not the recorded seller of a
	// sale or auction.
	ErrNotSeller = errors.New("caller is not the seller")
	// ErrNotOfferBuyer is thrown when the caller is not the buyer of the
	// offer to cancel.
	ErrNotOfferBuyer = errors.New("caller is not the offer buyer")
	// ErrNotItemController is thrown when the caller neither owns the item
	// nor is the seller of record of its escrowed position.
	ErrNotItemController = errors.New("caller does not control the item")
	// ErrNotItemOwner is thrown when listing an item the caller does not own.
	ErrNotItemOwner = errors.New("caller does not own the item")
	// ErrSelfTrade is thrown when both counterparties of a settlement
	// resolve to the same account.
	ErrSelfTrade = errors.New("self trading is not allowed")
	// ErrBuyerHoldsItem is thrown when making an offer on an item the buyer
	// holds outright.
	ErrBuyerHoldsItem = errors.New("buyer already holds the item")
	// ErrAuctionHasBids is thrown when cancelling an auction after the first
	// bid has landed.
	ErrAuctionHasBids = errors.New("auction has bids")
	// ErrAuctionNoBids is thrown when claiming an auction that received no bid.
	ErrAuctionNoBids = errors.New("auction has no bids")
	// ErrAuctionNotEnded is thrown when claiming an auction before its end block.
	ErrAuctionNotEnded = errors.New("auction is not ended yet")
	// ErrAuctionEnded is thrown when bidding after the auction end block.
	ErrAuctionEnded = errors.New("auction is ended")
	// ErrBidTooLow is thrown when a bid does not exceed the current highest
	// one, or the first bid is below the start price.
	ErrBidTooLow = errors.New("bid amount is too low")
	// ErrEndBlockNotInFuture is thrown when creating an auction with an end
	// block that has already passed.
	ErrEndBlockNotInFuture = errors.New("auction end block must be in the future")
	// ErrFeeTooHigh is thrown when setting a marketplace fee at or above the cap.
	ErrFeeTooHigh = errors.New("fee basis points must be lower than 9000")
	// ErrZeroPrice ...
	ErrZeroPrice = errors.New("price must not be zero")
	// ErrZeroAmount ...
	ErrZeroAmount = errors.New("amount must not be zero")
	// ErrInvalidAccount ...
	ErrInvalidAccount = errors.New("account must not be empty")
	// ErrSaleAlreadyExists ...
	ErrSaleAlreadyExists = errors.New("sale already exists for the item")
	// ErrAuctionAlreadyExists ...
	ErrAuctionAlreadyExists = errors.New("auction already exists for the item")
)
