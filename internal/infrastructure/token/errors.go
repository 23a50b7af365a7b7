package token

import "errors"

var (
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance ...
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	// ErrItemNotFound ...
	ErrItemNotFound = errors.New("item does not exist")
	// ErrItemAlreadyMinted ...
	ErrItemAlreadyMinted = errors.New("item is already minted")
	// ErrNotItemOwner is thrown when transferring an item from an account
	// that does not own it.
	ErrNotItemOwner = errors.New("sender does not own the item")
	// ErrNotApproved is thrown when moving assets of an account that did not
	// approve the marketplace.
	ErrNotApproved = errors.New("marketplace is not approved by the owner")
)
