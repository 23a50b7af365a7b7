package registry

import "errors"

var (
	// ErrNotOwner is thrown when a non-owner tries to manage the registry.
	ErrNotOwner = errors.New("caller is not the registry owner")
	// ErrNotManager is thrown when setting a royalty for a collection the
	// caller does not manage.
	ErrNotManager = errors.New("caller is not the collection manager")
	// ErrAlreadyAdded ...
	ErrAlreadyAdded = errors.New("collection is already added")
	// ErrNotAdded ...
	ErrNotAdded = errors.New("collection is not added")
	// ErrRoyaltyTooHigh is thrown when setting a royalty rate above the cap.
	ErrRoyaltyTooHigh = errors.New("royalty basis points must not exceed 1000")
)
