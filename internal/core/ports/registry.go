package ports

import "context"

// Registry is the interface of the external collection registry. It is
// mutated independently by collection managers (admission, bans, royalty
// assignment), outside of the marketplace's control.
type Registry interface {
	// IsTradable returns whether the collection is admitted and not
	// currently banned.
	IsTradable(ctx context.Context, collection string) (bool, error)
	// RoyaltyInfo returns the royalty receiver and rate in basis points for
	// the collection, zero values if none is configured.
	RoyaltyInfo(ctx context.Context, collection string) (receiver string, bps uint64, err error)
}
