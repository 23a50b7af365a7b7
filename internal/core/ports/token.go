package ports

import "context"

// PaymentAsset is the marketplace view of the fungible payment token.
// Transfers from third-party accounts require a prior allowance granted to
// the marketplace; insufficient balance or allowance propagates as the
// failure of the calling operation.
type PaymentAsset interface {
	// BalanceOf returns the balance of the given account.
	BalanceOf(ctx context.Context, account string) (uint64, error)
	// Allowance returns the amount the account allowed the marketplace to spend.
	Allowance(ctx context.Context, owner string) (uint64, error)
	// TransferFrom moves funds between two accounts on behalf of the
	// marketplace, consuming the owner's allowance unless the marketplace
	// spends its own escrow balance.
	TransferFrom(ctx context.Context, from, to string, amount uint64) error
}

// ItemToken is the marketplace view of the non-fungible item contracts.
type ItemToken interface {
	// OwnerOf returns the current owner of the item.
	OwnerOf(ctx context.Context, collection string, itemID uint64) (string, error)
	// IsApproved returns whether the owner approved the marketplace to move
	// their items.
	IsApproved(ctx context.Context, collection, owner string) (bool, error)
	// TransferFrom moves the item between two accounts on behalf of the
	// marketplace.
	TransferFrom(ctx context.Context, collection string, itemID uint64, from, to string) error
}
