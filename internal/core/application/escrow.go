package application

import (
	"context"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
)

// escrowCustodian is the only component moving items and payment funds in
// and out of the marketplace account while trades are pending.
type escrowCustodian struct {
	account string
	payment ports.PaymentAsset
	items   ports.ItemToken
}

func newEscrowCustodian(
	account string, payment ports.PaymentAsset, items ports.ItemToken,
) *escrowCustodian {
	return &escrowCustodian{account: account, payment: payment, items: items}
}

// lockItem moves an item from its owner into escrow.
func (e *escrowCustodian) lockItem(ctx context.Context, key domain.ItemKey, from string) error {
	return e.items.TransferFrom(ctx, key.Collection, key.ItemID, from, e.account)
}

// releaseItem moves an escrowed item to the given account.
func (e *escrowCustodian) releaseItem(ctx context.Context, key domain.ItemKey, to string) error {
	return e.items.TransferFrom(ctx, key.Collection, key.ItemID, e.account, to)
}

// lockFunds collects payment funds from an account into escrow.
func (e *escrowCustodian) lockFunds(ctx context.Context, from string, amount uint64) error {
	return e.payment.TransferFrom(ctx, from, e.account, amount)
}

// releaseFunds returns escrowed payment funds to the given account.
func (e *escrowCustodian) releaseFunds(ctx context.Context, to string, amount uint64) error {
	return e.payment.TransferFrom(ctx, e.account, to, amount)
}

// pay moves payment funds between two arbitrary accounts. Zero amounts and
// empty receivers are skipped so that settlements with no fee or royalty
// need no special casing.
func (e *escrowCustodian) pay(ctx context.Context, from, to string, amount uint64) error {
	if amount == 0 || to == "" {
		return nil
	}
	return e.payment.TransferFrom(ctx, from, to, amount)
}
