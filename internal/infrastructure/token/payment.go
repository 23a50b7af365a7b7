package token

import (
	"context"
	"sync"
)

// PaymentLedger is an in-process fungible payment asset implementing
// ports.PaymentAsset. Transfers initiated on behalf of third parties consume
// the allowance they granted to the marketplace account; the marketplace
// spends its own escrow balance freely.
type PaymentLedger struct {
	mtx        sync.Mutex
	operator   string
	balances   map[string]uint64
	allowances map[string]uint64
}

// NewPaymentLedger returns an empty ledger whose allowances are granted to
// the given marketplace account.
func NewPaymentLedger(operator string) *PaymentLedger {
	return &PaymentLedger{
		operator:   operator,
		balances:   map[string]uint64{},
		allowances: map[string]uint64{},
	}
}

// Mint credits the given account.
func (l *PaymentLedger) Mint(account string, amount uint64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.balances[account] += amount
}

// Approve allows the marketplace to spend up to amount on behalf of owner,
// replacing any previous allowance.
func (l *PaymentLedger) Approve(owner string, amount uint64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.allowances[owner] = amount
}

// BalanceOf implements ports.PaymentAsset.
func (l *PaymentLedger) BalanceOf(_ context.Context, account string) (uint64, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.balances[account], nil
}

// Allowance implements ports.PaymentAsset.
func (l *PaymentLedger) Allowance(_ context.Context, owner string) (uint64, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if owner == l.operator {
		return l.balances[owner], nil
	}
	return l.allowances[owner], nil
}

// TransferFrom implements ports.PaymentAsset.
func (l *PaymentLedger) TransferFrom(
	_ context.Context, from, to string, amount uint64,
) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if l.balances[from] < amount {
		return ErrInsufficientBalance
	}
	if from != l.operator {
		if l.allowances[from] < amount {
			return ErrInsufficientAllowance
		}
		l.allowances[from] -= amount
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
