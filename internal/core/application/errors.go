package application

import "errors"

var (
	// ErrBatchLengthMismatch is thrown when the parallel arrays of a batched
	// call do not have the same length.
	ErrBatchLengthMismatch = errors.New("batched arguments must have the same length")
	// ErrEmptyBatch is thrown when a batched call contains no item.
	ErrEmptyBatch = errors.New("batch must contain at least one item")
	// ErrDuplicateBatchItem is thrown when the same item appears twice in
	// one batched call.
	ErrDuplicateBatchItem = errors.New("batch contains the same item twice")
	// ErrNotOperator is thrown when a non-operator calls an operator-only setter.
	ErrNotOperator = errors.New("caller is not the marketplace operator")
	// ErrInsufficientBalance is thrown when the payer balance does not cover
	// the amount to collect.
	ErrInsufficientBalance = errors.New("insufficient payment balance")
	// ErrInsufficientAllowance is thrown when the payer did not allow the
	// marketplace to spend the amount to collect.
	ErrInsufficientAllowance = errors.New("insufficient payment allowance")
	// ErrItemNotApproved is thrown when the marketplace is not approved to
	// move the caller's items.
	ErrItemNotApproved = errors.New("marketplace is not approved to move the item")
)
