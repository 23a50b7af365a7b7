package token

import (
	"context"
	"sync"
)

type itemRef struct {
	collection string
	itemID     uint64
}

// ItemLedger is an in-process non-fungible item registry implementing
// ports.ItemToken. An owner must approve the marketplace account before it
// can move their items on their behalf.
type ItemLedger struct {
	mtx       sync.Mutex
	operator  string
	owners    map[itemRef]string
	approvals map[string]map[string]bool
}

// NewItemLedger returns an empty item ledger operated by the given
// marketplace account.
func NewItemLedger(operator string) *ItemLedger {
	return &ItemLedger{
		operator:  operator,
		owners:    map[itemRef]string{},
		approvals: map[string]map[string]bool{},
	}
}

// Mint creates an item owned by the given account.
func (l *ItemLedger) Mint(collection string, itemID uint64, owner string) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	ref := itemRef{collection, itemID}
	if _, ok := l.owners[ref]; ok {
		return ErrItemAlreadyMinted
	}
	l.owners[ref] = owner
	return nil
}

// MintBatch creates count items with consecutive ids starting at firstID,
// all owned by the given account.
func (l *ItemLedger) MintBatch(
	collection string, firstID, count uint64, owner string,
) error {
	for i := uint64(0); i < count; i++ {
		if err := l.Mint(collection, firstID+i, owner); err != nil {
			return err
		}
	}
	return nil
}

// SetApproval grants or revokes the marketplace's right to move the owner's
// items of the collection.
func (l *ItemLedger) SetApproval(collection, owner string, approved bool) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if l.approvals[collection] == nil {
		l.approvals[collection] = map[string]bool{}
	}
	l.approvals[collection][owner] = approved
}

// OwnerOf implements ports.ItemToken.
func (l *ItemLedger) OwnerOf(
	_ context.Context, collection string, itemID uint64,
) (string, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	owner, ok := l.owners[itemRef{collection, itemID}]
	if !ok {
		return "", ErrItemNotFound
	}
	return owner, nil
}

// IsApproved implements ports.ItemToken.
func (l *ItemLedger) IsApproved(
	_ context.Context, collection, owner string,
) (bool, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if owner == l.operator {
		return true, nil
	}
	return l.approvals[collection][owner], nil
}

// TransferFrom implements ports.ItemToken.
func (l *ItemLedger) TransferFrom(
	_ context.Context, collection string, itemID uint64, from, to string,
) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	ref := itemRef{collection, itemID}
	owner, ok := l.owners[ref]
	if !ok {
		return ErrItemNotFound
	}
	if owner != from {
		return ErrNotItemOwner
	}
	if from != l.operator && !l.approvals[collection][from] {
		return ErrNotApproved
	}
	l.owners[ref] = to
	return nil
}
