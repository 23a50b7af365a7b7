package domain

import "context"

// SaleRepository is the abstraction for any kind of database intended to
// persist fixed-price sales keyed by (collection, itemId).
type SaleRepository interface {
	// AddSale stores a new sale for the given item. It fails with
	// ErrSaleAlreadyExists if the item is already listed.
	AddSale(ctx context.Context, key ItemKey, sale *Sale) error
	// GetSale returns the active sale for the given item, or ErrSaleNotFound.
	GetSale(ctx context.Context, key ItemKey) (*Sale, error)
	// GetAllSales returns every active sale keyed by item.
	GetAllSales(ctx context.Context) (map[ItemKey]*Sale, error)
	// DeleteSale removes the sale for the given item, or ErrSaleNotFound.
	DeleteSale(ctx context.Context, key ItemKey) error
}
