package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

// SaleRecord is the persisted form of a sale, carrying its composite key
// fields so records can be listed and queried.
type SaleRecord struct {
	Collection string
	ItemID     uint64
	Seller     string
	Price      uint64
}

type saleRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSaleRepositoryImpl returns a new badger SaleRepository implementation.
func NewSaleRepositoryImpl(store *badgerhold.Store) domain.SaleRepository {
	return saleRepositoryImpl{store}
}

func (r saleRepositoryImpl) AddSale(
	_ context.Context, key domain.ItemKey, sale *domain.Sale,
) error {
	record := SaleRecord{
		Collection: key.Collection,
		ItemID:     key.ItemID,
		Seller:     sale.Seller,
		Price:      sale.Price,
	}
	if err := r.store.Insert(key.String(), record); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrSaleAlreadyExists
		}
		return err
	}
	return nil
}

func (r saleRepositoryImpl) GetSale(
	_ context.Context, key domain.ItemKey,
) (*domain.Sale, error) {
	var record SaleRecord
	if err := r.store.Get(key.String(), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return &domain.Sale{Seller: record.Seller, Price: record.Price}, nil
}

func (r saleRepositoryImpl) GetAllSales(
	_ context.Context,
) (map[domain.ItemKey]*domain.Sale, error) {
	var records []SaleRecord
	if err := r.store.Find(&records, nil); err != nil {
		return nil, err
	}

	allSales := make(map[domain.ItemKey]*domain.Sale, len(records))
	for _, record := range records {
		key := domain.ItemKey{Collection: record.Collection, ItemID: record.ItemID}
		allSales[key] = &domain.Sale{Seller: record.Seller, Price: record.Price}
	}
	return allSales, nil
}

func (r saleRepositoryImpl) DeleteSale(
	_ context.Context, key domain.ItemKey,
) error {
	if err := r.store.Delete(key.String(), SaleRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrSaleNotFound
		}
		return err
	}
	return nil
}
