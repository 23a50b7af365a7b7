package inmemory

import (
	"context"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

type saleRepositoryImpl struct {
	store *saleInmemoryStore
}

// NewSaleRepositoryImpl returns a new inmemory SaleRepository implementation.
func NewSaleRepositoryImpl(store *saleInmemoryStore) domain.SaleRepository {
	return &saleRepositoryImpl{store}
}

func (r saleRepositoryImpl) AddSale(
	_ context.Context, key domain.ItemKey, sale *domain.Sale,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.sales[key]; ok {
		return domain.ErrSaleAlreadyExists
	}
	r.store.sales[key] = *sale
	return nil
}

func (r saleRepositoryImpl) GetSale(
	_ context.Context, key domain.ItemKey,
) (*domain.Sale, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	sale, ok := r.store.sales[key]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	return &sale, nil
}

func (r saleRepositoryImpl) GetAllSales(
	_ context.Context,
) (map[domain.ItemKey]*domain.Sale, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	allSales := make(map[domain.ItemKey]*domain.Sale, len(r.store.sales))
	for key, sale := range r.store.sales {
		sale := sale
		allSales[key] = &sale
	}
	return allSales, nil
}

func (r saleRepositoryImpl) DeleteSale(
	_ context.Context, key domain.ItemKey,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.sales[key]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(r.store.sales, key)
	return nil
}
