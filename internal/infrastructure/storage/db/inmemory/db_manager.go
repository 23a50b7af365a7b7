package inmemory

import (
	"sync"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
)

type saleInmemoryStore struct {
	sales  map[domain.ItemKey]domain.Sale
	locker *sync.Mutex
}

type auctionInmemoryStore struct {
	auctions map[domain.ItemKey]domain.Auction
	locker   *sync.Mutex
}

type offerInmemoryStore struct {
	offers map[domain.ItemKey][]domain.Offer
	locker *sync.Mutex
}

type settingsInmemoryStore struct {
	settings domain.Settings
	locker   *sync.Mutex
}

// RepoManager holds all the in-memory repositories in a single data structure.
type RepoManager struct {
	saleRepository     domain.SaleRepository
	auctionRepository  domain.AuctionRepository
	offerRepository    domain.OfferRepository
	settingsRepository domain.SettingsRepository
}

// NewRepoManager returns a RepoManager with empty ledgers and marketplace
// settings seeded with defaults, the fee receiver set to the given operator.
func NewRepoManager(operator string) (ports.RepoManager, error) {
	settings, err := domain.NewSettings(operator)
	if err != nil {
		return nil, err
	}

	return &RepoManager{
		saleRepository: NewSaleRepositoryImpl(&saleInmemoryStore{
			sales:  map[domain.ItemKey]domain.Sale{},
			locker: &sync.Mutex{},
		}),
		auctionRepository: NewAuctionRepositoryImpl(&auctionInmemoryStore{
			auctions: map[domain.ItemKey]domain.Auction{},
			locker:   &sync.Mutex{},
		}),
		offerRepository: NewOfferRepositoryImpl(&offerInmemoryStore{
			offers: map[domain.ItemKey][]domain.Offer{},
			locker: &sync.Mutex{},
		}),
		settingsRepository: NewSettingsRepositoryImpl(&settingsInmemoryStore{
			settings: *settings,
			locker:   &sync.Mutex{},
		}),
	}, nil
}

func (d *RepoManager) SaleRepository() domain.SaleRepository {
	return d.saleRepository
}

func (d *RepoManager) AuctionRepository() domain.AuctionRepository {
	return d.auctionRepository
}

func (d *RepoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *RepoManager) SettingsRepository() domain.SettingsRepository {
	return d.settingsRepository
}

func (d *RepoManager) Close() {}
