package ports

import (
	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

// RepoManager gives access to all the repositories of the marketplace ledger.
type RepoManager interface {
	SaleRepository() domain.SaleRepository
	AuctionRepository() domain.AuctionRepository
	OfferRepository() domain.OfferRepository
	SettingsRepository() domain.SettingsRepository

	Close()
}
