package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nftmarket/nftmarket-daemon/internal/config"
	"github.com/nftmarket/nftmarket-daemon/internal/core/application"
	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/blockclock"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/registry"
	dbbadger "github.com/nftmarket/nftmarket-daemon/internal/infrastructure/storage/db/badger"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/token"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	operator := config.GetString(config.OperatorKey)
	escrowAccount := config.GetString(config.EscrowAccountKey)

	repoManager, err := openDb(operator)
	if err != nil {
		log.WithError(err).Fatal("error while opening db")
	}
	defer repoManager.Close()

	registrySvc := registry.NewService(operator)
	registryGateway := application.NewRegistryGateway(registrySvc)

	payment := token.NewPaymentLedger(escrowAccount)
	items := token.NewItemLedger(escrowAccount)

	genesis := time.Unix(int64(config.GetUint64(config.BlockGenesisKey)), 0)
	clock := blockclock.New(genesis, config.GetDuration(config.BlockIntervalKey))

	marketSvc := application.NewMarketService(
		repoManager.SaleRepository(),
		repoManager.AuctionRepository(),
		repoManager.OfferRepository(),
		repoManager.SettingsRepository(),
		registryGateway,
		payment,
		items,
		clock,
		escrowAccount,
	)
	operatorSvc := application.NewOperatorService(
		operator, repoManager.SettingsRepository(), registryGateway,
	)

	if err := applySettings(context.Background(), operatorSvc, operator); err != nil {
		log.WithError(err).Fatal("error while applying settings")
	}

	stop := make(chan struct{})
	go settleEndedAuctions(marketSvc, repoManager, clock, stop)
	go printStats(repoManager, stop)

	log.Info("daemon is running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	close(stop)
	log.Info("exiting")
}

func openDb(operator string) (ports.RepoManager, error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		return inmemory.NewRepoManager(operator)
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	return dbbadger.NewRepoManager(dbDir, nil, operator)
}

// applySettings pushes the fee configuration from the environment into the
// stored marketplace settings.
func applySettings(
	ctx context.Context, operatorSvc application.OperatorService, operator string,
) error {
	if err := operatorSvc.SetFee(
		ctx, operator, config.GetUint64(config.FeeBpsKey),
	); err != nil {
		return err
	}
	if receiver := config.GetString(config.FeeReceiverKey); receiver != "" {
		if err := operatorSvc.SetFeeReceiver(ctx, operator, receiver); err != nil {
			return err
		}
	}
	return operatorSvc.SetAuctionExtensionInterval(
		ctx, operator, config.GetUint64(config.AuctionExtensionIntervalKey),
	)
}

// settleEndedAuctions periodically claims every auction whose end block has
// passed, so winners and sellers are paid without anyone having to trigger
// the settlement by hand.
func settleEndedAuctions(
	marketSvc application.MarketService,
	repoManager ports.RepoManager,
	clock ports.BlockClock,
	stop chan struct{},
) {
	ticker := time.NewTicker(config.GetDuration(config.SettleIntervalKey))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx := context.Background()
		auctions, err := repoManager.AuctionRepository().GetAllAuctions(ctx)
		if err != nil {
			log.WithError(err).Warn("error while listing auctions")
			continue
		}

		now := clock.Now()
		for key, auction := range auctions {
			if now < auction.EndBlock {
				continue
			}
			err := marketSvc.Claim(ctx, key.Collection, key.ItemID)
			if err != nil {
				// auctions with no bids stay open until the seller cancels
				if errors.Is(err, domain.ErrAuctionNoBids) {
					continue
				}
				log.WithError(err).Warnf("error while settling auction %s", key)
				continue
			}
			log.Infof("settled auction %s", key)
		}
	}
}

func printStats(repoManager ports.RepoManager, stop chan struct{}) {
	ticker := time.NewTicker(config.GetDuration(config.StatsIntervalKey))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx := context.Background()
		sales, err := repoManager.SaleRepository().GetAllSales(ctx)
		if err != nil {
			log.WithError(err).Warn("error while listing sales")
			continue
		}
		auctions, err := repoManager.AuctionRepository().GetAllAuctions(ctx)
		if err != nil {
			log.WithError(err).Warn("error while listing auctions")
			continue
		}
		log.Infof("open sales: %d, open auctions: %d", len(sales), len(auctions))
	}
}
