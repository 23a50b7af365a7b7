package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
	"github.com/nftmarket/nftmarket-daemon/pkg/mathutil"
)

// MarketService is the facade exposing every trading entry point of the
// marketplace. Batched calls take parallel arrays of equal length and are
// atomic: a single invalid item fails the whole call with no state change.
type MarketService interface {
	Sell(ctx context.Context, seller string, collections []string, itemIDs, prices []uint64) error
	CancelSale(ctx context.Context, caller string, collections []string, itemIDs []uint64) error
	Buy(ctx context.Context, buyer string, collections []string, itemIDs []uint64) error
	CreateAuction(ctx context.Context, seller, collection string, itemID, startPrice, endBlock uint64) error
	Bid(ctx context.Context, bidder, collection string, itemID, amount uint64) error
	Claim(ctx context.Context, collection string, itemID uint64) error
	CancelAuction(ctx context.Context, caller, collection string, itemID uint64) error
	MakeOffer(ctx context.Context, buyer, collection string, itemID, amount uint64) (uint64, error)
	CancelOffer(ctx context.Context, caller, collection string, itemID, offerIndex uint64) error
	AcceptOffer(ctx context.Context, caller, collection string, itemID, offerIndex uint64) error

	SaleOf(ctx context.Context, collection string, itemID uint64) (*domain.Sale, error)
	AuctionOf(ctx context.Context, collection string, itemID uint64) (*domain.Auction, error)
	OffersOf(ctx context.Context, collection string, itemID uint64) (map[uint64]domain.Offer, error)
	CustodyOf(ctx context.Context, collection string, itemID uint64) (domain.Custody, error)
}

type marketService struct {
	saleRepository     domain.SaleRepository
	auctionRepository  domain.AuctionRepository
	offerRepository    domain.OfferRepository
	settingsRepository domain.SettingsRepository
	registry           *RegistryGateway
	payment            ports.PaymentAsset
	items              ports.ItemToken
	clock              ports.BlockClock
	escrow             *escrowCustodian

	// every operation runs to completion against a consistent snapshot of
	// the ledger, no interleaving
	mtx sync.Mutex
}

// NewMarketService returns a MarketService backed by the given repositories
// and collaborators. escrowAccount is the marketplace-controlled account
// holding items and funds of pending trades.
func NewMarketService(
	saleRepository domain.SaleRepository,
	auctionRepository domain.AuctionRepository,
	offerRepository domain.OfferRepository,
	settingsRepository domain.SettingsRepository,
	registry *RegistryGateway,
	payment ports.PaymentAsset,
	items ports.ItemToken,
	clock ports.BlockClock,
	escrowAccount string,
) MarketService {
	return &marketService{
		saleRepository:     saleRepository,
		auctionRepository:  auctionRepository,
		offerRepository:    offerRepository,
		settingsRepository: settingsRepository,
		registry:           registry,
		payment:            payment,
		items:              items,
		clock:              clock,
		escrow:             newEscrowCustodian(escrowAccount, payment, items),
	}
}

func (m *marketService) Sell(
	ctx context.Context, seller string, collections []string, itemIDs, prices []uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if len(collections) != len(itemIDs) || len(itemIDs) != len(prices) {
		return ErrBatchLengthMismatch
	}
	if len(collections) == 0 {
		return ErrEmptyBatch
	}

	keys := make([]domain.ItemKey, 0, len(collections))
	sales := make([]*domain.Sale, 0, len(collections))
	seen := make(map[domain.ItemKey]struct{})
	for i := range collections {
		key := domain.ItemKey{Collection: collections[i], ItemID: itemIDs[i]}
		if _, ok := seen[key]; ok {
			return ErrDuplicateBatchItem
		}
		seen[key] = struct{}{}

		if err := m.checkTradable(ctx, key.Collection); err != nil {
			return err
		}
		if err := m.checkOwnedAndApproved(ctx, key, seller); err != nil {
			return err
		}
		if _, err := m.saleRepository.GetSale(ctx, key); err == nil {
			return domain.ErrSaleAlreadyExists
		}
		sale, err := domain.NewSale(seller, prices[i])
		if err != nil {
			return err
		}
		keys = append(keys, key)
		sales = append(sales, sale)
	}

	for i, key := range keys {
		if err := m.escrow.lockItem(ctx, key, seller); err != nil {
			return err
		}
		if err := m.saleRepository.AddSale(ctx, key, sales[i]); err != nil {
			return err
		}
	}

	log.Debugf("account %s listed %d item(s) for sale", seller, len(keys))
	return nil
}

func (m *marketService) CancelSale(
	ctx context.Context, caller string, collections []string, itemIDs []uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	keys, err := batchKeys(collections, itemIDs)
	if err != nil {
		return err
	}

	// cancellation stays allowed after a registry ban, tradability is not
	// re-checked here
	for _, key := range keys {
		sale, err := m.saleRepository.GetSale(ctx, key)
		if err != nil {
			return err
		}
		if err := sale.CancelableBy(caller); err != nil {
			return err
		}
	}

	for _, key := range keys {
		if err := m.escrow.releaseItem(ctx, key, caller); err != nil {
			return err
		}
		if err := m.saleRepository.DeleteSale(ctx, key); err != nil {
			return err
		}
	}

	log.Debugf("account %s cancelled %d sale(s)", caller, len(keys))
	return nil
}

func (m *marketService) Buy(
	ctx context.Context, buyer string, collections []string, itemIDs []uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	keys, err := batchKeys(collections, itemIDs)
	if err != nil {
		return err
	}

	// the items are already escrowed, tradability is not re-checked: a ban
	// landed after listing does not block settlement
	sales := make([]*domain.Sale, 0, len(keys))
	var total uint64
	for _, key := range keys {
		sale, err := m.saleRepository.GetSale(ctx, key)
		if err != nil {
			return err
		}
		if err := sale.SellableTo(buyer); err != nil {
			return err
		}
		sales = append(sales, sale)
		total += sale.Price
	}
	if err := m.checkFunds(ctx, buyer, total); err != nil {
		return err
	}

	for i, key := range keys {
		if err := m.settle(ctx, buyer, sales[i].Seller, key.Collection, sales[i].Price); err != nil {
			return err
		}
		if err := m.escrow.releaseItem(ctx, key, buyer); err != nil {
			return err
		}
		if err := m.saleRepository.DeleteSale(ctx, key); err != nil {
			return err
		}
	}

	log.Debugf("account %s bought %d item(s) for %d", buyer, len(keys), total)
	return nil
}

func (m *marketService) CreateAuction(
	ctx context.Context, seller, collection string, itemID, startPrice, endBlock uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	if err := m.checkTradable(ctx, collection); err != nil {
		return err
	}
	if err := m.checkOwnedAndApproved(ctx, key, seller); err != nil {
		return err
	}
	if _, err := m.auctionRepository.GetAuction(ctx, key); err == nil {
		return domain.ErrAuctionAlreadyExists
	}
	auction, err := domain.NewAuction(seller, startPrice, endBlock, m.clock.Now())
	if err != nil {
		return err
	}

	if err := m.escrow.lockItem(ctx, key, seller); err != nil {
		return err
	}
	if err := m.auctionRepository.AddAuction(ctx, key, auction); err != nil {
		return err
	}

	log.Debugf(
		"account %s opened auction on %s ending at block %d",
		seller, key, endBlock,
	)
	return nil
}

func (m *marketService) Bid(
	ctx context.Context, bidder, collection string, itemID, amount uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := domain.ItemKey{Collection: collection, ItemID: itemID}

	// bids create new exposure, the registry is consulted again even for
	// auctions opened under a previously pointed registry
	if err := m.checkTradable(ctx, collection); err != nil {
		return err
	}

	auction, err := m.auctionRepository.GetAuction(ctx, key)
	if err != nil {
		return err
	}
	settings, err := m.settingsRepository.GetSettings(ctx)
	if err != nil {
		return err
	}
	now := m.clock.Now()

	// dry-run the bid on a copy to catch every precondition before any
	// funds move
	simulated := *auction
	prevBidder, prevBid, err := simulated.PlaceBid(
		bidder, amount, now, settings.AuctionExtensionInterval,
	)
	if err != nil {
		return err
	}
	if err := m.checkFunds(ctx, bidder, amount); err != nil {
		return err
	}

	if err := m.escrow.lockFunds(ctx, bidder, amount); err != nil {
		return err
	}
	if prevBidder != "" {
		if err := m.escrow.releaseFunds(ctx, prevBidder, prevBid); err != nil {
			return err
		}
	}
	if err := m.auctionRepository.UpdateAuction(
		ctx, key,
		func(a *domain.Auction) (*domain.Auction, error) {
			if _, _, err := a.PlaceBid(
				bidder, amount, now, settings.AuctionExtensionInterval,
			); err != nil {
				return nil, err
			}
			return a, nil
		},
	); err != nil {
		return err
	}

	log.Debugf("account %s bid %d on %s", bidder, amount, key)
	return nil
}

func (m *marketService) Claim(
	ctx context.Context, collection string, itemID uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	auction, err := m.auctionRepository.GetAuction(ctx, key)
	if err != nil {
		return err
	}
	if err := auction.Claimable(m.clock.Now()); err != nil {
		return err
	}

	// settlement is permissionless, the highest bid already sits in escrow
	if err := m.settle(
		ctx, m.escrow.account, auction.Seller, collection, auction.HighestBid,
	); err != nil {
		return err
	}
	if err := m.escrow.releaseItem(ctx, key, auction.HighestBidder); err != nil {
		return err
	}
	if err := m.auctionRepository.DeleteAuction(ctx, key); err != nil {
		return err
	}

	log.Debugf(
		"auction on %s claimed by %s for %d",
		key, auction.HighestBidder, auction.HighestBid,
	)
	return nil
}

func (m *marketService) CancelAuction(
	ctx context.Context, caller, collection string, itemID uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	auction, err := m.auctionRepository.GetAuction(ctx, key)
	if err != nil {
		return err
	}
	if err := auction.CancelableBy(caller); err != nil {
		return err
	}

	if err := m.escrow.releaseItem(ctx, key, caller); err != nil {
		return err
	}
	if err := m.auctionRepository.DeleteAuction(ctx, key); err != nil {
		return err
	}

	log.Debugf("account %s cancelled auction on %s", caller, key)
	return nil
}

func (m *marketService) MakeOffer(
	ctx context.Context, buyer, collection string, itemID, amount uint64,
) (uint64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	if err := m.checkTradable(ctx, collection); err != nil {
		return 0, err
	}

	// the check is against direct custody only: an offer on an item the
	// buyer themselves escrowed for sale or auction goes through, its
	// acceptance is what gets blocked as a self trade
	owner, err := m.items.OwnerOf(ctx, collection, itemID)
	if err != nil {
		return 0, err
	}
	if owner == buyer {
		return 0, domain.ErrBuyerHoldsItem
	}

	offer, err := domain.NewOffer(buyer, amount)
	if err != nil {
		return 0, err
	}
	if err := m.checkFunds(ctx, buyer, amount); err != nil {
		return 0, err
	}

	if err := m.escrow.lockFunds(ctx, buyer, amount); err != nil {
		return 0, err
	}
	index, err := m.offerRepository.AddOffer(ctx, key, offer)
	if err != nil {
		return 0, err
	}

	log.Debugf("account %s offered %d on %s (index %d)", buyer, amount, key, index)
	return index, nil
}

func (m *marketService) CancelOffer(
	ctx context.Context, caller, collection string, itemID, offerIndex uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	key := domain.OfferKey{
		ItemKey: domain.ItemKey{Collection: collection, ItemID: itemID},
		Index:   offerIndex,
	}
	offer, err := m.offerRepository.GetOffer(ctx, key)
	if err != nil {
		return err
	}
	if err := offer.CancelableBy(caller); err != nil {
		return err
	}

	if err := m.escrow.releaseFunds(ctx, caller, offer.Amount); err != nil {
		return err
	}
	if err := m.offerRepository.DeleteOffer(ctx, key); err != nil {
		return err
	}

	log.Debugf("account %s cancelled offer %s", caller, key)
	return nil
}

func (m *marketService) AcceptOffer(
	ctx context.Context, caller, collection string, itemID, offerIndex uint64,
) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	itemKey := domain.ItemKey{Collection: collection, ItemID: itemID}
	key := domain.OfferKey{ItemKey: itemKey, Index: offerIndex}
	offer, err := m.offerRepository.GetOffer(ctx, key)
	if err != nil {
		return err
	}
	if err := offer.AcceptableBy(caller); err != nil {
		return err
	}

	custody, controller, err := m.resolveController(ctx, itemKey)
	if err != nil {
		return err
	}
	if caller != controller {
		return domain.ErrNotItemController
	}
	if custody == domain.CustodyForAuction {
		auction, err := m.auctionRepository.GetAuction(ctx, itemKey)
		if err != nil {
			return err
		}
		if auction.HasBids() {
			return domain.ErrAuctionHasBids
		}
	}
	if custody == domain.CustodyNone {
		approved, err := m.items.IsApproved(ctx, collection, caller)
		if err != nil {
			return err
		}
		if !approved {
			return ErrItemNotApproved
		}
	}

	// the offered amount sits in escrow, the split is paid out of it
	if err := m.settle(
		ctx, m.escrow.account, caller, collection, offer.Amount,
	); err != nil {
		return err
	}
	switch custody {
	case domain.CustodyForSale:
		if err := m.escrow.releaseItem(ctx, itemKey, offer.Buyer); err != nil {
			return err
		}
		if err := m.saleRepository.DeleteSale(ctx, itemKey); err != nil {
			return err
		}
	case domain.CustodyForAuction:
		if err := m.escrow.releaseItem(ctx, itemKey, offer.Buyer); err != nil {
			return err
		}
		if err := m.auctionRepository.DeleteAuction(ctx, itemKey); err != nil {
			return err
		}
	default:
		if err := m.items.TransferFrom(
			ctx, collection, itemID, caller, offer.Buyer,
		); err != nil {
			return err
		}
	}
	if err := m.offerRepository.DeleteOffer(ctx, key); err != nil {
		return err
	}

	log.Debugf("account %s accepted offer %s for %d", caller, key, offer.Amount)
	return nil
}

func (m *marketService) SaleOf(
	ctx context.Context, collection string, itemID uint64,
) (*domain.Sale, error) {
	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	return m.saleRepository.GetSale(ctx, key)
}

func (m *marketService) AuctionOf(
	ctx context.Context, collection string, itemID uint64,
) (*domain.Auction, error) {
	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	return m.auctionRepository.GetAuction(ctx, key)
}

// OffersOf returns the standing offers on an item keyed by index. Zeroed
// slots of cancelled or accepted offers are skipped.
func (m *marketService) OffersOf(
	ctx context.Context, collection string, itemID uint64,
) (map[uint64]domain.Offer, error) {
	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	slots, err := m.offerRepository.GetOffersForItem(ctx, key)
	if err != nil {
		return nil, err
	}
	offers := make(map[uint64]domain.Offer)
	for i, offer := range slots {
		if offer.IsZero() {
			continue
		}
		offers[uint64(i)] = offer
	}
	return offers, nil
}

func (m *marketService) CustodyOf(
	ctx context.Context, collection string, itemID uint64,
) (domain.Custody, error) {
	key := domain.ItemKey{Collection: collection, ItemID: itemID}
	custody, _, err := m.resolveController(ctx, key)
	return custody, err
}

func (m *marketService) checkTradable(ctx context.Context, collection string) error {
	tradable, err := m.registry.IsTradable(ctx, collection)
	if err != nil {
		return fmt.Errorf("querying registry: %w", err)
	}
	if !tradable {
		return domain.ErrCollectionNotTradable
	}
	return nil
}

func (m *marketService) checkOwnedAndApproved(
	ctx context.Context, key domain.ItemKey, account string,
) error {
	owner, err := m.items.OwnerOf(ctx, key.Collection, key.ItemID)
	if err != nil {
		return err
	}
	if owner != account {
		return domain.ErrNotItemOwner
	}
	approved, err := m.items.IsApproved(ctx, key.Collection, account)
	if err != nil {
		return err
	}
	if !approved {
		return ErrItemNotApproved
	}
	return nil
}

func (m *marketService) checkFunds(
	ctx context.Context, payer string, amount uint64,
) error {
	balance, err := m.payment.BalanceOf(ctx, payer)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientBalance
	}
	allowance, err := m.payment.Allowance(ctx, payer)
	if err != nil {
		return err
	}
	if allowance < amount {
		return ErrInsufficientAllowance
	}
	return nil
}

// resolveController returns the custody state of an item along with the
// account entitled to dispose of it: the seller of record while the item is
// escrowed, its direct owner otherwise. Resolving from the ledger avoids a
// round trip to the item contract for escrowed items.
func (m *marketService) resolveController(
	ctx context.Context, key domain.ItemKey,
) (domain.Custody, string, error) {
	if sale, err := m.saleRepository.GetSale(ctx, key); err == nil {
		return domain.CustodyForSale, sale.Seller, nil
	}
	if auction, err := m.auctionRepository.GetAuction(ctx, key); err == nil {
		return domain.CustodyForAuction, auction.Seller, nil
	}
	owner, err := m.items.OwnerOf(ctx, key.Collection, key.ItemID)
	if err != nil {
		return domain.CustodyNone, "", err
	}
	return domain.CustodyNone, owner, nil
}

// settle runs the fee/royalty split on price and routes every part from the
// payer: marketplace fee to the fee receiver, royalty to the collection
// receiver, remainder to the seller. The royalty rate is read at settlement
// time, so royalty changes landed after listing apply.
func (m *marketService) settle(
	ctx context.Context, payer, seller, collection string, price uint64,
) error {
	settings, err := m.settingsRepository.GetSettings(ctx)
	if err != nil {
		return err
	}
	royaltyReceiver, royaltyBps, err := m.registry.RoyaltyInfo(ctx, collection)
	if err != nil {
		return fmt.Errorf("querying registry: %w", err)
	}
	if royaltyReceiver == "" {
		royaltyBps = 0
	}
	// the registry is an external collaborator and must not be able to break
	// money conservation: the royalty rate is capped to what remains after
	// the marketplace fee, so the split never exceeds the price
	if maxRoyaltyBps := mathutil.TenThousands - settings.FeeBps; royaltyBps > maxRoyaltyBps {
		royaltyBps = maxRoyaltyBps
	}

	fee, royalty, proceeds := mathutil.Split(price, settings.FeeBps, royaltyBps)
	if err := m.escrow.pay(ctx, payer, settings.FeeReceiver, fee); err != nil {
		return err
	}
	if err := m.escrow.pay(ctx, payer, royaltyReceiver, royalty); err != nil {
		return err
	}
	if err := m.escrow.pay(ctx, payer, seller, proceeds); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"receipt":  uuid.New().String(),
		"seller":   seller,
		"price":    price,
		"fee":      fee,
		"royalty":  royalty,
		"proceeds": proceeds,
	}).Debug("settlement executed")
	return nil
}

func batchKeys(collections []string, itemIDs []uint64) ([]domain.ItemKey, error) {
	if len(collections) != len(itemIDs) {
		return nil, ErrBatchLengthMismatch
	}
	if len(collections) == 0 {
		return nil, ErrEmptyBatch
	}
	keys := make([]domain.ItemKey, 0, len(collections))
	seen := make(map[domain.ItemKey]struct{})
	for i := range collections {
		key := domain.ItemKey{Collection: collections[i], ItemID: itemIDs[i]}
		if _, ok := seen[key]; ok {
			return nil, ErrDuplicateBatchItem
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}
