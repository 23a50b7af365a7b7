package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftmarket/nftmarket-daemon/internal/core/application"
	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/blockclock"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/registry"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/nftmarket/nftmarket-daemon/internal/infrastructure/token"
)

const (
	admin         = "admin"
	escrowAccount = "escrow"
	alice         = "alice"
	bob           = "bob"
	carol         = "carol"
	creator       = "creator"
	collection    = "pfp"
	manager       = "manager"

	initialBalance = uint64(1_000_000)
)

var ctx = context.Background()

type marketFixture struct {
	market      application.MarketService
	operatorSvc application.OperatorService
	gateway     *application.RegistryGateway
	registry    *registry.Service
	payment     *token.PaymentLedger
	items       *token.ItemLedger
	clock       *blockclock.Manual
}

// newMarketFixture wires a full marketplace on in-memory collaborators: the
// admin account operates the marketplace, owns the registry and collects
// fees, alice owns items 1..10 of an admitted collection and every trading
// account is funded and has approved the marketplace.
func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()

	repoManager, err := inmemory.NewRepoManager(admin)
	require.NoError(t, err)

	registrySvc := registry.NewService(admin)
	require.NoError(t, registrySvc.AddCollection(admin, collection, manager))
	gateway := application.NewRegistryGateway(registrySvc)

	payment := token.NewPaymentLedger(escrowAccount)
	items := token.NewItemLedger(escrowAccount)
	clock := blockclock.NewManual(100)

	require.NoError(t, items.MintBatch(collection, 1, 10, alice))
	items.SetApproval(collection, alice, true)
	for _, account := range []string{alice, bob, carol} {
		payment.Mint(account, initialBalance)
		payment.Approve(account, initialBalance)
	}

	market := application.NewMarketService(
		repoManager.SaleRepository(),
		repoManager.AuctionRepository(),
		repoManager.OfferRepository(),
		repoManager.SettingsRepository(),
		gateway,
		payment,
		items,
		clock,
		escrowAccount,
	)
	operatorSvc := application.NewOperatorService(
		admin, repoManager.SettingsRepository(), gateway,
	)

	return &marketFixture{
		market:      market,
		operatorSvc: operatorSvc,
		gateway:     gateway,
		registry:    registrySvc,
		payment:     payment,
		items:       items,
		clock:       clock,
	}
}

func (f *marketFixture) balanceOf(t *testing.T, account string) uint64 {
	t.Helper()

	balance, err := f.payment.BalanceOf(ctx, account)
	require.NoError(t, err)
	return balance
}

func (f *marketFixture) ownerOf(t *testing.T, itemID uint64) string {
	t.Helper()

	owner, err := f.items.OwnerOf(ctx, collection, itemID)
	require.NoError(t, err)
	return owner
}

func TestSellAndBuy(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	require.NoError(t, f.registry.SetRoyalty(manager, collection, creator, 900))

	err := f.market.Sell(
		ctx, alice, []string{collection}, []uint64{1}, []uint64{1000},
	)
	require.NoError(t, err)

	// the item moves into escrow while listed
	require.Equal(t, escrowAccount, f.ownerOf(t, 1))
	custody, err := f.market.CustodyOf(ctx, collection, 1)
	require.NoError(t, err)
	require.Equal(t, domain.CustodyForSale, custody)

	sale, err := f.market.SaleOf(ctx, collection, 1)
	require.NoError(t, err)
	require.Equal(t, alice, sale.Seller)
	require.Equal(t, uint64(1000), sale.Price)

	err = f.market.Buy(ctx, bob, []string{collection}, []uint64{1})
	require.NoError(t, err)

	require.Equal(t, bob, f.ownerOf(t, 1))
	require.Equal(t, initialBalance-1000, f.balanceOf(t, bob))
	require.Equal(t, uint64(2), f.balanceOf(t, admin))
	require.Equal(t, uint64(90), f.balanceOf(t, creator))
	require.Equal(t, initialBalance+908, f.balanceOf(t, alice))

	_, err = f.market.SaleOf(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrSaleNotFound.Error())
}

func TestFailingSell(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	require.NoError(t, f.items.Mint(collection, 20, carol))

	tests := []struct {
		name          string
		seller        string
		collections   []string
		itemIDs       []uint64
		prices        []uint64
		expectedError error
	}{
		{
			name:          "length_mismatch",
			seller:        alice,
			collections:   []string{collection},
			itemIDs:       []uint64{1, 2},
			prices:        []uint64{1000, 1000},
			expectedError: application.ErrBatchLengthMismatch,
		},
		{
			name:          "empty_batch",
			seller:        alice,
			collections:   []string{},
			itemIDs:       []uint64{},
			prices:        []uint64{},
			expectedError: application.ErrEmptyBatch,
		},
		{
			name:          "duplicate_item",
			seller:        alice,
			collections:   []string{collection, collection},
			itemIDs:       []uint64{1, 1},
			prices:        []uint64{1000, 2000},
			expectedError: application.ErrDuplicateBatchItem,
		},
		{
			name:          "unknown_collection",
			seller:        alice,
			collections:   []string{"unknown"},
			itemIDs:       []uint64{1},
			prices:        []uint64{1000},
			expectedError: domain.ErrCollectionNotTradable,
		},
		{
			name:          "not_the_owner",
			seller:        bob,
			collections:   []string{collection},
			itemIDs:       []uint64{1},
			prices:        []uint64{1000},
			expectedError: domain.ErrNotItemOwner,
		},
		{
			name:          "marketplace_not_approved",
			seller:        carol,
			collections:   []string{collection},
			itemIDs:       []uint64{20},
			prices:        []uint64{1000},
			expectedError: application.ErrItemNotApproved,
		},
		{
			name:          "zero_price",
			seller:        alice,
			collections:   []string{collection},
			itemIDs:       []uint64{1},
			prices:        []uint64{0},
			expectedError: domain.ErrZeroPrice,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := f.market.Sell(ctx, tt.seller, tt.collections, tt.itemIDs, tt.prices)
			require.EqualError(t, err, tt.expectedError.Error())
		})
	}
}

func TestSellBatchIsAtomic(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	require.NoError(t, f.items.Mint(collection, 20, carol))

	// item 20 belongs to carol, the whole batch must be rejected with no
	// state change for item 1
	err := f.market.Sell(
		ctx, alice,
		[]string{collection, collection},
		[]uint64{1, 20},
		[]uint64{1000, 1000},
	)
	require.EqualError(t, err, domain.ErrNotItemOwner.Error())

	require.Equal(t, alice, f.ownerOf(t, 1))
	_, err = f.market.SaleOf(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrSaleNotFound.Error())
}

func TestFailingBuy(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice, []string{collection}, []uint64{1}, []uint64{1000},
	)
	require.NoError(t, err)

	t.Run("seller_buys_own_listing", func(t *testing.T) {
		err := f.market.Buy(ctx, alice, []string{collection}, []uint64{1})
		require.EqualError(t, err, domain.ErrSelfTrade.Error())
	})

	t.Run("no_sale", func(t *testing.T) {
		err := f.market.Buy(ctx, bob, []string{collection}, []uint64{2})
		require.EqualError(t, err, domain.ErrSaleNotFound.Error())
	})

	t.Run("insufficient_balance", func(t *testing.T) {
		err := f.market.Buy(ctx, "dave", []string{collection}, []uint64{1})
		require.EqualError(t, err, application.ErrInsufficientBalance.Error())
	})

	t.Run("insufficient_allowance", func(t *testing.T) {
		f.payment.Approve(bob, 10)
		err := f.market.Buy(ctx, bob, []string{collection}, []uint64{1})
		require.EqualError(t, err, application.ErrInsufficientAllowance.Error())
	})

	// nothing moved
	require.Equal(t, escrowAccount, f.ownerOf(t, 1))
	require.Equal(t, initialBalance, f.balanceOf(t, bob))
}

func TestCancelSale(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice,
		[]string{collection, collection},
		[]uint64{1, 2},
		[]uint64{1000, 2000},
	)
	require.NoError(t, err)

	err = f.market.CancelSale(ctx, bob, []string{collection}, []uint64{1})
	require.EqualError(t, err, domain.ErrNotSeller.Error())

	// a registry ban does not trap escrowed items, cancellation stays open
	require.NoError(t, f.registry.Ban(admin, collection))

	err = f.market.CancelSale(
		ctx, alice, []string{collection, collection}, []uint64{1, 2},
	)
	require.NoError(t, err)
	require.Equal(t, alice, f.ownerOf(t, 1))
	require.Equal(t, alice, f.ownerOf(t, 2))

	err = f.market.CancelSale(ctx, alice, []string{collection}, []uint64{1})
	require.EqualError(t, err, domain.ErrSaleNotFound.Error())
}

func TestBanBlocksNewActivityOnly(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice, []string{collection}, []uint64{1}, []uint64{1000},
	)
	require.NoError(t, err)
	err = f.market.CreateAuction(ctx, alice, collection, 2, 500, 200)
	require.NoError(t, err)

	require.NoError(t, f.registry.Ban(admin, collection))

	err = f.market.Sell(
		ctx, alice, []string{collection}, []uint64{3}, []uint64{1000},
	)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())
	err = f.market.CreateAuction(ctx, alice, collection, 3, 500, 200)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())
	_, err = f.market.MakeOffer(ctx, bob, collection, 3, 400)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())
	err = f.market.Bid(ctx, bob, collection, 2, 500)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())

	// settlement of existing positions is not blocked
	err = f.market.Buy(ctx, bob, []string{collection}, []uint64{1})
	require.NoError(t, err)
	require.Equal(t, bob, f.ownerOf(t, 1))

	require.NoError(t, f.registry.Unban(admin, collection))

	err = f.market.Sell(
		ctx, alice, []string{collection}, []uint64{3}, []uint64{1000},
	)
	require.NoError(t, err)
}

func TestAuctionLifecycle(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.CreateAuction(ctx, alice, collection, 1, 500, 200)
	require.NoError(t, err)

	require.Equal(t, escrowAccount, f.ownerOf(t, 1))
	custody, err := f.market.CustodyOf(ctx, collection, 1)
	require.NoError(t, err)
	require.Equal(t, domain.CustodyForAuction, custody)

	err = f.market.Claim(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrAuctionNoBids.Error())

	err = f.market.Bid(ctx, bob, collection, 1, 499)
	require.EqualError(t, err, domain.ErrBidTooLow.Error())

	// the first bid may match the start price and lands within the
	// anti-snipe window, pushing the end block forward
	err = f.market.Bid(ctx, bob, collection, 1, 500)
	require.NoError(t, err)
	require.Equal(t, initialBalance-500, f.balanceOf(t, bob))
	require.Equal(t, uint64(500), f.balanceOf(t, escrowAccount))

	auction, err := f.market.AuctionOf(ctx, collection, 1)
	require.NoError(t, err)
	require.Equal(t, bob, auction.HighestBidder)
	require.Equal(t, uint64(500), auction.EndBlock)

	err = f.market.CancelAuction(ctx, alice, collection, 1)
	require.EqualError(t, err, domain.ErrAuctionHasBids.Error())

	err = f.market.Bid(ctx, carol, collection, 1, 500)
	require.EqualError(t, err, domain.ErrBidTooLow.Error())
	err = f.market.Bid(ctx, alice, collection, 1, 600)
	require.EqualError(t, err, domain.ErrSelfTrade.Error())

	// the outbid bidder is refunded in full
	err = f.market.Bid(ctx, carol, collection, 1, 600)
	require.NoError(t, err)
	require.Equal(t, initialBalance, f.balanceOf(t, bob))
	require.Equal(t, initialBalance-600, f.balanceOf(t, carol))
	require.Equal(t, uint64(600), f.balanceOf(t, escrowAccount))

	err = f.market.Claim(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrAuctionNotEnded.Error())

	f.clock.SetHeight(500)
	err = f.market.Bid(ctx, bob, collection, 1, 700)
	require.EqualError(t, err, domain.ErrAuctionEnded.Error())

	err = f.market.Claim(ctx, collection, 1)
	require.NoError(t, err)
	require.Equal(t, carol, f.ownerOf(t, 1))
	require.Equal(t, uint64(1), f.balanceOf(t, admin))
	require.Equal(t, initialBalance+599, f.balanceOf(t, alice))
	require.Zero(t, f.balanceOf(t, escrowAccount))

	_, err = f.market.AuctionOf(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
}

func TestCancelAuctionWithoutBids(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.CreateAuction(ctx, alice, collection, 1, 500, 200)
	require.NoError(t, err)

	err = f.market.CancelAuction(ctx, bob, collection, 1)
	require.EqualError(t, err, domain.ErrNotSeller.Error())

	err = f.market.CancelAuction(ctx, alice, collection, 1)
	require.NoError(t, err)
	require.Equal(t, alice, f.ownerOf(t, 1))

	_, err = f.market.AuctionOf(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
}

func TestFailingCreateAuction(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)

	err := f.market.CreateAuction(ctx, alice, collection, 1, 500, 100)
	require.EqualError(t, err, domain.ErrEndBlockNotInFuture.Error())

	err = f.market.CreateAuction(ctx, alice, collection, 1, 0, 200)
	require.EqualError(t, err, domain.ErrZeroPrice.Error())

	err = f.market.CreateAuction(ctx, alice, "unknown", 1, 500, 200)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())

	err = f.market.CreateAuction(ctx, bob, collection, 1, 500, 200)
	require.EqualError(t, err, domain.ErrNotItemOwner.Error())
}

func TestBidRequiresFunds(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.CreateAuction(ctx, alice, collection, 1, 500, 200)
	require.NoError(t, err)

	err = f.market.Bid(ctx, "dave", collection, 1, 500)
	require.EqualError(t, err, application.ErrInsufficientBalance.Error())

	f.payment.Approve(bob, 100)
	err = f.market.Bid(ctx, bob, collection, 1, 500)
	require.EqualError(t, err, application.ErrInsufficientAllowance.Error())

	// the failed bids left nothing behind
	auction, err := f.market.AuctionOf(ctx, collection, 1)
	require.NoError(t, err)
	require.False(t, auction.HasBids())
}

func TestOfferLifecycle(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)

	index, err := f.market.MakeOffer(ctx, bob, collection, 1, 400)
	require.NoError(t, err)
	require.Equal(t, uint64(0), index)
	require.Equal(t, initialBalance-400, f.balanceOf(t, bob))

	index, err = f.market.MakeOffer(ctx, carol, collection, 1, 300)
	require.NoError(t, err)
	require.Equal(t, uint64(1), index)

	offers, err := f.market.OffersOf(ctx, collection, 1)
	require.NoError(t, err)
	require.Len(t, offers, 2)

	_, err = f.market.MakeOffer(ctx, alice, collection, 1, 400)
	require.EqualError(t, err, domain.ErrBuyerHoldsItem.Error())

	err = f.market.CancelOffer(ctx, carol, collection, 1, 0)
	require.EqualError(t, err, domain.ErrNotOfferBuyer.Error())

	err = f.market.CancelOffer(ctx, bob, collection, 1, 0)
	require.NoError(t, err)
	require.Equal(t, initialBalance, f.balanceOf(t, bob))

	err = f.market.CancelOffer(ctx, bob, collection, 1, 0)
	require.EqualError(t, err, domain.ErrOfferNotFound.Error())

	// cancelled slots are never reused
	index, err = f.market.MakeOffer(ctx, bob, collection, 1, 450)
	require.NoError(t, err)
	require.Equal(t, uint64(2), index)

	err = f.market.AcceptOffer(ctx, bob, collection, 1, 2)
	require.EqualError(t, err, domain.ErrSelfTrade.Error())
	err = f.market.AcceptOffer(ctx, carol, collection, 1, 2)
	require.EqualError(t, err, domain.ErrNotItemController.Error())

	err = f.market.AcceptOffer(ctx, alice, collection, 1, 2)
	require.NoError(t, err)
	require.Equal(t, bob, f.ownerOf(t, 1))
	require.Equal(t, uint64(1), f.balanceOf(t, admin))
	require.Equal(t, initialBalance+449, f.balanceOf(t, alice))

	// carol's untouched offer is still standing, fully escrowed
	offers, err = f.market.OffersOf(ctx, collection, 1)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Equal(t, carol, offers[1].Buyer)
	require.Equal(t, uint64(300), f.balanceOf(t, escrowAccount))
}

func TestOfferOnEscrowedItem(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice, []string{collection}, []uint64{1}, []uint64{1000},
	)
	require.NoError(t, err)

	// alice no longer holds the item directly, her own offer on it is
	// accepted into escrow
	index, err := f.market.MakeOffer(ctx, alice, collection, 1, 400)
	require.NoError(t, err)
	require.Equal(t, uint64(0), index)

	// but accepting it would be a self trade
	err = f.market.AcceptOffer(ctx, alice, collection, 1, 0)
	require.EqualError(t, err, domain.ErrSelfTrade.Error())

	index, err = f.market.MakeOffer(ctx, bob, collection, 1, 600)
	require.NoError(t, err)

	// accepting the offer settles it and tears down the listing
	err = f.market.AcceptOffer(ctx, alice, collection, 1, index)
	require.NoError(t, err)
	require.Equal(t, bob, f.ownerOf(t, 1))
	_, err = f.market.SaleOf(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrSaleNotFound.Error())

	err = f.market.CancelOffer(ctx, alice, collection, 1, 0)
	require.NoError(t, err)
	require.Equal(t, initialBalance+599, f.balanceOf(t, alice))
}

func TestAcceptOfferOnAuctionedItem(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)

	t.Run("without_bids", func(t *testing.T) {
		err := f.market.CreateAuction(ctx, alice, collection, 1, 500, 200)
		require.NoError(t, err)

		index, err := f.market.MakeOffer(ctx, bob, collection, 1, 400)
		require.NoError(t, err)

		err = f.market.AcceptOffer(ctx, alice, collection, 1, index)
		require.NoError(t, err)
		require.Equal(t, bob, f.ownerOf(t, 1))
		_, err = f.market.AuctionOf(ctx, collection, 1)
		require.EqualError(t, err, domain.ErrAuctionNotFound.Error())
	})

	t.Run("with_bids", func(t *testing.T) {
		err := f.market.CreateAuction(ctx, alice, collection, 2, 500, 200)
		require.NoError(t, err)
		err = f.market.Bid(ctx, carol, collection, 2, 500)
		require.NoError(t, err)

		index, err := f.market.MakeOffer(ctx, bob, collection, 2, 400)
		require.NoError(t, err)

		err = f.market.AcceptOffer(ctx, alice, collection, 2, index)
		require.EqualError(t, err, domain.ErrAuctionHasBids.Error())
	})
}

func TestAcceptOfferRequiresApproval(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	require.NoError(t, f.items.Mint(collection, 20, carol))

	index, err := f.market.MakeOffer(ctx, bob, collection, 20, 400)
	require.NoError(t, err)

	// carol holds the item directly and never approved the marketplace
	err = f.market.AcceptOffer(ctx, carol, collection, 20, index)
	require.EqualError(t, err, application.ErrItemNotApproved.Error())

	f.items.SetApproval(collection, carol, true)
	err = f.market.AcceptOffer(ctx, carol, collection, 20, index)
	require.NoError(t, err)
	require.Equal(t, bob, f.ownerOf(t, 20))
}

func TestRegistrySwap(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.CreateAuction(ctx, alice, collection, 1, 500, 200)
	require.NoError(t, err)

	// the fresh registry knows nothing about the collection
	err = f.operatorSvc.SetRegistry(ctx, admin, registry.NewService(admin))
	require.NoError(t, err)

	err = f.market.Sell(
		ctx, alice, []string{collection}, []uint64{2}, []uint64{1000},
	)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())

	// the swap binds bids on auctions opened under the previous registry too
	err = f.market.Bid(ctx, bob, collection, 1, 500)
	require.EqualError(t, err, domain.ErrCollectionNotTradable.Error())

	err = f.operatorSvc.SetRegistry(ctx, admin, f.registry)
	require.NoError(t, err)

	err = f.market.Bid(ctx, bob, collection, 1, 500)
	require.NoError(t, err)
}

// fixedRoyaltyRegistry admits every collection and answers every royalty
// query with the same receiver and rate, like an external registry the
// marketplace has no control over.
type fixedRoyaltyRegistry struct {
	receiver string
	bps      uint64
}

func (r fixedRoyaltyRegistry) IsTradable(context.Context, string) (bool, error) {
	return true, nil
}

func (r fixedRoyaltyRegistry) RoyaltyInfo(context.Context, string) (string, uint64, error) {
	return r.receiver, r.bps, nil
}

func TestSettlementCapsExcessiveRoyalty(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice, []string{collection}, []uint64{1}, []uint64{1000},
	)
	require.NoError(t, err)

	// a registry claiming 9999 bps would push fee + royalty beyond the
	// price, the settlement must cap it instead of losing money
	err = f.operatorSvc.SetRegistry(
		ctx, admin, fixedRoyaltyRegistry{receiver: creator, bps: 9999},
	)
	require.NoError(t, err)

	err = f.market.Buy(ctx, bob, []string{collection}, []uint64{1})
	require.NoError(t, err)

	// royalty capped at 10000 - 25 bps: fee 2, royalty 997, proceeds 1
	require.Equal(t, bob, f.ownerOf(t, 1))
	require.Equal(t, initialBalance-1000, f.balanceOf(t, bob))
	require.Equal(t, uint64(2), f.balanceOf(t, admin))
	require.Equal(t, uint64(997), f.balanceOf(t, creator))
	require.Equal(t, initialBalance+1, f.balanceOf(t, alice))

	_, err = f.market.SaleOf(ctx, collection, 1)
	require.EqualError(t, err, domain.ErrSaleNotFound.Error())
}

func TestBuyBatchIsAtomic(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice,
		[]string{collection, collection},
		[]uint64{1, 2},
		[]uint64{1000, 2000},
	)
	require.NoError(t, err)

	// item 3 has no sale, the whole batch must fail with nothing settled
	err = f.market.Buy(
		ctx, bob,
		[]string{collection, collection, collection},
		[]uint64{1, 2, 3},
	)
	require.EqualError(t, err, domain.ErrSaleNotFound.Error())

	require.Equal(t, initialBalance, f.balanceOf(t, bob))
	require.Equal(t, initialBalance, f.balanceOf(t, alice))
	require.Equal(t, escrowAccount, f.ownerOf(t, 1))
	require.Equal(t, escrowAccount, f.ownerOf(t, 2))
	for _, itemID := range []uint64{1, 2} {
		sale, err := f.market.SaleOf(ctx, collection, itemID)
		require.NoError(t, err)
		require.Equal(t, alice, sale.Seller)
	}
}

func TestRoyaltyReadAtSettlementTime(t *testing.T) {
	t.Parallel()

	f := newMarketFixture(t)
	err := f.market.Sell(
		ctx, alice, []string{collection}, []uint64{1}, []uint64{1000},
	)
	require.NoError(t, err)

	// the royalty lands after the listing but before the purchase
	require.NoError(t, f.registry.SetRoyalty(manager, collection, creator, 900))

	err = f.market.Buy(ctx, bob, []string{collection}, []uint64{1})
	require.NoError(t, err)
	require.Equal(t, uint64(90), f.balanceOf(t, creator))
	require.Equal(t, initialBalance+908, f.balanceOf(t, alice))
}
