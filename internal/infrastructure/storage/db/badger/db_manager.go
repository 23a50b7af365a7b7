package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
	"github.com/nftmarket/nftmarket-daemon/internal/core/ports"
)

const settingsKey = "settings"

type repoManager struct {
	store *badgerhold.Store

	saleRepository     domain.SaleRepository
	auctionRepository  domain.AuctionRepository
	offerRepository    domain.OfferRepository
	settingsRepository domain.SettingsRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk
// inside the given base data dir and returns a RepoManager on top of it. The
// marketplace settings are seeded with defaults on first open, the fee
// receiver set to the given operator.
func NewRepoManager(
	baseDbDir string, logger badger.Logger, operator string,
) (ports.RepoManager, error) {
	store, err := createDb(filepath.Join(baseDbDir, "market"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening market db: %w", err)
	}

	if err := seedSettings(store, operator); err != nil {
		store.Close()
		return nil, err
	}

	return &repoManager{
		store:              store,
		saleRepository:     NewSaleRepositoryImpl(store),
		auctionRepository:  NewAuctionRepositoryImpl(store),
		offerRepository:    NewOfferRepositoryImpl(store),
		settingsRepository: NewSettingsRepositoryImpl(store),
	}, nil
}

func (d *repoManager) SaleRepository() domain.SaleRepository {
	return d.saleRepository
}

func (d *repoManager) AuctionRepository() domain.AuctionRepository {
	return d.auctionRepository
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) SettingsRepository() domain.SettingsRepository {
	return d.settingsRepository
}

func (d *repoManager) Close() {
	d.store.Close()
}

func seedSettings(store *badgerhold.Store, operator string) error {
	var settings domain.Settings
	err := store.Get(settingsKey, &settings)
	if err == nil {
		return nil
	}
	if err != badgerhold.ErrNotFound {
		return err
	}

	defaultSettings, err := domain.NewSettings(operator)
	if err != nil {
		return err
	}
	return store.Insert(settingsKey, *defaultSettings)
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
