package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// OperatorKey is the account allowed to change marketplace settings
	OperatorKey = "OPERATOR"
	// EscrowAccountKey is the account holding escrowed items and bid funds
	EscrowAccountKey = "ESCROW_ACCOUNT"
	// FeeBpsKey is the marketplace fee in basis points applied at settlement
	FeeBpsKey = "FEE_BPS"
	// FeeReceiverKey is the account credited with the marketplace fee
	FeeReceiverKey = "FEE_RECEIVER"
	// AuctionExtensionIntervalKey is the anti-snipe window and extension size in blocks
	AuctionExtensionIntervalKey = "AUCTION_EXTENSION_INTERVAL"
	// BlockIntervalKey is the duration of one block used to derive block height from wall time
	BlockIntervalKey = "BLOCK_INTERVAL"
	// BlockGenesisKey is the unix timestamp of block zero
	BlockGenesisKey = "BLOCK_GENESIS"
	// SettleIntervalKey is how often the daemon scans for ended auctions to settle
	SettleIntervalKey = "SETTLE_INTERVAL"
	// StatsIntervalKey defines interval for printing basic marketplace statistics
	StatsIntervalKey = "STATS_INTERVAL"

	// DBBadger and DBInMemory are the supported database types
	DBBadger   = "badger"
	DBInMemory = "inmemory"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("nftmarket-daemon", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("MARKET")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(EscrowAccountKey, "marketplace-escrow")
	vip.SetDefault(FeeBpsKey, domain.DefaultFeeBps)
	vip.SetDefault(AuctionExtensionIntervalKey, domain.DefaultAuctionExtensionInterval)
	vip.SetDefault(BlockIntervalKey, time.Second)
	vip.SetDefault(BlockGenesisKey, 0)
	vip.SetDefault(SettleIntervalKey, 10*time.Second)
	vip.SetDefault(StatsIntervalKey, 10*time.Minute)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if !vip.IsSet(OperatorKey) {
		return fmt.Errorf("missing operator account")
	}

	if dbType := GetString(DBTypeKey); dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	if feeBps := GetUint64(FeeBpsKey); feeBps >= domain.MaxFeeBps {
		return fmt.Errorf("%s must be lower than %d", FeeBpsKey, domain.MaxFeeBps)
	}

	if GetUint64(AuctionExtensionIntervalKey) == 0 {
		return fmt.Errorf("%s must be a positive number of blocks", AuctionExtensionIntervalKey)
	}

	if GetDuration(BlockIntervalKey) <= 0 {
		return fmt.Errorf("%s must be a positive duration", BlockIntervalKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
