package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory storing the internal state of
	// the daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey switches the storage backend between those supported.
	DbTypeKey = "DB_TYPE"
	// RateSourceKindKey switches the exchange-rate provider between a
	// polling HTTP endpoint and a streaming websocket feed.
	RateSourceKindKey = "RATE_SOURCE"
	// RateSourceURLKey is the endpoint of the exchange-rate provider.
	RateSourceURLKey = "RATE_SOURCE_URL"
	// RateRequestTimeoutKey is the timeout in milliseconds for rate
	// provider requests.
	RateRequestTimeoutKey = "RATE_REQUEST_TIMEOUT"
	// GatewayURLKey is the settle endpoint of the payment gateway.
	GatewayURLKey = "GATEWAY_URL"
	// GatewayRequestTimeoutKey is the timeout in milliseconds for payment
	// gateway requests.
	GatewayRequestTimeoutKey = "GATEWAY_REQUEST_TIMEOUT"
	// GatewayRateLimitKey is the cap of outbound settle calls per second.
	GatewayRateLimitKey = "GATEWAY_RATE_LIMIT"
	// SettleMaxRetriesKey bounds the optimistic retry loop on version
	// conflicts.
	SettleMaxRetriesKey = "SETTLE_MAX_RETRIES"
	// DiscountFundingKey decides who absorbs discounts: buyer, seller or
	// platform.
	DiscountFundingKey = "DISCOUNT_FUNDING"
	// StatsIntervalKey defines the interval in seconds for printing basic
	// settlement statistics.
	StatsIntervalKey = "STATS_INTERVAL"
	// ListenAddressKey is the host:port the HTTP interface binds to.
	ListenAddressKey = "LISTEN_ADDRESS"
	// CheckoutAPIURLKey is the base URL of the storefront checkout API used
	// for shipping and tax lookups.
	CheckoutAPIURLKey = "CHECKOUT_API_URL"
	// CheckoutRequestTimeoutKey is the timeout in milliseconds for checkout
	// API requests.
	CheckoutRequestTimeoutKey = "CHECKOUT_REQUEST_TIMEOUT"

	DbLocation = "db"

	DbTypeBadger   = "badger"
	DbTypeInMemory = "inmemory"

	RateSourceHTTP      = "http"
	RateSourceWebsocket = "websocket"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SETTLEMENTD")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, DbTypeBadger)
	vip.SetDefault(RateSourceKindKey, RateSourceHTTP)
	vip.SetDefault(RateRequestTimeoutKey, 15000)
	vip.SetDefault(GatewayRequestTimeoutKey, 15000)
	vip.SetDefault(GatewayRateLimitKey, 10)
	vip.SetDefault(SettleMaxRetriesKey, 3)
	vip.SetDefault(DiscountFundingKey, "buyer")
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(ListenAddressKey, ":9945")
	vip.SetDefault(CheckoutRequestTimeoutKey, 15000)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory holding the badger stores.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetMillisDuration returns the value of a millisecond-based key as a
// time.Duration.
func GetMillisDuration(key string) time.Duration {
	return time.Duration(GetInt(key)) * time.Millisecond
}

// Set overrides a config value, used by tests.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// Validate re-runs the config validation, to be invoked by mains after
// flags have been applied.
func Validate() error {
	return validate()
}

func validate() error {
	switch dbType := vip.GetString(DbTypeKey); dbType {
	case DbTypeBadger, DbTypeInMemory:
	default:
		return fmt.Errorf("unsupported db type: %s", dbType)
	}

	switch kind := vip.GetString(RateSourceKindKey); kind {
	case RateSourceHTTP, RateSourceWebsocket:
	default:
		return fmt.Errorf("unsupported rate source kind: %s", kind)
	}

	if vip.GetInt(StatsIntervalKey) <= 0 {
		return fmt.Errorf("stats interval must be positive")
	}
	if vip.GetInt(GatewayRateLimitKey) <= 0 {
		return fmt.Errorf("gateway rate limit must be positive")
	}
	if vip.GetInt(SettleMaxRetriesKey) <= 0 {
		return fmt.Errorf("settle max retries must be positive")
	}
	return nil
}

func initDatadir() error {
	return os.MkdirAll(GetDbDir(), 0755)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".settlement-daemon"
	}
	return filepath.Join(home, ".settlement-daemon")
}
