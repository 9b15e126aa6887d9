// Package config loads the adapter and matchctl settings from a file,
// MATCHSYNC_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/logging"
	"github.com/iudanet/matchsync/internal/retry"
	"github.com/iudanet/matchsync/internal/validation"
)

// EnvPrefix prefixes every environment variable, e.g. MATCHSYNC_BROKER_REDIS_ADDR
const EnvPrefix = "MATCHSYNC"

// Виды брокера
const (
	BrokerMemory = "memory"
	BrokerRedis  = "redis"
)

// Виды хранилища примера
const (
	StoreBolt     = "bolt"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var (
	// ErrInvalidConfig is returned by Validate
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the full process configuration
type Config struct {
	ClientName        string         `mapstructure:"client_name"`
	UserName          string         `mapstructure:"user_name"`
	Entities          []string       `mapstructure:"entities"`
	ChecksumBlacklist []string       `mapstructure:"checksum_blacklist"`
	Broker            BrokerConfig   `mapstructure:"broker"`
	Dispatch          DispatchConfig `mapstructure:"dispatch"`
	Retry             RetryConfig    `mapstructure:"retry"`
	Recovery          RecoveryConfig `mapstructure:"recovery"`
	Store             StoreConfig    `mapstructure:"store"`
	Signing           SigningConfig  `mapstructure:"signing"`
	Status            StatusConfig   `mapstructure:"status"`
	Log               LogConfig      `mapstructure:"log"`
}

// BrokerConfig selects the transport
type BrokerConfig struct {
	Kind  string      `mapstructure:"kind"`
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the redis streams transport
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	Prefix   string `mapstructure:"prefix"`
	DB       int    `mapstructure:"db"`
}

// DispatchConfig configures request processing
type DispatchConfig struct {
	Mode               string        `mapstructure:"mode"`
	ReceiveTimeout     time.Duration `mapstructure:"receive_timeout"`
	LockDuration       time.Duration `mapstructure:"lock_duration"`
	MaxConcurrentCalls int           `mapstructure:"max_concurrent_calls"`
	MaxDeliveryCount   int           `mapstructure:"max_delivery_count"`
}

// RetryConfig bounds retries of single transport calls
type RetryConfig struct {
	MinBackoff  time.Duration `mapstructure:"min_backoff"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
	MaxAttempts uint64        `mapstructure:"max_attempts"`
}

// RecoveryConfig bounds the pause between restarts of a failed subscription
type RecoveryConfig struct {
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// StoreConfig selects the sample adapter storage
type StoreConfig struct {
	Kind       string `mapstructure:"kind"`
	Path       string `mapstructure:"path"`
	DSN        string `mapstructure:"dsn"`
	Passphrase string `mapstructure:"passphrase"`
}

// SigningConfig enables message signing when Secret is set
type SigningConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// StatusConfig configures the status HTTP server. Empty Addr disables it.
type StatusConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"client":       "client_name",
	"user":         "user_name",
	"entities":     "entities",
	"broker":       "broker.kind",
	"redis-addr":   "broker.redis.addr",
	"redis-db":     "broker.redis.db",
	"redis-prefix": "broker.redis.prefix",
	"mode":         "dispatch.mode",
	"concurrency":  "dispatch.max_concurrent_calls",
	"store":        "store.kind",
	"store-path":   "store.path",
	"store-dsn":    "store.dsn",
	"status-addr":  "status.addr",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

func setDefaults(v *viper.Viper) {
	// пустые значения тоже задаются: без них Unmarshal не увидит переменные окружения
	v.SetDefault("client_name", "")
	v.SetDefault("user_name", "")
	v.SetDefault("entities", []string{})
	v.SetDefault("checksum_blacklist", []string{})

	v.SetDefault("broker.kind", BrokerMemory)
	v.SetDefault("broker.redis.addr", "localhost:6379")
	v.SetDefault("broker.redis.password", "")
	v.SetDefault("broker.redis.db", 0)
	v.SetDefault("broker.redis.prefix", "matchsync")

	v.SetDefault("dispatch.mode", dispatch.ModeProduction.String())
	v.SetDefault("dispatch.max_concurrent_calls", dispatch.DefaultMaxConcurrentCalls)
	v.SetDefault("dispatch.receive_timeout", dispatch.DefaultReceiveTimeout)
	v.SetDefault("dispatch.lock_duration", 30*time.Second)
	v.SetDefault("dispatch.max_delivery_count", 10)

	v.SetDefault("retry.max_attempts", retry.DefaultMaxAttempts)
	v.SetDefault("retry.min_backoff", retry.DefaultMinBackoff)
	v.SetDefault("retry.max_backoff", retry.DefaultMaxBackoff)

	v.SetDefault("recovery.initial_interval", time.Second)
	v.SetDefault("recovery.max_interval", time.Minute)

	v.SetDefault("store.kind", StoreBolt)
	v.SetDefault("store.path", "matchsync-adapter.db")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.passphrase", "")

	v.SetDefault("signing.secret", "")
	v.SetDefault("signing.ttl", 10*time.Minute)

	v.SetDefault("status.addr", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)
}

// Load reads configuration. configFile may be empty; flags may be nil.
// Приоритет: флаги, затем окружение, затем файл, затем значения по умолчанию.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Entities = splitList(cfg.Entities)
	cfg.ChecksumBlacklist = splitList(cfg.ChecksumBlacklist)
	return &cfg, nil
}

// splitList раскрывает значения вида "a,b" из окружения и флагов
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the settings shared by every command
func (c *Config) Validate() error {
	switch c.Broker.Kind {
	case BrokerMemory:
	case BrokerRedis:
		if c.Broker.Redis.Addr == "" {
			return invalid("broker.redis.addr is required for the redis broker")
		}
	default:
		return invalid("unknown broker.kind %q", c.Broker.Kind)
	}

	if _, err := dispatch.ParseMode(c.Dispatch.Mode); err != nil {
		return invalid("%v", err)
	}
	if c.Dispatch.MaxConcurrentCalls < 0 {
		return invalid("dispatch.max_concurrent_calls must not be negative")
	}
	if c.Dispatch.LockDuration < 0 || c.Dispatch.ReceiveTimeout < 0 {
		return invalid("dispatch durations must not be negative")
	}
	if c.Retry.MaxAttempts == 0 {
		return invalid("retry.max_attempts must be at least 1")
	}
	if c.Retry.MinBackoff <= 0 || c.Retry.MaxBackoff < c.Retry.MinBackoff {
		return invalid("retry backoff must satisfy 0 < min_backoff <= max_backoff")
	}
	if c.Recovery.InitialInterval <= 0 || c.Recovery.MaxInterval < c.Recovery.InitialInterval {
		return invalid("recovery intervals must satisfy 0 < initial_interval <= max_interval")
	}
	if c.Signing.Secret != "" && c.Signing.TTL <= 0 {
		return invalid("signing.ttl must be positive")
	}
	if _, err := logging.New(c.Log.Level, c.Log.Format, io.Discard); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// ValidateAdapter additionally checks what an adapter process needs
func (c *Config) ValidateAdapter() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := validation.ValidateName("client", c.ClientName); err != nil {
		return invalid("client_name: %v", err)
	}
	if len(c.Entities) == 0 {
		return invalid("at least one entity is required")
	}
	for _, entity := range c.Entities {
		if err := validation.ValidateName("entity", entity); err != nil {
			return invalid("entities: %v", err)
		}
	}

	switch c.Store.Kind {
	case StoreBolt, StoreSQLite:
		if c.Store.Path == "" {
			return invalid("store.path is required for the %s store", c.Store.Kind)
		}
	case StorePostgres:
		if c.Store.DSN == "" {
			return invalid("store.dsn is required for the postgres store")
		}
	default:
		return invalid("unknown store.kind %q", c.Store.Kind)
	}
	return nil
}

// Mode returns the parsed dispatch mode. Call after Validate.
func (c *Config) Mode() dispatch.Mode {
	mode, _ := dispatch.ParseMode(c.Dispatch.Mode)
	return mode
}

// ServeOptions returns the receive loop options
func (c *Config) ServeOptions() dispatch.ServeOptions {
	return dispatch.ServeOptions{
		MaxConcurrentCalls: c.Dispatch.MaxConcurrentCalls,
		ReceiveTimeout:     c.Dispatch.ReceiveTimeout,
	}
}

// SubscriptionOptions returns the options of new subscriptions
func (c *Config) SubscriptionOptions() adapter.SubscriptionOptions {
	return adapter.SubscriptionOptions{
		LockDuration:     c.Dispatch.LockDuration,
		MaxDeliveryCount: c.Dispatch.MaxDeliveryCount,
	}
}

// RetryPolicy returns the retry policy of transport calls
func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Retry.MaxAttempts,
		MinBackoff:  c.Retry.MinBackoff,
		MaxBackoff:  c.Retry.MaxBackoff,
	}
}
