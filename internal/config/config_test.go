package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/dispatch"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, BrokerMemory, cfg.Broker.Kind)
	assert.Equal(t, StoreBolt, cfg.Store.Kind)
	assert.Equal(t, dispatch.DefaultReceiveTimeout, cfg.Dispatch.ReceiveTimeout)
	assert.Equal(t, 30*time.Second, cfg.Dispatch.LockDuration)
	assert.Equal(t, dispatch.ModeProduction, cfg.Mode())
	assert.Empty(t, cfg.Entities)
	require.NoError(t, cfg.Validate())
	assert.ErrorIs(t, cfg.ValidateAdapter(), ErrInvalidConfig)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adapter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
client_name: Acme
entities: [Person, Order]
broker:
  kind: redis
  redis:
    addr: redis.internal:6379
    db: 2
dispatch:
  max_concurrent_calls: 4
  lock_duration: 45s
store:
  kind: sqlite
  path: /var/lib/acme.db
log:
  level: debug
`), 0o600))

	t.Setenv("MATCHSYNC_BROKER_REDIS_PASSWORD", "secret")
	t.Setenv("MATCHSYNC_DISPATCH_MODE", "test")
	t.Setenv("MATCHSYNC_RETRY_MAX_ATTEMPTS", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-format", "text", "")
	flags.StringSlice("entities", nil, "")
	require.NoError(t, flags.Parse([]string{"--log-format=json"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "Acme", cfg.ClientName)
	assert.Equal(t, []string{"Person", "Order"}, cfg.Entities)
	assert.Equal(t, BrokerRedis, cfg.Broker.Kind)
	assert.Equal(t, "redis.internal:6379", cfg.Broker.Redis.Addr)
	assert.Equal(t, 2, cfg.Broker.Redis.DB)
	assert.Equal(t, "secret", cfg.Broker.Redis.Password)
	assert.Equal(t, 4, cfg.Dispatch.MaxConcurrentCalls)
	assert.Equal(t, 45*time.Second, cfg.Dispatch.LockDuration)
	assert.Equal(t, dispatch.ModeTest, cfg.Mode())
	assert.Equal(t, uint64(7), cfg.Retry.MaxAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	require.NoError(t, cfg.ValidateAdapter())

	opts := cfg.ServeOptions()
	assert.Equal(t, 4, opts.MaxConcurrentCalls)
	assert.Equal(t, 45*time.Second, cfg.SubscriptionOptions().LockDuration)
	assert.Equal(t, uint64(7), cfg.RetryPolicy().MaxAttempts)
}

func TestLoad_EntitiesFromEnv(t *testing.T) {
	t.Setenv("MATCHSYNC_ENTITIES", "Person, Order")
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Order"}, cfg.Entities)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func validAdapterConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("", nil)
	require.NoError(t, err)
	cfg.ClientName = "Acme"
	cfg.Entities = []string{"Person"}
	return cfg
}

func TestConfig_ValidateAdapter(t *testing.T) {
	tests := []struct {
		modify  func(c *Config)
		name    string
		wantErr bool
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "unknown broker", modify: func(c *Config) { c.Broker.Kind = "kafka" }, wantErr: true},
		{name: "redis without addr", modify: func(c *Config) { c.Broker.Kind = BrokerRedis; c.Broker.Redis.Addr = "" }, wantErr: true},
		{name: "unknown mode", modify: func(c *Config) { c.Dispatch.Mode = "staging" }, wantErr: true},
		{name: "negative concurrency", modify: func(c *Config) { c.Dispatch.MaxConcurrentCalls = -1 }, wantErr: true},
		{name: "zero attempts", modify: func(c *Config) { c.Retry.MaxAttempts = 0 }, wantErr: true},
		{name: "inverted backoff", modify: func(c *Config) { c.Retry.MaxBackoff = time.Millisecond }, wantErr: true},
		{name: "inverted recovery", modify: func(c *Config) { c.Recovery.MaxInterval = time.Millisecond }, wantErr: true},
		{name: "bad log level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "bad client name", modify: func(c *Config) { c.ClientName = "Acme Corp" }, wantErr: true},
		{name: "no entities", modify: func(c *Config) { c.Entities = nil }, wantErr: true},
		{name: "bad entity", modify: func(c *Config) { c.Entities = []string{"Per'son"} }, wantErr: true},
		{name: "unknown store", modify: func(c *Config) { c.Store.Kind = "mongo" }, wantErr: true},
		{name: "postgres without dsn", modify: func(c *Config) { c.Store.Kind = StorePostgres }, wantErr: true},
		{name: "postgres", modify: func(c *Config) { c.Store.Kind = StorePostgres; c.Store.DSN = "postgres://localhost/db" }},
		{name: "signing without ttl", modify: func(c *Config) { c.Signing.Secret = "s"; c.Signing.TTL = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAdapterConfig(t)
			tt.modify(cfg)
			err := cfg.ValidateAdapter()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}
