// Package cli holds what the adapter and matchctl commands share:
// global flags, configuration loading, broker connection and output.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/config"
	"github.com/iudanet/matchsync/internal/logging"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/internal/transport/memory"
	"github.com/iudanet/matchsync/internal/transport/redis"
	"github.com/iudanet/matchsync/internal/transport/signing"
)

// SecretEnv overrides every other source of the signing secret
const SecretEnv = "MATCHSYNC_SIGNING_SECRET"

// GlobalOptions are the flags every command accepts
type GlobalOptions struct {
	ConfigFile   string
	SecretFile   string
	PromptSecret bool
}

// Register adds the global flags. Flags named in config are bound to their keys on Load.
func (o *GlobalOptions) Register(flags *pflag.FlagSet) {
	flags.StringVarP(&o.ConfigFile, "config", "c", "", "configuration file (yaml, json or toml)")
	flags.StringVar(&o.SecretFile, "signing-secret-file", "", "file holding the message signing secret")
	flags.BoolVar(&o.PromptSecret, "prompt-secret", false, "ask for the message signing secret")

	flags.String("broker", config.BrokerMemory, "broker kind (memory|redis)")
	flags.String("redis-addr", "localhost:6379", "redis address")
	flags.Int("redis-db", 0, "redis database")
	flags.String("redis-prefix", "matchsync", "redis key prefix")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")
	flags.String("log-format", logging.FormatText, "log format (text|json)")
}

// Load reads the configuration of cmd and builds the logger.
// Логи пишутся в stderr, stdout остается для вывода команд.
func (o *GlobalOptions) Load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.ConfigFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// ResolveSecret returns the signing secret. Priority:
// 1. MATCHSYNC_SIGNING_SECRET / signing.secret of the configuration
// 2. secretFile
// 3. interactive prompt when prompt is set
// An empty result disables signing.
func ResolveSecret(term iocli.IO, configured, secretFile string, prompt bool) (string, error) {
	if configured != "" {
		return configured, nil
	}

	if secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return "", fmt.Errorf("failed to read secret file: %w", err)
		}
		secret := strings.TrimSpace(string(content))
		if secret == "" {
			return "", fmt.Errorf("%w: %s", signing.ErrEmptySecret, secretFile)
		}
		return secret, nil
	}

	if prompt {
		secret, err := term.ReadSecret("Signing secret: ")
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		if secret == "" {
			return "", signing.ErrEmptySecret
		}
		return secret, nil
	}
	return "", nil
}

// OpenBroker connects to the configured broker
func OpenBroker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (transport.Broker, error) {
	switch cfg.Broker.Kind {
	case config.BrokerMemory:
		logger.Warn("Using the in-process memory broker, messages are not shared with other processes")
		return memory.New(), nil
	case config.BrokerRedis:
		return redis.New(ctx, redis.Options{
			Addr:     cfg.Broker.Redis.Addr,
			Password: cfg.Broker.Redis.Password,
			DB:       cfg.Broker.Redis.DB,
			Prefix:   cfg.Broker.Redis.Prefix,
		}, logger)
	default:
		return nil, fmt.Errorf("%w: unknown broker kind %q", config.ErrInvalidConfig, cfg.Broker.Kind)
	}
}

// Connect opens the broker and wraps it in an adapter connection.
// A non-empty secret turns message signing on.
func Connect(ctx context.Context, cfg *config.Config, secret string, logger *slog.Logger) (*adapter.Connection, error) {
	broker, err := OpenBroker(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []adapter.Option{adapter.WithRetryPolicy(cfg.RetryPolicy())}
	if secret != "" {
		signer, err := signing.NewSigner(signing.Config{Secret: []byte(secret), TTL: cfg.Signing.TTL})
		if err != nil {
			_ = broker.Close()
			return nil, err
		}
		opts = append(opts, adapter.WithSigner(signer))
	}

	conn, err := adapter.Connect(ctx, broker, logger, opts...)
	if err != nil {
		_ = broker.Close()
		return nil, err
	}
	return conn, nil
}

// ParsePairs turns "Name=value" arguments into a name, value list
func ParsePairs(args []string) ([]string, error) {
	pairs := make([]string, 0, len(args)*2)
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid property %q, expected Name=value", arg)
		}
		pairs = append(pairs, name, value)
	}
	return pairs, nil
}
