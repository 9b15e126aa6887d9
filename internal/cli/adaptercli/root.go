// Package adaptercli implements the matchsync-adapter command: the sample
// adapter that answers hub requests from a local object store.
package adaptercli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/config"
	"github.com/iudanet/matchsync/internal/sample"
)

// Name is the command name
const Name = "matchsync-adapter"

type app struct {
	connect func(ctx context.Context, cfg *config.Config, secret string, logger *slog.Logger) (*adapter.Connection, error)
	term    iocli.IO
	cfg     *config.Config
	logger  *slog.Logger
	opts    cli.GlobalOptions
	info    cli.BuildInfo
	output  string
}

// NewRootCommand creates the adapter command tree
func NewRootCommand(info cli.BuildInfo, term iocli.IO) *cobra.Command {
	return newRootCommand(&app{info: info, term: term, connect: cli.Connect})
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   Name,
		Short: "Sample matchsync adapter",
		Long: `Answers Get, Create and Update requests of the hub for the configured
client and entities from a local object store, and reports local changes as events.

Settings come from --config, MATCHSYNC_* environment variables and flags, e.g.
  MATCHSYNC_CLIENT_NAME=Acme MATCHSYNC_ENTITIES=Person,Order matchsync-adapter run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.opts.Load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateAdapter(); err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	a.opts.Register(flags)
	flags.String("client", "", "client (adapter) name")
	flags.StringSlice("entities", nil, "entities handled by this adapter")
	flags.String("user", "", "user name written to events of local changes")
	flags.String("store", config.StoreBolt, "object store (bolt|sqlite|postgres)")
	flags.String("store-path", "matchsync-adapter.db", "bolt or sqlite database file")
	flags.String("store-dsn", "", "postgres connection string")
	flags.StringVarP(&a.output, "output", "o", cli.OutputJSON, "output format (json|yaml)")

	cmd.AddCommand(a.newRunCommand())
	cmd.AddCommand(a.newTouchCommand())
	cmd.AddCommand(a.newDeleteCommand())
	cmd.AddCommand(a.newMoveCommand())
	cmd.AddCommand(a.newListCommand())
	cmd.AddCommand(cli.NewVersionCommand(Name, a.info))

	return cmd
}

// session is everything a command needs to act as the adapter
type session struct {
	service *sample.Service
	conn    *adapter.Connection // nil без подключения к брокеру
	close   func()
}

// openSession открывает хранилище и, если connect задан, подключение к брокеру
func (a *app) openSession(ctx context.Context, connect bool) (*session, error) {
	store, err := openStore(ctx, a.cfg.Store)
	if err != nil {
		return nil, err
	}
	closers := []func() error{store.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				a.logger.Error("Failed to close", slog.Any("error", err))
			}
		}
	}

	sess := &session{close: closeAll}
	var events sample.EventSender
	if connect {
		secret, err := cli.ResolveSecret(a.term, a.cfg.Signing.Secret, a.opts.SecretFile, a.opts.PromptSecret)
		if err != nil {
			closeAll()
			return nil, err
		}
		conn, err := a.connect(ctx, a.cfg, secret, a.logger)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to connect to broker: %w", err)
		}
		closers = append(closers, conn.Close)
		sess.conn = conn
		events = conn.Events(a.cfg.ClientName)
	}

	sess.service = sample.NewService(store, events, a.logger, a.sampleConfig())
	return sess, nil
}

func (a *app) sampleConfig() sample.Config {
	return sample.Config{
		ClientName:        a.cfg.ClientName,
		UserName:          a.cfg.UserName,
		Entities:          a.cfg.Entities,
		CheckSumBlackList: a.cfg.ChecksumBlacklist,
	}
}
