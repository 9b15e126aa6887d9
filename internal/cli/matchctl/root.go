// Package matchctl implements the hub side and operations command:
// send requests to adapters, watch events and administer the broker.
package matchctl

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/config"
)

// Name is the command name
const Name = "matchctl"

// DefaultTimeout bounds a request round trip
const DefaultTimeout = 30 * time.Second

type app struct {
	connect func(ctx context.Context, cfg *config.Config, secret string, logger *slog.Logger) (*adapter.Connection, error)
	term    iocli.IO
	cfg     *config.Config
	logger  *slog.Logger
	printer *cli.Printer
	opts    cli.GlobalOptions
	info    cli.BuildInfo
	output  string
	timeout time.Duration
}

// NewRootCommand creates the matchctl command tree
func NewRootCommand(info cli.BuildInfo, term iocli.IO) *cobra.Command {
	return newRootCommand(&app{info: info, term: term, connect: cli.Connect})
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   Name,
		Short: "Talk to matchsync adapters",
		Long: `Sends Get, Create and Update requests to adapters and prints their responses,
watches adapter events and administers topics and subscriptions of the broker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			printer, err := cli.NewPrinter(a.output, a.term)
			if err != nil {
				return err
			}
			cfg, logger, err := a.opts.Load(cmd)
			if err != nil {
				return err
			}
			a.cfg, a.logger, a.printer = cfg, logger, printer
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	a.opts.Register(flags)
	flags.StringVarP(&a.output, "output", "o", cli.OutputJSON, "output format (json|yaml)")
	flags.DurationVar(&a.timeout, "timeout", DefaultTimeout, "time to wait for a response")

	cmd.AddCommand(a.newRequestCommand())
	cmd.AddCommand(a.newEventCommand())
	cmd.AddCommand(a.newTopicCommand())
	cmd.AddCommand(a.newSubscriptionCommand())
	cmd.AddCommand(cli.NewVersionCommand(Name, a.info))

	return cmd
}

// connection opens the broker with the resolved signing secret
func (a *app) connection(ctx context.Context) (*adapter.Connection, error) {
	secret, err := cli.ResolveSecret(a.term, a.cfg.Signing.Secret, a.opts.SecretFile, a.opts.PromptSecret)
	if err != nil {
		return nil, err
	}
	return a.connect(ctx, a.cfg, secret, a.logger)
}

// closeConn закрывает подключение, ошибка только логируется
func (a *app) closeConn(conn *adapter.Connection) {
	if err := conn.Close(); err != nil {
		a.logger.Warn("Failed to close connection", slog.Any("error", err))
	}
}
