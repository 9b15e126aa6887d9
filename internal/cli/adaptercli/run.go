package adaptercli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/retry"
	"github.com/iudanet/matchsync/internal/server"
	"github.com/iudanet/matchsync/internal/server/handlers"
	"github.com/iudanet/matchsync/pkg/api"
)

func (a *app) newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process hub requests until interrupted",
		Long: `Subscribes to the requests of every configured entity and answers them.
A failed subscription is restarted with a doubling pause; a deleted one is recreated.

Example:
  matchsync-adapter run --client Acme --entities Person,Order --broker redis --status-addr :8081`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.run(ctx)
		},
	}
	cmd.Flags().String("mode", dispatch.ModeProduction.String(), "dispatch mode (production|test)")
	cmd.Flags().Int("concurrency", dispatch.DefaultMaxConcurrentCalls, "requests handled at once per entity")
	cmd.Flags().String("status-addr", "", "listen address of the status endpoint, empty disables it")
	return cmd
}

// run blocks until ctx is cancelled or a subscription fails permanently
func (a *app) run(ctx context.Context) error {
	sess, err := a.openSession(ctx, true)
	if err != nil {
		return err
	}
	defer sess.close()

	// все подписки создаются до запуска, чтобы ошибка не оставила работающие горутины
	registry := &statusRegistry{}
	for _, entity := range a.cfg.Entities {
		sub, err := sess.conn.Subscribe(ctx, a.cfg.ClientName, entity, a.cfg.SubscriptionOptions())
		if err != nil {
			return fmt.Errorf("failed to subscribe %s: %w", entity, err)
		}
		defer func() { _ = sub.Close() }()

		logger := a.logger.With(slog.String("subscription", sub.Name()))
		registry.add(sub, dispatch.NewEngine(sess.service, sess.conn.Responses(), logger, dispatch.WithMode(a.cfg.Mode())))
	}

	recovery := retry.NewRecovery(a.cfg.Recovery.InitialInterval, a.cfg.Recovery.MaxInterval, a.logger)
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range registry.entries {
		g.Go(func() error {
			a.logger.Info("Processing requests",
				slog.String("subscription", e.sub.Name()),
				slog.String("mode", e.engine.Mode().String()),
				slog.Int("max_concurrent_calls", a.cfg.Dispatch.MaxConcurrentCalls),
			)
			return e.sub.Run(gctx, e.engine, a.cfg.ServeOptions(), recovery)
		})
	}

	if a.cfg.Status.Addr != "" {
		broker := sess.conn.Broker()
		check := func(ctx context.Context) error {
			_, err := broker.GetTopic(ctx, api.TopicRequest)
			return err
		}
		srv := server.New(a.cfg.Status.Addr,
			handlers.NewHealthHandler(a.info.Version, check, a.logger),
			handlers.NewStatusHandler(registry, a.logger),
			a.logger,
		)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	a.logger.Info("Adapter started",
		slog.String("client", a.cfg.ClientName),
		slog.Any("entities", a.cfg.Entities),
		slog.String("broker", a.cfg.Broker.Kind),
		slog.String("store", a.cfg.Store.Kind),
	)
	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("Adapter stopped")
	return nil
}
