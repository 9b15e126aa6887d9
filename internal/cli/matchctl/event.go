package matchctl

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/hub"
	"github.com/iudanet/matchsync/pkg/api"
)

func (a *app) newEventCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Read adapter events",
	}
	cmd.AddCommand(a.newWatchCommand())
	return cmd
}

func (a *app) newWatchCommand() *cobra.Command {
	var (
		client string
		entity string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print events until interrupted",
		Long: `Prints Updated, Deleted and Moved events. Without --client every client is
watched. Events are consumed: a watcher shares its subscription with other
watchers of the same client and entity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, client, entity, count)
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "only events of this client")
	cmd.Flags().StringVar(&entity, "entity", "", "only events of this entity, requires --client")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many events, 0 watches forever")
	return cmd
}

func (a *app) watch(ctx context.Context, client, entity string, count int) error {
	conn, err := a.connection(ctx)
	if err != nil {
		return err
	}
	defer a.closeConn(conn)

	sub, err := conn.SubscribeTopic(ctx, api.TopicEvent, client, entity, adapter.SubscriptionOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = sub.Close() }()

	seen := 0
	return hub.WatchEvents(ctx, sub, a.logger, func(ctx context.Context, ev *api.Event) error {
		if err := a.printer.Print(ev); err != nil {
			return err
		}
		seen++
		if count > 0 && seen >= count {
			return hub.ErrStopWatching
		}
		return nil
	})
}
