package matchctl

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/matchsync/internal/transport"
)

// broker runs fn with an administrative connection
func (a *app) broker(ctx context.Context, fn func(b transport.Broker) error) error {
	conn, err := a.connection(ctx)
	if err != nil {
		return err
	}
	defer a.closeConn(conn)
	return fn(conn.Broker())
}

func (a *app) newTopicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Administer topics",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ensure <topic>",
		Short: "Create a topic if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				if err := b.CreateTopicIfMissing(cmd.Context(), args[0]); err != nil {
					return err
				}
				desc, err := b.GetTopic(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printer.Print(desc)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "describe <topic>",
		Short: "Show a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				desc, err := b.GetTopic(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printer.Print(desc)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <topic>",
		Short: "Delete a topic with its subscriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				if err := b.DeleteTopic(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.term.Printf("Deleted topic %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}

// messageView is the printed form of a dead-lettered message
type messageView struct {
	EnqueuedAt    time.Time         `json:"enqueued_at"`
	Properties    map[string]string `json:"properties"`
	ID            string            `json:"id"`
	Body          string            `json:"body"`
	DeliveryCount int               `json:"delivery_count"`
}

func (a *app) newSubscriptionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Administer subscriptions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <topic>",
		Short: "List the subscriptions of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				subs, err := b.ListSubscriptions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if subs == nil {
					subs = []transport.SubscriptionDescription{}
				}
				return a.printer.Print(subs)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "describe <topic> <name>",
		Short: "Show a subscription with its message counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				desc, err := b.GetSubscription(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.printer.Print(desc)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <topic> <name>",
		Short: "Delete a subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				if err := b.DeleteSubscription(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				a.term.Printf("Deleted subscription %s/%s\n", args[0], args[1])
				return nil
			})
		},
	})

	var purge bool
	deadLetters := &cobra.Command{
		Use:   "deadletters <topic> <name>",
		Short: "Show dead-lettered messages of a subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.broker(cmd.Context(), func(b transport.Broker) error {
				msgs, err := b.DeadLetters(cmd.Context(), args[0], args[1], purge)
				if err != nil {
					return err
				}
				views := make([]messageView, 0, len(msgs))
				for _, m := range msgs {
					views = append(views, messageView{
						ID:            m.ID,
						EnqueuedAt:    m.EnqueuedAt,
						Properties:    m.Properties,
						Body:          string(m.Body),
						DeliveryCount: m.DeliveryCount,
					})
				}
				return a.printer.Print(views)
			})
		},
	}
	deadLetters.Flags().BoolVar(&purge, "purge", false, "remove the printed messages")
	cmd.AddCommand(deadLetters)

	return cmd
}
