package matchctl

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/internal/hub"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

// ErrRequestFailed is returned after printing a Failure response
var ErrRequestFailed = errors.New("request failed")

func (a *app) newRequestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send a request to an adapter and print the response",
	}
	cmd.AddCommand(a.newGetCommand())
	cmd.AddCommand(a.newCreateCommand())
	cmd.AddCommand(a.newUpdateCommand())
	return cmd
}

// call sends one or more requests to client through a listening hub
func (a *app) call(ctx context.Context, client string, fn func(ctx context.Context, h *hub.Hub) error) error {
	conn, err := a.connection(ctx)
	if err != nil {
		return err
	}
	defer a.closeConn(conn)

	responses, err := conn.SubscribeTopic(ctx, api.TopicResponse, client, "", adapter.SubscriptionOptions{})
	if err != nil {
		return fmt.Errorf("failed to subscribe to responses: %w", err)
	}
	defer func() { _ = responses.Close() }()

	h := hub.New(conn, responses, a.logger)
	listenCtx, stop := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(listenCtx)
	g.Go(func() error { return h.Listen(gctx) })

	callCtx, cancel := context.WithTimeout(gctx, a.timeout)
	err = fn(callCtx, h)
	cancel()
	stop()
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return err
}

// printResponse prints resp and turns a Failure into an error
func (a *app) printResponse(resp *api.Response) error {
	if err := a.printer.Print(resp); err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s", ErrRequestFailed, resp.ErrorType)
	}
	return nil
}

func dataFromArgs(args []string) (*models.Data, error) {
	pairs, err := cli.ParsePairs(args)
	if err != nil {
		return nil, err
	}
	data := models.NewData()
	if err := data.SetProperties(pairs...); err != nil {
		return nil, err
	}
	return data, nil
}

func (a *app) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <client> <entity> <value>",
		Short: "Read an object",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := models.NewKey(args[0], args[1], args[2])
			return a.call(cmd.Context(), key.ClientName, func(ctx context.Context, h *hub.Hub) error {
				resp, err := h.Get(ctx, key)
				if err != nil {
					return err
				}
				return a.printResponse(resp)
			})
		},
	}
}

func (a *app) newCreateCommand() *cobra.Command {
	var reservation string
	cmd := &cobra.Command{
		Use:   "create <client> <entity> [Name=value ...]",
		Short: "Create an object; the adapter assigns the key value",
		Long: `Creates an object at the adapter. Repeating the call with the same
--reservation returns the already created key instead of a second object.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := dataFromArgs(args[2:])
			if err != nil {
				return err
			}
			if reservation == "" {
				reservation = hub.NewProcessID()
			}
			key := models.NewKey(args[0], args[1], "").WithReservation(reservation)
			return a.call(cmd.Context(), key.ClientName, func(ctx context.Context, h *hub.Hub) error {
				resp, err := h.Create(ctx, key, data)
				if err != nil {
					return err
				}
				return a.printResponse(resp)
			})
		},
	}
	cmd.Flags().StringVar(&reservation, "reservation", "", "reservation id, generated when empty")
	return cmd
}

func (a *app) newUpdateCommand() *cobra.Command {
	var (
		checkSum       string
		ignoreCheckSum bool
	)
	cmd := &cobra.Command{
		Use:   "update <client> <entity> <value> [Name=value ...]",
		Short: "Replace the data of an object",
		Long: `Replaces the data of an object. The update is accepted only if the object
did not change since the checksum was taken. Without --checksum the current
checksum is read with a Get first; --ignore-checksum overwrites unconditionally.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkSum != "" && ignoreCheckSum {
				return errors.New("--checksum and --ignore-checksum are mutually exclusive")
			}
			data, err := dataFromArgs(args[3:])
			if err != nil {
				return err
			}
			key := models.NewKey(args[0], args[1], args[2])

			return a.call(cmd.Context(), key.ClientName, func(ctx context.Context, h *hub.Hub) error {
				switch {
				case ignoreCheckSum:
					data.IgnoreCheckSum()
				case checkSum != "":
					data.SetCheckSum(checkSum)
				default:
					current, err := h.Get(ctx, key)
					if err != nil {
						return err
					}
					if !current.IsSuccess() {
						return a.printResponse(current)
					}
					data.SetCheckSum(current.Data.CheckSum())
				}

				resp, err := h.Update(ctx, key, data)
				if err != nil {
					return err
				}
				return a.printResponse(resp)
			})
		},
	}
	cmd.Flags().StringVar(&checkSum, "checksum", "", "checksum of the data the update is based on")
	cmd.Flags().BoolVar(&ignoreCheckSum, "ignore-checksum", false, "update without the concurrency check")
	return cmd
}
