// Package hub is the requesting side of the protocol: it sends requests
// to adapters, correlates their responses by process id and reads events.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

// ErrDuplicateProcessID is returned when a call with the same process id is already waiting
var ErrDuplicateProcessID = errors.New("process id is already awaited")

// DefaultReceiveTimeout ограничивает одно ожидание брокера в циклах чтения
const DefaultReceiveTimeout = time.Second

// Hub sends requests and waits for their responses
type Hub struct {
	conn      *adapter.Connection
	responses *adapter.Subscription
	logger    *slog.Logger
	pending   map[string]chan *api.Response
	mu        sync.Mutex
}

// New creates a hub reading responses from the given subscription of the Response topic
func New(conn *adapter.Connection, responses *adapter.Subscription, logger *slog.Logger) *Hub {
	return &Hub{
		conn:      conn,
		responses: responses,
		logger:    logger,
		pending:   make(map[string]chan *api.Response),
	}
}

// NewProcessID returns a fresh correlation id
func NewProcessID() string {
	return uuid.NewString()
}

// Listen delivers responses to waiting calls until ctx is cancelled.
// Responses nobody waits for are logged and completed.
func (h *Hub) Listen(ctx context.Context) error {
	rcv := h.responses.Receiver()
	for {
		msg, err := rcv.Receive(ctx, DefaultReceiveTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to receive response: %w", err)
		}
		if msg == nil {
			continue
		}

		resp, err := api.DecodeResponse(msg.Body)
		if err != nil {
			h.logger.Error("Failed to decode response", "message_id", msg.ID, slog.Any("error", err))
			if err := rcv.DeadLetter(ctx, msg, "InvalidResponse"); err != nil {
				h.logger.Warn("Failed to dead-letter response", "message_id", msg.ID, slog.Any("error", err))
			}
			continue
		}

		h.deliver(resp)
		if err := rcv.Complete(ctx, msg); err != nil {
			h.logger.Warn("Failed to complete response", "process_id", resp.ProcessID, slog.Any("error", err))
		}
	}
}

func (h *Hub) deliver(resp *api.Response) {
	h.mu.Lock()
	ch, ok := h.pending[resp.ProcessID]
	delete(h.pending, resp.ProcessID)
	h.mu.Unlock()

	if !ok {
		h.logger.Warn("Response without waiting request",
			"process_id", resp.ProcessID,
			"response_type", resp.ResponseType,
		)
		return
	}
	ch <- resp
}

func (h *Hub) await(processID string) (chan *api.Response, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.pending[processID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProcessID, processID)
	}
	ch := make(chan *api.Response, 1)
	h.pending[processID] = ch
	return ch, nil
}

func (h *Hub) forget(processID string) {
	h.mu.Lock()
	delete(h.pending, processID)
	h.mu.Unlock()
}

// Call sends req and waits for its response. Listen must be running.
// An empty ProcessID is filled in.
func (h *Hub) Call(ctx context.Context, req *api.Request) (*api.Response, error) {
	if req.ProcessID == "" {
		req.ProcessID = NewProcessID()
	}
	ch, err := h.await(req.ProcessID)
	if err != nil {
		return nil, err
	}

	if err := h.conn.SendRequest(ctx, req); err != nil {
		h.forget(req.ProcessID)
		return nil, err
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		h.forget(req.ProcessID)
		return nil, fmt.Errorf("no response to %s: %w", req, ctx.Err())
	}
}

// Get asks the adapter for the current data of key
func (h *Hub) Get(ctx context.Context, key models.Key) (*api.Response, error) {
	return h.Call(ctx, api.NewRequest(api.RequestGet, NewProcessID(), key, nil))
}

// Create asks the adapter to create an object. key carries the reservation id.
func (h *Hub) Create(ctx context.Context, key models.Key, data *models.Data) (*api.Response, error) {
	return h.Call(ctx, api.NewRequest(api.RequestCreate, NewProcessID(), key, data))
}

// Update asks the adapter to store data. data should carry the checksum the hub last saw.
func (h *Hub) Update(ctx context.Context, key models.Key, data *models.Data) (*api.Response, error) {
	return h.Call(ctx, api.NewRequest(api.RequestUpdate, NewProcessID(), key, data))
}

// ErrStopWatching returned by the WatchEvents callback completes the event and stops watching
var ErrStopWatching = errors.New("stop watching events")

// WatchEvents calls fn for every event received on sub until ctx is cancelled.
// An event is completed after fn returns nil and abandoned otherwise.
func WatchEvents(ctx context.Context, sub *adapter.Subscription, logger *slog.Logger, fn func(context.Context, *api.Event) error) error {
	rcv := sub.Receiver()
	for {
		msg, err := rcv.Receive(ctx, DefaultReceiveTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to receive event: %w", err)
		}
		if msg == nil {
			continue
		}
		if stop := handleEvent(ctx, rcv, msg, logger, fn); stop {
			return nil
		}
	}
}

// handleEvent settles one event message and reports whether watching should stop
func handleEvent(ctx context.Context, rcv transport.Receiver, msg *transport.Message, logger *slog.Logger, fn func(context.Context, *api.Event) error) bool {
	ev, err := api.DecodeEvent(msg.Body)
	if err != nil {
		logger.Error("Failed to decode event", "message_id", msg.ID, slog.Any("error", err))
		if err := rcv.DeadLetter(ctx, msg, "InvalidEvent"); err != nil {
			logger.Warn("Failed to dead-letter event", "message_id", msg.ID, slog.Any("error", err))
		}
		return false
	}

	err = fn(ctx, ev)
	stop := errors.Is(err, ErrStopWatching)
	if err != nil && !stop {
		logger.Warn("Event not handled, leaving for redelivery", "key", ev.Key.String(), slog.Any("error", err))
		if err := rcv.Abandon(ctx, msg); err != nil {
			logger.Debug("Failed to abandon event", slog.Any("error", err))
		}
		return false
	}
	if err := rcv.Complete(ctx, msg); err != nil {
		logger.Warn("Failed to complete event", "key", ev.Key.String(), slog.Any("error", err))
	}
	return stop
}
