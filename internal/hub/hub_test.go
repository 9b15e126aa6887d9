package hub

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/matcherr"
	"github.com/iudanet/matchsync/internal/transport/memory"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// startAdapter runs an adapter for Acme over a memory broker and returns a listening hub
func startAdapter(t *testing.T, handler dispatch.Handler) (*Hub, *adapter.Connection) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	conn, err := adapter.Connect(ctx, memory.New(), testLogger())
	require.NoError(t, err)

	sub, err := conn.Subscribe(ctx, "Acme", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)
	responses, err := conn.SubscribeTopic(ctx, api.TopicResponse, "Acme", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)

	engine := dispatch.NewEngine(handler, conn.Responses(), testLogger())
	h := New(conn, responses, testLogger())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sub.ProcessRequests(gctx, engine, dispatch.ServeOptions{MaxConcurrentCalls: 2, ReceiveTimeout: 20 * time.Millisecond})
	})
	g.Go(func() error {
		return h.Listen(gctx)
	})

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, g.Wait())
		_ = conn.Close()
	})
	return h, conn
}

func TestHub_Call(t *testing.T) {
	stored := map[string]*models.Data{
		"1": models.NewDataFromMap(map[string]string{"FirstName": "Ann"}),
	}
	handler := dispatch.HandlerFuncs{
		OnGet: func(ctx context.Context, key models.Key) (*models.Data, error) {
			d, ok := stored[key.Value]
			if !ok {
				return nil, matcherr.NotFound(key)
			}
			return d, nil
		},
		OnCreate: func(ctx context.Context, key models.Key, data *models.Data) (models.Key, error) {
			return models.NewKey(key.ClientName, key.EntityName, "42"), nil
		},
	}
	h, _ := startAdapter(t, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("get", func(t *testing.T) {
		resp, err := h.Get(ctx, models.NewKey("Acme", "Person", "1"))
		require.NoError(t, err)
		require.True(t, resp.IsSuccess())
		assert.Equal(t, "Ann", resp.Data.Properties()["FirstName"])
	})

	t.Run("get unknown", func(t *testing.T) {
		resp, err := h.Get(ctx, models.NewKey("Acme", "Person", "9"))
		require.NoError(t, err)
		assert.Equal(t, api.ResponseFailure, resp.ResponseType)
		assert.Equal(t, api.ErrorNotFound, resp.ErrorType)
		assert.Contains(t, resp.Message, "Acme/Person/9")
	})

	t.Run("create echoes reservation", func(t *testing.T) {
		key := models.Key{ClientName: "Acme", EntityName: "Person"}.WithReservation("r-1")
		resp, err := h.Create(ctx, key, models.NewDataFromMap(map[string]string{"FirstName": "Bo"}))
		require.NoError(t, err)
		require.True(t, resp.IsSuccess())
		assert.Equal(t, "42", resp.Key.Value)
		assert.Equal(t, "r-1", resp.Key.ReservationID)
	})

	t.Run("update not implemented", func(t *testing.T) {
		resp, err := h.Update(ctx, models.NewKey("Acme", "Person", "1"), models.NewData())
		require.NoError(t, err)
		assert.Equal(t, api.ErrorNotImplemented, resp.ErrorType)
	})
}

func TestHub_CallTimesOut(t *testing.T) {
	handler := dispatch.HandlerFuncs{
		OnGet: func(ctx context.Context, key models.Key) (*models.Data, error) {
			time.Sleep(200 * time.Millisecond)
			return models.NewData(), nil
		},
	}
	h, _ := startAdapter(t, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := h.Get(ctx, models.NewKey("Acme", "Person", "1"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHub_DuplicateProcessID(t *testing.T) {
	h := New(nil, nil, testLogger())
	_, err := h.await("p")
	require.NoError(t, err)
	_, err = h.await("p")
	assert.ErrorIs(t, err, ErrDuplicateProcessID)
	h.forget("p")
	_, err = h.await("p")
	assert.NoError(t, err)
}

func TestWatchEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := adapter.Connect(ctx, memory.New(), testLogger())
	require.NoError(t, err)
	defer conn.Close()

	events, err := conn.SubscribeTopic(ctx, api.TopicEvent, "", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)

	pub := conn.Events("Acme")
	require.NoError(t, pub.SendUpdated(ctx, "Person", "1"))
	require.NoError(t, pub.SendDeleted(ctx, "Person", "2"))

	var calls atomic.Int32
	var got []api.EventType
	done := make(chan error, 1)
	go func() {
		done <- WatchEvents(ctx, events, testLogger(), func(ctx context.Context, ev *api.Event) error {
			// первая попытка обработки неудачна, событие вернется
			if calls.Add(1) == 1 {
				return errors.New("busy")
			}
			got = append(got, ev.EventType)
			if len(got) == 2 {
				return ErrStopWatching
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("events were not delivered")
	}
	assert.Equal(t, []api.EventType{api.EventUpdated, api.EventDeleted}, got)
	assert.Equal(t, int32(3), calls.Load())

	// остановка завершает событие, повторной доставки нет
	desc, err := events.Description(ctx)
	require.NoError(t, err)
	assert.Zero(t, desc.ActiveMessageCount)
}
