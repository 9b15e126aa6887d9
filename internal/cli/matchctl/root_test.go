package matchctl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/config"
	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/sample"
	"github.com/iudanet/matchsync/internal/sample/storage/boltdb"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/internal/transport/memory"
	"github.com/iudanet/matchsync/pkg/api"
)

type sharedBroker struct {
	transport.Broker
}

func (sharedBroker) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	broker *memory.Broker
	out    *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := memory.New()
	t.Cleanup(func() { _ = b.Close() })
	return &harness{broker: b, out: &bytes.Buffer{}}
}

func (h *harness) connect(ctx context.Context, cfg *config.Config, secret string, logger *slog.Logger) (*adapter.Connection, error) {
	return adapter.Connect(ctx, sharedBroker{h.broker}, logger)
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	a := &app{
		info:    cli.BuildInfo{Version: "test"},
		term:    iocli.NewStdio(strings.NewReader(""), h.out, io.Discard),
		connect: h.connect,
	}
	cmd := newRootCommand(a)
	cmd.SetOut(h.out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--timeout", "5s"))
	return cmd.Execute()
}

func (h *harness) response(t *testing.T) *api.Response {
	t.Helper()
	resp, err := api.DecodeResponse(h.out.Bytes())
	require.NoError(t, err, h.out.String())
	return resp
}

// startAdapter обслуживает Acme.Person образцом адаптера на bbolt
func (h *harness) startAdapter(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "objects.db"), "")
	require.NoError(t, err)
	conn, err := adapter.Connect(ctx, sharedBroker{h.broker}, testLogger())
	require.NoError(t, err)
	sub, err := conn.Subscribe(ctx, "Acme", "Person", adapter.SubscriptionOptions{})
	require.NoError(t, err)

	svc := sample.NewService(store, nil, testLogger(), sample.Config{ClientName: "Acme", Entities: []string{"Person"}})
	engine := dispatch.NewEngine(svc, conn.Responses(), testLogger())

	done := make(chan error, 1)
	go func() {
		done <- sub.ProcessRequests(ctx, engine, dispatch.ServeOptions{ReceiveTimeout: 20 * time.Millisecond})
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		_ = store.Close()
	})
}

func TestRootCommand_Commands(t *testing.T) {
	cmd := NewRootCommand(cli.BuildInfo{}, iocli.NewStdio(strings.NewReader(""), io.Discard, io.Discard))
	paths := [][]string{
		{"request", "get"}, {"request", "create"}, {"request", "update"},
		{"event", "watch"},
		{"topic", "ensure"}, {"topic", "describe"}, {"topic", "delete"},
		{"subscription", "list"}, {"subscription", "describe"}, {"subscription", "delete"}, {"subscription", "deadletters"},
		{"version"},
	}
	for _, path := range paths {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestRootCommand_InvalidOutput(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("topic", "describe", "Request", "-o", "xml"))
}

func TestRequests(t *testing.T) {
	h := newHarness(t)
	h.startAdapter(t)

	require.NoError(t, h.run("request", "create", "Acme", "Person", "FirstName=Ann", "--reservation", "r-1"))
	created := h.response(t)
	assert.Equal(t, api.ResponseSuccess, created.ResponseType)
	assert.Equal(t, "r-1", created.Key.ReservationID)
	value := created.Key.Value
	require.NotEmpty(t, value)

	require.NoError(t, h.run("request", "get", "Acme", "Person", value))
	got := h.response(t)
	name, _ := got.Data.Property("FirstName")
	assert.Equal(t, "Ann", name)
	checkSum := got.Data.CheckSum()

	// без --checksum контрольная сумма читается через Get
	require.NoError(t, h.run("request", "update", "Acme", "Person", value, "FirstName=Bob"))
	assert.Equal(t, api.ResponseSuccess, h.response(t).ResponseType)

	// старая контрольная сумма: объект уже изменен
	err := h.run("request", "update", "Acme", "Person", value, "FirstName=Eve", "--checksum", checkSum)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, api.ErrorHasBeenUpdated, h.response(t).ErrorType)

	require.NoError(t, h.run("request", "update", "Acme", "Person", value, "FirstName=Eve", "--ignore-checksum"))
	require.NoError(t, h.run("request", "get", "Acme", "Person", value, "-o", "yaml"))
	assert.Contains(t, h.out.String(), "FirstName: Eve")

	err = h.run("request", "get", "Acme", "Person", "missing")
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, api.ErrorNotFound, h.response(t).ErrorType)

	assert.Error(t, h.run("request", "update", "Acme", "Person", value, "--checksum", "x", "--ignore-checksum"))
	assert.Error(t, h.run("request", "create", "Acme", "Person", "FirstName"))
}

func TestEventWatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// подписка создается первым запуском, события приходят после
	require.NoError(t, h.run("topic", "ensure", api.TopicEvent))
	conn, err := adapter.Connect(ctx, sharedBroker{h.broker}, testLogger())
	require.NoError(t, err)
	_, err = conn.SubscribeTopic(ctx, api.TopicEvent, "Acme", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)

	pub := conn.Events("Acme")
	require.NoError(t, pub.SendUpdated(ctx, "Person", "1"))
	require.NoError(t, pub.SendMoved(ctx, "Person", "1", "2"))

	require.NoError(t, h.run("event", "watch", "--client", "Acme", "--count", "2"))

	dec := json.NewDecoder(h.out)
	var first, second api.Event
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, api.EventUpdated, first.EventType)
	assert.Equal(t, api.EventMoved, second.EventType)
	assert.Equal(t, "2", second.NewID)
}

func TestAdministration(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	conn, err := adapter.Connect(ctx, sharedBroker{h.broker}, testLogger())
	require.NoError(t, err)
	sub, err := conn.SubscribeTopic(ctx, api.TopicEvent, "Ops", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)

	// испорченное сообщение уходит в dead letter
	require.NoError(t, h.broker.Sender(api.TopicEvent).Send(ctx, []byte("junk"), map[string]string{api.PropertyClientName: "Ops"}))
	msg, err := sub.Receiver().Receive(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.NoError(t, sub.Receiver().DeadLetter(ctx, msg, "InvalidEvent"))

	require.NoError(t, h.run("topic", "describe", api.TopicEvent))
	var topic transport.TopicDescription
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &topic))
	assert.Equal(t, 1, topic.SubscriptionCount)

	require.NoError(t, h.run("subscription", "list", api.TopicEvent))
	var subs []transport.SubscriptionDescription
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "Ops", subs[0].Name)

	require.NoError(t, h.run("subscription", "deadletters", api.TopicEvent, "Ops", "--purge"))
	var dead []messageView
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &dead))
	require.Len(t, dead, 1)
	assert.Equal(t, "junk", dead[0].Body)

	require.NoError(t, h.run("subscription", "describe", api.TopicEvent, "Ops"))
	var desc transport.SubscriptionDescription
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &desc))
	assert.Zero(t, desc.DeadLetterMessageCount)

	require.NoError(t, h.run("subscription", "delete", api.TopicEvent, "Ops"))
	assert.Contains(t, h.out.String(), "Deleted subscription Event/Ops")
	assert.Error(t, h.run("subscription", "describe", api.TopicEvent, "Ops"))

	require.NoError(t, h.run("topic", "delete", api.TopicEvent))
	assert.Error(t, h.run("topic", "describe", api.TopicEvent))
}
