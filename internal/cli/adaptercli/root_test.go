package adaptercli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/cli"
	"github.com/iudanet/matchsync/internal/cli/iocli"
	"github.com/iudanet/matchsync/internal/config"
	"github.com/iudanet/matchsync/internal/hub"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/internal/transport/memory"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

// sharedBroker не закрывается вместе с подключением команды
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
	dbPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := memory.New()
	t.Cleanup(func() { _ = b.Close() })
	return &harness{
		broker: b,
		out:    &bytes.Buffer{},
		dbPath: filepath.Join(t.TempDir(), "adapter.db"),
	}
}

func (h *harness) command(args ...string) *cobra.Command {
	a := &app{
		info: cli.BuildInfo{Version: "test"},
		term: iocli.NewStdio(strings.NewReader(""), h.out, io.Discard),
		connect: func(ctx context.Context, cfg *config.Config, secret string, logger *slog.Logger) (*adapter.Connection, error) {
			return adapter.Connect(ctx, sharedBroker{h.broker}, logger)
		},
	}
	cmd := newRootCommand(a)
	cmd.SetOut(h.out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--client", "Acme", "--entities", "Person", "--store", "sqlite", "--store-path", h.dbPath))
	return cmd
}

func TestRootCommand_Commands(t *testing.T) {
	cmd := NewRootCommand(cli.BuildInfo{}, iocli.NewStdio(strings.NewReader(""), io.Discard, io.Discard))
	for _, name := range []string{"run", "touch", "delete", "move", "list", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	output := cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
}

func TestRootCommand_RequiresClient(t *testing.T) {
	cmd := NewRootCommand(cli.BuildInfo{}, iocli.NewStdio(strings.NewReader(""), io.Discard, io.Discard))
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"list", "Person", "--store-path", filepath.Join(t.TempDir(), "a.db")})
	assert.ErrorIs(t, cmd.Execute(), config.ErrInvalidConfig)
}

func TestLocalChanges(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// хаб подписывается на события до изменений
	conn, err := adapter.Connect(ctx, sharedBroker{h.broker}, testLogger())
	require.NoError(t, err)
	events, err := conn.SubscribeTopic(ctx, api.TopicEvent, "Acme", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)

	require.NoError(t, h.command("touch", "Person", "1", "FirstName=Ann", "Address.City=Oslo").Execute())
	require.NoError(t, h.command("touch", "Person", "2", "FirstName=Bob").Execute())
	require.NoError(t, h.command("move", "Person", "2", "3").Execute())
	require.NoError(t, h.command("delete", "Person", "3").Execute())
	assert.Error(t, h.command("touch", "Order", "1", "Total=5").Execute())

	var got []*api.Event
	for range 4 {
		msg, err := events.Receiver().Receive(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, msg)
		ev, err := api.DecodeEvent(msg.Body)
		require.NoError(t, err)
		require.NoError(t, events.Receiver().Complete(ctx, msg))
		got = append(got, ev)
	}
	assert.Equal(t, api.EventUpdated, got[0].EventType)
	assert.Equal(t, "1", got[0].Key.Value)
	city, ok := got[0].Data.LookupPath("Address.City")
	assert.True(t, ok)
	assert.Equal(t, "Oslo", city)
	assert.Equal(t, api.EventMoved, got[2].EventType)
	assert.Equal(t, "3", got[2].NewID)
	assert.Equal(t, api.EventDeleted, got[3].EventType)

	h.out.Reset()
	require.NoError(t, h.command("list", "Person", "-o", "yaml").Execute())
	assert.Contains(t, h.out.String(), "value: \"1\"")
	assert.NotContains(t, h.out.String(), "value: \"3\"")
}

func TestRun_AnswersHub(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.command("touch", "Person", "1", "FirstName=Ann").Execute())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- h.command("run", "--concurrency", "2").ExecuteContext(ctx)
	}()

	conn, err := adapter.Connect(ctx, sharedBroker{h.broker}, testLogger())
	require.NoError(t, err)
	responses, err := conn.SubscribeTopic(ctx, api.TopicResponse, "Acme", "", adapter.SubscriptionOptions{})
	require.NoError(t, err)
	hb := hub.New(conn, responses, testLogger())
	go func() { _ = hb.Listen(ctx) }()

	// запрос без подписки адаптера был бы потерян
	require.Eventually(t, func() bool {
		_, err := h.broker.GetSubscription(ctx, api.TopicRequest, api.SubscriptionName("Acme", "Person"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	callCtx, callCancel := context.WithTimeout(ctx, 10*time.Second)
	defer callCancel()

	resp, err := hb.Get(callCtx, models.NewKey("Acme", "Person", "1"))
	require.NoError(t, err)
	require.True(t, resp.IsSuccess(), resp.String())
	name, ok := resp.Data.Property("FirstName")
	assert.True(t, ok)
	assert.Equal(t, "Ann", name)
	assert.NotEmpty(t, resp.Data.CheckSum())

	resp, err = hb.Get(callCtx, models.NewKey("Acme", "Person", "9"))
	require.NoError(t, err)
	assert.Equal(t, api.ErrorNotFound, resp.ErrorType)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("adapter did not stop")
	}
}
