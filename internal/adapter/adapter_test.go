package adapter

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/retry"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/internal/transport/memory"
	"github.com/iudanet/matchsync/internal/transport/signing"
	"github.com/iudanet/matchsync/internal/validation"
	"github.com/iudanet/matchsync/pkg/api"
	"github.com/iudanet/matchsync/pkg/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 2, MinBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

func connect(t *testing.T, opts ...Option) (*Connection, *memory.Broker) {
	t.Helper()
	b := memory.New()
	conn, err := Connect(context.Background(), b, testLogger(), append([]Option{WithRetryPolicy(fastPolicy())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, b
}

func getHandler() dispatch.Handler {
	return dispatch.HandlerFuncs{
		OnGet: func(ctx context.Context, key models.Key) (*models.Data, error) {
			return models.NewDataFromMap(map[string]string{"Id": key.Value}), nil
		},
	}
}

func receiveResponse(t *testing.T, rcv transport.Receiver) *api.Response {
	t.Helper()
	msg, err := rcv.Receive(context.Background(), 2*time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg, "expected a response")
	require.NoError(t, rcv.Complete(context.Background(), msg))
	resp, err := api.DecodeResponse(msg.Body)
	require.NoError(t, err)
	return resp
}

func TestConnect_CreatesTopics(t *testing.T) {
	_, b := connect(t)
	for _, topic := range []string{api.TopicRequest, api.TopicResponse, api.TopicEvent} {
		_, err := b.GetTopic(context.Background(), topic)
		assert.NoError(t, err, topic)
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	conn, b := connect(t)

	tests := []struct {
		name       string
		client     string
		entity     string
		wantName   string
		wantFilter string
		wantErr    error
	}{
		{name: "all clients", wantName: "AllClients"},
		{name: "client", client: "Acme", wantName: "Acme", wantFilter: "ClientName = 'Acme'"},
		{name: "client and entity", client: "Acme", entity: "Person", wantName: "Acme.Person", wantFilter: "ClientName = 'Acme' AND EntityName = 'Person'"},
		{name: "entity without client", entity: "Person", wantErr: validation.ErrInvalidName},
		{name: "quote in client", client: "Ac'me", wantErr: validation.ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := conn.Subscribe(ctx, tt.client, tt.entity, SubscriptionOptions{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, sub.Name())
			assert.Equal(t, api.TopicRequest, sub.Topic())

			desc, err := b.GetSubscription(ctx, api.TopicRequest, tt.wantName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilter, desc.Filter.String())
		})
	}
}

func TestSubscription_ProcessOneMessage(t *testing.T) {
	ctx := context.Background()
	conn, _ := connect(t)

	sub, err := conn.Subscribe(ctx, "Acme", "Person", SubscriptionOptions{})
	require.NoError(t, err)
	responses, err := conn.SubscribeTopic(ctx, api.TopicResponse, "Acme", "", SubscriptionOptions{})
	require.NoError(t, err)

	for _, value := range []string{"1", "2", "3"} {
		req := api.NewRequest(api.RequestGet, "p-"+value, models.NewKey("Acme", "Person", value), nil)
		require.NoError(t, conn.SendRequest(ctx, req))
	}

	engine := dispatch.NewEngine(getHandler(), conn.Responses(), testLogger())
	outcome, err := sub.ProcessOneMessage(ctx, engine, Expectation{
		RequestType: api.RequestGet,
		ClientName:  "acme",
		KeyValue:    "2",
	})
	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeCompleted, outcome)

	resp := receiveResponse(t, responses.Receiver())
	assert.Equal(t, "p-2", resp.ProcessID)
	assert.True(t, resp.IsSuccess())

	// пропущенные запросы отправлены повторно
	length, err := sub.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	_, err = sub.ProcessOneMessage(ctx, engine, Expectation{KeyValue: "404"})
	assert.ErrorIs(t, err, ErrNoMatchingRequest)

	length, err = sub.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)
}

func TestExpectation_Matches(t *testing.T) {
	req := api.NewRequest(api.RequestUpdate, "p", models.NewKey("Acme", "Person", "7"), nil)

	assert.True(t, Expectation{}.Matches(req))
	assert.True(t, Expectation{RequestType: api.RequestUpdate, ClientName: "ACME", EntityName: "person", KeyValue: "7"}.Matches(req))
	assert.False(t, Expectation{RequestType: api.RequestGet}.Matches(req))
	assert.False(t, Expectation{ClientName: "Other"}.Matches(req))
	assert.False(t, Expectation{EntityName: "Order"}.Matches(req))
	assert.False(t, Expectation{KeyValue: "8"}.Matches(req))
}

func TestSubscription_RunRecreatesDeletedSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn, b := connect(t)

	sub, err := conn.Subscribe(ctx, "Acme", "", SubscriptionOptions{})
	require.NoError(t, err)
	responses, err := conn.SubscribeTopic(ctx, api.TopicResponse, "", "", SubscriptionOptions{})
	require.NoError(t, err)

	require.NoError(t, b.DeleteSubscription(ctx, api.TopicRequest, "Acme"))

	engine := dispatch.NewEngine(getHandler(), conn.Responses(), testLogger())
	recovery := retry.NewRecovery(5*time.Millisecond, 20*time.Millisecond, testLogger())
	done := make(chan error, 1)
	go func() {
		done <- sub.Run(ctx, engine, dispatch.ServeOptions{ReceiveTimeout: 50 * time.Millisecond}, recovery)
	}()

	require.Eventually(t, func() bool {
		_, err := b.GetSubscription(ctx, api.TopicRequest, "Acme")
		return err == nil
	}, 2*time.Second, 5*time.Millisecond)

	req := api.NewRequest(api.RequestGet, "p-run", models.NewKey("Acme", "Person", "1"), nil)
	require.NoError(t, conn.SendRequest(ctx, req))

	resp := receiveResponse(t, responses.Receiver())
	assert.Equal(t, "p-run", resp.ProcessID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestSubscription_Administration(t *testing.T) {
	ctx := context.Background()
	conn, _ := connect(t)

	sub, err := conn.Subscribe(ctx, "Acme", "", SubscriptionOptions{LockDuration: time.Minute})
	require.NoError(t, err)

	require.NoError(t, sub.SetLockDuration(ctx, 5*time.Second))
	require.NoError(t, sub.Disable(ctx))
	desc, err := sub.Description(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, desc.LockDuration)
	assert.Equal(t, transport.StatusDisabled, desc.Status)

	_, err = sub.Receiver().Receive(ctx, 0)
	assert.ErrorIs(t, err, transport.ErrReceiveDisabled)

	require.NoError(t, sub.Activate(ctx))
	assert.Error(t, sub.SetLockDuration(ctx, 0))

	require.NoError(t, conn.SendRequest(ctx, api.NewRequest(api.RequestGet, "p", models.NewKey("Acme", "Person", "1"), nil)))
	msg, err := sub.Receiver().Receive(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	require.NoError(t, sub.Receiver().DeadLetter(ctx, msg, "test"))

	dead, err := sub.FlushDeadLetters(ctx)
	require.NoError(t, err)
	assert.Len(t, dead, 1)
	dead, err = sub.FlushDeadLetters(ctx)
	require.NoError(t, err)
	assert.Empty(t, dead)

	require.NoError(t, sub.Delete(ctx))
	_, err = sub.Description(ctx)
	assert.ErrorIs(t, err, transport.ErrEntityNotFound)
}

func TestEventPublisher(t *testing.T) {
	ctx := context.Background()
	conn, _ := connect(t)

	events, err := conn.SubscribeTopic(ctx, api.TopicEvent, "Acme", "", SubscriptionOptions{})
	require.NoError(t, err)

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("CET", 3600))
	pub := conn.Events("Acme")
	require.NoError(t, pub.SendMoved(ctx, "Person", "1", "2",
		WithUserName("ann"),
		WithTimeStamp(at),
		WithExternalReference("ticket-9"),
	))
	require.NoError(t, pub.SendDeleted(ctx, "Person", "3"))
	assert.Error(t, pub.SendUpdated(ctx, "Person", ""), "key without value is not routable")

	msg, err := events.Receiver().Receive(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "Moved", msg.Property(api.PropertyEventType))

	ev, err := api.DecodeEvent(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, api.EventMoved, ev.EventType)
	assert.Equal(t, "1", ev.Key.Value)
	assert.Equal(t, "2", ev.NewID)
	assert.Equal(t, "ann", ev.UserName)
	assert.Equal(t, "ticket-9", ev.ExternalReference)
	assert.True(t, at.Equal(ev.TimeStamp))
	assert.Equal(t, time.UTC, ev.TimeStamp.Location())

	msg, err = events.Receiver().Receive(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "Deleted", msg.Property(api.PropertyEventType))
}

func TestConnection_Signed(t *testing.T) {
	ctx := context.Background()
	signer, err := signing.NewSigner(signing.Config{Secret: []byte("secret")})
	require.NoError(t, err)
	conn, b := connect(t, WithSigner(signer))

	sub, err := conn.Subscribe(ctx, "Acme", "", SubscriptionOptions{})
	require.NoError(t, err)

	// сообщение в обход подписи
	require.NoError(t, b.Sender(api.TopicRequest).Send(ctx, []byte(`{}`), map[string]string{api.PropertyClientName: "Acme"}))
	require.NoError(t, conn.SendRequest(ctx, api.NewRequest(api.RequestGet, "p-signed", models.NewKey("Acme", "Person", "1"), nil)))

	msg, err := sub.Receiver().Receive(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	req, err := api.DecodeRequest(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "p-signed", req.ProcessID)
	assert.NotEmpty(t, msg.Property(signing.SignatureProperty))
}
