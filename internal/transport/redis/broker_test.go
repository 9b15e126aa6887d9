package redis

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/transport"
)

const testTopic = "Request"

func newTestBroker(t *testing.T) *Broker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := NewWithClient(client, "test", slog.New(slog.NewTextHandler(os.Stdout, nil)))
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.CreateTopicIfMissing(context.Background(), testTopic))
	return b
}

func createSubscription(t *testing.T, b *Broker, name string, filter *transport.Filter) {
	t.Helper()
	_, err := b.CreateSubscriptionIfMissing(context.Background(), transport.SubscriptionDescription{
		Topic:  testTopic,
		Name:   name,
		Filter: filter,
	})
	require.NoError(t, err)
}

func TestBroker_SendReceiveComplete(t *testing.T) {
	ctx := context.Background()
	b := newTestBroker(t)
	createSubscription(t, b, "Acme", transport.NewFilter(transport.Equals("ClientName", "Acme")))

	props := map[string]string{"ClientName": "Acme", "RequestType": "Get"}
	require.NoError(t, b.Sender(testTopic).Send(ctx, []byte(`{"x":1}`), props))

	rcv := b.Receiver(testTopic, "Acme")
	msg, err := rcv.Receive(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.Equal(t, `{"x":1}`, string(msg.Body))
	assert.Equal(t, props, msg.Properties)
	assert.Equal(t, 1, msg.DeliveryCount)
	assert.False(t, msg.EnqueuedAt.IsZero())

	require.NoError(t, rcv.Complete(ctx, msg))

	next, err := rcv.Receive(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestBroker_FilterSkipsOtherClients(t *testing.T) {
	ctx := context.Background()
	b := newTestBroker(t)
	createSubscription(t, b, "Acme", transport.NewFilter(transport.Equals("ClientName", "Acme")))

	s := b.Sender(testTopic)
	require.NoError(t, s.Send(ctx, []byte("other"), map[string]string{"ClientName": "Other"}))
	require.NoError(t, s.Send(ctx, []byte("mine"), map[string]string{"ClientName": "acme"}))

	msg, err := b.Receiver(testTopic, "Acme").Receive(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "mine", string(msg.Body))
}

func TestBroker_FanOut(t *testing.T) {
	ctx := context.Background()
	b := newTestBroker(t)
	createSubscription(t, b, "a", nil)
	createSubscription(t, b, "b", nil)

	require.NoError(t, b.Sender(testTopic).Send(ctx, []byte("x"), nil))

	for _, name := range []string{"a", "b"} {
		msg, err := b.Receiver(testTopic, name).Receive(ctx, 0)
		require.NoError(t, err)
		require.NotNil(t, msg, name)
	}
}

func TestBroker_Administration(t *testing.T) {
	ctx := context.Background()
	b := newTestBroker(t)
	createSubscription(t, b, "Acme", transport.NewFilter(transport.Equals("ClientName", "Acme")))

	// повторное создание возвращает существующую подписку
	again, err := b.CreateSubscriptionIfMissing(ctx, transport.SubscriptionDescription{Topic: testTopic, Name: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, again.Filter)
	assert.Equal(t, "ClientName = 'Acme'", again.Filter.String())
	assert.Equal(t, transport.StatusActive, again.Status)

	again.Status = transport.StatusDisabled
	again.LockDuration = time.Minute
	require.NoError(t, b.UpdateSubscription(ctx, *again))

	desc, err := b.GetSubscription(ctx, testTopic, "Acme")
	require.NoError(t, err)
	assert.Equal(t, transport.StatusDisabled, desc.Status)
	assert.Equal(t, time.Minute, desc.LockDuration)

	_, err = b.Receiver(testTopic, "Acme").Receive(ctx, 0)
	assert.ErrorIs(t, err, transport.ErrReceiveDisabled)

	list, err := b.ListSubscriptions(ctx, testTopic)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)

	topic, err := b.GetTopic(ctx, testTopic)
	require.NoError(t, err)
	assert.Equal(t, 1, topic.SubscriptionCount)

	require.NoError(t, b.DeleteSubscription(ctx, testTopic, "Acme"))
	_, err = b.Receiver(testTopic, "Acme").Receive(ctx, 0)
	assert.ErrorIs(t, err, transport.ErrEntityNotFound)
	assert.ErrorIs(t, b.DeleteSubscription(ctx, testTopic, "Acme"), transport.ErrEntityNotFound)

	require.NoError(t, b.DeleteTopic(ctx, testTopic))
	assert.ErrorIs(t, b.Sender(testTopic).Send(ctx, nil, nil), transport.ErrEntityNotFound)
}

func TestBroker_DeadLetter(t *testing.T) {
	ctx := context.Background()
	b := newTestBroker(t)
	createSubscription(t, b, "s", nil)

	require.NoError(t, b.Sender(testTopic).Send(ctx, []byte("poison"), map[string]string{"A": "1"}))
	rcv := b.Receiver(testTopic, "s")
	msg, err := rcv.Receive(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, msg)

	require.NoError(t, rcv.DeadLetter(ctx, msg, "cannot decode"))

	dead, err := b.DeadLetters(ctx, testTopic, "s", true)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, msg.ID, dead[0].ID)
	assert.Equal(t, "poison", string(dead[0].Body))
	assert.Equal(t, "cannot decode", dead[0].Properties[DeadLetterReasonProperty])

	dead, err = b.DeadLetters(ctx, testTopic, "s", false)
	require.NoError(t, err)
	assert.Empty(t, dead)
}

func TestBroker_UndecodableMessageIsDeadLettered(t *testing.T) {
	ctx := context.Background()
	b := newTestBroker(t)
	_, err := b.CreateSubscriptionIfMissing(ctx, transport.SubscriptionDescription{
		Topic:            testTopic,
		Name:             "s",
		LockDuration:     time.Millisecond,
		MaxDeliveryCount: 2,
	})
	require.NoError(t, err)

	err = b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.streamKey(testTopic),
		Values: map[string]any{fieldBody: "payload", fieldProperties: "not-json"},
	}).Err()
	require.NoError(t, err)

	rcv := b.Receiver(testTopic, "s")
	for range 3 {
		msg, err := rcv.Receive(ctx, 0)
		require.NoError(t, err)
		assert.Nil(t, msg)
		time.Sleep(5 * time.Millisecond)
	}

	dead, err := b.DeadLetters(ctx, testTopic, "s", false)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, "payload", string(dead[0].Body))
	assert.Equal(t, DeadLetterReasonInvalidMessage, dead[0].Properties[DeadLetterReasonProperty])

	desc, err := b.GetSubscription(ctx, testTopic, "s")
	require.NoError(t, err)
	assert.Zero(t, desc.ActiveMessageCount)
}

func TestStreamTime(t *testing.T) {
	assert.Equal(t, time.UnixMilli(1700000000000), streamTime("1700000000000-3"))
	assert.True(t, streamTime("garbage").IsZero())
}
