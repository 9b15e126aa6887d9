package transport

import (
	"context"
	"time"

	"github.com/iudanet/matchsync/internal/retry"
)

// withTransient restricts a policy to transient transport errors
func withTransient(p retry.Policy) retry.Policy {
	if p.IsRetryable == nil {
		p.IsRetryable = IsTransient
	}
	return p
}

type retryingSender struct {
	next   Sender
	policy retry.Policy
}

// NewRetryingSender retries transient Send failures
func NewRetryingSender(next Sender, policy retry.Policy) Sender {
	return &retryingSender{next: next, policy: withTransient(policy)}
}

func (s *retryingSender) Send(ctx context.Context, body []byte, properties map[string]string) error {
	return s.policy.Do(ctx, func(ctx context.Context) error {
		return s.next.Send(ctx, body, properties)
	})
}

type retryingReceiver struct {
	next   Receiver
	policy retry.Policy
}

// NewRetryingReceiver retries transient failures of every Receiver call
func NewRetryingReceiver(next Receiver, policy retry.Policy) Receiver {
	return &retryingReceiver{next: next, policy: withTransient(policy)}
}

func (r *retryingReceiver) Receive(ctx context.Context, wait time.Duration) (*Message, error) {
	return retry.DoValue(ctx, r.policy, func(ctx context.Context) (*Message, error) {
		return r.next.Receive(ctx, wait)
	})
}

func (r *retryingReceiver) Complete(ctx context.Context, msg *Message) error {
	return r.policy.Do(ctx, func(ctx context.Context) error {
		return r.next.Complete(ctx, msg)
	})
}

func (r *retryingReceiver) Abandon(ctx context.Context, msg *Message) error {
	return r.policy.Do(ctx, func(ctx context.Context) error {
		return r.next.Abandon(ctx, msg)
	})
}

func (r *retryingReceiver) DeadLetter(ctx context.Context, msg *Message, reason string) error {
	return r.policy.Do(ctx, func(ctx context.Context) error {
		return r.next.DeadLetter(ctx, msg, reason)
	})
}

func (r *retryingReceiver) Close() error {
	return r.next.Close()
}

// retryingBroker wraps every call of a Broker with a retry policy
type retryingBroker struct {
	next   Broker
	policy retry.Policy
}

// NewRetryingBroker wraps administration, senders and receivers of a broker with policy
func NewRetryingBroker(next Broker, policy retry.Policy) Broker {
	return &retryingBroker{next: next, policy: withTransient(policy)}
}

func (b *retryingBroker) CreateTopicIfMissing(ctx context.Context, topic string) error {
	return b.policy.Do(ctx, func(ctx context.Context) error {
		return b.next.CreateTopicIfMissing(ctx, topic)
	})
}

func (b *retryingBroker) GetTopic(ctx context.Context, topic string) (*TopicDescription, error) {
	return retry.DoValue(ctx, b.policy, func(ctx context.Context) (*TopicDescription, error) {
		return b.next.GetTopic(ctx, topic)
	})
}

func (b *retryingBroker) DeleteTopic(ctx context.Context, topic string) error {
	return b.policy.Do(ctx, func(ctx context.Context) error {
		return b.next.DeleteTopic(ctx, topic)
	})
}

func (b *retryingBroker) CreateSubscriptionIfMissing(ctx context.Context, desc SubscriptionDescription) (*SubscriptionDescription, error) {
	return retry.DoValue(ctx, b.policy, func(ctx context.Context) (*SubscriptionDescription, error) {
		return b.next.CreateSubscriptionIfMissing(ctx, desc)
	})
}

func (b *retryingBroker) GetSubscription(ctx context.Context, topic, name string) (*SubscriptionDescription, error) {
	return retry.DoValue(ctx, b.policy, func(ctx context.Context) (*SubscriptionDescription, error) {
		return b.next.GetSubscription(ctx, topic, name)
	})
}

func (b *retryingBroker) UpdateSubscription(ctx context.Context, desc SubscriptionDescription) error {
	return b.policy.Do(ctx, func(ctx context.Context) error {
		return b.next.UpdateSubscription(ctx, desc)
	})
}

func (b *retryingBroker) DeleteSubscription(ctx context.Context, topic, name string) error {
	return b.policy.Do(ctx, func(ctx context.Context) error {
		return b.next.DeleteSubscription(ctx, topic, name)
	})
}

func (b *retryingBroker) ListSubscriptions(ctx context.Context, topic string) ([]SubscriptionDescription, error) {
	return retry.DoValue(ctx, b.policy, func(ctx context.Context) ([]SubscriptionDescription, error) {
		return b.next.ListSubscriptions(ctx, topic)
	})
}

func (b *retryingBroker) DeadLetters(ctx context.Context, topic, name string, purge bool) ([]*Message, error) {
	return retry.DoValue(ctx, b.policy, func(ctx context.Context) ([]*Message, error) {
		return b.next.DeadLetters(ctx, topic, name, purge)
	})
}

func (b *retryingBroker) Sender(topic string) Sender {
	return NewRetryingSender(b.next.Sender(topic), b.policy)
}

func (b *retryingBroker) Receiver(topic, subscription string) Receiver {
	return NewRetryingReceiver(b.next.Receiver(topic, subscription), b.policy)
}

func (b *retryingBroker) Close() error {
	return b.next.Close()
}
