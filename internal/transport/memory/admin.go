package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/iudanet/matchsync/internal/transport"
)

func (b *Broker) CreateTopicIfMissing(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return transport.ErrClosed
	}
	if _, ok := b.topics[name]; !ok {
		b.topics[name] = &topic{name: name, subs: make(map[string]*subscription)}
	}
	return nil
}

func (b *Broker) GetTopic(ctx context.Context, name string) (*transport.TopicDescription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[name]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, name)
	}
	return &transport.TopicDescription{Name: t.name, SubscriptionCount: len(t.subs)}, nil
}

func (b *Broker) DeleteTopic(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[name]
	if !ok {
		return fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, name)
	}
	delete(b.topics, name)
	for _, s := range t.subs {
		s.notify()
	}
	return nil
}

func (b *Broker) CreateSubscriptionIfMissing(ctx context.Context, desc transport.SubscriptionDescription) (*transport.SubscriptionDescription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[desc.Topic]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, desc.Topic)
	}
	if s, ok := t.subs[desc.Name]; ok {
		return s.describe(), nil
	}
	s := &subscription{
		desc:   desc.WithDefaults(),
		locked: make(map[string]*entry),
		signal: make(chan struct{}),
	}
	t.subs[desc.Name] = s
	return s.describe(), nil
}

func (b *Broker) GetSubscription(ctx context.Context, topicName, name string) (*transport.SubscriptionDescription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.subscription(topicName, name)
	if err != nil {
		return nil, err
	}
	return s.describe(), nil
}

// UpdateSubscription changes status, lock duration and max delivery count.
// The filter of an existing subscription is kept.
func (b *Broker) UpdateSubscription(ctx context.Context, desc transport.SubscriptionDescription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.subscription(desc.Topic, desc.Name)
	if err != nil {
		return err
	}
	desc = desc.WithDefaults()
	s.desc.Status = desc.Status
	s.desc.LockDuration = desc.LockDuration
	s.desc.MaxDeliveryCount = desc.MaxDeliveryCount
	s.notify()
	return nil
}

func (b *Broker) DeleteSubscription(ctx context.Context, topicName, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.subscription(topicName, name)
	if err != nil {
		return err
	}
	delete(b.topics[topicName].subs, name)
	s.notify()
	return nil
}

func (b *Broker) ListSubscriptions(ctx context.Context, topicName string) ([]transport.SubscriptionDescription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[topicName]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, topicName)
	}
	out := make([]transport.SubscriptionDescription, 0, len(t.subs))
	for _, s := range t.subs {
		out = append(out, *s.describe())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (b *Broker) DeadLetters(ctx context.Context, topicName, name string, purge bool) ([]*transport.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.subscription(topicName, name)
	if err != nil {
		return nil, err
	}
	out := make([]*transport.Message, len(s.deadLetters))
	copy(out, s.deadLetters)
	if purge {
		s.deadLetters = nil
	}
	return out, nil
}

func (s *subscription) describe() *transport.SubscriptionDescription {
	d := s.desc
	d.ActiveMessageCount = int64(len(s.available) + len(s.locked))
	d.DeadLetterMessageCount = int64(len(s.deadLetters))
	return &d
}
