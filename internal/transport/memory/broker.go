// Package memory implements transport.Broker inside the process.
// It is used by tests and single-process runs.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/iudanet/matchsync/internal/transport"
)

// DeadLetterReasonProperty holds the reason passed to DeadLetter
const DeadLetterReasonProperty = "DeadLetterReason"

// Broker is an in-memory topic/subscription broker
type Broker struct {
	topics map[string]*topic
	seq    uint64
	mu     sync.Mutex
	closed bool
}

type topic struct {
	subs map[string]*subscription
	name string
}

type subscription struct {
	locked      map[string]*entry
	signal      chan struct{}
	desc        transport.SubscriptionDescription
	available   []*entry
	deadLetters []*transport.Message
}

type entry struct {
	lockedUntil time.Time
	msg         transport.Message
	seq         uint64 // порядок отправки
}

var _ transport.Broker = (*Broker)(nil)

// New creates an empty broker
func New() *Broker {
	return &Broker{topics: make(map[string]*topic)}
}

// notify будит всех ожидающих Receive
func (s *subscription) notify() {
	close(s.signal)
	s.signal = make(chan struct{})
}

// expireLocks returns messages with expired locks to the queue
func (s *subscription) expireLocks(now time.Time) {
	expired := false
	for token, e := range s.locked {
		if !now.Before(e.lockedUntil) {
			delete(s.locked, token)
			e.msg.LockToken = ""
			s.available = append([]*entry{e}, s.available...)
			expired = true
		}
	}
	if expired {
		sort.SliceStable(s.available, func(i, j int) bool {
			return s.available[i].seq < s.available[j].seq
		})
	}
}

func (s *subscription) nextExpiry() time.Time {
	var next time.Time
	for _, e := range s.locked {
		if next.IsZero() || e.lockedUntil.Before(next) {
			next = e.lockedUntil
		}
	}
	return next
}

func (s *subscription) deadLetter(e *entry, reason string) {
	msg := e.msg
	msg.LockToken = ""
	msg.Properties = maps.Clone(msg.Properties)
	if msg.Properties == nil {
		msg.Properties = make(map[string]string)
	}
	msg.Properties[DeadLetterReasonProperty] = reason
	s.deadLetters = append(s.deadLetters, &msg)
}

// take pops the next deliverable message and locks it
func (s *subscription) take(now time.Time) *transport.Message {
	for len(s.available) > 0 {
		e := s.available[0]
		s.available = s.available[1:]
		if e.msg.DeliveryCount >= s.desc.MaxDeliveryCount {
			s.deadLetter(e, "MaxDeliveryCountExceeded")
			continue
		}
		e.msg.DeliveryCount++
		e.msg.LockToken = ulid.Make().String()
		e.lockedUntil = now.Add(s.desc.LockDuration)
		s.locked[e.msg.LockToken] = e

		out := e.msg
		out.Properties = maps.Clone(e.msg.Properties)
		return &out
	}
	return nil
}

func (b *Broker) subscription(topicName, name string) (*subscription, error) {
	if b.closed {
		return nil, transport.ErrClosed
	}
	t, ok := b.topics[topicName]
	if !ok {
		return nil, fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, topicName)
	}
	s, ok := t.subs[name]
	if !ok {
		return nil, fmt.Errorf("%w: subscription %s/%s", transport.ErrEntityNotFound, topicName, name)
	}
	return s, nil
}

func (b *Broker) publish(topicName string, body []byte, properties map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return transport.ErrClosed
	}
	t, ok := b.topics[topicName]
	if !ok {
		return fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, topicName)
	}

	id := ulid.Make()
	b.seq++
	for _, s := range t.subs {
		if !s.desc.Filter.Match(properties) {
			continue
		}
		s.available = append(s.available, &entry{seq: b.seq, msg: transport.Message{
			ID:         id.String(),
			Body:       append([]byte(nil), body...),
			Properties: maps.Clone(properties),
			EnqueuedAt: ulid.Time(id.Time()),
		}})
		s.notify()
	}
	return nil
}

// Sender returns a sender for topic
func (b *Broker) Sender(topicName string) transport.Sender {
	return &sender{broker: b, topic: topicName}
}

// Receiver returns a peek-lock receiver for a subscription
func (b *Broker) Receiver(topicName, subscription string) transport.Receiver {
	return &receiver{broker: b, topic: topicName, name: subscription}
}

// Close wakes up all receivers; further calls fail with transport.ErrClosed
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, t := range b.topics {
		for _, s := range t.subs {
			s.notify()
		}
	}
	return nil
}

type sender struct {
	broker *Broker
	topic  string
}

func (s *sender) Send(ctx context.Context, body []byte, properties map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.broker.publish(s.topic, body, properties)
}

type receiver struct {
	broker *Broker
	topic  string
	name   string
}

func (r *receiver) Receive(ctx context.Context, wait time.Duration) (*transport.Message, error) {
	deadline := time.Now().Add(wait)

	for {
		r.broker.mu.Lock()
		s, err := r.broker.subscription(r.topic, r.name)
		if err != nil {
			r.broker.mu.Unlock()
			return nil, err
		}
		if s.desc.Status == transport.StatusDisabled {
			r.broker.mu.Unlock()
			return nil, fmt.Errorf("%w: %s/%s", transport.ErrReceiveDisabled, r.topic, r.name)
		}

		now := time.Now()
		s.expireLocks(now)
		if msg := s.take(now); msg != nil {
			r.broker.mu.Unlock()
			return msg, nil
		}

		wakeAt := deadline
		if next := s.nextExpiry(); !next.IsZero() && next.Before(wakeAt) {
			wakeAt = next
		}
		signal := s.signal
		r.broker.mu.Unlock()

		if !now.Before(deadline) {
			return nil, nil
		}

		timer := time.NewTimer(wakeAt.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-signal:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// locked finds a message that is still locked by this receiver
func (r *receiver) locked(msg *transport.Message) (*subscription, *entry, error) {
	s, err := r.broker.subscription(r.topic, r.name)
	if err != nil {
		return nil, nil, err
	}
	s.expireLocks(time.Now())
	e, ok := s.locked[msg.LockToken]
	if !ok {
		return nil, nil, fmt.Errorf("%w: message %s", transport.ErrLockLost, msg.ID)
	}
	return s, e, nil
}

func (r *receiver) Complete(ctx context.Context, msg *transport.Message) error {
	r.broker.mu.Lock()
	defer r.broker.mu.Unlock()

	s, _, err := r.locked(msg)
	if err != nil {
		return err
	}
	delete(s.locked, msg.LockToken)
	return nil
}

func (r *receiver) Abandon(ctx context.Context, msg *transport.Message) error {
	r.broker.mu.Lock()
	defer r.broker.mu.Unlock()

	s, e, err := r.locked(msg)
	if err != nil {
		return err
	}
	delete(s.locked, msg.LockToken)
	e.msg.LockToken = ""
	s.available = append([]*entry{e}, s.available...)
	s.notify()
	return nil
}

func (r *receiver) DeadLetter(ctx context.Context, msg *transport.Message, reason string) error {
	r.broker.mu.Lock()
	defer r.broker.mu.Unlock()

	s, e, err := r.locked(msg)
	if err != nil {
		return err
	}
	delete(s.locked, msg.LockToken)
	s.deadLetter(e, reason)
	return nil
}

func (r *receiver) Close() error {
	return nil
}
