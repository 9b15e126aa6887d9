// Package redis implements transport.Broker on Redis Streams.
//
// A topic is a stream and every subscription is a consumer group on it.
// The pending entries list of the group provides peek-lock: a message read
// by a consumer stays pending until it is acknowledged. Expired locks are
// taken over with XAUTOCLAIM, abandoned messages with XCLAIM.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/matchsync/internal/transport"
)

// DefaultPrefix is the key prefix used when Options.Prefix is empty
const DefaultPrefix = "matchsync"

// Options configures the connection
type Options struct {
	Addr     string
	Password string
	Prefix   string
	DB       int
}

// Broker is a transport.Broker backed by Redis
type Broker struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
}

var _ transport.Broker = (*Broker)(nil)

// New connects to Redis and checks the connection
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Broker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", opts.Addr, err)
	}
	return NewWithClient(client, opts.Prefix, logger), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, prefix string, logger *slog.Logger) *Broker {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Broker{client: client, prefix: prefix, logger: logger}
}

// Close closes the Redis client
func (b *Broker) Close() error {
	return b.client.Close()
}

func (b *Broker) topicsKey() string              { return b.prefix + ":topics" }
func (b *Broker) streamKey(topic string) string  { return b.prefix + ":topic:" + topic }
func (b *Broker) subsKey(topic string) string    { return b.prefix + ":subs:" + topic }
func (b *Broker) deadLetterKey(topic, name string) string {
	return b.prefix + ":dlq:" + topic + ":" + name
}
func (b *Broker) abandonedKey(topic, name string) string {
	return b.prefix + ":abandoned:" + topic + ":" + name
}

const (
	fieldBody       = "body"
	fieldProperties = "props"
)

// Sender returns a sender for topic
func (b *Broker) Sender(topic string) transport.Sender {
	return &sender{broker: b, topic: topic}
}

type sender struct {
	broker *Broker
	topic  string
}

func (s *sender) Send(ctx context.Context, body []byte, properties map[string]string) error {
	exists, err := s.broker.client.SIsMember(ctx, s.broker.topicsKey(), s.topic).Result()
	if err != nil {
		return fmt.Errorf("failed to check topic %s: %w", s.topic, err)
	}
	if !exists {
		return fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, s.topic)
	}

	props, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}
	err = s.broker.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.broker.streamKey(s.topic),
		Values: map[string]any{
			fieldBody:       string(body),
			fieldProperties: string(props),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add message to %s: %w", s.topic, err)
	}
	return nil
}

// mapError переводит ошибки Redis в ошибки транспорта
func mapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "NOGROUP") {
		return fmt.Errorf("%w: %s", transport.ErrEntityNotFound, fmt.Sprintf(format, args...))
	}
	if errors.Is(err, redis.ErrClosed) {
		return transport.ErrClosed
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func isBusyGroup(err error) bool {
	return err != nil && strings.Contains(err.Error(), "BUSYGROUP")
}
