package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/iudanet/matchsync/internal/transport"
)

func (b *Broker) CreateTopicIfMissing(ctx context.Context, topic string) error {
	if err := b.client.SAdd(ctx, b.topicsKey(), topic).Err(); err != nil {
		return mapError(err, "failed to create topic %s", topic)
	}
	return nil
}

func (b *Broker) topicExists(ctx context.Context, topic string) error {
	ok, err := b.client.SIsMember(ctx, b.topicsKey(), topic).Result()
	if err != nil {
		return mapError(err, "failed to check topic %s", topic)
	}
	if !ok {
		return fmt.Errorf("%w: topic %s", transport.ErrEntityNotFound, topic)
	}
	return nil
}

func (b *Broker) GetTopic(ctx context.Context, topic string) (*transport.TopicDescription, error) {
	if err := b.topicExists(ctx, topic); err != nil {
		return nil, err
	}
	n, err := b.client.HLen(ctx, b.subsKey(topic)).Result()
	if err != nil {
		return nil, mapError(err, "failed to count subscriptions of %s", topic)
	}
	return &transport.TopicDescription{Name: topic, SubscriptionCount: int(n)}, nil
}

func (b *Broker) DeleteTopic(ctx context.Context, topic string) error {
	subs, err := b.ListSubscriptions(ctx, topic)
	if err != nil {
		return err
	}
	for _, s := range subs {
		if err := b.DeleteSubscription(ctx, topic, s.Name); err != nil {
			return err
		}
	}
	_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.streamKey(topic), b.subsKey(topic))
		pipe.SRem(ctx, b.topicsKey(), topic)
		return nil
	})
	if err != nil {
		return mapError(err, "failed to delete topic %s", topic)
	}
	return nil
}

func (b *Broker) loadSubscription(ctx context.Context, topic, name string) (*transport.SubscriptionDescription, error) {
	raw, err := b.client.HGet(ctx, b.subsKey(topic), name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: subscription %s/%s", transport.ErrEntityNotFound, topic, name)
	}
	if err != nil {
		return nil, mapError(err, "failed to load subscription %s/%s", topic, name)
	}
	var desc transport.SubscriptionDescription
	if err := json.Unmarshal([]byte(raw), &desc); err != nil {
		return nil, fmt.Errorf("failed to decode subscription %s/%s: %w", topic, name, err)
	}
	d := desc.WithDefaults()
	return &d, nil
}

func (b *Broker) saveSubscription(ctx context.Context, desc transport.SubscriptionDescription, onlyIfMissing bool) (bool, error) {
	desc.ActiveMessageCount = 0
	desc.DeadLetterMessageCount = 0
	raw, err := json.Marshal(desc)
	if err != nil {
		return false, fmt.Errorf("failed to encode subscription: %w", err)
	}
	if onlyIfMissing {
		return b.client.HSetNX(ctx, b.subsKey(desc.Topic), desc.Name, raw).Result()
	}
	return true, b.client.HSet(ctx, b.subsKey(desc.Topic), desc.Name, raw).Err()
}

func (b *Broker) CreateSubscriptionIfMissing(ctx context.Context, desc transport.SubscriptionDescription) (*transport.SubscriptionDescription, error) {
	if err := b.topicExists(ctx, desc.Topic); err != nil {
		return nil, err
	}
	desc = desc.WithDefaults()

	created, err := b.saveSubscription(ctx, desc, true)
	if err != nil {
		return nil, mapError(err, "failed to create subscription %s/%s", desc.Topic, desc.Name)
	}
	if created {
		// группа читает только сообщения, отправленные после ее создания
		err := b.client.XGroupCreateMkStream(ctx, b.streamKey(desc.Topic), desc.Name, "$").Err()
		if err != nil && !isBusyGroup(err) {
			return nil, mapError(err, "failed to create consumer group %s/%s", desc.Topic, desc.Name)
		}
		b.logger.Info("Subscription created",
			"topic", desc.Topic,
			"subscription", desc.Name,
			"filter", desc.Filter.String(),
		)
	}
	return b.GetSubscription(ctx, desc.Topic, desc.Name)
}

func (b *Broker) GetSubscription(ctx context.Context, topic, name string) (*transport.SubscriptionDescription, error) {
	desc, err := b.loadSubscription(ctx, topic, name)
	if err != nil {
		return nil, err
	}
	b.fillCounts(ctx, desc)
	return desc, nil
}

// fillCounts is best effort: counters are informational
func (b *Broker) fillCounts(ctx context.Context, desc *transport.SubscriptionDescription) {
	if n, err := b.client.XLen(ctx, b.deadLetterKey(desc.Topic, desc.Name)).Result(); err == nil {
		desc.DeadLetterMessageCount = n
	}

	groups, err := b.client.XInfoGroups(ctx, b.streamKey(desc.Topic)).Result()
	if err != nil {
		return
	}
	for _, g := range groups {
		if g.Name != desc.Name {
			continue
		}
		unread := int64(0)
		if entries, err := b.client.XRange(ctx, b.streamKey(desc.Topic), g.LastDeliveredID, "+").Result(); err == nil {
			unread = int64(len(entries))
			if unread > 0 && entries[0].ID == g.LastDeliveredID {
				unread--
			}
		}
		desc.ActiveMessageCount = g.Pending + unread
	}
}

// UpdateSubscription changes status, lock duration and max delivery count; the filter is kept
func (b *Broker) UpdateSubscription(ctx context.Context, desc transport.SubscriptionDescription) error {
	current, err := b.loadSubscription(ctx, desc.Topic, desc.Name)
	if err != nil {
		return err
	}
	desc = desc.WithDefaults()
	current.Status = desc.Status
	current.LockDuration = desc.LockDuration
	current.MaxDeliveryCount = desc.MaxDeliveryCount
	if _, err := b.saveSubscription(ctx, *current, false); err != nil {
		return mapError(err, "failed to update subscription %s/%s", desc.Topic, desc.Name)
	}
	return nil
}

func (b *Broker) DeleteSubscription(ctx context.Context, topic, name string) error {
	n, err := b.client.HDel(ctx, b.subsKey(topic), name).Result()
	if err != nil {
		return mapError(err, "failed to delete subscription %s/%s", topic, name)
	}
	if n == 0 {
		return fmt.Errorf("%w: subscription %s/%s", transport.ErrEntityNotFound, topic, name)
	}
	if err := b.client.XGroupDestroy(ctx, b.streamKey(topic), name).Err(); err != nil && !errors.Is(err, redis.Nil) {
		b.logger.Warn("Failed to destroy consumer group", "topic", topic, "subscription", name, "error", err)
	}
	if err := b.client.Del(ctx, b.deadLetterKey(topic, name), b.abandonedKey(topic, name)).Err(); err != nil {
		return mapError(err, "failed to delete subscription queues %s/%s", topic, name)
	}
	return nil
}

func (b *Broker) ListSubscriptions(ctx context.Context, topic string) ([]transport.SubscriptionDescription, error) {
	if err := b.topicExists(ctx, topic); err != nil {
		return nil, err
	}
	names, err := b.client.HKeys(ctx, b.subsKey(topic)).Result()
	if err != nil {
		return nil, mapError(err, "failed to list subscriptions of %s", topic)
	}
	sort.Strings(names)
	out := make([]transport.SubscriptionDescription, 0, len(names))
	for _, name := range names {
		desc, err := b.GetSubscription(ctx, topic, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *desc)
	}
	return out, nil
}

func (b *Broker) DeadLetters(ctx context.Context, topic, name string, purge bool) ([]*transport.Message, error) {
	if _, err := b.loadSubscription(ctx, topic, name); err != nil {
		return nil, err
	}
	key := b.deadLetterKey(topic, name)
	entries, err := b.client.XRange(ctx, key, "-", "+").Result()
	if err != nil {
		return nil, mapError(err, "failed to read dead letters of %s/%s", topic, name)
	}
	out := make([]*transport.Message, 0, len(entries))
	for _, e := range entries {
		msg, err := decodeMessage(e)
		if err != nil {
			return nil, err
		}
		if id, ok := e.Values["original_id"].(string); ok {
			msg.ID = id
		}
		out = append(out, msg)
	}
	if purge && len(entries) > 0 {
		if err := b.client.Del(ctx, key).Err(); err != nil {
			return nil, mapError(err, "failed to purge dead letters of %s/%s", topic, name)
		}
	}
	return out, nil
}
