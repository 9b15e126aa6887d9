package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iudanet/matchsync/internal/transport"
)

const (
	// DeadLetterReasonProperty holds the reason passed to DeadLetter
	DeadLetterReasonProperty = "DeadLetterReason"
	// DeadLetterReasonInvalidMessage marks stream entries whose fields cannot be decoded
	DeadLetterReasonInvalidMessage = "InvalidMessage"
)

type receiver struct {
	broker   *Broker
	topic    string
	name     string
	consumer string
}

// Receiver returns a peek-lock receiver. Every receiver is a separate consumer of the group.
func (b *Broker) Receiver(topic, subscription string) transport.Receiver {
	return &receiver{
		broker:   b,
		topic:    topic,
		name:     subscription,
		consumer: uuid.NewString(),
	}
}

func (r *receiver) stream() string { return r.broker.streamKey(r.topic) }

func (r *receiver) Receive(ctx context.Context, wait time.Duration) (*transport.Message, error) {
	desc, err := r.broker.loadSubscription(ctx, r.topic, r.name)
	if err != nil {
		return nil, err
	}
	if desc.Status == transport.StatusDisabled {
		return nil, fmt.Errorf("%w: %s/%s", transport.ErrReceiveDisabled, r.topic, r.name)
	}

	deadline := time.Now().Add(wait)
	for {
		xmsg, err := r.next(ctx, desc, time.Until(deadline))
		if err != nil {
			return nil, err
		}
		if xmsg == nil {
			return nil, nil
		}

		msg, ok, err := r.accept(ctx, desc, *xmsg)
		if err != nil {
			return nil, err
		}
		if ok {
			return msg, nil
		}
		if !time.Now().Before(deadline) {
			return nil, nil
		}
	}
}

// next returns an abandoned message, a message with an expired lock or a new one
func (r *receiver) next(ctx context.Context, desc *transport.SubscriptionDescription, wait time.Duration) (*redis.XMessage, error) {
	client := r.broker.client

	for {
		id, err := client.LPop(ctx, r.broker.abandonedKey(r.topic, r.name)).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return nil, mapError(err, "failed to read abandoned messages of %s/%s", r.topic, r.name)
		}
		claimed, err := client.XClaim(ctx, &redis.XClaimArgs{
			Stream:   r.stream(),
			Group:    r.name,
			Consumer: r.consumer,
			Messages: []string{id},
		}).Result()
		if err != nil {
			return nil, mapError(err, "failed to claim abandoned message %s", id)
		}
		// уже подтвержденные сообщения XCLAIM не возвращает
		if len(claimed) > 0 {
			return &claimed[0], nil
		}
	}

	expired, _, err := client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   r.stream(),
		Group:    r.name,
		Consumer: r.consumer,
		MinIdle:  desc.LockDuration,
		Start:    "0-0",
		Count:    1,
	}).Result()
	if err != nil {
		return nil, mapError(err, "failed to claim expired messages of %s/%s", r.topic, r.name)
	}
	if len(expired) > 0 {
		return &expired[0], nil
	}

	block := wait
	if block <= 0 {
		block = -1 // без BLOCK
	}
	streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    r.name,
		Consumer: r.consumer,
		Streams:  []string{r.stream(), ">"},
		Count:    1,
		Block:    block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, mapError(err, "failed to read %s/%s", r.topic, r.name)
	}
	for _, s := range streams {
		if len(s.Messages) > 0 {
			return &s.Messages[0], nil
		}
	}
	return nil, nil
}

// accept applies the filter and the delivery limit to a claimed message
func (r *receiver) accept(ctx context.Context, desc *transport.SubscriptionDescription, xmsg redis.XMessage) (*transport.Message, bool, error) {
	msg, err := decodeMessage(xmsg)
	if err != nil {
		// повторная доставка не поможет, сообщение уходит в dead letters сразу
		r.broker.logger.Error("Undecodable message",
			"topic", r.topic,
			"subscription", r.name,
			"message_id", xmsg.ID,
			"error", err,
		)
		if err := r.deadLetter(ctx, msg, DeadLetterReasonInvalidMessage); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	if !desc.Filter.Match(msg.Properties) {
		// сообщение не для этой подписки
		if err := r.broker.client.XAck(ctx, r.stream(), r.name, xmsg.ID).Err(); err != nil {
			return nil, false, mapError(err, "failed to skip message %s", xmsg.ID)
		}
		return nil, false, nil
	}

	pending, err := r.pending(ctx, xmsg.ID)
	if err != nil {
		return nil, false, err
	}
	if pending == nil {
		return nil, false, nil
	}
	msg.DeliveryCount = int(pending.RetryCount)
	msg.LockToken = lockToken(r.consumer, pending.RetryCount)

	if msg.DeliveryCount > desc.MaxDeliveryCount {
		if err := r.deadLetter(ctx, msg, "MaxDeliveryCountExceeded"); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return msg, true, nil
}

func (r *receiver) pending(ctx context.Context, id string) (*redis.XPendingExt, error) {
	entries, err := r.broker.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: r.stream(),
		Group:  r.name,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil {
		return nil, mapError(err, "failed to read pending entry %s", id)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func lockToken(consumer string, deliveryCount int64) string {
	return consumer + "/" + strconv.FormatInt(deliveryCount, 10)
}

// checkLock verifies that msg is still locked by this receiver
func (r *receiver) checkLock(ctx context.Context, msg *transport.Message) error {
	p, err := r.pending(ctx, msg.ID)
	if err != nil {
		return err
	}
	if p == nil || lockToken(p.Consumer, p.RetryCount) != msg.LockToken {
		return fmt.Errorf("%w: message %s", transport.ErrLockLost, msg.ID)
	}
	return nil
}

func (r *receiver) Complete(ctx context.Context, msg *transport.Message) error {
	if err := r.checkLock(ctx, msg); err != nil {
		return err
	}
	n, err := r.broker.client.XAck(ctx, r.stream(), r.name, msg.ID).Result()
	if err != nil {
		return mapError(err, "failed to complete message %s", msg.ID)
	}
	if n == 0 {
		return fmt.Errorf("%w: message %s", transport.ErrLockLost, msg.ID)
	}
	return nil
}

func (r *receiver) Abandon(ctx context.Context, msg *transport.Message) error {
	if err := r.checkLock(ctx, msg); err != nil {
		return err
	}
	if err := r.broker.client.RPush(ctx, r.broker.abandonedKey(r.topic, r.name), msg.ID).Err(); err != nil {
		return mapError(err, "failed to abandon message %s", msg.ID)
	}
	return nil
}

func (r *receiver) DeadLetter(ctx context.Context, msg *transport.Message, reason string) error {
	if err := r.checkLock(ctx, msg); err != nil {
		return err
	}
	return r.deadLetter(ctx, msg, reason)
}

func (r *receiver) deadLetter(ctx context.Context, msg *transport.Message, reason string) error {
	props := make(map[string]string, len(msg.Properties)+1)
	for k, v := range msg.Properties {
		props[k] = v
	}
	props[DeadLetterReasonProperty] = reason
	rawProps, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	_, err = r.broker.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: r.broker.deadLetterKey(r.topic, r.name),
			Values: map[string]any{
				fieldBody:       string(msg.Body),
				fieldProperties: string(rawProps),
				"original_id":   msg.ID,
			},
		})
		pipe.XAck(ctx, r.stream(), r.name, msg.ID)
		return nil
	})
	if err != nil {
		return mapError(err, "failed to dead-letter message %s", msg.ID)
	}
	r.broker.logger.Warn("Message dead-lettered",
		"topic", r.topic,
		"subscription", r.name,
		"message_id", msg.ID,
		"reason", reason,
	)
	return nil
}

func (r *receiver) Close() error {
	// потребитель удаляется вместе с группой, соединение общее
	return nil
}

// decodeMessage always returns the message with its body;
// on error its properties are left empty.
func decodeMessage(xmsg redis.XMessage) (*transport.Message, error) {
	msg := &transport.Message{ID: xmsg.ID, EnqueuedAt: streamTime(xmsg.ID)}
	if body, ok := xmsg.Values[fieldBody].(string); ok {
		msg.Body = []byte(body)
	}
	if raw, ok := xmsg.Values[fieldProperties].(string); ok && raw != "" {
		var props map[string]string
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			return msg, fmt.Errorf("failed to decode properties of %s: %w", xmsg.ID, err)
		}
		msg.Properties = props
	}
	return msg, nil
}

// streamTime extracts the millisecond timestamp from a stream id like 1700000000000-0
func streamTime(id string) time.Time {
	ms, _, _ := strings.Cut(id, "-")
	n, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(n)
}
