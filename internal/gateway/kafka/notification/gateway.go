package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	retrierconfig "github.com/TheRebzu/ecodeli-sub009/pkg/retrier"
	"github.com/TheRebzu/ecodeli-sub009/pkg/retrier/backoff_adapter"
	"github.com/lucsky/cuid"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type Gateway struct {
	producer producer
	clock    clock
	topic    string
	retrier  *backoff_adapter.Retrier
	newID    func() string
}

func New(producer producer, clock clock, topic string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		producer: producer,
		clock:    clock,
		topic:    topic,
		retrier:  backoff_adapter.New(retryConfig),
		newID:    cuid.New,
	}
}

// PublishMatchFound отправляет лучшие совпадения по заявке.
// Ключ сообщения - идентификатор заявки, события одной заявки идут в одну партицию.
func (g *Gateway) PublishMatchFound(ctx context.Context, announcement entities.Announcement, results []entities.MatchResult) error {
	err := g.publish(ctx, EventMatchFound, announcement.ID, toMatchFound(announcement, results))
	if err != nil {
		return fmt.Errorf("gateway notification, publish match found: %s: %w", announcement.ID, err)
	}
	return nil
}

func (g *Gateway) PublishPlanCreated(ctx context.Context, plan entities.PartialDeliveryPlan) error {
	err := g.publish(ctx, EventPartialPlanCreated, plan.AnnouncementID, toPlanCreated(plan))
	if err != nil {
		return fmt.Errorf("gateway notification, publish plan created: %s: %w", plan.ID, err)
	}
	return nil
}

func (g *Gateway) publish(ctx context.Context, event, key string, payload any) error {
	value, err := json.Marshal(envelope{
		EventID:    g.newID(),
		Type:       event,
		OccurredAt: g.clock.Now(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: g.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event)},
		},
	}

	return g.executeWithMetrics(ctx, event, func(ctx context.Context) error {
		// SyncProducer не принимает контекст, поэтому проверяем его до отправки.
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _, err := g.producer.SendMessage(msg)
		return err
	})
}

func (g *Gateway) executeWithMetrics(ctx context.Context, event string, fn func(context.Context) error) error {
	var (
		attempt uint64
		lastErr error
	)
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			GatewayRetriesTotal.WithLabelValues(event, errorReason(lastErr)).Inc()
		}
		lastErr = fn(ctx)
		return lastErr
	})

	GatewayPublishDuration.WithLabelValues(event, errorReason(err)).Observe(time.Since(start).Seconds())

	return err
}

// isRetryable отбирает временные ошибки брокера. Ошибки кодирования
// и слишком большие сообщения повторять бессмысленно.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var kerr sarama.KError
	if errors.As(err, &kerr) {
		switch kerr {
		case sarama.ErrNotLeaderForPartition,
			sarama.ErrLeaderNotAvailable,
			sarama.ErrRequestTimedOut,
			sarama.ErrNotEnoughReplicas,
			sarama.ErrNotEnoughReplicasAfterAppend,
			sarama.ErrNetworkException:
			return true
		default:
			return false
		}
	}
	return errors.Is(err, sarama.ErrOutOfBrokers) || errors.Is(err, sarama.ErrNotConnected)
}

func errorReason(err error) string {
	if err == nil {
		return "ok"
	}
	var kerr sarama.KError
	if errors.As(err, &kerr) {
		return fmt.Sprintf("kafka_%d", int16(kerr))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "context"
	}
	return "unknown"
}
