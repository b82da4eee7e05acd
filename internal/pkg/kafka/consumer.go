package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/config"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

// Consumer читает события публикации заявок в составе consumer group.
type Consumer struct {
	log     logger.Logger
	client  sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

// newConsumerConfig собирает конфигурацию группы. Читаем с самого старого
// офсета: пропущенная заявка останется без подбора до фонового ретрая.
func newConsumerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := parseVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRoundRobin(),
	}

	return saramaConfig, nil
}

func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka consumer: empty broker list")
	}

	saramaConfig, err := newConsumerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build consumer config: %w", err)
	}

	topics := []string{cfg.Topic}
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topics", topics),
	)

	// сначала ждем брокеры, чтобы не создавать группу впустую
	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	client, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		client:  client,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокирует до отмены ctx. Consume возвращается после каждого
// ребаланса, поэтому вызывается в цикле.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Kafka consumer starting")

	for {
		if err := c.client.Consume(ctx, c.topics, c.handler); err != nil {
			c.log.Error("Error from consumer", logger.NewField("error", err))
			return fmt.Errorf("consume: %w", err)
		}

		if ctx.Err() != nil {
			c.log.Warn("Context cancelled, stopping consumer")
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.client.Close()
}
