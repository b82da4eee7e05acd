package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/config"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

const producerMaxRetries = 3

// NewSyncProducer создает синхронного продюсера уведомлений.
// Подтверждение ждем от всех реплик, повторы на уровне sarama ограничены,
// остальные повторы делает шлюз уведомлений.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (sarama.SyncProducer, error) {
	saramaConfig, err := newProducerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build producer config: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.NotificationTopic),
	)

	err = pingKafka(ctx, kafkaLog, brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	kafkaLog.Info("Kafka producer created")
	return producer, nil
}

func newProducerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := parseVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.Retry.Max = producerMaxRetries
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	// идемпотентный продюсер требует одного запроса в полете
	saramaConfig.Net.MaxOpenRequests = 1

	return saramaConfig, nil
}
