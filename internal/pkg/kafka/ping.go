package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
	retrierconfig "github.com/TheRebzu/ecodeli-sub009/pkg/retrier"
	"github.com/TheRebzu/ecodeli-sub009/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

// pingKafka ждет доступности брокеров. И consumer, и producer стартуют
// только после успешного запроса метаданных.
func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.Info("attempting Kafka connection", logger.NewField("attempt", attempt))

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close Kafka metadata client", logger.NewField("error", err))
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		log.Error("Kafka connection failed after retries",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.Info("Kafka connection established", logger.NewField("attempts", attempt))
	return nil
}

func parseVersion(raw string) (sarama.KafkaVersion, error) {
	version, err := sarama.ParseKafkaVersion(raw)
	if err != nil {
		return sarama.KafkaVersion{}, fmt.Errorf("parse kafka version %q: %w", raw, err)
	}
	return version, nil
}
