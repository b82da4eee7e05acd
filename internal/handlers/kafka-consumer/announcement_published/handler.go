package announcement_published

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type Handler struct {
	matchingService          Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, matchingService Service, timeout time.Duration) *Handler {
	return &Handler{
		matchingService:          matchingService,
		log:                      log.With(logger.NewField("handler", "announcement.published")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("announcement.published: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("announcement.published: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing запускает подбор маршрутов для одной заявки.
// Возвращает true, если нужно прервать ConsumeClaim: сообщение не помечается
// и будет прочитано повторно.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event publishedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil || event.AnnouncementID == "" {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("announcement.published handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("announcement", event.AnnouncementID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("announcement.published processing")

	results, err := h.matchingService.MatchAnnouncement(ctx, event.AnnouncementID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("announcement.published handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, matching.ErrMatchingInProgress):
			msgLog.Warn("announcement.published matching already running in another worker")

		case errors.Is(err, matching.ErrAnnouncementNotMatchable),
			errors.Is(err, matching.ErrAnnouncementNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("announcement.published announcement skipped")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("announcement.published handler failed to match announcement")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("matches", len(results)),
	).Info("announcement.published: processed")

	sess.MarkMessage(message, "")
	return false
}
