package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

const (
	DefaultLockTTL    = 30 * time.Second
	DefaultNotifyTopN = 5
)

type Config struct {
	SearchMarginKm float64
	LockTTL        time.Duration
	NotifyTopN     int
	RematchBatch   uint64
}

type Service struct {
	log           serviceLogger
	engine        *Engine
	announcements AnnouncementRepository
	routes        RouteRepository
	matches       MatchRepository
	txManager     TxManager
	locker        Locker
	notifier      Notifier
	cfg           Config
}

func New(
	log serviceLogger,
	engine *Engine,
	announcements AnnouncementRepository,
	routes RouteRepository,
	matches MatchRepository,
	txManager TxManager,
	locker Locker,
	notifier Notifier,
	cfg Config,
) *Service {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}
	if cfg.NotifyTopN <= 0 {
		cfg.NotifyTopN = DefaultNotifyTopN
	}
	return &Service{
		log:           log,
		engine:        engine,
		announcements: announcements,
		routes:        routes,
		matches:       matches,
		txManager:     txManager,
		locker:        locker,
		notifier:      notifier,
		cfg:           cfg,
	}
}

// MatchAnnouncement подбирает маршруты для активной заявки, сохраняет результат
// и уведомляет лучших кандидатов. Параллельный запуск для той же заявки отклоняется.
func (s *Service) MatchAnnouncement(ctx context.Context, announcementID string) (_ []entities.MatchResult, err error) {
	if announcementID == "" {
		return nil, ErrInvalidAnnouncementID
	}

	start := time.Now()
	defer func() {
		MatchingDuration.Observe(time.Since(start).Seconds())
		MatchingRunsTotal.WithLabelValues(runOutcome(err)).Inc()
	}()

	announcement, err := s.announcements.GetAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if !announcement.Status.Matchable() {
		return nil, fmt.Errorf("%w: status %s", ErrAnnouncementNotMatchable, announcement.Status)
	}

	lockKey := "matching:announcement:" + announcementID
	acquired, err := s.locker.Acquire(ctx, lockKey, s.cfg.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire matching lock: %w", err)
	}
	if !acquired {
		return nil, ErrMatchingInProgress
	}
	defer func() {
		if releaseErr := s.locker.Release(context.WithoutCancel(ctx), lockKey); releaseErr != nil {
			s.log.With(
				logger.NewField("announcement_id", announcementID),
				logger.NewField("error", releaseErr),
			).Warn("release matching lock")
		}
	}()

	reach, err := s.routes.MaxReachKm(ctx)
	if err != nil {
		return nil, fmt.Errorf("get route reach: %w", err)
	}

	box, err := searchBox(*announcement, reach, s.cfg.SearchMarginKm)
	if err != nil {
		return nil, err
	}

	routes, err := s.routes.FindCandidates(ctx, box, announcement.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("find candidate routes: %w", err)
	}

	evaluation, err := s.engine.EvaluateAndScoreMatches(ctx, *announcement, routes)
	if err != nil {
		return nil, err
	}
	observeEvaluation(evaluation)

	for _, failure := range evaluation.Failures {
		s.log.With(
			logger.NewField("announcement_id", announcementID),
			logger.NewField("route_id", failure.RouteID),
			logger.NewField("error", failure.Err),
		).Warn("skip candidate route")
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.matches.ReplaceMatches(ctx, announcementID, evaluation.Results)
	})
	if err != nil {
		return nil, fmt.Errorf("save matches: %w", err)
	}

	if len(evaluation.Results) > 0 {
		top := evaluation.Results[:min(len(evaluation.Results), s.cfg.NotifyTopN)]
		if err := s.notifier.PublishMatchFound(ctx, *announcement, top); err != nil {
			// совпадения уже сохранены, повторная отправка произойдет при следующем запуске
			s.log.With(
				logger.NewField("announcement_id", announcementID),
				logger.NewField("error", err),
			).Error("publish match found")
		}
	}

	return evaluation.Results, nil
}

// GetMatches возвращает сохраненные совпадения в порядке ранга без повторного подбора.
func (s *Service) GetMatches(ctx context.Context, announcementID string) ([]entities.MatchResult, error) {
	if announcementID == "" {
		return nil, ErrInvalidAnnouncementID
	}

	if _, err := s.announcements.GetAnnouncement(ctx, announcementID); err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}

	results, err := s.matches.ListMatches(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return results, nil
}

// RematchUnmatched повторяет подбор для активных заявок без сохраненных совпадений.
// Ошибка одной заявки не прерывает обработку остальных.
func (s *Service) RematchUnmatched(ctx context.Context) (int, error) {
	announcements, err := s.announcements.ListUnmatched(ctx, s.cfg.RematchBatch)
	if err != nil {
		return 0, fmt.Errorf("list unmatched announcements: %w", err)
	}

	matched := 0
	for _, a := range announcements {
		if err := ctx.Err(); err != nil {
			return matched, err
		}

		results, err := s.MatchAnnouncement(ctx, a.ID)
		switch {
		case errors.Is(err, ErrMatchingInProgress), errors.Is(err, ErrAnnouncementNotMatchable):
			continue
		case err != nil:
			s.log.With(
				logger.NewField("announcement_id", a.ID),
				logger.NewField("error", err),
			).Error("rematch announcement")
			continue
		}

		if len(results) > 0 {
			matched++
		}
	}

	return matched, nil
}

func runOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMatchingInProgress):
		return "locked"
	case errors.Is(err, ErrAnnouncementNotMatchable):
		return "not_matchable"
	default:
		return "error"
	}
}
