//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=matching_test
package matching

import (
	"context"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type CompatibilityEvaluator interface {
	Evaluate(a entities.Announcement, r entities.CourierRoute) (entities.Verdict, error)
}

type MatchScorer interface {
	Score(a entities.Announcement, r entities.CourierRoute, match entities.Compatible) entities.MatchResult
}

type AnnouncementRepository interface {
	GetAnnouncement(ctx context.Context, announcementID string) (*entities.Announcement, error)
	ListUnmatched(ctx context.Context, limit uint64) ([]entities.Announcement, error)
}

type RouteRepository interface {
	FindCandidates(ctx context.Context, box geo.BoundingBox, pickupDate *time.Time) ([]entities.CourierRoute, error)
	MaxReachKm(ctx context.Context) (float64, error)
}

type MatchRepository interface {
	ReplaceMatches(ctx context.Context, announcementID string, results []entities.MatchResult) error
	ListMatches(ctx context.Context, announcementID string) ([]entities.MatchResult, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type Notifier interface {
	PublishMatchFound(ctx context.Context, announcement entities.Announcement, results []entities.MatchResult) error
}

type serviceLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
