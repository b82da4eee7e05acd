//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partial_test
package partial

import (
	"context"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type Clock interface {
	Now() time.Time
}

type AnnouncementRepository interface {
	GetAnnouncement(ctx context.Context, announcementID string) (*entities.Announcement, error)
}

type RelayRepository interface {
	FindRelays(ctx context.Context, box geo.BoundingBox) ([]entities.RelayPoint, error)
	DecrementCapacity(ctx context.Context, relayID string) error
}

type PlanRepository interface {
	CreatePlan(ctx context.Context, plan entities.PartialDeliveryPlan) error
	GetPlan(ctx context.Context, planID string) (*entities.PartialDeliveryPlan, error)
}

// SegmentTransition - условное обновление: применяется, только если сегмент
// все еще в статусе From. Иначе репозиторий возвращает ErrSegmentStateChanged.
type SegmentTransition struct {
	SegmentID string
	From      entities.SegmentStatus
	To        entities.SegmentStatus
	CourierID string
	At        time.Time
}

type SegmentRepository interface {
	GetSegment(ctx context.Context, segmentID string) (*entities.Segment, error)
	GetSegmentByIndex(ctx context.Context, planID string, index int) (*entities.Segment, error)
	TransitionSegment(ctx context.Context, transition SegmentTransition) (*entities.Segment, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	PublishPlanCreated(ctx context.Context, plan entities.PartialDeliveryPlan) error
}

type serviceLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
