package partial

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
	"github.com/TheRebzu/ecodeli-sub009/pkg/logger"
)

type Service struct {
	log           serviceLogger
	planner       *Planner
	clock         Clock
	announcements AnnouncementRepository
	relays        RelayRepository
	plans         PlanRepository
	segments      SegmentRepository
	txManager     TxManager
	notifier      Notifier
}

func New(
	log serviceLogger,
	clock Clock,
	announcements AnnouncementRepository,
	relays RelayRepository,
	plans PlanRepository,
	segments SegmentRepository,
	txManager TxManager,
	notifier Notifier,
) *Service {
	return &Service{
		log:           log,
		planner:       NewPlanner(clock),
		clock:         clock,
		announcements: announcements,
		relays:        relays,
		plans:         plans,
		segments:      segments,
		txManager:     txManager,
		notifier:      notifier,
	}
}

// PlanPartialDelivery строит и сохраняет план, при необходимости запасной.
// Точки передачи загружаются один раз в радиусе запасного плана.
func (s *Service) PlanPartialDelivery(ctx context.Context, announcementID string, opts PlanOptions) (*entities.PartialDeliveryPlan, error) {
	if announcementID == "" {
		return nil, ErrInvalidAnnouncementID
	}
	if err := validateMaxDistance(opts.MaxSegmentDistanceKm); err != nil {
		return nil, err
	}
	if err := validateRelayTypes(opts.RelayTypes); err != nil {
		return nil, err
	}

	announcement, err := s.announcements.GetAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, fmt.Errorf("get announcement: %w", err)
	}

	box, err := geo.BoundingBoxAround(
		opts.Fallback().MaxSegmentDistanceKm,
		announcement.Pickup.Coordinate,
		announcement.Delivery.Coordinate,
	)
	if err != nil {
		return nil, fmt.Errorf("build relay search box: %w", err)
	}

	relays, err := s.relays.FindRelays(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("find relay points: %w", err)
	}

	plan, err := s.planner.PlanWithFallback(*announcement, relays, opts)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.plans.CreatePlan(ctx, *plan)
	})
	if err != nil {
		return nil, fmt.Errorf("save partial delivery plan: %w", err)
	}

	if err := s.notifier.PublishPlanCreated(ctx, *plan); err != nil {
		s.log.With(
			logger.NewField("plan_id", plan.ID),
			logger.NewField("error", err),
		).Error("publish plan created")
	}

	return plan, nil
}

func (s *Service) GetPlan(ctx context.Context, planID string) (*entities.PartialDeliveryPlan, error) {
	plan, err := s.plans.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get partial delivery plan: %w", err)
	}
	return plan, nil
}

// UpdateSegmentStatus переводит сегмент в следующий статус.
// courierID обязателен только для назначения.
func (s *Service) UpdateSegmentStatus(
	ctx context.Context,
	segmentID string,
	next entities.SegmentStatus,
	courierID string,
) (*entities.Segment, error) {
	switch next {
	case entities.SegmentAssigned:
		return s.AssignSegment(ctx, segmentID, courierID)
	case entities.SegmentInProgress:
		return s.StartSegment(ctx, segmentID)
	case entities.SegmentCompleted:
		return s.CompleteSegment(ctx, segmentID)
	case entities.SegmentFailed:
		return s.FailSegment(ctx, segmentID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
}

// AssignSegment назначает курьера не более одного раза и в той же транзакции
// занимает место в точке передачи, куда курьер привезет груз.
func (s *Service) AssignSegment(ctx context.Context, segmentID, courierID string) (*entities.Segment, error) {
	if courierID == "" {
		return nil, ErrInvalidCourierID
	}

	return s.transition(ctx, segmentID, entities.SegmentAssigned, courierID, func(ctx context.Context, segment *entities.Segment) error {
		if segment.Status == entities.SegmentAssigned {
			return fmt.Errorf("%w: courier %s", ErrSegmentAlreadyAssigned, segment.CourierID)
		}
		return nil
	}, func(ctx context.Context, segment *entities.Segment) error {
		if segment.To.RelayPointID == "" {
			return nil
		}
		if err := s.relays.DecrementCapacity(ctx, segment.To.RelayPointID); err != nil {
			return fmt.Errorf("reserve relay capacity: %w", err)
		}
		return nil
	})
}

// StartSegment запускает сегмент только после завершения предыдущего.
func (s *Service) StartSegment(ctx context.Context, segmentID string) (*entities.Segment, error) {
	return s.transition(ctx, segmentID, entities.SegmentInProgress, "", func(ctx context.Context, segment *entities.Segment) error {
		if segment.Index == 0 {
			return nil
		}
		prev, err := s.segments.GetSegmentByIndex(ctx, segment.PlanID, segment.Index-1)
		if err != nil {
			return fmt.Errorf("get previous segment: %w", err)
		}
		if prev.Status != entities.SegmentCompleted {
			return fmt.Errorf("%w: segment %d is %s", ErrPredecessorNotCompleted, prev.Index, prev.Status)
		}
		return nil
	}, nil)
}

func (s *Service) CompleteSegment(ctx context.Context, segmentID string) (*entities.Segment, error) {
	return s.transition(ctx, segmentID, entities.SegmentCompleted, "", nil, nil)
}

func (s *Service) FailSegment(ctx context.Context, segmentID string) (*entities.Segment, error) {
	return s.transition(ctx, segmentID, entities.SegmentFailed, "", nil, nil)
}

type segmentHook func(ctx context.Context, segment *entities.Segment) error

func (s *Service) transition(
	ctx context.Context,
	segmentID string,
	next entities.SegmentStatus,
	courierID string,
	precheck segmentHook,
	after segmentHook,
) (*entities.Segment, error) {
	if segmentID == "" {
		return nil, ErrInvalidSegmentID
	}

	var updated *entities.Segment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		segment, err := s.segments.GetSegment(ctx, segmentID)
		if err != nil {
			return fmt.Errorf("get segment: %w", err)
		}

		if precheck != nil {
			if err := precheck(ctx, segment); err != nil {
				return err
			}
		}
		if !segment.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, segment.Status, next)
		}

		if courierID == "" {
			courierID = segment.CourierID
		}

		updated, err = s.segments.TransitionSegment(ctx, SegmentTransition{
			SegmentID: segmentID,
			From:      segment.Status,
			To:        next,
			CourierID: courierID,
			At:        s.clock.Now(),
		})
		if err != nil {
			if errors.Is(err, ErrSegmentStateChanged) && next == entities.SegmentAssigned {
				return fmt.Errorf("%w: %w", ErrSegmentAlreadyAssigned, err)
			}
			return fmt.Errorf("update segment status: %w", err)
		}

		if after != nil {
			return after(ctx, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
