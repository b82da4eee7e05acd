package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/repository"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/matching"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/partial"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var segmentColumns = []string{
	"id", "plan_id", "segment_index",
	"from_lat", "from_lng", "from_address", "from_relay_id",
	"to_lat", "to_lng", "to_address", "to_relay_id",
	"distance_km", "duration_seconds", "price", "status", "courier_id", "updated_at",
}

// ErrPlanConflict - план с таким идентификатором уже сохранен.
var ErrPlanConflict = errors.New("partial delivery plan already exists")

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// CreatePlan сохраняет план вместе с сегментами. Вызывается внутри транзакции.
func (r *Repository) CreatePlan(ctx context.Context, p entities.PartialDeliveryPlan) error {
	model := PlanFromDomain(p)

	query, args, err := qb.
		Insert("partial_delivery_plans").
		Columns(
			"id", "announcement_id", "total_distance_km", "total_duration_seconds", "total_price",
			"estimated_delivery_time", "is_fallback", "max_segment_distance_km", "created_at",
		).
		Values(
			model.ID,
			model.AnnouncementID,
			model.TotalDistanceKm,
			model.TotalDurationSeconds,
			model.TotalPrice,
			model.EstimatedDeliveryTime,
			model.IsFallback,
			model.MaxSegmentDistanceKm,
			model.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected plan repository create error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return ErrPlanConflict
		}
		// заявку удалили между планированием и сохранением
		if _, ok := repository.ForeignKeyViolation(err); ok {
			return fmt.Errorf("%w: %s", matching.ErrAnnouncementNotFound, model.AnnouncementID)
		}
		return fmt.Errorf("unexpected plan repository create error: %w", err)
	}

	if len(p.Segments) == 0 {
		return nil
	}

	builder := qb.Insert("partial_delivery_segments").Columns(segmentColumns...)
	for _, segment := range p.Segments {
		s := SegmentFromDomain(segment)
		builder = builder.Values(
			s.ID,
			model.ID,
			s.Index,
			s.FromLat,
			s.FromLng,
			s.FromAddress,
			s.FromRelayID,
			s.ToLat,
			s.ToLng,
			s.ToAddress,
			s.ToRelayID,
			s.DistanceKm,
			s.DurationSeconds,
			s.Price,
			s.Status,
			s.CourierID,
			s.UpdatedAt,
		)
	}

	query, args, err = builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected plan repository create segments error: %w", err)
	}

	if _, err := r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return ErrPlanConflict
		}
		// точку передачи удалили после выбора цепочки
		if constraint, ok := repository.ForeignKeyViolation(err); ok {
			return fmt.Errorf("%w: %s", partial.ErrNoViableRelay, constraint)
		}
		return fmt.Errorf("unexpected plan repository create segments error: %w", err)
	}

	return nil
}

func (r *Repository) GetPlan(ctx context.Context, planID string) (*entities.PartialDeliveryPlan, error) {
	query, args, err := qb.
		Select(
			"id", "announcement_id", "total_distance_km", "total_duration_seconds", "total_price",
			"estimated_delivery_time", "is_fallback", "max_segment_distance_km", "created_at",
		).
		From("partial_delivery_plans").
		Where(sq.Eq{"id": planID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected plan repository get error: %w", err)
	}

	var m PlanDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.AnnouncementID,
		&m.TotalDistanceKm,
		&m.TotalDurationSeconds,
		&m.TotalPrice,
		&m.EstimatedDeliveryTime,
		&m.IsFallback,
		&m.MaxSegmentDistanceKm,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, partial.ErrPlanNotFound
		}
		return nil, fmt.Errorf("unexpected plan repository get error: %w", err)
	}

	segments, err := r.listSegments(ctx, planID)
	if err != nil {
		return nil, err
	}

	return PlanToDomain(&m, segments), nil
}

// GetSegment блокирует строку сегмента до конца транзакции.
func (r *Repository) GetSegment(ctx context.Context, segmentID string) (*entities.Segment, error) {
	query, args, err := qb.
		Select(segmentColumns...).
		From("partial_delivery_segments").
		Where(sq.Eq{"id": segmentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected plan repository get segment error: %w", err)
	}

	return r.getSegment(ctx, query, args)
}

func (r *Repository) GetSegmentByIndex(ctx context.Context, planID string, index int) (*entities.Segment, error) {
	query, args, err := qb.
		Select(segmentColumns...).
		From("partial_delivery_segments").
		Where(sq.Eq{"plan_id": planID, "segment_index": index}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected plan repository get segment error: %w", err)
	}

	return r.getSegment(ctx, query, args)
}

// TransitionSegment меняет статус, только если сегмент все еще в transition.From.
func (r *Repository) TransitionSegment(ctx context.Context, transition partial.SegmentTransition) (*entities.Segment, error) {
	builder := qb.
		Update("partial_delivery_segments").
		Set("status", transition.To.String()).
		Set("updated_at", transition.At).
		Where(sq.Eq{"id": transition.SegmentID, "status": transition.From.String()}).
		Suffix("RETURNING " + strings.Join(segmentColumns, ", "))
	if transition.CourierID != "" {
		builder = builder.Set("courier_id", transition.CourierID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected plan repository transition error: %w", err)
	}

	segment, err := r.getSegment(ctx, query, args)
	if err != nil {
		if errors.Is(err, partial.ErrSegmentNotFound) {
			return nil, r.transitionFailure(ctx, transition.SegmentID)
		}
		return nil, err
	}
	return segment, nil
}

// transitionFailure отличает отсутствующий сегмент от сегмента,
// статус которого успели поменять.
func (r *Repository) transitionFailure(ctx context.Context, segmentID string) error {
	var exists bool
	err := r.querier.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM partial_delivery_segments WHERE id = $1)`,
		segmentID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected plan repository transition error: %w", err)
	}
	if !exists {
		return partial.ErrSegmentNotFound
	}
	return partial.ErrSegmentStateChanged
}

func (r *Repository) listSegments(ctx context.Context, planID string) ([]entities.Segment, error) {
	query, args, err := qb.
		Select(segmentColumns...).
		From("partial_delivery_segments").
		Where(sq.Eq{"plan_id": planID}).
		OrderBy("segment_index").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected plan repository list segments error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected plan repository list segments error: %w", err)
	}
	defer rows.Close()

	segments := make([]entities.Segment, 0, 4)
	for rows.Next() {
		m, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected plan repository list segments error: %w", err)
		}
		segments = append(segments, *SegmentToDomain(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected plan repository list segments error: %w", err)
	}

	return segments, nil
}

func (r *Repository) getSegment(ctx context.Context, query string, args []interface{}) (*entities.Segment, error) {
	m, err := scanSegment(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, partial.ErrSegmentNotFound
		}
		return nil, fmt.Errorf("unexpected plan repository get segment error: %w", err)
	}
	return SegmentToDomain(m), nil
}

func scanSegment(row pgx.Row) (*SegmentDB, error) {
	var m SegmentDB
	err := row.Scan(
		&m.ID,
		&m.PlanID,
		&m.Index,
		&m.FromLat,
		&m.FromLng,
		&m.FromAddress,
		&m.FromRelayID,
		&m.ToLat,
		&m.ToLng,
		&m.ToAddress,
		&m.ToRelayID,
		&m.DistanceKm,
		&m.DurationSeconds,
		&m.Price,
		&m.Status,
		&m.CourierID,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
