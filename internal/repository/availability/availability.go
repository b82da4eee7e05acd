package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var ruleColumns = []string{
	"id", "provider_id", "kind", "weekday", "rule_date",
	"start_minute", "end_minute", "slot_minutes", "buffer_minutes",
	"max_bookings_per_slot", "minimum_notice_hours", "maximum_advance_days",
	"service_ids", "price_multiplier", "allow_overlapping", "is_active", "location_hint",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetRules(ctx context.Context, providerID string) ([]entities.AvailabilityRule, error) {
	query, args, err := qb.
		Select(ruleColumns...).
		From("availability_rules").
		Where(sq.Eq{"provider_id": providerID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository get rules error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository get rules error: %w", err)
	}
	defer rows.Close()

	rules := make([]entities.AvailabilityRule, 0, 8)
	for rows.Next() {
		model, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected availability repository get rules error: %w", err)
		}
		rule, err := RuleToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("unexpected availability repository get rules error: %w", err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected availability repository get rules error: %w", err)
	}

	return rules, nil
}

func (r *Repository) GetRule(ctx context.Context, ruleID string) (*entities.AvailabilityRule, error) {
	query, args, err := qb.
		Select(ruleColumns...).
		From("availability_rules").
		Where(sq.Eq{"id": ruleID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository get rule error: %w", err)
	}

	model, err := scanRule(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, availability.ErrRuleNotFound
		}
		return nil, fmt.Errorf("unexpected availability repository get rule error: %w", err)
	}

	rule, err := RuleToDomain(model)
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository get rule error: %w", err)
	}
	return rule, nil
}

func (r *Repository) UpdateRule(ctx context.Context, rule entities.AvailabilityRule) error {
	model := RuleFromDomain(rule)

	query, args, err := qb.
		Update("availability_rules").
		Set("kind", model.Kind).
		Set("weekday", model.Weekday).
		Set("rule_date", model.RuleDate).
		Set("start_minute", model.StartMinute).
		Set("end_minute", model.EndMinute).
		Set("slot_minutes", model.SlotMinutes).
		Set("buffer_minutes", model.BufferMinutes).
		Set("max_bookings_per_slot", model.MaxBookingsPerSlot).
		Set("minimum_notice_hours", model.MinimumNoticeHours).
		Set("maximum_advance_days", model.MaximumAdvanceDays).
		Set("service_ids", model.ServiceIDs).
		Set("price_multiplier", model.PriceMultiplier).
		Set("allow_overlapping", model.AllowOverlapping).
		Set("is_active", model.IsActive).
		Set("location_hint", model.LocationHint).
		Where(sq.Eq{"id": model.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected availability repository update rule error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected availability repository update rule error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return availability.ErrRuleNotFound
	}
	return nil
}

// GetExceptions возвращает исключения, чья дата попадает в [from, to).
func (r *Repository) GetExceptions(ctx context.Context, providerID string, from, to time.Time) ([]entities.AvailabilityException, error) {
	query, args, err := qb.
		Select("id", "provider_id", "exception_date", "kind", "start_minute", "end_minute", "service_ids", "reason").
		From("availability_exceptions").
		Where(sq.Eq{"provider_id": providerID}).
		Where(sq.GtOrEq{"exception_date": from.Format(time.DateOnly)}).
		Where(sq.Lt{"exception_date": to.Format(time.DateOnly)}).
		OrderBy("exception_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository get exceptions error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository get exceptions error: %w", err)
	}
	defer rows.Close()

	exceptions := make([]entities.AvailabilityException, 0, 4)
	for rows.Next() {
		var m ExceptionDB
		err := rows.Scan(
			&m.ID,
			&m.ProviderID,
			&m.ExceptionDate,
			&m.Kind,
			&m.StartMinute,
			&m.EndMinute,
			&m.ServiceIDs,
			&m.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected availability repository get exceptions error: %w", err)
		}
		exceptions = append(exceptions, *ExceptionToDomain(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected availability repository get exceptions error: %w", err)
	}

	return exceptions, nil
}

// GetBookedSlots возвращает бронирования, пересекающие [from, to).
func (r *Repository) GetBookedSlots(ctx context.Context, providerID string, from, to time.Time) ([]entities.BookedSlot, error) {
	return r.listBookings(ctx, "get booked slots", sq.And{
		sq.Eq{"provider_id": providerID},
		sq.Lt{"starts_at": to},
		sq.Gt{"ends_at": from},
	})
}

func (r *Repository) GetFutureBookingsByRule(ctx context.Context, ruleID string, after time.Time) ([]entities.BookedSlot, error) {
	return r.listBookings(ctx, "get future bookings", sq.And{
		sq.Eq{"rule_id": ruleID},
		sq.Gt{"starts_at": after},
	})
}

func (r *Repository) listBookings(ctx context.Context, op string, where sq.Sqlizer) ([]entities.BookedSlot, error) {
	query, args, err := qb.
		Select("id", "provider_id", "rule_id", "starts_at", "ends_at", "status").
		From("booked_slots").
		Where(where).
		OrderBy("starts_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository %s error: %w", op, err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected availability repository %s error: %w", op, err)
	}
	defer rows.Close()

	slots := make([]entities.BookedSlot, 0, 8)
	for rows.Next() {
		var m BookedSlotDB
		err := rows.Scan(
			&m.ID,
			&m.ProviderID,
			&m.RuleID,
			&m.StartsAt,
			&m.EndsAt,
			&m.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected availability repository %s error: %w", op, err)
		}
		slots = append(slots, *BookedSlotToDomain(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected availability repository %s error: %w", op, err)
	}

	return slots, nil
}

func scanRule(row pgx.Row) (*RuleDB, error) {
	var m RuleDB
	err := row.Scan(
		&m.ID,
		&m.ProviderID,
		&m.Kind,
		&m.Weekday,
		&m.RuleDate,
		&m.StartMinute,
		&m.EndMinute,
		&m.SlotMinutes,
		&m.BufferMinutes,
		&m.MaxBookingsPerSlot,
		&m.MinimumNoticeHours,
		&m.MaximumAdvanceDays,
		&m.ServiceIDs,
		&m.PriceMultiplier,
		&m.AllowOverlapping,
		&m.IsActive,
		&m.LocationHint,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
