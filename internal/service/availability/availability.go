package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

type Query struct {
	ProviderID string
	From       time.Time
	To         time.Time
	ServiceID  string
	Duration   time.Duration
}

// RuleChange возвращает измененное правило и бронирования, требующие разрешения конфликта.
type RuleChange struct {
	Rule      entities.AvailabilityRule
	Conflicts []entities.BookedSlot
}

type Service struct {
	repository Repository
	txManager  TxManager
	clock      Clock
	expander   *Expander
	location   *time.Location
}

func New(repository Repository, txManager TxManager, clock Clock, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repository: repository,
		txManager:  txManager,
		clock:      clock,
		expander:   NewExpander(clock, location),
		location:   location,
	}
}

func (s *Service) ExpandAvailability(ctx context.Context, q Query) ([]entities.Slot, error) {
	if q.ProviderID == "" {
		return nil, ErrInvalidProviderID
	}
	if err := validateRange(q.From, q.To); err != nil {
		return nil, err
	}

	// развертка идет по целым календарным дням, данные читаются на те же границы
	rangeStart := startOfDay(q.From.In(s.location))
	rangeEnd := startOfDay(q.To.In(s.location)).AddDate(0, 0, 1)

	rules, err := s.repository.GetRules(ctx, q.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("get availability rules: %w", err)
	}

	exceptions, err := s.repository.GetExceptions(ctx, q.ProviderID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("get availability exceptions: %w", err)
	}

	booked, err := s.repository.GetBookedSlots(ctx, q.ProviderID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("get booked slots: %w", err)
	}

	slots, err := s.expander.Expand(ExpandRequest{
		ProviderID:       q.ProviderID,
		From:             q.From,
		To:               q.To,
		ServiceID:        q.ServiceID,
		OverrideDuration: q.Duration,
		Rules:            rules,
		Exceptions:       exceptions,
		Booked:           booked,
	})
	if err != nil {
		return nil, fmt.Errorf("expand availability: %w", err)
	}

	return slots, nil
}

// DeactivateRule выключает правило. Если внутри окна правила есть подтвержденные
// будущие бронирования, без resolveConflicts операция отклоняется.
func (s *Service) DeactivateRule(ctx context.Context, ruleID string, resolveConflicts bool) (*RuleChange, error) {
	return s.changeRule(ctx, ruleID, resolveConflicts, func(rule *entities.AvailabilityRule) {
		rule.IsActive = false
	})
}

// ShiftRuleWindow переносит окно правила. Конфликтом считаются бронирования,
// которые были внутри старого окна и не помещаются в новое.
func (s *Service) ShiftRuleWindow(ctx context.Context, ruleID string, window entities.TimeWindow, resolveConflicts bool) (*RuleChange, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidTimeOfDay, window.Start, window.End)
	}
	return s.changeRule(ctx, ruleID, resolveConflicts, func(rule *entities.AvailabilityRule) {
		rule.Window = window
	})
}

func (s *Service) changeRule(
	ctx context.Context,
	ruleID string,
	resolveConflicts bool,
	mutate func(rule *entities.AvailabilityRule),
) (*RuleChange, error) {
	if ruleID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidRule)
	}

	change := RuleChange{}
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		rule, err := s.repository.GetRule(ctx, ruleID)
		if err != nil {
			return fmt.Errorf("get availability rule: %w", err)
		}

		bookings, err := s.repository.GetFutureBookingsByRule(ctx, ruleID, s.clock.Now())
		if err != nil {
			return fmt.Errorf("get future bookings: %w", err)
		}

		updated := *rule
		mutate(&updated)

		conflicts := s.conflictingBookings(*rule, updated, bookings)
		if len(conflicts) > 0 && !resolveConflicts {
			return fmt.Errorf("%w: %d booking(s)", ErrRuleHasFutureBookings, len(conflicts))
		}

		if err := s.repository.UpdateRule(ctx, updated); err != nil {
			return fmt.Errorf("update availability rule: %w", err)
		}

		change = RuleChange{Rule: updated, Conflicts: conflicts}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &change, nil
}

func (s *Service) conflictingBookings(before, after entities.AvailabilityRule, bookings []entities.BookedSlot) []entities.BookedSlot {
	var conflicts []entities.BookedSlot
	for _, b := range bookings {
		if b.Status != entities.BookingConfirmed {
			continue
		}
		if !s.insideRule(before, b) {
			continue
		}
		if after.IsActive && s.insideRule(after, b) {
			continue
		}
		conflicts = append(conflicts, b)
	}
	return conflicts
}

func (s *Service) insideRule(rule entities.AvailabilityRule, b entities.BookedSlot) bool {
	start := b.Start.In(s.location)
	day := startOfDay(start)
	if rule.Schedule == nil || !rule.Schedule.AppliesOn(day) {
		return false
	}
	return !start.Before(rule.Window.Start.On(day)) && !b.End.In(s.location).After(rule.Window.End.On(day))
}
