package availability

import (
	"fmt"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

func RuleToDomain(r *RuleDB) (*entities.AvailabilityRule, error) {
	if r == nil {
		return nil, nil
	}

	var schedule entities.RuleSchedule
	switch entities.RuleKind(r.Kind) {
	case entities.RuleRecurring:
		if r.Weekday == nil {
			return nil, fmt.Errorf("rule %s: recurring rule without weekday", r.ID)
		}
		schedule = entities.RecurringSchedule{Weekday: time.Weekday(*r.Weekday)}
	case entities.RuleOneTime:
		if r.RuleDate == nil {
			return nil, fmt.Errorf("rule %s: one-time rule without date", r.ID)
		}
		schedule = entities.OneTimeSchedule{Date: *r.RuleDate}
	default:
		return nil, fmt.Errorf("rule %s: unknown kind %q", r.ID, r.Kind)
	}

	return &entities.AvailabilityRule{
		ID:                 r.ID,
		ProviderID:         r.ProviderID,
		Schedule:           schedule,
		Window:             entities.TimeWindow{Start: entities.TimeOfDay(r.StartMinute), End: entities.TimeOfDay(r.EndMinute)},
		SlotDuration:       time.Duration(r.SlotMinutes) * time.Minute,
		BufferTime:         time.Duration(r.BufferMinutes) * time.Minute,
		MaxBookingsPerSlot: r.MaxBookingsPerSlot,
		MinimumNoticeHours: r.MinimumNoticeHours,
		MaximumAdvanceDays: r.MaximumAdvanceDays,
		ServiceIDs:         r.ServiceIDs,
		PriceMultiplier:    r.PriceMultiplier,
		AllowOverlapping:   r.AllowOverlapping,
		IsActive:           r.IsActive,
		LocationHint:       r.LocationHint,
	}, nil
}

func RuleFromDomain(r entities.AvailabilityRule) RuleDB {
	model := RuleDB{
		ID:                 r.ID,
		ProviderID:         r.ProviderID,
		StartMinute:        int(r.Window.Start),
		EndMinute:          int(r.Window.End),
		SlotMinutes:        int(r.SlotDuration / time.Minute),
		BufferMinutes:      int(r.BufferTime / time.Minute),
		MaxBookingsPerSlot: r.MaxBookingsPerSlot,
		MinimumNoticeHours: r.MinimumNoticeHours,
		MaximumAdvanceDays: r.MaximumAdvanceDays,
		ServiceIDs:         r.ServiceIDs,
		PriceMultiplier:    r.PriceMultiplier,
		AllowOverlapping:   r.AllowOverlapping,
		IsActive:           r.IsActive,
		LocationHint:       r.LocationHint,
	}
	if model.ServiceIDs == nil {
		model.ServiceIDs = []string{}
	}

	switch s := r.Schedule.(type) {
	case entities.RecurringSchedule:
		weekday := int16(s.Weekday)
		model.Kind = entities.RuleRecurring.String()
		model.Weekday = &weekday
	case entities.OneTimeSchedule:
		date := s.Date
		model.Kind = entities.RuleOneTime.String()
		model.RuleDate = &date
	}
	return model
}

func ExceptionToDomain(e *ExceptionDB) *entities.AvailabilityException {
	if e == nil {
		return nil
	}

	exception := &entities.AvailabilityException{
		ID:         e.ID,
		ProviderID: e.ProviderID,
		Date:       e.ExceptionDate,
		Kind:       entities.ExceptionKind(e.Kind),
		ServiceIDs: e.ServiceIDs,
		Reason:     e.Reason,
	}
	if e.StartMinute != nil && e.EndMinute != nil {
		exception.Window = &entities.TimeWindow{
			Start: entities.TimeOfDay(*e.StartMinute),
			End:   entities.TimeOfDay(*e.EndMinute),
		}
	}
	return exception
}

func BookedSlotToDomain(b *BookedSlotDB) *entities.BookedSlot {
	if b == nil {
		return nil
	}

	slot := &entities.BookedSlot{
		ID:         b.ID,
		ProviderID: b.ProviderID,
		Start:      b.StartsAt,
		End:        b.EndsAt,
		Status:     entities.BookingStatus(b.Status),
	}
	if b.RuleID != nil {
		slot.RuleID = *b.RuleID
	}
	return slot
}
