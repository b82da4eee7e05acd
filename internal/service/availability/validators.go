package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

// maxRangeDays ограничивает размер запроса, чтобы не разворачивать годы календаря.
const maxRangeDays = 366

// ParseTimeOfDay разбирает строку вида "HH:MM"; "24:00" допустимо как конец дня.
func ParseTimeOfDay(s string) (entities.TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return entities.NewTimeOfDay(hour, minute), nil
}

// ParseTimeWindow разбирает пару "HH:MM" и проверяет, что начало раньше конца.
func ParseTimeWindow(start, end string) (entities.TimeWindow, error) {
	from, err := ParseTimeOfDay(start)
	if err != nil {
		return entities.TimeWindow{}, err
	}
	to, err := ParseTimeOfDay(end)
	if err != nil {
		return entities.TimeWindow{}, err
	}

	window := entities.TimeWindow{Start: from, End: to}
	if !window.Valid() {
		return entities.TimeWindow{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeOfDay, start, end)
	}
	return window, nil
}

func validateRule(rule entities.AvailabilityRule, overrideDuration time.Duration) error {
	if rule.Schedule == nil {
		return fmt.Errorf("%w %s: schedule is required", ErrInvalidRule, rule.ID)
	}
	if one, ok := rule.Schedule.(entities.OneTimeSchedule); ok && one.Date.IsZero() {
		return fmt.Errorf("%w %s: one-time rule requires a date", ErrInvalidRule, rule.ID)
	}
	if !rule.Window.Valid() {
		return fmt.Errorf("%w %s: window %s-%s", ErrInvalidRule, rule.ID, rule.Window.Start, rule.Window.End)
	}

	duration := effectiveDuration(rule, overrideDuration)
	if duration <= 0 {
		return fmt.Errorf("%w %s: %s", ErrInvalidDuration, rule.ID, duration)
	}
	if duration+rule.BufferTime <= 0 {
		return fmt.Errorf("%w %s: buffer %s cancels slot duration", ErrInvalidRule, rule.ID, rule.BufferTime)
	}
	if rule.MinimumNoticeHours < 0 || rule.MaximumAdvanceDays < 0 {
		return fmt.Errorf("%w %s: negative booking horizon", ErrInvalidRule, rule.ID)
	}
	if rule.MaxBookingsPerSlot < 0 {
		return fmt.Errorf("%w %s: negative max bookings", ErrInvalidRule, rule.ID)
	}
	return nil
}

func validateException(exception entities.AvailabilityException) error {
	if exception.Date.IsZero() {
		return fmt.Errorf("%w %s: date is required", ErrInvalidException, exception.ID)
	}
	switch exception.Kind {
	case entities.ExceptionUnavailable, entities.ExceptionHoliday:
	case entities.ExceptionSpecialHours:
		if exception.Window == nil {
			return fmt.Errorf("%w %s: special hours require a window", ErrInvalidException, exception.ID)
		}
	default:
		return fmt.Errorf("%w %s: kind %q", ErrInvalidException, exception.ID, exception.Kind)
	}
	if exception.Window != nil && !exception.Window.Valid() {
		return fmt.Errorf("%w %s: window %s-%s", ErrInvalidException, exception.ID, exception.Window.Start, exception.Window.End)
	}
	return nil
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: both bounds are required", ErrInvalidRange)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidRange, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: more than %d days", ErrInvalidRange, maxRangeDays)
	}
	return nil
}

func effectiveDuration(rule entities.AvailabilityRule, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	if rule.SlotDuration == 0 {
		return entities.DefaultSlotDuration
	}
	return rule.SlotDuration
}
