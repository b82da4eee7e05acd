package availability

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

// ExpandRequest - все входные данные для разворачивания календаря.
// Правила, исключения и бронирования загружает вызывающий код.
type ExpandRequest struct {
	ProviderID string
	From       time.Time
	To         time.Time
	// ServiceID пуст, если нужны слоты для всех услуг.
	ServiceID string
	// OverrideDuration > 0 заменяет длительность слота из правил.
	OverrideDuration time.Duration
	Rules            []entities.AvailabilityRule
	Exceptions       []entities.AvailabilityException
	Booked           []entities.BookedSlot
}

// Expander превращает правила доступности в конкретные слоты.
// Не хранит состояния: результат зависит только от запроса и Now().
type Expander struct {
	clock    Clock
	location *time.Location
}

func NewExpander(clock Clock, location *time.Location) *Expander {
	if location == nil {
		location = time.UTC
	}
	return &Expander{
		clock:    clock,
		location: location,
	}
}

func (e *Expander) Expand(req ExpandRequest) ([]entities.Slot, error) {
	if req.ProviderID == "" {
		return nil, ErrInvalidProviderID
	}
	if req.OverrideDuration < 0 {
		return nil, fmt.Errorf("%w: override %s", ErrInvalidDuration, req.OverrideDuration)
	}

	from := startOfDay(req.From.In(e.location))
	to := startOfDay(req.To.In(e.location))
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	rules := make([]entities.AvailabilityRule, 0, len(req.Rules))
	for _, rule := range req.Rules {
		if !rule.IsActive || !ownedBy(rule.ProviderID, req.ProviderID) || !rule.CoversService(req.ServiceID) {
			continue
		}
		if err := validateRule(rule, req.OverrideDuration); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	exceptionsByDay := make(map[string][]entities.AvailabilityException)
	for _, exception := range req.Exceptions {
		if !ownedBy(exception.ProviderID, req.ProviderID) {
			continue
		}
		if err := validateException(exception); err != nil {
			return nil, err
		}
		// дата исключения календарная, без перевода в часовой пояс календаря
		key := dayKey(exception.Date)
		exceptionsByDay[key] = append(exceptionsByDay[key], exception)
	}

	booked := make([]entities.BookedSlot, 0, len(req.Booked))
	for _, b := range req.Booked {
		if ownedBy(b.ProviderID, req.ProviderID) {
			booked = append(booked, b)
		}
	}

	now := e.clock.Now()
	var slots []entities.Slot

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayExceptions := exceptionsByDay[dayKey(day)]

		for _, rule := range rules {
			if !rule.Schedule.AppliesOn(day) {
				continue
			}

			window, blocked, skip := effectiveWindow(rule, dayExceptions, req.ServiceID)
			if skip {
				continue
			}

			slots = append(slots, e.sliceWindow(sliceParams{
				providerID: req.ProviderID,
				rule:       rule,
				day:        day,
				window:     window,
				duration:   effectiveDuration(rule, req.OverrideDuration),
				blocked:    blocked,
				booked:     booked,
				now:        now,
			})...)
		}
	}

	slices.SortStableFunc(slots, func(a, b entities.Slot) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if c := a.End.Compare(b.End); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleID, b.RuleID)
	})

	return slots, nil
}

type sliceParams struct {
	providerID string
	rule       entities.AvailabilityRule
	day        time.Time
	window     entities.TimeWindow
	duration   time.Duration
	blocked    []entities.TimeWindow
	booked     []entities.BookedSlot
	now        time.Time
}

func (e *Expander) sliceWindow(p sliceParams) []entities.Slot {
	earliest := p.now.Add(time.Duration(p.rule.MinimumNoticeHours) * time.Hour)

	var latest time.Time
	if p.rule.MaximumAdvanceDays > 0 {
		latest = p.now.AddDate(0, 0, p.rule.MaximumAdvanceDays)
	}

	windowEnd := p.window.End.On(p.day)
	step := p.duration + p.rule.BufferTime

	maxBookings := p.rule.MaxBookingsPerSlot
	if maxBookings == 0 {
		maxBookings = entities.DefaultMaxBookings
	}
	multiplier := p.rule.PriceMultiplier
	if multiplier == 0 {
		multiplier = entities.DefaultPriceMultiplier
	}

	var slots []entities.Slot
	for cursor := p.window.Start.On(p.day); !cursor.Add(p.duration).After(windowEnd); cursor = cursor.Add(step) {
		start, end := cursor, cursor.Add(p.duration)

		if start.Before(earliest) {
			continue
		}
		if !latest.IsZero() && start.After(latest) {
			break
		}
		if overlapsBlocked(p.blocked, p.day, start, end) {
			continue
		}
		if !p.rule.AllowOverlapping && overlapsBooked(p.booked, start, end) {
			continue
		}

		slots = append(slots, entities.Slot{
			ProviderID:      p.providerID,
			RuleID:          p.rule.ID,
			Start:           start,
			End:             end,
			LocationHint:    p.rule.LocationHint,
			MaxBookings:     maxBookings,
			CurrentBookings: 0,
			Pricing:         entities.SlotPricing{PriceMultiplier: multiplier},
		})
	}
	return slots
}

// effectiveWindow применяет исключения дня к правилу:
// полнодневное UNAVAILABLE/HOLIDAY убирает правило, SPECIAL_HOURS заменяет окно,
// UNAVAILABLE/HOLIDAY с окном блокирует только это окно.
func effectiveWindow(
	rule entities.AvailabilityRule,
	exceptions []entities.AvailabilityException,
	serviceID string,
) (entities.TimeWindow, []entities.TimeWindow, bool) {
	window := rule.Window
	var blocked []entities.TimeWindow
	specialApplied := false

	for _, exception := range exceptions {
		if !exceptionApplies(exception, rule, serviceID) {
			continue
		}

		switch {
		case exception.FullDay():
			return entities.TimeWindow{}, nil, true
		case exception.Kind == entities.ExceptionSpecialHours:
			if !specialApplied {
				window = *exception.Window
				specialApplied = true
			}
		default:
			blocked = append(blocked, *exception.Window)
		}
	}

	return window, blocked, false
}

// exceptionApplies: исключение без списка услуг касается всех правил.
// Если запрошена конкретная услуга, исключение должно ее покрывать,
// иначе достаточно пересечения с услугами правила.
func exceptionApplies(exception entities.AvailabilityException, rule entities.AvailabilityRule, serviceID string) bool {
	if len(exception.ServiceIDs) == 0 {
		return true
	}
	if serviceID != "" {
		return exception.CoversService(serviceID)
	}
	if len(rule.ServiceIDs) == 0 {
		return true
	}
	for _, id := range rule.ServiceIDs {
		if exception.CoversService(id) {
			return true
		}
	}
	return false
}

func overlapsBlocked(blocked []entities.TimeWindow, day, start, end time.Time) bool {
	for _, w := range blocked {
		if start.Before(w.End.On(day)) && w.Start.On(day).Before(end) {
			return true
		}
	}
	return false
}

func overlapsBooked(booked []entities.BookedSlot, start, end time.Time) bool {
	for _, b := range booked {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func ownedBy(owner, providerID string) bool {
	return owner == "" || owner == providerID
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
