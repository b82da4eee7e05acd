package entities

import (
	"fmt"
	"time"
)

const (
	DefaultSlotDuration    = 60 * time.Minute
	DefaultBufferTime      = 15 * time.Minute
	DefaultMaxBookings     = 1
	DefaultPriceMultiplier = 1.0
)

// TimeOfDay - минуты от полуночи, [0, 1440].
type TimeOfDay int

const EndOfDay TimeOfDay = 24 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On переносит время суток на конкретный календарный день.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, day.Location())
}

type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w TimeWindow) Valid() bool {
	return w.Start >= 0 && w.End <= EndOfDay && w.Start < w.End
}

type RuleKind string

const (
	RuleRecurring RuleKind = "RECURRING"
	RuleOneTime   RuleKind = "ONE_TIME"
)

func (k RuleKind) String() string {
	return string(k)
}

// RuleSchedule - RecurringSchedule или OneTimeSchedule.
type RuleSchedule interface {
	Kind() RuleKind
	AppliesOn(day time.Time) bool
}

type RecurringSchedule struct {
	Weekday time.Weekday
}

func (RecurringSchedule) Kind() RuleKind {
	return RuleRecurring
}

func (s RecurringSchedule) AppliesOn(day time.Time) bool {
	return day.Weekday() == s.Weekday
}

type OneTimeSchedule struct {
	Date time.Time
}

func (OneTimeSchedule) Kind() RuleKind {
	return RuleOneTime
}

func (s OneTimeSchedule) AppliesOn(day time.Time) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type AvailabilityRule struct {
	ID                 string
	ProviderID         string
	Schedule           RuleSchedule
	Window             TimeWindow
	SlotDuration       time.Duration
	BufferTime         time.Duration
	MaxBookingsPerSlot int
	MinimumNoticeHours int
	// MaximumAdvanceDays == 0 снимает ограничение на горизонт бронирования.
	MaximumAdvanceDays int
	ServiceIDs         []string
	PriceMultiplier    float64
	AllowOverlapping   bool
	IsActive           bool
	LocationHint       string
}

// CoversService: пустой список услуг означает "все услуги".
func (r AvailabilityRule) CoversService(serviceID string) bool {
	return coversService(r.ServiceIDs, serviceID)
}

type ExceptionKind string

const (
	ExceptionUnavailable  ExceptionKind = "UNAVAILABLE"
	ExceptionSpecialHours ExceptionKind = "SPECIAL_HOURS"
	ExceptionHoliday      ExceptionKind = "HOLIDAY"
)

func (k ExceptionKind) String() string {
	return string(k)
}

type AvailabilityException struct {
	ID         string
	ProviderID string
	Date       time.Time
	Kind       ExceptionKind
	// Window == nil для исключения на весь день.
	Window     *TimeWindow
	ServiceIDs []string
	Reason     string
}

func (e AvailabilityException) FullDay() bool {
	return e.Window == nil && e.Kind != ExceptionSpecialHours
}

func (e AvailabilityException) CoversService(serviceID string) bool {
	return coversService(e.ServiceIDs, serviceID)
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
)

type BookedSlot struct {
	ID         string
	ProviderID string
	RuleID     string
	Start      time.Time
	End        time.Time
	Status     BookingStatus
}

func (b BookedSlot) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

type SlotPricing struct {
	PriceMultiplier float64
}

type Slot struct {
	ProviderID      string
	RuleID          string
	Start           time.Time
	End             time.Time
	LocationHint    string
	MaxBookings     int
	CurrentBookings int
	Pricing         SlotPricing
}

func coversService(scope []string, serviceID string) bool {
	if len(scope) == 0 || serviceID == "" {
		return true
	}
	for _, id := range scope {
		if id == serviceID {
			return true
		}
	}
	return false
}
