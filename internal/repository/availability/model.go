package availability

import "time"

type RuleDB struct {
	ID                 string
	ProviderID         string
	Kind               string
	Weekday            *int16
	RuleDate           *time.Time
	StartMinute        int
	EndMinute          int
	SlotMinutes        int
	BufferMinutes      int
	MaxBookingsPerSlot int
	MinimumNoticeHours int
	MaximumAdvanceDays int
	ServiceIDs         []string
	PriceMultiplier    float64
	AllowOverlapping   bool
	IsActive           bool
	LocationHint       string
}

type ExceptionDB struct {
	ID            string
	ProviderID    string
	ExceptionDate time.Time
	Kind          string
	StartMinute   *int
	EndMinute     *int
	ServiceIDs    []string
	Reason        string
}

type BookedSlotDB struct {
	ID         string
	ProviderID string
	RuleID     *string
	StartsAt   time.Time
	EndsAt     time.Time
	Status     string
}
