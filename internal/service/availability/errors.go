package availability

import "errors"

var (
	ErrInvalidProviderID = errors.New("invalid provider id")
	ErrInvalidRange      = errors.New("invalid date range")
	ErrInvalidRule       = errors.New("invalid availability rule")
	ErrInvalidException  = errors.New("invalid availability exception")
	ErrInvalidTimeOfDay  = errors.New("invalid time of day")
	ErrInvalidDuration   = errors.New("invalid slot duration")

	ErrRuleNotFound          = errors.New("availability rule not found")
	ErrRuleHasFutureBookings = errors.New("availability rule has confirmed future bookings")
)
