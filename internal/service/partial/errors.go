package partial

import "errors"

var (
	ErrInvalidAnnouncementID = errors.New("invalid announcement id")
	ErrInvalidSegmentID      = errors.New("invalid segment id")
	ErrInvalidCourierID      = errors.New("invalid courier id")
	ErrInvalidMaxDistance    = errors.New("invalid max segment distance")
	ErrInvalidRelayType      = errors.New("invalid relay type")
	ErrInvalidStatus         = errors.New("invalid segment status")

	// ErrSplitNotRequired - доставка короче максимального сегмента, план не нужен.
	ErrSplitNotRequired = errors.New("delivery does not need to be split")
	// ErrNoViableRelay - нет точек передачи даже после расширения поиска.
	ErrNoViableRelay = errors.New("no viable relay point")

	ErrPlanNotFound            = errors.New("partial delivery plan not found")
	ErrSegmentNotFound         = errors.New("segment not found")
	ErrInvalidTransition       = errors.New("invalid segment status transition")
	ErrPredecessorNotCompleted = errors.New("previous segment is not completed")
	ErrSegmentAlreadyAssigned  = errors.New("segment already assigned")
	// ErrSegmentStateChanged - статус сегмента изменился между чтением и записью.
	ErrSegmentStateChanged = errors.New("segment status changed concurrently")
	ErrRelayFull           = errors.New("relay point has no capacity left")
)
