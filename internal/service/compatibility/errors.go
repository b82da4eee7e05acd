package compatibility

import "errors"

var (
	ErrInvalidAnnouncement = errors.New("invalid announcement")
	ErrInvalidRoute        = errors.New("invalid courier route")
)
