package matching

import "errors"

var (
	ErrInvalidAnnouncementID    = errors.New("invalid announcement id")
	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrAnnouncementNotMatchable = errors.New("announcement is not open for matching")
	ErrMatchingInProgress       = errors.New("matching already in progress for announcement")
)
