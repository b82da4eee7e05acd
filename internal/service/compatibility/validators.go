package compatibility

import (
	"fmt"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/pkg/geo"
)

func validateAnnouncement(a entities.Announcement) error {
	if err := geo.Validate(a.Pickup.Coordinate); err != nil {
		return fmt.Errorf("%w %s: pickup: %w", ErrInvalidAnnouncement, a.ID, err)
	}
	if err := geo.Validate(a.Delivery.Coordinate); err != nil {
		return fmt.Errorf("%w %s: delivery: %w", ErrInvalidAnnouncement, a.ID, err)
	}
	if w := a.Parcel.WeightKg; w != nil && *w < 0 {
		return fmt.Errorf("%w %s: negative weight", ErrInvalidAnnouncement, a.ID)
	}
	return nil
}

func validateRoute(r entities.CourierRoute) error {
	if err := geo.Validate(r.Departure.Coordinate); err != nil {
		return fmt.Errorf("%w %s: departure: %w", ErrInvalidRoute, r.ID, err)
	}
	if err := geo.Validate(r.Arrival.Coordinate); err != nil {
		return fmt.Errorf("%w %s: arrival: %w", ErrInvalidRoute, r.ID, err)
	}
	for i, w := range r.Waypoints {
		if err := geo.Validate(w.Place.Coordinate); err != nil {
			return fmt.Errorf("%w %s: waypoint %d: %w", ErrInvalidRoute, r.ID, i, err)
		}
	}
	return nil
}
