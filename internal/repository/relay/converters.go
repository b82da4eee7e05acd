package relay

import "github.com/TheRebzu/ecodeli-sub009/internal/entities"

func ToDomain(r *RelayPointDB) *entities.RelayPoint {
	if r == nil {
		return nil
	}
	return &entities.RelayPoint{
		ID:   r.ID,
		Name: r.Name,
		Type: entities.RelayType(r.Type),
		Place: entities.Place{
			Coordinate: entities.Coordinate{Latitude: r.Lat, Longitude: r.Lng},
			Address:    r.Address,
		},
		IsActive:          r.IsActive,
		AvailableCapacity: r.AvailableCapacity,
	}
}
