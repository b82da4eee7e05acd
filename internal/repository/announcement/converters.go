package announcement

import "github.com/TheRebzu/ecodeli-sub009/internal/entities"

func ToDomain(a *AnnouncementDB) *entities.Announcement {
	if a == nil {
		return nil
	}
	return &entities.Announcement{
		ID:       a.ID,
		ClientID: a.ClientID,
		Type:     entities.AnnouncementType(a.Type),
		Status:   entities.AnnouncementStatus(a.Status),
		Pickup: entities.Place{
			Coordinate: entities.Coordinate{Latitude: a.PickupLat, Longitude: a.PickupLng},
			Address:    a.PickupAddress,
		},
		Delivery: entities.Place{
			Coordinate: entities.Coordinate{Latitude: a.DeliveryLat, Longitude: a.DeliveryLng},
			Address:    a.DeliveryAddress,
		},
		PickupDate:   a.PickupDate,
		DeliveryDate: a.DeliveryDate,
		Parcel: entities.Parcel{
			WeightKg:     a.WeightKg,
			WidthCm:      a.WidthCm,
			HeightCm:     a.HeightCm,
			LengthCm:     a.LengthCm,
			Fragile:      a.Fragile,
			NeedsCooling: a.NeedsCooling,
		},
		SuggestedPrice: a.SuggestedPrice,
		IsNegotiable:   a.IsNegotiable,
		Priority:       entities.Priority(a.Priority),
		IsFlexible:     a.IsFlexible,
		CreatedAt:      a.CreatedAt,
	}
}

func ToDomainList(models []AnnouncementDB) []entities.Announcement {
	result := make([]entities.Announcement, 0, len(models))
	for i := range models {
		result = append(result, *ToDomain(&models[i]))
	}
	return result
}
