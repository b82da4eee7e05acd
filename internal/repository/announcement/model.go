package announcement

import "time"

type AnnouncementDB struct {
	ID              string
	ClientID        string
	Type            string
	Status          string
	PickupLat       float64
	PickupLng       float64
	PickupAddress   string
	DeliveryLat     float64
	DeliveryLng     float64
	DeliveryAddress string
	PickupDate      *time.Time
	DeliveryDate    *time.Time
	WeightKg        *float64
	WidthCm         *float64
	HeightCm        *float64
	LengthCm        *float64
	Fragile         bool
	NeedsCooling    bool
	SuggestedPrice  float64
	IsNegotiable    bool
	Priority        string
	IsFlexible      bool
	CreatedAt       time.Time
}
