package entities

import "time"

type AnnouncementStatus string

const (
	AnnouncementDraft      AnnouncementStatus = "DRAFT"
	AnnouncementActive     AnnouncementStatus = "ACTIVE"
	AnnouncementMatched    AnnouncementStatus = "MATCHED"
	AnnouncementInProgress AnnouncementStatus = "IN_PROGRESS"
	AnnouncementDelivered  AnnouncementStatus = "DELIVERED"
	AnnouncementCancelled  AnnouncementStatus = "CANCELLED"
)

func (s AnnouncementStatus) String() string {
	return string(s)
}

// Matchable сообщает, можно ли запускать подбор курьеров в текущем статусе.
func (s AnnouncementStatus) Matchable() bool {
	return s == AnnouncementActive
}

type AnnouncementType string

const (
	PackageDelivery         AnnouncementType = "PACKAGE_DELIVERY"
	PersonTransport         AnnouncementType = "PERSON_TRANSPORT"
	AirportTransfer         AnnouncementType = "AIRPORT_TRANSFER"
	ShoppingDelivery        AnnouncementType = "SHOPPING"
	InternationalBuy        AnnouncementType = "INTERNATIONAL_PURCHASE"
	PetTransport            AnnouncementType = "PET_TRANSPORT"
	CartDropDelivery        AnnouncementType = "CART_DROP"
	DefaultAnnouncementType                  = PackageDelivery
)

func (t AnnouncementType) String() string {
	return string(t)
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

const DefaultPriority = PriorityMedium

func (p Priority) String() string {
	return string(p)
}

// Parcel описывает физические параметры отправления.
// Габариты в сантиметрах, вес в килограммах; nil означает "не указано".
type Parcel struct {
	WeightKg     *float64
	WidthCm      *float64
	HeightCm     *float64
	LengthCm     *float64
	Fragile      bool
	NeedsCooling bool
}

// VolumeM3 возвращает объем только если заданы все три габарита.
func (p Parcel) VolumeM3() (float64, bool) {
	if p.WidthCm == nil || p.HeightCm == nil || p.LengthCm == nil {
		return 0, false
	}
	return (*p.WidthCm * *p.HeightCm * *p.LengthCm) / 1_000_000, true
}

// Announcement - заявка клиента на доставку.
type Announcement struct {
	ID             string
	ClientID       string
	Type           AnnouncementType
	Status         AnnouncementStatus
	Pickup         Place
	Delivery       Place
	PickupDate     *time.Time
	DeliveryDate   *time.Time
	Parcel         Parcel
	SuggestedPrice float64
	IsNegotiable   bool
	Priority       Priority
	IsFlexible     bool
	CreatedAt      time.Time
}
