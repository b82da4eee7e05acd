package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
	"github.com/TheRebzu/ecodeli-sub009/internal/service/availability"
	"gopkg.in/yaml.v3"
)

var errNoAnnouncement = errors.New("fixture has no announcement")

// fixture - снимок данных, который в сервисе пришел бы из базы.
type fixture struct {
	Announcement *announcementFixture `yaml:"announcement"`
	Routes       []routeFixture       `yaml:"routes"`
	Relays       []relayFixture       `yaml:"relays"`
	Rules        []ruleFixture        `yaml:"rules"`
	Exceptions   []exceptionFixture   `yaml:"exceptions"`
	Booked       []bookedFixture      `yaml:"booked"`
}

type placeFixture struct {
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Address string  `yaml:"address"`
}

type parcelFixture struct {
	WeightKg     *float64 `yaml:"weight_kg"`
	WidthCm      *float64 `yaml:"width_cm"`
	HeightCm     *float64 `yaml:"height_cm"`
	LengthCm     *float64 `yaml:"length_cm"`
	Fragile      bool     `yaml:"fragile"`
	NeedsCooling bool     `yaml:"needs_cooling"`
}

type announcementFixture struct {
	ID             string        `yaml:"id"`
	Type           string        `yaml:"type"`
	Pickup         placeFixture  `yaml:"pickup"`
	Delivery       placeFixture  `yaml:"delivery"`
	PickupDate     *time.Time    `yaml:"pickup_date"`
	DeliveryDate   *time.Time    `yaml:"delivery_date"`
	Parcel         parcelFixture `yaml:"parcel"`
	SuggestedPrice float64       `yaml:"suggested_price"`
	Priority       string        `yaml:"priority"`
	IsFlexible     bool          `yaml:"flexible"`
}

type waypointFixture struct {
	placeFixture `yaml:",inline"`
	RadiusKm     float64 `yaml:"radius_km"`
}

type routeFixture struct {
	ID            string            `yaml:"id"`
	CourierID     string            `yaml:"courier_id"`
	Departure     placeFixture      `yaml:"departure"`
	Arrival       placeFixture      `yaml:"arrival"`
	DepartureDate *time.Time        `yaml:"departure_date"`
	RecurringDays []string          `yaml:"recurring_days"`
	Waypoints     []waypointFixture `yaml:"waypoints"`
	MaxWeightKg   *float64          `yaml:"max_weight_kg"`
	MaxVolumeM3   *float64          `yaml:"max_volume_m3"`
	Fragile       bool              `yaml:"accepts_fragile"`
	Cooling       bool              `yaml:"accepts_cooling"`
	PricePerKm    float64           `yaml:"price_per_km"`
	FixedPrice    *float64          `yaml:"fixed_price"`
	MinMatchKm    float64           `yaml:"min_match_distance_km"`
	MaxDetour     float64           `yaml:"max_detour_percent"`
}

type relayFixture struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`
	Place    placeFixture `yaml:"place"`
	Capacity int          `yaml:"capacity"`
}

type ruleFixture struct {
	ID              string   `yaml:"id"`
	ProviderID      string   `yaml:"provider_id"`
	Weekday         string   `yaml:"weekday"`
	Date            string   `yaml:"date"`
	Start           string   `yaml:"start"`
	End             string   `yaml:"end"`
	SlotMinutes     int      `yaml:"slot_minutes"`
	BufferMinutes   *int     `yaml:"buffer_minutes"`
	MaxBookings     int      `yaml:"max_bookings"`
	NoticeHours     int      `yaml:"minimum_notice_hours"`
	AdvanceDays     int      `yaml:"maximum_advance_days"`
	ServiceIDs      []string `yaml:"service_ids"`
	PriceMultiplier float64  `yaml:"price_multiplier"`
	LocationHint    string   `yaml:"location_hint"`
	Inactive        bool     `yaml:"inactive"`
	AllowOverlap    bool     `yaml:"allow_overlapping"`
}

// bufferTime: пропущенное поле означает перерыв по умолчанию, явный 0 сохраняется.
func (r ruleFixture) bufferTime() time.Duration {
	if r.BufferMinutes == nil {
		return entities.DefaultBufferTime
	}
	return time.Duration(*r.BufferMinutes) * time.Minute
}

type exceptionFixture struct {
	ID         string   `yaml:"id"`
	ProviderID string   `yaml:"provider_id"`
	Date       string   `yaml:"date"`
	Kind       string   `yaml:"kind"`
	Start      string   `yaml:"start"`
	End        string   `yaml:"end"`
	ServiceIDs []string `yaml:"service_ids"`
	Reason     string   `yaml:"reason"`
}

type bookedFixture struct {
	ID         string    `yaml:"id"`
	ProviderID string    `yaml:"provider_id"`
	RuleID     string    `yaml:"rule_id"`
	Start      time.Time `yaml:"start"`
	End        time.Time `yaml:"end"`
	Status     string    `yaml:"status"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return parseFixture(raw)
}

func parseFixture(raw []byte) (*fixture, error) {
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func (p placeFixture) place() entities.Place {
	return entities.Place{
		Coordinate: entities.Coordinate{Latitude: p.Lat, Longitude: p.Lng},
		Address:    p.Address,
	}
}

func (f *fixture) announcement() (entities.Announcement, error) {
	if f.Announcement == nil {
		return entities.Announcement{}, errNoAnnouncement
	}
	a := f.Announcement

	kind := entities.AnnouncementType(strings.ToUpper(a.Type))
	if kind == "" {
		kind = entities.DefaultAnnouncementType
	}
	priority := entities.Priority(strings.ToUpper(a.Priority))
	if priority == "" {
		priority = entities.DefaultPriority
	}

	return entities.Announcement{
		ID:           a.ID,
		Type:         kind,
		Status:       entities.AnnouncementActive,
		Pickup:       a.Pickup.place(),
		Delivery:     a.Delivery.place(),
		PickupDate:   a.PickupDate,
		DeliveryDate: a.DeliveryDate,
		Parcel: entities.Parcel{
			WeightKg:     a.Parcel.WeightKg,
			WidthCm:      a.Parcel.WidthCm,
			HeightCm:     a.Parcel.HeightCm,
			LengthCm:     a.Parcel.LengthCm,
			Fragile:      a.Parcel.Fragile,
			NeedsCooling: a.Parcel.NeedsCooling,
		},
		SuggestedPrice: a.SuggestedPrice,
		Priority:       priority,
		IsFlexible:     a.IsFlexible,
	}, nil
}

func (f *fixture) routes() ([]entities.CourierRoute, error) {
	routes := make([]entities.CourierRoute, 0, len(f.Routes))
	for _, r := range f.Routes {
		days := make([]time.Weekday, 0, len(r.RecurringDays))
		for _, name := range r.RecurringDays {
			day, err := parseWeekday(name)
			if err != nil {
				return nil, fmt.Errorf("route %s: %w", r.ID, err)
			}
			days = append(days, day)
		}

		waypoints := make([]entities.Waypoint, 0, len(r.Waypoints))
		for _, w := range r.Waypoints {
			waypoints = append(waypoints, entities.Waypoint{Place: w.place(), RadiusKm: w.RadiusKm})
		}

		routes = append(routes, entities.CourierRoute{
			ID:            r.ID,
			CourierID:     r.CourierID,
			Departure:     r.Departure.place(),
			Arrival:       r.Arrival.place(),
			DepartureDate: r.DepartureDate,
			IsRecurring:   len(days) > 0,
			RecurringDays: days,
			Waypoints:     waypoints,
			Capacity: entities.RouteCapacity{
				MaxWeightKg: r.MaxWeightKg,
				MaxVolumeM3: r.MaxVolumeM3,
			},
			Accepts: entities.RouteAcceptance{
				Fragile: r.Fragile,
				Cooling: r.Cooling,
			},
			Pricing: entities.RoutePricing{
				PricePerKm: r.PricePerKm,
				FixedPrice: r.FixedPrice,
			},
			Constraints: entities.RouteConstraints{
				MinMatchDistanceKm: r.MinMatchKm,
				MaxDetourPercent:   r.MaxDetour,
			},
			IsActive: true,
		})
	}
	return routes, nil
}

func (f *fixture) relays() []entities.RelayPoint {
	relays := make([]entities.RelayPoint, 0, len(f.Relays))
	for _, r := range f.Relays {
		relays = append(relays, entities.RelayPoint{
			ID:                r.ID,
			Name:              r.Name,
			Type:              entities.RelayType(strings.ToUpper(r.Type)),
			Place:             r.Place.place(),
			IsActive:          true,
			AvailableCapacity: r.Capacity,
		})
	}
	return relays
}

// rules переводит даты правил в календарную зону, как это делает сервис.
func (f *fixture) rules(loc *time.Location) ([]entities.AvailabilityRule, error) {
	rules := make([]entities.AvailabilityRule, 0, len(f.Rules))
	for _, r := range f.Rules {
		window, err := availability.ParseTimeWindow(r.Start, r.End)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}

		var schedule entities.RuleSchedule
		switch {
		case r.Date != "":
			date, err := time.ParseInLocation(time.DateOnly, r.Date, loc)
			if err != nil {
				return nil, fmt.Errorf("rule %s: parse date: %w", r.ID, err)
			}
			schedule = entities.OneTimeSchedule{Date: date}
		default:
			day, err := parseWeekday(r.Weekday)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", r.ID, err)
			}
			schedule = entities.RecurringSchedule{Weekday: day}
		}

		rules = append(rules, entities.AvailabilityRule{
			ID:                 r.ID,
			ProviderID:         r.ProviderID,
			Schedule:           schedule,
			Window:             window,
			SlotDuration:       time.Duration(r.SlotMinutes) * time.Minute,
			BufferTime:         r.bufferTime(),
			MaxBookingsPerSlot: r.MaxBookings,
			MinimumNoticeHours: r.NoticeHours,
			MaximumAdvanceDays: r.AdvanceDays,
			ServiceIDs:         r.ServiceIDs,
			PriceMultiplier:    r.PriceMultiplier,
			IsActive:           !r.Inactive,
			LocationHint:       r.LocationHint,
			AllowOverlapping:   r.AllowOverlap,
		})
	}
	return rules, nil
}

func (f *fixture) exceptions(loc *time.Location) ([]entities.AvailabilityException, error) {
	exceptions := make([]entities.AvailabilityException, 0, len(f.Exceptions))
	for _, e := range f.Exceptions {
		date, err := time.ParseInLocation(time.DateOnly, e.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("exception %s: parse date: %w", e.ID, err)
		}

		var window *entities.TimeWindow
		if e.Start != "" || e.End != "" {
			w, err := availability.ParseTimeWindow(e.Start, e.End)
			if err != nil {
				return nil, fmt.Errorf("exception %s: %w", e.ID, err)
			}
			window = &w
		}

		exceptions = append(exceptions, entities.AvailabilityException{
			ID:         e.ID,
			ProviderID: e.ProviderID,
			Date:       date,
			Kind:       entities.ExceptionKind(strings.ToUpper(e.Kind)),
			Window:     window,
			ServiceIDs: e.ServiceIDs,
			Reason:     e.Reason,
		})
	}
	return exceptions, nil
}

func (f *fixture) booked() []entities.BookedSlot {
	booked := make([]entities.BookedSlot, 0, len(f.Booked))
	for _, b := range f.Booked {
		status := entities.BookingStatus(strings.ToUpper(b.Status))
		if status == "" {
			status = entities.BookingConfirmed
		}
		booked = append(booked, entities.BookedSlot{
			ID:         b.ID,
			ProviderID: b.ProviderID,
			RuleID:     b.RuleID,
			Start:      b.Start,
			End:        b.End,
			Status:     status,
		})
	}
	return booked
}

func parseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), strings.TrimSpace(name)) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
