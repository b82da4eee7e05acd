package dto

import (
	"time"

	"github.com/TheRebzu/ecodeli-sub009/internal/entities"
)

func FromMatchResults(announcementID string, results []entities.MatchResult) MatchesResponse {
	matches := make([]MatchResult, 0, len(results))
	for _, r := range results {
		matches = append(matches, MatchResult{
			RouteID:           r.RouteID,
			CourierID:         r.CourierID,
			Score:             r.Score,
			Reasons:           r.Reasons,
			MatchType:         r.MatchType.String(),
			DistanceKm:        r.DistanceKm,
			DetourPercent:     r.DetourPercent,
			EstimatedPrice:    r.EstimatedPrice,
			EstimatedDuration: minutes(r.EstimatedDuration),
			DurationLabel:     r.DurationLabel,
			PickupPoint:       fromCoordinate(r.PickupPoint),
			DeliveryPoint:     fromCoordinate(r.DeliveryPoint),
		})
	}
	return MatchesResponse{
		AnnouncementID: announcementID,
		Matches:        matches,
	}
}

func FromSlots(providerID string, slots []entities.Slot) AvailabilityResponse {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{
			RuleID:          s.RuleID,
			Start:           s.Start,
			End:             s.End,
			LocationHint:    s.LocationHint,
			MaxBookings:     s.MaxBookings,
			CurrentBookings: s.CurrentBookings,
			PriceMultiplier: s.Pricing.PriceMultiplier,
		})
	}
	return AvailabilityResponse{
		ProviderID: providerID,
		Slots:      out,
	}
}

func FromRuleChange(rule entities.AvailabilityRule, conflicts []entities.BookedSlot) RuleChangeResponse {
	out := make([]BookedSlot, 0, len(conflicts))
	for _, b := range conflicts {
		out = append(out, BookedSlot{
			ID:     b.ID,
			Start:  b.Start,
			End:    b.End,
			Status: string(b.Status),
		})
	}
	return RuleChangeResponse{
		RuleID:    rule.ID,
		IsActive:  rule.IsActive,
		Start:     rule.Window.Start.String(),
		End:       rule.Window.End.String(),
		Conflicts: out,
	}
}

func FromPlan(p entities.PartialDeliveryPlan) PartialPlan {
	segments := make([]Segment, 0, len(p.Segments))
	for _, s := range p.Segments {
		segments = append(segments, FromSegment(s))
	}
	return PartialPlan{
		ID:                    p.ID,
		AnnouncementID:        p.AnnouncementID,
		Segments:              segments,
		TotalDistanceKm:       p.TotalDistanceKm,
		TotalDuration:         minutes(p.TotalDuration),
		TotalPrice:            p.TotalPrice,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		IsFallback:            p.IsFallback,
		MaxSegmentDistanceKm:  p.MaxSegmentDistanceKm,
		Complete:              p.Complete(),
	}
}

func FromSegment(s entities.Segment) Segment {
	return Segment{
		ID:                s.ID,
		PlanID:            s.PlanID,
		Index:             s.Index,
		From:              fromEndpoint(s.From),
		To:                fromEndpoint(s.To),
		DistanceKm:        s.DistanceKm,
		EstimatedDuration: minutes(s.EstimatedDuration),
		Price:             s.Price,
		Status:            s.Status.String(),
		CourierID:         s.CourierID,
		UpdatedAt:         s.UpdatedAt,
	}
}

func ToRelayTypes(raw []string) []entities.RelayType {
	if len(raw) == 0 {
		return nil
	}
	types := make([]entities.RelayType, 0, len(raw))
	for _, t := range raw {
		types = append(types, entities.RelayType(t))
	}
	return types
}

func fromEndpoint(e entities.SegmentEndpoint) Endpoint {
	p := fromCoordinate(e.Place.Coordinate)
	p.Address = e.Place.Address
	return Endpoint{Point: p, RelayPointID: e.RelayPointID}
}

func fromCoordinate(c entities.Coordinate) Point {
	return Point{Latitude: c.Latitude, Longitude: c.Longitude}
}

func minutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}
