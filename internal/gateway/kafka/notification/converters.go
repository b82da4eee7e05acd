package notification

import "github.com/TheRebzu/ecodeli-sub009/internal/entities"

func toMatchFound(a entities.Announcement, results []entities.MatchResult) matchFoundPayload {
	matches := make([]matchPayload, 0, len(results))
	for _, r := range results {
		matches = append(matches, matchPayload{
			RouteID:        r.RouteID,
			CourierID:      r.CourierID,
			Score:          r.Score,
			MatchType:      r.MatchType.String(),
			DetourPercent:  r.DetourPercent,
			EstimatedPrice: r.EstimatedPrice,
			DurationLabel:  r.DurationLabel,
			Reasons:        r.Reasons,
		})
	}
	return matchFoundPayload{
		AnnouncementID: a.ID,
		ClientID:       a.ClientID,
		Matches:        matches,
	}
}

func toPlanCreated(p entities.PartialDeliveryPlan) planCreatedPayload {
	relays := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		if s.To.RelayPointID != "" {
			relays = append(relays, s.To.RelayPointID)
		}
	}
	return planCreatedPayload{
		PlanID:                p.ID,
		AnnouncementID:        p.AnnouncementID,
		Segments:              len(p.Segments),
		RelayPointIDs:         relays,
		TotalDistanceKm:       p.TotalDistanceKm,
		TotalPrice:            p.TotalPrice,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		IsFallback:            p.IsFallback,
	}
}
