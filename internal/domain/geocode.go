package domain

import (
	"context"
	"log/slog"
	"strings"
)

// EnrichWithGeocoding fills in coordinates for incidents that have none,
// forward geocoding their address and district within region. It returns a
// new slice; incidents that cannot be geocoded are copied unchanged
// (graceful degradation). A nil geocoder returns the input as-is.
func EnrichWithGeocoding(ctx context.Context, incidents []Incident, geocoder Geocoder, region string, logger *slog.Logger) []Incident {
	if geocoder == nil {
		return incidents
	}

	out := make([]Incident, len(incidents))
	copy(out, incidents)

	enriched := 0
	for i := range out {
		if out[i].Located() {
			continue
		}
		query := geocodeQuery(out[i])
		if query == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		result, err := geocoder.ForwardGeocode(ctx, query, region)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"incident_id", out[i].ID,
				"ticket_id", out[i].TicketID,
				"query", query,
				"error", err,
			)
			continue
		}
		if result.Lat == 0 && result.Lon == 0 {
			continue
		}
		out[i].Latitude = result.Lat
		out[i].Longitude = result.Lon
		enriched++
	}

	if enriched > 0 {
		logger.Debug("geocoded incidents", "count", enriched)
	}
	return out
}

// geocodeQuery joins the address and a known district, e.g.
// "Gandhi Road, Guntur". Returns "" when neither is usable.
func geocodeQuery(inc Incident) string {
	parts := make([]string, 0, 2)
	if a := strings.TrimSpace(inc.Address); a != "" {
		parts = append(parts, a)
	}
	if d := strings.TrimSpace(inc.District); d != "" && d != unknownValue && !strings.EqualFold(d, inc.Address) {
		parts = append(parts, d)
	}
	return strings.Join(parts, ", ")
}
