package domain

import "github.com/golang/geo/s2"

// MapBounds is the smallest lat/lng rectangle containing a set of incidents,
// in degrees.
type MapBounds struct {
	South     float64 `json:"south"`
	West      float64 `json:"west"`
	North     float64 `json:"north"`
	East      float64 `json:"east"`
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Located   int     `json:"located"`
}

// Bounds computes the map viewport for incidents that have coordinates.
// Incidents at the origin or with out-of-range coordinates are ignored; ok is
// false when none remain.
func Bounds(incidents []Incident) (MapBounds, bool) {
	rect := s2.EmptyRect()
	located := 0
	for _, inc := range incidents {
		if !inc.Located() {
			continue
		}
		ll := s2.LatLngFromDegrees(inc.Latitude, inc.Longitude)
		if !ll.IsValid() {
			continue
		}
		rect = rect.AddPoint(ll)
		located++
	}
	if rect.IsEmpty() {
		return MapBounds{}, false
	}

	lo, hi, center := rect.Lo(), rect.Hi(), rect.Center()
	return MapBounds{
		South:     lo.Lat.Degrees(),
		West:      lo.Lng.Degrees(),
		North:     hi.Lat.Degrees(),
		East:      hi.Lng.Degrees(),
		CenterLat: center.Lat.Degrees(),
		CenterLng: center.Lng.Degrees(),
		Located:   located,
	}, true
}
