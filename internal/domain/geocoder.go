package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	// ForwardGeocode converts an address within a region (state, country) to
	// coordinates. An empty result means nothing matched.
	ForwardGeocode(ctx context.Context, query, region string) (GeocodingResult, error)
}
