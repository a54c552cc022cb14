package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock geocoder ---

type mockGeocoder struct {
	result  GeocodingResult
	err     error
	queries []string
	regions []string
}

func (m *mockGeocoder) ForwardGeocode(_ context.Context, query, region string) (GeocodingResult, error) {
	m.queries = append(m.queries, query)
	m.regions = append(m.regions, region)
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testRegion = "Andhra Pradesh, India"

// --- tests ---

func TestEnrichWithGeocoding_NilGeocoder(t *testing.T) {
	incidents := []Incident{{ID: 1, Address: "MG Road", District: "Guntur"}}

	result := EnrichWithGeocoding(context.Background(), incidents, nil, testRegion, discardLogger())

	assert.Equal(t, incidents, result)
}

func TestEnrichWithGeocoding_FillsMissingCoordinates(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{Lat: 16.3067, Lon: 80.4365, FormattedAddress: "MG Road, Guntur"}}
	incidents := []Incident{
		{ID: 1, Address: "MG Road", District: "Guntur"},
		{ID: 2, Latitude: 17.68, Longitude: 83.21, Address: "Beach Road", District: "Visakhapatnam"},
	}

	result := EnrichWithGeocoding(context.Background(), incidents, geo, testRegion, discardLogger())

	require.Len(t, result, 2)
	assert.Equal(t, 16.3067, result[0].Latitude)
	assert.Equal(t, 80.4365, result[0].Longitude)
	assert.Equal(t, 17.68, result[1].Latitude, "located incidents are left alone")
	assert.Equal(t, []string{"MG Road, Guntur"}, geo.queries)
	assert.Equal(t, []string{testRegion}, geo.regions)

	assert.Zero(t, incidents[0].Latitude, "input slice must not be modified")
}

func TestEnrichWithGeocoding_Failure(t *testing.T) {
	geo := &mockGeocoder{err: errors.New("API timeout")}
	incidents := []Incident{{ID: 1, Address: "MG Road", District: "Guntur"}}

	result := EnrichWithGeocoding(context.Background(), incidents, geo, testRegion, discardLogger())

	assert.Equal(t, incidents, result)
	assert.Len(t, geo.queries, 1)
}

func TestEnrichWithGeocoding_EmptyResult(t *testing.T) {
	geo := &mockGeocoder{}
	incidents := []Incident{{ID: 1, District: "Guntur"}}

	result := EnrichWithGeocoding(context.Background(), incidents, geo, testRegion, discardLogger())

	assert.False(t, result[0].Located())
	assert.Equal(t, []string{"Guntur"}, geo.queries)
}

func TestEnrichWithGeocoding_NothingToQuery(t *testing.T) {
	geo := &mockGeocoder{}
	incidents := []Incident{{ID: 1, District: "Unknown"}}

	EnrichWithGeocoding(context.Background(), incidents, geo, testRegion, discardLogger())

	assert.Empty(t, geo.queries)
}

func TestEnrichWithGeocoding_CancelledContext(t *testing.T) {
	geo := &mockGeocoder{result: GeocodingResult{Lat: 1, Lon: 1}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := EnrichWithGeocoding(ctx, []Incident{{ID: 1, Address: "MG Road"}}, geo, testRegion, discardLogger())

	assert.Empty(t, geo.queries)
	assert.False(t, result[0].Located())
}

func TestGeocodeQuery(t *testing.T) {
	tests := []struct {
		name string
		inc  Incident
		want string
	}{
		{"address and district", Incident{Address: "Gandhi Road", District: "Guntur"}, "Gandhi Road, Guntur"},
		{"address only", Incident{Address: "Gandhi Road", District: "Unknown"}, "Gandhi Road"},
		{"district only", Incident{District: "Ongole"}, "Ongole"},
		{"district equals address", Incident{Address: "Ongole", District: "ongole"}, "Ongole"},
		{"blank", Incident{Address: "  ", District: ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geocodeQuery(tt.inc))
		})
	}
}
