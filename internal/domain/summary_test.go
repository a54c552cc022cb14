package domain

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func makeIncidents(pairs ...[2]string) []Incident {
	out := make([]Incident, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, Incident{ID: int64(i + 1), District: p[0], CrimeType: p[1]})
	}
	return out
}

func TestSummarizeByDistrict(t *testing.T) {
	incidents := makeIncidents(
		[2]string{"Nellore", "Accident"},
		[2]string{"Guntur", "Robbery"},
		[2]string{"Kurnool", "Missing"},
		[2]string{"Guntur", "Accident"},
		[2]string{"Kurnool", "Body Offence"},
		[2]string{"Guntur", "Disaster"},
	)

	got := SummarizeByDistrict(incidents)

	assert.Equal(t, []DistrictSummary{
		{Name: "Guntur", IncidentCount: 3},
		{Name: "Kurnool", IncidentCount: 2},
		{Name: "Nellore", IncidentCount: 1},
	}, got)
}

func TestSummarizeByDistrict_TiesKeepFirstOccurrence(t *testing.T) {
	incidents := makeIncidents(
		[2]string{"Ongole", ""},
		[2]string{"Eluru", ""},
		[2]string{"Kadapa", ""},
		[2]string{"Eluru", ""},
		[2]string{"Ongole", ""},
		[2]string{"Kadapa", ""},
	)

	got := SummarizeByDistrict(incidents)

	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Ongole", "Eluru", "Kadapa"}, names)
}

func TestSummarizeByDistrict_CaseSensitive(t *testing.T) {
	incidents := makeIncidents(
		[2]string{"Guntur", ""},
		[2]string{"guntur", ""},
		[2]string{"Guntur ", ""},
	)

	assert.Len(t, SummarizeByDistrict(incidents), 3)
}

func TestSummarizeByDistrict_Empty(t *testing.T) {
	got := SummarizeByDistrict(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSummarizeByCrimeType(t *testing.T) {
	incidents := makeIncidents(
		[2]string{"", "Theft"},
		[2]string{"", "Robbery"},
		[2]string{"", "Body Offence"},
		[2]string{"", "Robbery"},
		[2]string{"", "Unknown"},
	)

	got := SummarizeByCrimeType(incidents)

	assert.Equal(t, []CrimeTypeSummary{
		{CrimeType: "Robbery", Count: 2, Color: "#8b5cf6"},
		{CrimeType: "Theft", Count: 1, Color: DefaultCrimeTypeColor},
		{CrimeType: "Body Offence", Count: 1, Color: "#ef4444"},
		{CrimeType: "Unknown", Count: 1, Color: DefaultCrimeTypeColor},
	}, got)
}

func TestCrimeTypeColor(t *testing.T) {
	tests := map[string]string{
		"Body Offence":           "#ef4444",
		"Robbery":                "#8b5cf6",
		"Offence Against Women":  "#3b82f6",
		"Accident":               "#f97316",
		"Disaster":               "#92400e",
		"Missing":                "#7f1d1d",
		"Offence Against Public": "#eab308",
		"robbery":                DefaultCrimeTypeColor,
		"Assault":                DefaultCrimeTypeColor,
		"":                       DefaultCrimeTypeColor,
	}
	for crimeType, want := range tests {
		assert.Equal(t, want, CrimeTypeColor(crimeType), crimeType)
	}
}

func TestSummaries_SumAndOrderProperties(t *testing.T) {
	districts := []string{"Guntur", "Krishna", "Nellore", "Chittoor", "Kakinada"}
	types := []string{"Accident", "Robbery", "Missing", "Disaster"}

	var incidents []Incident
	for i := range 97 {
		incidents = append(incidents, Incident{
			ID:        int64(i),
			District:  districts[(i*7)%len(districts)],
			CrimeType: types[(i*i)%len(types)],
		})
	}

	bd := SummarizeByDistrict(incidents)
	sum := 0
	for i, s := range bd {
		sum += s.IncidentCount
		if i > 0 {
			assert.LessOrEqual(t, s.IncidentCount, bd[i-1].IncidentCount)
		}
	}
	assert.Equal(t, len(incidents), sum)

	bc := SummarizeByCrimeType(incidents)
	sum = 0
	for i, s := range bc {
		sum += s.Count
		if i > 0 {
			assert.LessOrEqual(t, s.Count, bc[i-1].Count)
		}
	}
	assert.Equal(t, len(incidents), sum)
}

func TestSummaries_IdempotentAndPure(t *testing.T) {
	incidents := makeIncidents(
		[2]string{"Guntur", "Accident"},
		[2]string{"Krishna", "Robbery"},
		[2]string{"Guntur", "Robbery"},
		[2]string{"Tirupati", "Missing"},
	)
	original := slices.Clone(incidents)
	copied := slices.Clone(incidents)

	if diff := cmp.Diff(SummarizeByDistrict(incidents), SummarizeByDistrict(copied)); diff != "" {
		t.Errorf("district summary differs between calls (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(SummarizeByCrimeType(incidents), SummarizeByCrimeType(incidents)); diff != "" {
		t.Errorf("crime type summary differs between calls (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(original, incidents); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}
