package domain

import (
	"cmp"
	"slices"
)

// DefaultCrimeTypeColor is used for crime types outside the palette.
const DefaultCrimeTypeColor = "#6b7280"

// crimeTypeColors maps the backend classifier's categories to display colors.
// Never mutated; read through CrimeTypeColor.
var crimeTypeColors = map[string]string{
	"Body Offence":           "#ef4444",
	"Robbery":                "#8b5cf6",
	"Offence Against Women":  "#3b82f6",
	"Accident":               "#f97316",
	"Disaster":               "#92400e",
	"Missing":                "#7f1d1d",
	"Offence Against Public": "#eab308",
}

// CrimeTypeColor returns the display color for an exact crime type string.
func CrimeTypeColor(crimeType string) string {
	if c, ok := crimeTypeColors[crimeType]; ok {
		return c
	}
	return DefaultCrimeTypeColor
}

// SummarizeByDistrict counts incidents per exact district value, largest
// group first. Groups with equal counts keep first-occurrence order.
func SummarizeByDistrict(incidents []Incident) []DistrictSummary {
	counts, order := countBy(incidents, func(i Incident) string { return i.District })

	out := make([]DistrictSummary, 0, len(order))
	for _, name := range order {
		out = append(out, DistrictSummary{Name: name, IncidentCount: counts[name]})
	}
	slices.SortStableFunc(out, func(a, b DistrictSummary) int {
		return cmp.Compare(b.IncidentCount, a.IncidentCount)
	})
	return out
}

// SummarizeByCrimeType counts incidents per exact crime type and attaches
// the palette color, largest group first. Ties keep first-occurrence order.
func SummarizeByCrimeType(incidents []Incident) []CrimeTypeSummary {
	counts, order := countBy(incidents, func(i Incident) string { return i.CrimeType })

	out := make([]CrimeTypeSummary, 0, len(order))
	for _, crimeType := range order {
		out = append(out, CrimeTypeSummary{
			CrimeType: crimeType,
			Count:     counts[crimeType],
			Color:     CrimeTypeColor(crimeType),
		})
	}
	slices.SortStableFunc(out, func(a, b CrimeTypeSummary) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// countBy groups incidents by key, returning per-key counts and the keys in
// order of first occurrence.
func countBy(incidents []Incident, key func(Incident) string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, inc := range incidents {
		k := key(inc)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	return counts, order
}
