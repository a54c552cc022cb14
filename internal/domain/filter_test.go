package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Apply(t *testing.T) {
	incidents := []Incident{
		{ID: 1, District: "Guntur", CrimeType: "Accident", Severity: "High", Status: "Pending"},
		{ID: 2, District: "Krishna", CrimeType: "Robbery", Severity: "Medium", Status: "Resolved"},
		{ID: 3, District: "Guntur", CrimeType: "Robbery", Severity: "Medium", Status: "Pending"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"zero filter matches all", Filter{}, []int64{1, 2, 3}},
		{"All matches all", Filter{District: "All", CrimeType: "All"}, []int64{1, 2, 3}},
		{"district", Filter{District: "Guntur"}, []int64{1, 3}},
		{"district and type", Filter{District: "Guntur", CrimeType: "Robbery"}, []int64{3}},
		{"severity", Filter{Severity: "Medium"}, []int64{2, 3}},
		{"status", Filter{Status: "Resolved"}, []int64{2}},
		{"exact match only", Filter{District: "guntur"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(incidents)
			ids := make([]int64, 0, len(got))
			for _, inc := range got {
				ids = append(ids, inc.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
