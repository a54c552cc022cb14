package domain

// filterAll is the dashboard's "match anything" selector value.
const filterAll = "All"

// Filter selects incidents by exact field values. Empty fields and "All"
// match anything.
type Filter struct {
	District  string
	CrimeType string
	Severity  string
	Status    string
}

// Matches reports whether inc satisfies every set criterion.
func (f Filter) Matches(inc Incident) bool {
	return matchField(f.District, inc.District) &&
		matchField(f.CrimeType, inc.CrimeType) &&
		matchField(f.Severity, inc.Severity) &&
		matchField(f.Status, inc.Status)
}

// Apply returns the matching incidents in their original order. The input
// slice is not modified.
func (f Filter) Apply(incidents []Incident) []Incident {
	out := make([]Incident, 0, len(incidents))
	for _, inc := range incidents {
		if f.Matches(inc) {
			out = append(out, inc)
		}
	}
	return out
}

func matchField(want, got string) bool {
	return want == "" || want == filterAll || want == got
}
