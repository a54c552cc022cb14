package domain

// Incident is the canonical representation of one backend record. Every
// field is always populated; see fieldTable for sources and defaults.
type Incident struct {
	ID          int64   `json:"id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CrimeType   string  `json:"crime_type"`
	Severity    string  `json:"severity"`
	OccurredAt  string  `json:"occurred_at"` // free-form, as sent by the backend
	District    string  `json:"district"`
	Description string  `json:"description"`
	TicketID    string  `json:"ticket_id"`
	CallerName  string  `json:"caller_name"`
	Address     string  `json:"address"`
	Officer     string  `json:"officer"`
	Status      string  `json:"status"`
}

// Located reports whether the incident has coordinates other than the
// origin. Missing coordinates normalize to 0,0 so the two are equivalent.
func (i Incident) Located() bool {
	return i.Latitude != 0 || i.Longitude != 0
}

// DistrictSummary counts incidents sharing one district value.
type DistrictSummary struct {
	Name          string `json:"name"`
	IncidentCount int    `json:"incident_count"`
}

// CrimeTypeSummary counts incidents sharing one crime type, with the color
// the dashboard uses for it.
type CrimeTypeSummary struct {
	CrimeType string `json:"crime_type"`
	Count     int    `json:"count"`
	Color     string `json:"color"`
}
