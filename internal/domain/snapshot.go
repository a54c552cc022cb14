package domain

import "time"

// Fetch paths recorded on a Snapshot.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

// RawResponse is a successful reply from the incident listing endpoint,
// before any parsing.
type RawResponse struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// Snapshot is the canonical incident set produced by one fetch. It is never
// modified after creation; a later fetch replaces it wholesale.
type Snapshot struct {
	Incidents []Incident `json:"incidents"`
	FetchedAt time.Time  `json:"fetched_at"`
	Source    string     `json:"source"` // SourcePrimary or SourceFallback
}
