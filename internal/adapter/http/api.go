package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
	"github.com/couchcryptid/dial112-incident-feed/internal/feed"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

type incidentsResponse struct {
	Incidents []domain.Incident `json:"incidents"`
	Count     int               `json:"count"`
	FetchedAt time.Time         `json:"fetched_at"`
	Source    string            `json:"source"`
}

type districtSummaryResponse struct {
	Districts []domain.DistrictSummary `json:"districts"`
	Total     int                      `json:"total"`
	FetchedAt time.Time                `json:"fetched_at"`
}

type crimeTypeSummaryResponse struct {
	CrimeTypes []domain.CrimeTypeSummary `json:"crime_types"`
	Total      int                       `json:"total"`
	FetchedAt  time.Time                 `json:"fetched_at"`
}

type refreshResponse struct {
	Status    string    `json:"status"`
	Incidents int       `json:"incidents"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (s *Server) handleIncidents(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	incidents := filterFromQuery(r).Apply(snap.Incidents)
	sharedobs.WriteJSON(w, http.StatusOK, incidentsResponse{
		Incidents: incidents,
		Count:     len(incidents),
		FetchedAt: snap.FetchedAt,
		Source:    snap.Source,
	})
}

func (s *Server) handleDistrictSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	incidents := filterFromQuery(r).Apply(snap.Incidents)
	sharedobs.WriteJSON(w, http.StatusOK, districtSummaryResponse{
		Districts: domain.SummarizeByDistrict(incidents),
		Total:     len(incidents),
		FetchedAt: snap.FetchedAt,
	})
}

func (s *Server) handleCrimeTypeSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	incidents := filterFromQuery(r).Apply(snap.Incidents)
	sharedobs.WriteJSON(w, http.StatusOK, crimeTypeSummaryResponse{
		CrimeTypes: domain.SummarizeByCrimeType(incidents),
		Total:      len(incidents),
		FetchedAt:  snap.FetchedAt,
	})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	bounds, found := domain.Bounds(filterFromQuery(r).Apply(snap.Incidents))
	if !found {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: "no incidents with coordinates"})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, bounds)
}

// handleRefresh runs the refresh detached from the request so a client that
// disconnects does not leave a half-geocoded snapshot or an aborted publish.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), refreshTimeout)
	defer cancel()

	snap, err := s.feed.Refresh(ctx)
	if err != nil {
		if errors.Is(err, feed.ErrRefreshInProgress) {
			sharedobs.WriteJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Retryable: true})
			return
		}
		kind := domain.ErrorKind(err)
		s.logger.Warn("manual refresh failed", "error", err, "kind", kind)
		sharedobs.WriteJSON(w, refreshErrorStatus(kind), errorResponse{
			Error:     err.Error(),
			Kind:      kind,
			Retryable: domain.Retryable(err),
		})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, refreshResponse{
		Status:    "refreshed",
		Incidents: len(snap.Incidents),
		Source:    snap.Source,
		FetchedAt: snap.FetchedAt,
	})
}

// snapshot writes 503 and returns false until the first fetch has succeeded.
func (s *Server) snapshot(w http.ResponseWriter) (*domain.Snapshot, bool) {
	snap := s.feed.Snapshot()
	if snap == nil {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:     "incident data not loaded yet",
			Retryable: true,
		})
		return nil, false
	}
	return snap, true
}

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		District:  q.Get("district"),
		CrimeType: q.Get("crime_type"),
		Severity:  q.Get("severity"),
		Status:    q.Get("status"),
	}
}

func refreshErrorStatus(kind string) int {
	switch kind {
	case domain.KindTransport:
		return http.StatusBadGateway
	case domain.KindInvalidResponseFormat, domain.KindUnexpectedResponseShape:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
