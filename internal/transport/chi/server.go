package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/domain"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/geo"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	"github.com/kailas-cloud/clinicdex/internal/logger"
	healthuc "github.com/kailas-cloud/clinicdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clinicdex/internal/usecase/search"
	"github.com/kailas-cloud/clinicdex/internal/version"
)

// DefaultRadiusKm applies when coordinates are given without radius_km.
const DefaultRadiusKm = 25.0

const defaultSuggestLimit = 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeIndexUnavailable),
		sentinelHandler(domain.ErrTransport, http.StatusBadGateway, ErrorResponseCodeStoreUnavailable),
	}
	return s
}

// SearchClinics handles GET /v1/clinics/search.
func (s *Server) SearchClinics(w http.ResponseWriter, r *http.Request, params SearchClinicsParams) {
	c, st, err := searchRequestFromParams(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	out, err := s.search.Search(r.Context(), c, st)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	origin, _ := st.Origin()
	writeJSON(w, http.StatusOK, SearchResponse{
		Items:                itemsFromOutcome(&out, c.Near, origin),
		Total:                out.Total,
		FellBackToUnfiltered: out.FellBackToUnfiltered,
		Terms:                nonNil(out.Terms),
	})
}

// SearchNationwide handles GET /v1/clinics/nationwide.
func (s *Server) SearchNationwide(w http.ResponseWriter, r *http.Request, params NationwideParams) {
	out, err := s.search.Nationwide(r.Context(), params.Q, derefInt(params.Limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NationwideResponse{
		Items:                itemsFromOutcome(&out, nil, geo.Point{}),
		Total:                out.Total,
		FellBackToUnfiltered: out.FellBackToUnfiltered,
	})
}

// ExpandTerms handles GET /v1/search/expand.
func (s *Server) ExpandTerms(w http.ResponseWriter, r *http.Request, params ExpandTermsParams) {
	if len(params.Q) > domain.MaxQueryLength {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			fmt.Sprintf("q exceeds %d bytes", domain.MaxQueryLength))
		return
	}
	writeJSON(w, http.StatusOK, ExpandResponse{Terms: nonNil(s.search.ExpandTerms(params.Q))})
}

// Suggest handles GET /v1/search/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request, params SuggestParams) {
	limit := defaultSuggestLimit
	if params.Limit != nil && *params.Limit > 0 {
		limit = *params.Limit
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: nonNil(s.search.Suggest(params.Q, limit))})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// InvalidParamHandler renders parameter binding failures as JSON 400s.
func InvalidParamHandler(w http.ResponseWriter, _ *http.Request, err error) {
	msg := "invalid request"
	var pe *InvalidParamFormatError
	if errors.As(err, &pe) {
		msg = "invalid query parameter " + pe.ParamName
	}
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation errors are the
// caller's own input and are echoed; anything else collapses to its sentinel.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrIndexUnavailable,
		domain.ErrTransport,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

// searchRequestFromParams splits the query into store hints and the client-side filter state.
// A single state narrows the fetch; several are filtered after it.
func searchRequestFromParams(p SearchClinicsParams) (clinic.Criteria, filter.State, error) {
	st := filter.New(derefString(p.Q))
	var c clinic.Criteria

	if p.State != nil {
		st = st.WithStates(*p.State...)
		if states := st.States(); len(states) == 1 {
			c.State = states[0]
		}
	}
	c.City = derefString(p.City)

	switch {
	case p.Lat != nil && p.Lng != nil:
		pt, err := geo.NewPoint(*p.Lat, *p.Lng)
		if err != nil {
			return c, st, err
		}
		c.Near = &pt
		c.RadiusKm = DefaultRadiusKm
		if p.RadiusKm != nil {
			c.RadiusKm = *p.RadiusKm
		}
		st = st.WithOrigin(pt)
	case p.Lat != nil || p.Lng != nil:
		return c, st, errors.New("lat and lng must be given together")
	case p.RadiusKm != nil:
		return c, st, errors.New("radius_km requires lat and lng")
	}

	if p.MinRating != nil {
		if *p.MinRating < clinic.MinRating || *p.MinRating > clinic.MaxRating {
			return c, st, fmt.Errorf("min_rating must be between %g and %g", clinic.MinRating, clinic.MaxRating)
		}
		st = st.WithMinRating(*p.MinRating)
	}
	st = st.WithOpenNow(derefBool(p.OpenNow)).
		WithWheelchairAccessible(derefBool(p.Wheelchair)).
		WithFreeParking(derefBool(p.FreeParking))

	key := filter.SortKey(derefString(p.Sort))
	if !key.IsValid() {
		return c, st, fmt.Errorf("unknown sort %q", key)
	}
	dir := filter.Direction(derefString(p.Dir))
	if !dir.IsValid() {
		return c, st, fmt.Errorf("dir must be asc or desc, got %q", dir)
	}
	st = st.WithSort(key, dir)

	if p.Limit != nil {
		if *p.Limit < 0 {
			return c, st, errors.New("limit must be non-negative")
		}
		st = st.WithLimit(*p.Limit)
	}
	return c, st, nil
}

func itemsFromOutcome(out *result.Outcome, near *geo.Point, origin geo.Point) []ClinicItem {
	items := make([]ClinicItem, len(out.Results))
	for i := range out.Results {
		items[i] = clinicToItem(&out.Results[i])
		if near != nil && out.Results[i].Record.Location != nil {
			km := origin.DistanceTo(*out.Results[i].Record.Location) / 1000
			items[i].DistanceKm = &km
		}
	}
	return items
}

func clinicToItem(sr *result.Scored) ClinicItem {
	rec := &sr.Record
	item := ClinicItem{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Address:              rec.Address,
		City:                 rec.City,
		State:                rec.State,
		Category:             rec.Category,
		Tags:                 rec.Tags,
		Services:             rec.Services,
		Description:          rec.Description,
		Rating:               rec.Rating,
		ReviewCount:          rec.ReviewCount,
		Status:               string(rec.Status),
		OpenNow:              rec.OpenNow,
		WheelchairAccessible: rec.Amenities.WheelchairAccessible,
		FreeParking:          rec.Amenities.FreeParking,
		Score:                sr.Score,
	}
	if rec.Location != nil {
		item.Location = &Location{Lat: rec.Location.Lat, Lng: rec.Location.Lng}
	}
	return item
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
