package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeStoreUnavailable ErrorResponseCode = "store_unavailable"
	ErrorResponseCodeIndexUnavailable ErrorResponseCode = "index_unavailable"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchClinicsParams are the query parameters of GET /v1/clinics/search.
type SearchClinicsParams struct {
	Q           *string   `form:"q" json:"q,omitempty"`
	State       *[]string `form:"state" json:"state,omitempty"`
	City        *string   `form:"city" json:"city,omitempty"`
	Lat         *float64  `form:"lat" json:"lat,omitempty"`
	Lng         *float64  `form:"lng" json:"lng,omitempty"`
	RadiusKm    *float64  `form:"radius_km" json:"radius_km,omitempty"`
	MinRating   *float64  `form:"min_rating" json:"min_rating,omitempty"`
	OpenNow     *bool     `form:"open_now" json:"open_now,omitempty"`
	Wheelchair  *bool     `form:"wheelchair" json:"wheelchair,omitempty"`
	FreeParking *bool     `form:"free_parking" json:"free_parking,omitempty"`
	Sort        *string   `form:"sort" json:"sort,omitempty"`
	Dir         *string   `form:"dir" json:"dir,omitempty"`
	Limit       *int      `form:"limit" json:"limit,omitempty"`
}

// NationwideParams are the query parameters of GET /v1/clinics/nationwide.
type NationwideParams struct {
	Q     string `form:"q" json:"q"`
	Limit *int   `form:"limit" json:"limit,omitempty"`
}

// ExpandTermsParams are the query parameters of GET /v1/search/expand.
type ExpandTermsParams struct {
	Q string `form:"q" json:"q"`
}

// SuggestParams are the query parameters of GET /v1/search/suggest.
type SuggestParams struct {
	Q     string `form:"q" json:"q"`
	Limit *int   `form:"limit" json:"limit,omitempty"`
}

// ServerInterface lists the API operations.
type ServerInterface interface {
	// (GET /v1/clinics/search)
	SearchClinics(w http.ResponseWriter, r *http.Request, params SearchClinicsParams)
	// (GET /v1/clinics/nationwide)
	SearchNationwide(w http.ResponseWriter, r *http.Request, params NationwideParams)
	// (GET /v1/search/expand)
	ExpandTerms(w http.ResponseWriter, r *http.Request, params ExpandTermsParams)
	// (GET /v1/search/suggest)
	Suggest(w http.ResponseWriter, r *http.Request, params SuggestParams)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper binds request parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// bindQuery binds one form-style query parameter into dest.
func (siw *ServerInterfaceWrapper) bindQuery(
	w http.ResponseWriter, r *http.Request, name string, required bool, dest any,
) bool {
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, middleware := range siw.HandlerMiddlewares {
		h = middleware(h)
	}
	h.ServeHTTP(w, r)
}

// SearchClinics operation middleware.
func (siw *ServerInterfaceWrapper) SearchClinics(w http.ResponseWriter, r *http.Request) {
	var params SearchClinicsParams

	ok := siw.bindQuery(w, r, "q", false, &params.Q) &&
		siw.bindQuery(w, r, "state", false, &params.State) &&
		siw.bindQuery(w, r, "city", false, &params.City) &&
		siw.bindQuery(w, r, "lat", false, &params.Lat) &&
		siw.bindQuery(w, r, "lng", false, &params.Lng) &&
		siw.bindQuery(w, r, "radius_km", false, &params.RadiusKm) &&
		siw.bindQuery(w, r, "min_rating", false, &params.MinRating) &&
		siw.bindQuery(w, r, "open_now", false, &params.OpenNow) &&
		siw.bindQuery(w, r, "wheelchair", false, &params.Wheelchair) &&
		siw.bindQuery(w, r, "free_parking", false, &params.FreeParking) &&
		siw.bindQuery(w, r, "sort", false, &params.Sort) &&
		siw.bindQuery(w, r, "dir", false, &params.Dir) &&
		siw.bindQuery(w, r, "limit", false, &params.Limit)
	if !ok {
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchClinics(w, r, params)
	}))
}

// SearchNationwide operation middleware.
func (siw *ServerInterfaceWrapper) SearchNationwide(w http.ResponseWriter, r *http.Request) {
	var params NationwideParams

	ok := siw.bindQuery(w, r, "q", true, &params.Q) &&
		siw.bindQuery(w, r, "limit", false, &params.Limit)
	if !ok {
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchNationwide(w, r, params)
	}))
}

// ExpandTerms operation middleware.
func (siw *ServerInterfaceWrapper) ExpandTerms(w http.ResponseWriter, r *http.Request) {
	var params ExpandTermsParams

	if !siw.bindQuery(w, r, "q", true, &params.Q) {
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ExpandTerms(w, r, params)
	}))
}

// Suggest operation middleware.
func (siw *ServerInterfaceWrapper) Suggest(w http.ResponseWriter, r *http.Request) {
	var params SuggestParams

	ok := siw.bindQuery(w, r, "q", true, &params.Q) &&
		siw.bindQuery(w, r, "limit", false, &params.Limit)
	if !ok {
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Suggest(w, r, params)
	}))
}

// HealthCheck operation middleware.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.HealthCheck))
}

// Metrics operation middleware.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.Metrics))
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions mounts every operation on options.BaseRouter (a new router when nil).
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/clinics/search", wrapper.SearchClinics)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/clinics/nationwide", wrapper.SearchNationwide)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/search/expand", wrapper.ExpandTerms)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/search/suggest", wrapper.Suggest)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})

	return r
}
