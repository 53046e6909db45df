package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/kiranshivaraju/tabstats/internal/api/middleware"
	"github.com/kiranshivaraju/tabstats/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
// A nil RateLimit or Concurrency disables that middleware. TrustProxyHeaders
// lets X-Forwarded-For and X-Real-IP replace the peer address; only enable it
// behind a proxy that overwrites those headers.
type Dependencies struct {
	RateLimit         *mw.RateLimit
	Concurrency       *mw.ConcurrencyLimit
	CORSOrigins       []string
	TrustProxyHeaders bool

	HealthHandler  http.HandlerFunc
	CatalogHandler http.HandlerFunc
	AnalyzeHandler http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Global middleware
	if deps.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(chimw.Compress(5, "application/json"))
	r.Use(mw.CORS(origins))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Get("/api/v1/analyses", orNotImplemented(deps.CatalogHandler))

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimit.Limit)
		r.Use(deps.Concurrency.Limit)

		analyze := orNotImplemented(deps.AnalyzeHandler)
		r.Post("/api/v1/analyze", analyze)
		r.Post("/analyze", analyze)
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
