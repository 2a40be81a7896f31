package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/light-bringer/promo-engine/internal/pkg/logger"
	"github.com/light-bringer/promo-engine/internal/pkg/metrics"
	"github.com/light-bringer/promo-engine/internal/transport/http/promotion"
	"github.com/light-bringer/promo-engine/internal/transport/http/responses"
)

// RouterDeps holds what the router mounts.
type RouterDeps struct {
	Log        *logger.Logger
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Promotions *promotion.Handler
	Events     *EventsHandler
}

// NewRouter builds the HTTP API.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID(deps.Log))
	r.Use(Recoverer(deps.Log))
	r.Use(Logging(deps.Log, deps.Metrics))

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Promotions != nil {
			deps.Promotions.Routes(r)
		}
		if deps.Events != nil {
			r.Method(http.MethodGet, "/events", deps.Events)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), deps.Log, w, responses.NewError(http.StatusNotFound, responses.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), deps.Log, w, responses.NewError(http.StatusMethodNotAllowed, responses.CodeBadRequest, "method not allowed"))
	})

	return r
}
