package probe

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Controller struct {
	uc  *Usecase
	log *zap.Logger
}

func NewController(uc *Usecase, log *zap.Logger) *Controller {
	return &Controller{uc: uc, log: log.With(zap.String("component", "http.ping"))}
}

type RouterOpts struct {
	CORSOrigins []string
	Metrics     http.Handler
	Health      http.HandlerFunc
}

func (c *Controller) Router(o RouterOpts) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: o.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Traceparent", "Tracestate"},
		MaxAge:         300,
	}))

	if o.Health != nil {
		r.Get("/healthz", o.Health)
	}
	if o.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.Metrics)
	}
	r.Get("/v1/ping", c.handlePing)
	return r
}

func (c *Controller) handlePing(w http.ResponseWriter, r *http.Request) {
	rec, err := c.uc.PingQuery(r.Context(), r.URL.Query())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case IsInvalidInput(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		c.log.Error("ping failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
