package api

import (
	"net/http"
	"solomon-validator/internal/api/handlers"
	"solomon-validator/internal/platform/obs"
	"solomon-validator/internal/ports"
	"solomon-validator/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the collaborators of the HTTP API. Results, Metrics and Gatherer may be nil.
type Deps struct {
	Instances     ports.InstanceStore
	Results       ports.ResultRepository
	Metrics       *obs.Metrics
	Gatherer      prometheus.Gatherer
	Logger        zerolog.Logger
	DefaultPolicy services.LateReturnPolicy
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	validations := &handlers.ValidationHandler{
		Instances:     d.Instances,
		Results:       d.Results,
		Metrics:       d.Metrics,
		DefaultPolicy: d.DefaultPolicy,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/validations", validations.Serve)
	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	return loggingMiddleware(d.Logger, mux)
}
