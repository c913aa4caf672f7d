// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the dashboard.
package api

import (
	_ "embed"
	"net/http"
	"prospector/internal/api/handler"
	"prospector/internal/config"
	"prospector/internal/runner"
	"prospector/pkg/controller"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for the dashboard API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server. All durations configure
// server timeouts; zero values use net/http defaults. WriteTimeout must be
// generous (or zero) because GET /run blocks for a full scraping run.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":10000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// NewServer wires up and returns a configured *http.Server serving:
//   - the dashboard page, run trigger and log-polling endpoints
//   - the Prometheus metrics endpoint (MetricsPath)
//   - the embedded OpenAPI spec and its Swagger UI
//   - pprof endpoints for profiling
//
// The mux is wrapped with CORS and access-logging middlewares.
func NewServer(run *runner.Runner, opts Options) *http.Server {
	mux := http.NewServeMux()

	// prometheus metrics
	mux.Handle(opts.MetricsPath, promhttp.Handler())

	// dashboard spec and swagger playground
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	mux.Handle("/docs/", v5emb.New(
		"Lead Prospector",
		"/specs/v1.yaml",
		"/docs/",
	))

	// dashboard
	h := handler.New(run)
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /run", h.Run)
	mux.HandleFunc("GET /logs", h.Logs)

	// pprof
	mux.Handle("/debug/pprof/", controller.PprofMux())

	// cors
	hnd := controller.WithCORS(mux)

	// logger
	hnd = controller.WithLogger(hnd)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           hnd,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}
}
