// Package httptransport assembles the public HTTP surface: the middleware
// chain, the registration and health routes and the metrics endpoint.
package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"

	"registration/pkg/platform/httputil"
	"registration/pkg/platform/middleware/device"
	"registration/pkg/platform/middleware/metadata"
	"registration/pkg/platform/middleware/request"
	"registration/pkg/platform/middleware/requesttime"
)

// Route registers a group of endpoints, like handler.Handler or
// health.Handler.
type Route interface {
	Register(r chi.Router)
}

// Config holds the transport-level settings.
type Config struct {
	TrustedProxies []netip.Prefix
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// Clock feeds the request-scoped "now"; nil means time.Now.
	Clock func() time.Time
	// Metrics is served on /metrics when set.
	Metrics http.Handler
	// Latency records per-route latency when set.
	Latency *request.Metrics
}

// NewRouter wires the middleware chain in front of the given routes. Write
// routes accept only JSON and urlencoded bodies.
func NewRouter(cfg Config, logger *slog.Logger, health Route, routes ...Route) http.Handler {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.NewMiddleware(cfg.TrustedProxies).Handler)
	r.Use(device.Device)
	r.Use(requesttime.WithClock(clock))
	r.Use(request.Recovery(logger))
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(cfg.Latency))

	health.Register(r)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(request.Timeout(cfg.RequestTimeout))
		}
		if cfg.MaxBodyBytes > 0 {
			r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		}
		r.Use(request.ContentType(httputil.MediaTypeJSON, httputil.MediaTypeForm))
		for _, route := range routes {
			route.Register(r)
		}
	})

	return r
}
