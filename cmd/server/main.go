package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"registration/internal/platform/config"
	"registration/internal/platform/health"
	"registration/internal/platform/logger"
	"registration/internal/platform/tracer"
	"registration/internal/registration/handler"
	"registration/internal/registration/i18n"
	"registration/internal/registration/metrics"
	"registration/internal/registration/redirect"
	"registration/internal/registration/service"
	formvalidation "registration/internal/registration/validation"
	httptransport "registration/internal/transport/http"
	"registration/pkg/domain"
	"registration/pkg/platform/middleware/metadata"
	"registration/pkg/platform/middleware/request"
	"registration/pkg/sessiontoken"
)

const serviceName = "registration"

// main wires dependencies and runs the HTTP server until SIGINT or SIGTERM.
// Business logic lives in internal/registration.
func main() {
	configPath := flag.String("config", os.Getenv("REGISTRATION_CONFIG"), "path to a YAML config file")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	location, err := cfg.Locale.Location()
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}
	defaultLanguage, err := domain.ParseLanguage(cfg.Locale.DefaultLanguage)
	if err != nil {
		return err
	}
	trustedProxies, err := metadata.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}
	builder, err := redirect.NewBuilder(cfg.Destination.BaseURL)
	if err != nil {
		return err
	}
	catalog, err := i18n.New()
	if err != nil {
		return fmt.Errorf("load message catalog: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registrationMetrics := metrics.New(reg)

	source, tier := sessiontoken.SelectSource(nil)
	if tier != sessiontoken.TierStrong {
		log.Warn("crypto randomness unavailable, session tokens use a pseudo-random source", "tier", tier)
		registrationMetrics.IncrementTokenDegraded(string(tier))
	}
	tokens := sessiontoken.NewGenerator(source, sessiontoken.WithDegradeHook(func(tier sessiontoken.Tier, err error) {
		log.Warn("session token source degraded", "tier", tier, "error", err)
		registrationMetrics.IncrementTokenDegraded(string(tier))
	}))

	var tr tracer.Tracer = tracer.NewNoop()
	if cfg.Tracing.Enabled {
		tr = tracer.NewOTel()
	}

	svc := service.New(formvalidation.New(), tokens, builder, log,
		service.WithMetrics(registrationMetrics),
		service.WithTracer(tr),
		service.WithLocation(location),
		service.WithDefaultLanguage(defaultLanguage),
	)

	healthHandler := health.New(serviceName)
	healthHandler.RegisterCheck("session_token", func(context.Context) error {
		if len(tokens.Generate()) != 36 {
			return errors.New("malformed session token")
		}
		return nil
	})

	routerCfg := httptransport.Config{
		TrustedProxies: trustedProxies,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
		routerCfg.Latency = request.NewMetrics(reg)
	}
	router := httptransport.NewRouter(routerCfg, log, healthHandler, handler.New(svc, catalog, log))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	log.Info("starting registration server",
		"addr", cfg.Server.Addr,
		"destination", builder.Base(),
		"default_language", defaultLanguage,
		"time_zone", location.String(),
		"token_tier", tier,
		"tracing", cfg.Tracing.Enabled,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
