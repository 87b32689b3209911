package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"shiftboard/internal/health"
	"shiftboard/pkg/config"
	"shiftboard/pkg/contracts"
	"shiftboard/pkg/middleware"
	"syscall"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Application struct {
	cfg            *config.Config
	server         *http.Server
	healthHandler  http.Handler
	metricsHandler http.Handler
	appHttpHandler http.Handler
	closers        []namedCloser
}

type namedCloser struct {
	name   string
	closer io.Closer
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp builds the server. Every handler shares one router behind the full
// middleware stack; health and metrics stay outside authentication.
func (a *Application) SetApp(reg *prometheus.Registry, appHandlers ...contracts.Handler) {
	a.setHealthHandler()
	a.setMetricsHandler(reg)
	a.setAppHandler(reg, appHandlers)
	a.setAppServer()
}

// OnShutdown registers c to be closed after the server stops, in
// registration order.
func (a *Application) OnShutdown(name string, c io.Closer) {
	a.closers = append(a.closers, namedCloser{name: name, closer: c})
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	health.NewHealthHandler(a.cfg.Client.Mongo, a.cfg.Log).RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setMetricsHandler(reg *prometheus.Registry) {
	var handler http.Handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	handler = middleware.Recovery(a.cfg.Log)(handler)
	a.metricsHandler = handler
}

func (a *Application) setAppHandler(reg prometheus.Registerer, appHandlers []contracts.Handler) {
	appRouter := httprouter.New()
	for _, h := range appHandlers {
		h.RegisterRoutes(appRouter)
	}

	auth := middleware.AuthConfig{Secret: a.cfg.JWTSecret, Issuer: a.cfg.JWTIssuer}
	httpMetrics := middleware.NewHTTPMetrics(reg)

	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.Authenticate(auth, a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	appHttpHandler = httpMetrics.Middleware(appRouter)(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(a.cfg.Log)(appHttpHandler)
	appHttpHandler = middleware.Recovery(a.cfg.Log)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.cfg.Log.Info("Application endpoints configured with full middleware stack", "handlers", len(appHandlers))
}

func (a *Application) setAppServer() {
	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/metrics", a.metricsHandler)
	mux.Handle("/", a.appHttpHandler)
	return mux
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.closeResources()
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Could not stop server gracefully", "error", err)
		}
	}

	a.closeResources()
	a.cfg.Log.Info("Server stopped gracefully")
}

func (a *Application) closeResources() {
	for _, c := range a.closers {
		if err := c.closer.Close(); err != nil {
			a.cfg.Log.Error("Failed to close resource", "resource", c.name, "error", err)
			continue
		}
		a.cfg.Log.Info("Resource closed", "resource", c.name)
	}
	a.cfg.GracefulShutdown()
}
