// Package app wires the intake service together: clients, stores, the form
// registry, the orchestrator, and the HTTP surface.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"github.com/caseflow/intake_service/internal/app/httpapi"
	"github.com/caseflow/intake_service/internal/app/metrics"
	"github.com/caseflow/intake_service/internal/app/services/applications"
	"github.com/caseflow/intake_service/internal/app/storage"
	"github.com/caseflow/intake_service/internal/app/storage/memory"
	"github.com/caseflow/intake_service/internal/app/storage/postgres"
	"github.com/caseflow/intake_service/internal/client"
	"github.com/caseflow/intake_service/internal/config"
	"github.com/caseflow/intake_service/internal/form"
	"github.com/caseflow/intake_service/internal/form/apply"
	"github.com/caseflow/intake_service/internal/httputil"
	"github.com/caseflow/intake_service/internal/middleware"
	"github.com/caseflow/intake_service/internal/session"
	"github.com/caseflow/intake_service/pkg/logger"
)

// App is the assembled service.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	collector *metrics.Collector
	audit     storage.AuditStore
	server    *http.Server
	closers   []func() error
}

// New builds the service from configuration.
func New(cfg *config.Config) (*App, error) {
	log := logger.NewDefault("intake")

	storeRest := httputil.NewClient(httputil.Config{
		BaseURL: cfg.APIs.ApplicationStoreURL,
		Timeout: cfg.APIs.Timeout,
	})
	oasysRest := httputil.NewClient(httputil.Config{
		BaseURL: cfg.APIs.OasysURL,
		Timeout: cfg.APIs.Timeout,
	})

	clientFactory := func(token string) applications.API {
		return client.NewApplicationClient(storeRest, token)
	}
	formServices := &form.Services{Oasys: client.NewOasysClient(oasysRest)}

	a := &App{cfg: cfg, log: log, collector: metrics.NewCollector("intake")}

	a.audit = memory.NewAuditStore()
	if cfg.Postgres.DSN != "" {
		pg, err := postgres.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("audit store: %w", err)
		}
		if err := pg.Migrate(context.Background()); err != nil {
			pg.Close()
			return nil, fmt.Errorf("audit store: %w", err)
		}
		a.audit = pg
		a.closers = append(a.closers, pg.Close)
	}

	var sessions *session.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = session.New(rdb, 0)
		a.closers = append(a.closers, rdb.Close)
	}

	service := applications.New(apply.NewRegistry(), clientFactory, formServices, a.audit, log.WithField("component", "applications"))
	handler := httpapi.New(service, sessions, a.audit, a.collector, log.WithField("component", "httpapi"))

	router := mux.NewRouter()
	router.Handle("/metrics", a.collector.Handler()).Methods(http.MethodGet)
	handler.Routes(router)

	limiter := middleware.NewRateLimiter(float64(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	chain := a.collector.InstrumentHandler(
		middleware.Auth([]byte(cfg.Auth.JWTSecret), "/health", "/metrics")(
			limiter.Middleware(router)))

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return a, nil
}

// Run serves HTTP until the listener fails or Shutdown is called.
func (a *App) Run() error {
	a.log.Infof("listening on %s", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the server and closes the backing stores.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	for _, close := range a.closers {
		if cerr := close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
