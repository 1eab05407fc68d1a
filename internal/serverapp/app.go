// Package serverapp wires configuration, database, metrics, and routes
// into a runnable HTTP server with a New -> Init -> Start -> Shutdown
// lifecycle.
package serverapp

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"sync"

	"landwand-api/internal/config"
	"landwand-api/internal/dbexec"
	"landwand-api/internal/logging"
	"landwand-api/internal/netutil"
	"landwand-api/internal/observability"
	"landwand-api/internal/service"
)

// App owns runtime resources for the landwand-api server lifecycle.
type App struct {
	cfg    *config.Config
	logger *logging.Logger

	meterProvider *observability.MeterProvider
	httpMetrics   *observability.HTTPMetrics

	db         *sql.DB
	dbStatsReg interface{ Unregister() error }

	svc     *service.Service
	handler http.Handler
	srv     *http.Server

	serverIP string

	stateMu      sync.Mutex
	initialized  bool
	started      bool
	serverErrors chan error

	shutdownOnce sync.Once
}

// New creates an App lifecycle wrapper.
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &App{
		cfg:      cfg,
		logger:   logger,
		serverIP: netutil.LocalIP(),
	}, nil
}

// Init initializes all runtime resources. It is idempotent.
func (a *App) Init(ctx context.Context) error {
	a.stateMu.Lock()
	if a.initialized {
		a.stateMu.Unlock()
		return nil
	}
	a.stateMu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	if a.cfg.Observability.MetricsEnabled {
		meterProvider, err := observability.InitMeterProvider(observability.Config{
			ServiceName:    a.cfg.Observability.ServiceName,
			ServiceVersion: a.cfg.Observability.ServiceVersion,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}
		a.meterProvider = meterProvider

		httpMetrics, err := observability.InitHTTPMetrics()
		if err != nil {
			return fmt.Errorf("failed to initialize request metrics: %w", err)
		}
		a.httpMetrics = httpMetrics
	}

	db, dbStatsReg, err := connectDB(ctx, a.cfg, a.logger)
	if err != nil {
		if a.meterProvider != nil {
			_ = a.meterProvider.Shutdown(context.Background(), a.logger.Logger)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	a.dbStatsReg = dbStatsReg

	executor := dbexec.New(dbexec.NewPoolSource(db), a.logger)
	a.svc = service.New(executor, a.logger)
	a.handler = a.buildHandler()

	a.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	a.stateMu.Lock()
	a.initialized = true
	a.stateMu.Unlock()
	return nil
}

// Handler exposes the composed HTTP handler for tests.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Start launches the HTTP listener. The returned channel carries a fatal
// server error, if any.
func (a *App) Start() (<-chan error, error) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if !a.initialized {
		return nil, fmt.Errorf("app not initialized")
	}
	if a.started {
		return a.serverErrors, nil
	}

	a.serverErrors = make(chan error, 1)
	a.logger.Info("server listening",
		"addr", a.srv.Addr,
		"server_ip", a.serverIP,
		"url", fmt.Sprintf("http://%s:%d", a.serverIP, a.cfg.Server.Port),
	)
	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.serverErrors <- err
		}
	}()

	a.started = true
	return a.serverErrors, nil
}

// WaitForStop blocks until a shutdown signal or a fatal server error.
func (a *App) WaitForStop(stop <-chan os.Signal, serverErrors <-chan error) error {
	select {
	case sig := <-stop:
		a.logger.Info("received shutdown signal", "signal", sig.String())
		return nil
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	}
}

// Shutdown stops the server and releases resources. Safe to call more
// than once.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.shutdownOnce.Do(func() {
		if a.srv != nil {
			if err := a.srv.Shutdown(ctx); err != nil {
				shutdownErr = err
			}
		}
		if a.dbStatsReg != nil {
			if err := a.dbStatsReg.Unregister(); err != nil {
				a.logger.Warn("failed to unregister DB stats metrics", "error", err.Error())
			}
		}
		if a.db != nil {
			if err := a.db.Close(); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
		if a.meterProvider != nil {
			if err := a.meterProvider.Shutdown(ctx, a.logger.Logger); err != nil && shutdownErr == nil {
				shutdownErr = err
			}
		}
	})
	return shutdownErr
}
