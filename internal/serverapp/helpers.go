package serverapp

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"landwand-api/internal/config"
	"landwand-api/internal/logging"
	"landwand-api/internal/service"
)

// connectDB opens the database handle, applies pool settings, and verifies
// connectivity within the configured timeout. When metrics are enabled the
// handle is instrumented through otelsql.
func connectDB(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*sql.DB, interface{ Unregister() error }, error) {
	dsn := cfg.Database.DSN()

	var (
		db         *sql.DB
		dbStatsReg interface{ Unregister() error }
		err        error
	)
	if cfg.Observability.MetricsEnabled {
		db, err = otelsql.Open("mysql", dsn, otelsql.WithAttributes(semconv.DBSystemMySQL))
		if err == nil {
			reg, regErr := otelsql.RegisterDBStatsMetrics(db, otelsql.WithAttributes(semconv.DBSystemMySQL))
			if regErr != nil {
				logger.Warn("failed to register DB stats metrics", slog.String("error", regErr.Error()))
			} else {
				dbStatsReg = reg
			}
		}
	} else {
		db, err = sql.Open("mysql", dsn)
	}
	if err != nil {
		return nil, nil, err
	}

	db.SetMaxOpenConns(cfg.Database.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Database.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Database.Pool.MaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectionTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		if dbStatsReg != nil {
			_ = dbStatsReg.Unregister()
		}
		return nil, nil, err
	}

	logger.Info("connected to MySQL",
		slog.String("host", cfg.Database.EffectiveHost()),
		slog.Int("port", cfg.Database.Port),
		slog.String("database", cfg.Database.Database),
	)
	return db, dbStatsReg, nil
}

// envelope is the JSON response shape every endpoint returns.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeResult maps a service result onto the HTTP envelope. createdCode
// lets create endpoints answer 201 instead of 200.
func writeResult(w http.ResponseWriter, result service.Result, successCode int) {
	switch result.Status {
	case service.StatusSuccess:
		body := envelope{Status: "success", Message: result.Message}
		if result.Records != nil {
			count := len(result.Records)
			body.Data = result.Records
			body.Count = &count
		} else {
			body.Data = result.Record
		}
		writeJSON(w, successCode, body)
	case service.StatusValidationError:
		writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: result.Message})
	case service.StatusNotFound:
		writeJSON(w, http.StatusNotFound, envelope{Status: "error", Message: result.Message})
	case service.StatusConflict:
		writeJSON(w, http.StatusConflict, envelope{Status: "error", Message: result.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, envelope{Status: "error", Message: result.Message})
	}
}
