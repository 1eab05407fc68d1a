package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"landwand-api/internal/schema"
	"landwand-api/internal/service"
)

const healthCheckTimeout = 5 * time.Second

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "LandWand API is running",
		Data: map[string]any{
			"version":   Version,
			"server_ip": a.serverIP,
		},
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	database := "connected"
	status := http.StatusOK
	if err := a.db.PingContext(ctx); err != nil {
		database = "unreachable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, envelope{
		Status:  "healthy",
		Message: "LandWand API health",
		Data: map[string]any{
			"database":  database,
			"db_host":   a.cfg.Database.EffectiveHost(),
			"server_ip": a.serverIP,
		},
	})
}

// --- user endpoints ---

func (a *App) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeResult(w, a.svc.ListUsers(r.Context()), http.StatusOK)
}

func (a *App) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.GetUser(r.Context(), id), http.StatusOK)
}

func (a *App) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.CreateUser(r.Context(), raw), http.StatusCreated)
}

func (a *App) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.UpdateUser(r.Context(), id, raw), http.StatusOK)
}

func (a *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.DeleteUser(r.Context(), id), http.StatusOK)
}

// --- property endpoints ---

func (a *App) handleFilterProperties(w http.ResponseWriter, r *http.Request) {
	filters := map[string]any{}
	if propertyType := r.URL.Query().Get("property_type"); propertyType != "" {
		filters["property_type"] = propertyType
	}

	var limit *int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, envelope{
				Status:  "error",
				Message: "limit must be a non-negative integer",
			})
			return
		}
		limit = &n
	}

	writeResult(w, a.svc.FilterProperties(r.Context(), filters, limit), http.StatusOK)
}

func (a *App) handleAggregateProperties(w http.ResponseWriter, r *http.Request) {
	writeResult(w, a.svc.AggregateProperties(r.Context()), http.StatusOK)
}

func (a *App) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.GetProperty(r.Context(), id), http.StatusOK)
}

func (a *App) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.CreateProperty(r.Context(), raw), http.StatusCreated)
}

func (a *App) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.UpdateProperty(r.Context(), id, raw), http.StatusOK)
}

func (a *App) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	writeResult(w, a.svc.DeleteProperty(r.Context(), id), http.StatusOK)
}

// --- request parsing ---

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeResult(w, service.Result{
			Status:  service.StatusNotFound,
			Message: "Resource not found",
		}, http.StatusOK)
		return 0, false
	}
	return id, true
}

// decodeBody reads the JSON request body into an input record. An empty
// or null body is a client error, mirrored from the original API's "No
// data provided" response.
func decodeBody(w http.ResponseWriter, r *http.Request) (schema.InputRecord, bool) {
	var raw schema.InputRecord
	err := json.NewDecoder(r.Body).Decode(&raw)
	if errors.Is(err, io.EOF) || (err == nil && len(raw) == 0) {
		writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: "No data provided"})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: "Invalid JSON payload"})
		return nil, false
	}
	return raw, true
}

