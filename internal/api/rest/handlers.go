package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/service"
	"github.com/gorilla/mux"
)

const (
	serviceName    = "propscope"
	serviceVersion = "1.0.0"
)

// SlateProvider answers slate queries
type SlateProvider interface {
	GetSlate(ctx context.Context, date time.Time) (*service.Slate, error)
}

// DetailProvider answers player detail queries
type DetailProvider interface {
	GetPlayerDetail(ctx context.Context, playerID int, asOf time.Time, games int) (*service.PlayerDetail, error)
}

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	slates  SlateProvider
	details DetailProvider
	health  HealthChecker
	now     func() time.Time
}

// NewHandler creates a new handler. health may be nil.
func NewHandler(slates SlateProvider, details DetailProvider, health HealthChecker) *Handler {
	return &Handler{
		slates:  slates,
		details: details,
		health:  health,
		now:     time.Now,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}

	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err != nil {
			body["status"] = "unhealthy"
			body["details"] = err.Error()
			respondJSON(w, http.StatusServiceUnavailable, body)
			return
		}
	}

	respondJSON(w, http.StatusOK, body)
}

// GetSlate returns every player with a game on ?date= (default today)
func (h *Handler) GetSlate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if date.IsZero() {
		date = h.now().UTC()
	}

	slate, err := h.slates.GetSlate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build slate", err)
		return
	}

	respondJSON(w, http.StatusOK, slate)
}

// GetPlayerDetail returns one player's averages, game log and current lines
func (h *Handler) GetPlayerDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID, err := strconv.Atoi(vars["playerID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID", err)
		return
	}

	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	games := 0
	if gamesStr := r.URL.Query().Get("games"); gamesStr != "" {
		games, err = strconv.Atoi(gamesStr)
		if err == nil && games < 1 {
			err = fmt.Errorf("games must be at least 1, got %d", games)
		}
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid games count (use a positive integer)", err)
			return
		}
	}

	detail, err := h.details.GetPlayerDetail(r.Context(), playerID, date, games)
	if errors.Is(err, service.ErrPlayerNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build player detail", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// GetMarkets lists the supported markets in display order
func (h *Handler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"markets": metrics.AllMarkets()})
}

// parseDate parses YYYY-MM-DD. An empty string yields the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(service.DateLayout, s)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
