package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/usage"
)

// UsageHandler handles HTTP requests for usage reports
type UsageHandler struct {
	usageService *service.UsageService
	log          zerolog.Logger
}

// NewUsageHandler creates a new usage handler backed by the usage service
func NewUsageHandler(usageService *service.UsageService, log zerolog.Logger) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		log:          log.With().Str("component", "api").Logger(),
	}
}

// ServeHTTP handles HTTP requests for usage reports
func (h *UsageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := BearerToken(r)
	if token == "" {
		http.Error(w, "Missing bearer token", http.StatusUnauthorized)
		return
	}

	switch r.URL.Path {
	case "/api/usage":
		h.getReport(w, r, token)
	case "/api/usage/dashboard":
		h.getDashboard(w, r, token)
	default:
		http.NotFound(w, r)
	}
}

// getReport handles GET /api/usage. Range shortcuts (?range=month|today)
// take precedence over explicit start/end bounds.
func (h *UsageHandler) getReport(w http.ResponseWriter, r *http.Request, token string) {
	var (
		report *models.UsageReport
		err    error
	)

	switch r.URL.Query().Get("range") {
	case "month":
		report, err = h.usageService.BuildMonthReport(r.Context(), token)
	case "today":
		report, err = h.usageService.BuildTodayReport(r.Context(), token)
	case "":
		var filter usage.Filter
		filter, err = parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		report, err = h.usageService.BuildReport(r.Context(), token, filter)
	default:
		http.Error(w, "Invalid range, expected month or today", http.StatusBadRequest)
		return
	}

	if err != nil {
		h.writeReportError(w, err)
		return
	}

	// Degraded reports are still successful responses; the warning field
	// tells the client to label the figures as estimates
	json.NewEncoder(w).Encode(report)
}

// getDashboard handles GET /api/usage/dashboard
func (h *UsageHandler) getDashboard(w http.ResponseWriter, r *http.Request, token string) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.usageService.GetDashboardData(r.Context(), token, filter)
	if err != nil {
		h.writeReportError(w, err)
		return
	}

	json.NewEncoder(w).Encode(data)
}

func (h *UsageHandler) writeReportError(w http.ResponseWriter, err error) {
	if errors.Is(err, usage.ErrRoomListFetchFailed) {
		h.log.Error().Err(err).Msg("room listing failed")
		http.Error(w, "Failed to retrieve room list from provider", http.StatusBadGateway)
		return
	}

	h.log.Error().Err(err).Msg("usage report failed")
	http.Error(w, "Failed to build usage report", http.StatusInternalServerError)
}

// parseFilter reads optional start/end (RFC 3339) and status query
// parameters into a usage filter
func parseFilter(r *http.Request) (usage.Filter, error) {
	var filter usage.Filter
	query := r.URL.Query()

	if raw := query.Get("start"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return usage.Filter{}, errors.New("invalid start time, expected RFC 3339")
		}
		filter.Start = start
	}

	if raw := query.Get("end"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return usage.Filter{}, errors.New("invalid end time, expected RFC 3339")
		}
		filter.End = end
	}

	filter.Status = models.RoomStatus(query.Get("status"))
	return filter, nil
}
