package web

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/usage"
)

// Handler manages web UI requests
type Handler struct {
	usageService *service.UsageService
	templates    *template.Template
	streamer     *Streamer
	token        string
	log          zerolog.Logger
}

// NewHandler creates a new web UI handler. The token is the provider access
// token the dashboard renders with; when empty the dashboard shows an
// unconfigured notice instead of usage data.
func NewHandler(usageService *service.UsageService, templatesDir, token string, log zerolog.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatTime":    formatTime,
		"formatMinutes": formatMinutes,
	}).ParseGlob(filepath.Join(templatesDir, "*.html"))

	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	streamer := NewStreamer(log)

	return &Handler{
		usageService: usageService,
		templates:    tmpl,
		streamer:     streamer,
		token:        token,
		log:          log.With().Str("component", "web").Logger(),
	}, nil
}

// formatTime is a template helper function to format time
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// formatMinutes renders a minute total as hours and minutes
func formatMinutes(total int) string {
	hours := total / 60
	minutes := total % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// Streamer exposes the SSE streamer so its update callback can be registered
// with the usage service
func (h *Handler) Streamer() *Streamer {
	return h.streamer
}

// SetupRoutes registers web UI routes on the given mux
func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	// Serve static files
	fileServer := http.FileServer(http.Dir("./internal/web/static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))

	// Serve SSE endpoint
	mux.Handle("/events", h.streamer)

	// Serve dashboard page
	mux.HandleFunc("/", h.handleIndex)

	// HTMX partial endpoint
	mux.HandleFunc("/partial/usage", h.HandlePartialUsage)
}

// dashboardViewModel is the data handed to the dashboard templates
type dashboardViewModel struct {
	Data        *service.DashboardData
	Configured  bool
	LastUpdated string
	CurrentYear int
}

// handleIndex renders the main dashboard page
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle the root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	viewModel, ok := h.buildViewModel(r)
	if !ok {
		http.Error(w, "Failed to get usage data", http.StatusInternalServerError)
		return
	}

	if err := h.templates.ExecuteTemplate(w, "layout.html", viewModel); err != nil {
		h.log.Error().Err(err).Msg("failed to render dashboard")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// HandlePartialUsage renders just the usage panel for HTMX updates
func (h *Handler) HandlePartialUsage(w http.ResponseWriter, r *http.Request) {
	viewModel, ok := h.buildViewModel(r)
	if !ok {
		http.Error(w, "Failed to get usage data", http.StatusInternalServerError)
		return
	}

	if err := h.templates.ExecuteTemplate(w, "usage_panel", viewModel); err != nil {
		h.log.Error().Err(err).Msg("failed to render usage panel")
		http.Error(w, "Failed to render usage panel", http.StatusInternalServerError)
	}
}

func (h *Handler) buildViewModel(r *http.Request) (dashboardViewModel, bool) {
	viewModel := dashboardViewModel{
		LastUpdated: time.Now().Format("2006-01-02 15:04:05"),
		CurrentYear: time.Now().Year(),
	}

	if h.token == "" {
		return viewModel, true
	}

	data, err := h.usageService.GetDashboardData(r.Context(), h.token, usage.Filter{})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build dashboard data")
		return dashboardViewModel{}, false
	}

	viewModel.Data = data
	viewModel.Configured = true
	return viewModel, true
}

// Shutdown gracefully shuts down the web handler and its SSE streamer
func (h *Handler) Shutdown() {
	h.streamer.Shutdown()
}
