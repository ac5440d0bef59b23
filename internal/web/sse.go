package web

import (
	"encoding/json"
	"net/http"

	"github.com/r3labs/sse/v2"
	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/service"
)

// usageStream is the SSE stream name dashboard clients subscribe to
const usageStream = "usage"

// Streamer pushes dashboard updates to connected clients over server-sent
// events
type Streamer struct {
	server *sse.Server
	log    zerolog.Logger
}

// NewStreamer creates a new SSE streamer with the usage stream registered
func NewStreamer(log zerolog.Logger) *Streamer {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(usageStream)

	return &Streamer{
		server: server,
		log:    log.With().Str("component", "sse").Logger(),
	}
}

// ServeHTTP implements the http.Handler interface for SSE subscriptions;
// clients connect with ?stream=usage
func (s *Streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.ServeHTTP(w, r)
}

// NotifyDashboardUpdate publishes fresh dashboard data to all subscribers.
// Registered as an update callback on the usage service.
func (s *Streamer) NotifyDashboardUpdate(data *service.DashboardData) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode dashboard update")
		return
	}

	s.server.Publish(usageStream, &sse.Event{Data: payload})
}

// Shutdown closes all SSE connections
func (s *Streamer) Shutdown() {
	s.server.Close()
}
