package web

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/usage"
)

// Refresher periodically rebuilds the dashboard data so connected SSE
// clients see fresh usage figures without reloading
type Refresher struct {
	usageService *service.UsageService
	token        string
	interval     time.Duration
	log          zerolog.Logger
}

// NewRefresher creates a refresher using the given provider token
func NewRefresher(usageService *service.UsageService, token string, interval time.Duration, log zerolog.Logger) *Refresher {
	return &Refresher{
		usageService: usageService,
		token:        token,
		interval:     interval,
		log:          log.With().Str("component", "refresher").Logger(),
	}
}

// Run rebuilds dashboard data on the configured interval until ctx is
// cancelled. Building the data triggers the usage service's update
// callbacks, which is how the SSE streamer learns about it.
func (r *Refresher) Run(ctx context.Context) {
	if r.token == "" {
		r.log.Info().Msg("no dashboard provider token configured, live refresh disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.usageService.GetDashboardData(ctx, r.token, usage.Filter{}); err != nil {
				r.log.Warn().Err(err).Msg("dashboard refresh failed")
			}
		}
	}
}
