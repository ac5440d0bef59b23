package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/provider"
	"github.com/roomboard/roomboard/internal/usage"
)

// ReportBuilder is the aggregator surface the service consumes
type ReportBuilder interface {
	BuildUsageReport(ctx context.Context, token string, filter usage.Filter) (*models.UsageReport, error)
	BuildMonthReport(ctx context.Context, token string) (*models.UsageReport, error)
	BuildTodayReport(ctx context.Context, token string) (*models.UsageReport, error)
}

// DashboardClient is the slice of the provider client the dashboard needs
// beyond the aggregator: the raw room list for the active-room count and the
// organization-wide user total
type DashboardClient interface {
	ListRooms(ctx context.Context, token string, page, limit int) (*provider.RoomListData, error)
	ListOrganizationUsers(ctx context.Context, token string, page, limit int) (int, []provider.OrganizationUser, error)
}

// DashboardUpdateCallback is a function type for dashboard update callbacks
type DashboardUpdateCallback func(*DashboardData)

// DashboardData is the consolidated view rendered by the dashboard and
// streamed to connected clients.
//
// Report.TotalParticipants sums per-room attendance of the enriched rooms;
// OrganizationUsers is the provider's distinct user count for the whole
// organization. The two answer different questions and are kept separate.
type DashboardData struct {
	Report            *models.UsageReport `json:"report"`
	ActiveRooms       int                 `json:"activeRooms"`
	OrganizationUsers int                 `json:"organizationUsers"`
	GeneratedAt       time.Time           `json:"generatedAt"`
}

// UsageService is the single owner of usage aggregation for every consumer:
// the web dashboard and the API routes both go through it
type UsageService struct {
	builder         ReportBuilder
	client          DashboardClient
	pageSize        int
	updateCallbacks []DashboardUpdateCallback
	log             zerolog.Logger
}

// NewUsageService creates a new UsageService
func NewUsageService(builder ReportBuilder, client DashboardClient, pageSize int, log zerolog.Logger) *UsageService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &UsageService{
		builder:         builder,
		client:          client,
		pageSize:        pageSize,
		updateCallbacks: make([]DashboardUpdateCallback, 0),
		log:             log.With().Str("component", "usage-service").Logger(),
	}
}

// RegisterUpdateCallback registers a callback invoked whenever fresh
// dashboard data is produced
func (s *UsageService) RegisterUpdateCallback(callback DashboardUpdateCallback) {
	s.updateCallbacks = append(s.updateCallbacks, callback)
}

func (s *UsageService) notifyUpdate(data *DashboardData) {
	for _, callback := range s.updateCallbacks {
		callback(data)
	}
}

// BuildReport builds a usage report narrowed by filter
func (s *UsageService) BuildReport(ctx context.Context, token string, filter usage.Filter) (*models.UsageReport, error) {
	return s.builder.BuildUsageReport(ctx, token, filter)
}

// BuildMonthReport builds a usage report for the current calendar month
func (s *UsageService) BuildMonthReport(ctx context.Context, token string) (*models.UsageReport, error) {
	return s.builder.BuildMonthReport(ctx, token)
}

// BuildTodayReport builds a usage report for the current calendar day
func (s *UsageService) BuildTodayReport(ctx context.Context, token string) (*models.UsageReport, error) {
	return s.builder.BuildTodayReport(ctx, token)
}

// GetDashboardData builds the full dashboard view: usage report, active-room
// count and organization user total. Failures of the auxiliary counts never
// fail the call; only report construction can.
func (s *UsageService) GetDashboardData(ctx context.Context, token string, filter usage.Filter) (*DashboardData, error) {
	report, err := s.builder.BuildUsageReport(ctx, token, filter)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Report:            report,
		ActiveRooms:       s.countActiveRooms(ctx, token, report),
		OrganizationUsers: s.countOrganizationUsers(ctx, token),
		GeneratedAt:       time.Now(),
	}

	s.notifyUpdate(data)
	return data, nil
}

// countActiveRooms counts rooms that are running or still bookable. When the
// list call fails it falls back to counting the report's own entries.
func (s *UsageService) countActiveRooms(ctx context.Context, token string, report *models.UsageReport) int {
	data, err := s.client.ListRooms(ctx, token, 1, s.pageSize)
	if err != nil {
		s.log.Warn().Err(err).Msg("active room count unavailable, falling back to report entries")

		count := 0
		for _, room := range report.Rooms {
			if room.Status == models.RoomStatusStarted || room.Status == models.RoomStatusIdle {
				count++
			}
		}
		return count
	}

	count := 0
	for _, item := range data.List {
		summary := item.Summary()
		if summary.IsActive() {
			count++
		}
	}
	return count
}

// countOrganizationUsers returns the provider's organization-wide user
// total, or zero when the call fails
func (s *UsageService) countOrganizationUsers(ctx context.Context, token string) int {
	total, _, err := s.client.ListOrganizationUsers(ctx, token, 1, 1)
	if err != nil {
		s.log.Warn().Err(err).Msg("organization user count unavailable")
		return 0
	}
	return total
}
