package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/provider"
	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/usage"
)

type stubBuilder struct {
	report *models.UsageReport
}

func (s *stubBuilder) BuildUsageReport(ctx context.Context, token string, filter usage.Filter) (*models.UsageReport, error) {
	return s.report, nil
}

func (s *stubBuilder) BuildMonthReport(ctx context.Context, token string) (*models.UsageReport, error) {
	return s.report, nil
}

func (s *stubBuilder) BuildTodayReport(ctx context.Context, token string) (*models.UsageReport, error) {
	return s.report, nil
}

type stubClient struct{}

func (stubClient) ListRooms(ctx context.Context, token string, page, limit int) (*provider.RoomListData, error) {
	return &provider.RoomListData{}, nil
}

func (stubClient) ListOrganizationUsers(ctx context.Context, token string, page, limit int) (int, []provider.OrganizationUser, error) {
	return 7, nil, nil
}

func newTestHandler(t *testing.T, report *models.UsageReport, token string) *Handler {
	t.Helper()

	svc := service.NewUsageService(&stubBuilder{report: report}, stubClient{}, 50, zerolog.Nop())
	handler, err := NewHandler(svc, "templates", token, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(handler.Shutdown)

	return handler
}

func TestIndexUnconfigured(t *testing.T) {
	handler := newTestHandler(t, &models.UsageReport{}, "")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.handleIndex(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No provider token configured")
}

func TestIndexRendersReport(t *testing.T) {
	report := &models.UsageReport{
		TotalMinutes:      125,
		TotalRooms:        2,
		TotalParticipants: 9,
		EnrichedRooms:     2,
		Rooms: []models.RoomUsage{
			{
				RoomUUID:        "r-1",
				Title:           "Weekly standup",
				Status:          models.RoomStatusStopped,
				DurationMinutes: 45,
				Participants:    4,
				ActualBeginTime: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC),
				ActualEndTime:   time.Date(2024, 2, 10, 9, 45, 0, 0, time.UTC),
			},
			{
				RoomUUID:        "r-2",
				Title:           "Planning",
				Status:          models.RoomStatusStopped,
				DurationMinutes: 80,
				Participants:    5,
				Estimated:       true,
			},
		},
	}
	handler := newTestHandler(t, report, "dashboard-token")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.handleIndex(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Weekly standup")
	assert.Contains(t, body, "2h 5m")
	assert.Contains(t, body, "estimated from scheduled times")
}

func TestIndexUnknownPath(t *testing.T) {
	handler := newTestHandler(t, &models.UsageReport{}, "")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.handleIndex(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPartialUsageDegradedWarning(t *testing.T) {
	report := &models.UsageReport{
		Degraded: true,
		Warning:  "provider authorization failed during enrichment",
	}
	handler := newTestHandler(t, report, "dashboard-token")

	req := httptest.NewRequest(http.MethodGet, "/partial/usage", nil)
	rec := httptest.NewRecorder()
	handler.HandlePartialUsage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider authorization failed")
	assert.Contains(t, rec.Body.String(), "(estimated)")
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", formatMinutes(0))
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "1h 0m", formatMinutes(60))
	assert.Equal(t, "2h 5m", formatMinutes(125))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(time.Time{}))
	assert.Equal(t, "2024-02-10 09:00",
		formatTime(time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)))
}

func TestStreamerPublishDoesNotPanic(t *testing.T) {
	streamer := NewStreamer(zerolog.Nop())
	defer streamer.Shutdown()

	// Publishing with no subscribers is a no-op
	streamer.NotifyDashboardUpdate(&service.DashboardData{
		Report:      &models.UsageReport{TotalMinutes: 10},
		GeneratedAt: time.Now(),
	})
}
