// Package usage builds consolidated room usage reports from the room
// provider's list, detail and participant endpoints.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/provider"
	"github.com/roomboard/roomboard/internal/utils"
)

// RoomClient is the slice of the provider client the aggregator needs
type RoomClient interface {
	ListRooms(ctx context.Context, token string, page, limit int) (*provider.RoomListData, error)
	RoomInfo(ctx context.Context, token, roomUUID string) (*provider.RoomInfo, error)
	ListParticipants(ctx context.Context, token, roomUUID string, page, limit int) (*provider.ParticipantsData, error)
}

// Config tunes the aggregator's pagination and enrichment behavior
type Config struct {
	// PageSize is the page size for the room listing stage
	PageSize int
	// StartPage is the first page requested from the list endpoint
	StartPage int
	// EnrichLimit caps how many filtered rooms are enriched per report
	EnrichLimit int
	// EnrichInterval is the minimum spacing between per-room enrichment
	// calls, enforced by a rate limiter rather than inline sleeps
	EnrichInterval time.Duration
}

// DefaultConfig returns the aggregator defaults: 50-room pages, a 50-room
// enrichment cap and one enrichment call per 100ms
func DefaultConfig() Config {
	return Config{
		PageSize:       50,
		StartPage:      1,
		EnrichLimit:    50,
		EnrichInterval: 100 * time.Millisecond,
	}
}

// Aggregator builds usage reports. Each BuildUsageReport call owns its own
// accumulators; the aggregator itself holds no per-call state and is safe
// for concurrent use.
type Aggregator struct {
	client  RoomClient
	limiter *rate.Limiter
	cfg     Config
	log     zerolog.Logger
	now     func() time.Time
}

// NewAggregator creates an aggregator over the given provider client
func NewAggregator(client RoomClient, cfg Config, log zerolog.Logger) *Aggregator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	if cfg.StartPage <= 0 {
		cfg.StartPage = DefaultConfig().StartPage
	}
	if cfg.EnrichLimit <= 0 {
		cfg.EnrichLimit = DefaultConfig().EnrichLimit
	}
	if cfg.EnrichInterval <= 0 {
		cfg.EnrichInterval = DefaultConfig().EnrichInterval
	}

	return &Aggregator{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(cfg.EnrichInterval), 1),
		cfg:     cfg,
		log:     log.With().Str("component", "usage").Logger(),
		now:     time.Now,
	}
}

// BuildUsageReport produces the usage report for the account behind token,
// optionally narrowed by filter. Only a total inability to list rooms fails
// the call; enrichment failures degrade the data instead.
func (a *Aggregator) BuildUsageReport(ctx context.Context, token string, filter Filter) (*models.UsageReport, error) {
	rooms, err := a.listAllRooms(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoomListFetchFailed, err)
	}

	filtered := FilterRooms(rooms, filter)
	report := a.enrich(ctx, token, filtered)

	a.log.Info().
		Int("total_rooms", report.TotalRooms).
		Int("total_minutes", report.TotalMinutes).
		Bool("degraded", report.Degraded).
		Msg("usage report built")

	return report, nil
}

// BuildMonthReport builds a report for the current calendar month
func (a *Aggregator) BuildMonthReport(ctx context.Context, token string) (*models.UsageReport, error) {
	start, end := MonthRange(a.now())
	return a.BuildUsageReport(ctx, token, Filter{Start: start, End: end})
}

// BuildTodayReport builds a report for the current calendar day
func (a *Aggregator) BuildTodayReport(ctx context.Context, token string) (*models.UsageReport, error) {
	start, end := DayRange(a.now())
	return a.BuildUsageReport(ctx, token, Filter{Start: start, End: end})
}

// listAllRooms walks the paginated list endpoint until every room is
// collected. Any page error aborts the whole listing; this stage never
// returns partial results.
func (a *Aggregator) listAllRooms(ctx context.Context, token string) ([]models.RoomSummary, error) {
	var all []models.RoomSummary
	page := a.cfg.StartPage

	for {
		data, err := a.client.ListRooms(ctx, token, page, a.cfg.PageSize)
		if err != nil {
			return nil, err
		}
		if len(data.List) == 0 {
			break
		}

		for _, item := range data.List {
			all = append(all, item.Summary())
		}

		// A short page or reaching the reported total signals the last page
		if len(all) >= data.Total || len(data.List) < a.cfg.PageSize {
			break
		}
		page++
	}

	return all, nil
}

// enrich fetches detail and participant data for each room and accumulates
// totals. It always returns a report: per-room failures fall back to
// scheduled-time estimates, and a systemic (auth-class) failure rebuilds the
// whole report from scheduled times instead of failing the call.
func (a *Aggregator) enrich(ctx context.Context, token string, rooms []models.RoomSummary) *models.UsageReport {
	report := &models.UsageReport{
		TotalRooms: len(rooms),
		Rooms:      make([]models.RoomUsage, 0, len(rooms)),
	}

	if len(rooms) > a.cfg.EnrichLimit {
		rooms = rooms[:a.cfg.EnrichLimit]
		report.Truncated = true
	}

	systemic := false
	for i, room := range rooms {
		if systemic {
			a.appendEntry(report, a.fallbackEntry(room))
			continue
		}

		if err := a.limiter.Wait(ctx); err != nil {
			a.degrade(report, rooms[:i+1], err)
			systemic = true
			continue
		}

		detail, participants, err := a.enrichRoom(ctx, token, room)
		if err != nil {
			if provider.IsUnauthorized(err) {
				a.degrade(report, rooms[:i+1], err)
				systemic = true
				continue
			}

			a.log.Warn().
				Str("room_uuid", room.RoomUUID).
				Err(err).
				Msg("room enrichment failed, using scheduled times")
			a.appendEntry(report, a.fallbackEntry(room))
			continue
		}

		report.EnrichedRooms++
		a.appendEntry(report, models.RoomUsage{
			RoomUUID:        room.RoomUUID,
			Title:           detail.Title,
			DurationMinutes: detail.ActualMinutes(),
			ActualBeginTime: detail.ActualBegin,
			ActualEndTime:   detail.ActualEnd,
			Status:          detail.Status,
			Participants:    participants,
		})

		a.log.Debug().
			Str("room", utils.SanitizeLogString(detail.Title)).
			Int("minutes", detail.ActualMinutes()).
			Int("participants", participants).
			Msg("room enriched")
	}

	return report
}

// enrichRoom fetches one room's detail and participant total. A failure of
// either fetch fails the room as a whole.
func (a *Aggregator) enrichRoom(ctx context.Context, token string, room models.RoomSummary) (models.RoomDetail, int, error) {
	info, err := a.client.RoomInfo(ctx, token, room.RoomUUID)
	if err != nil {
		return models.RoomDetail{}, 0, fmt.Errorf("%w: %w", ErrRoomDetailFetchFailed, err)
	}

	participants, err := a.client.ListParticipants(ctx, token, room.RoomUUID, 1, a.cfg.PageSize)
	if err != nil {
		return models.RoomDetail{}, 0, fmt.Errorf("%w: %w", ErrParticipantsFetchFailed, err)
	}

	return info.Detail(), participants.Total, nil
}

// fallbackEntry builds a usage entry from the room's scheduled times,
// substituting the current time when a bound is missing, with attendance
// estimated from the duration
func (a *Aggregator) fallbackEntry(room models.RoomSummary) models.RoomUsage {
	begin := room.ScheduledBegin
	if begin.IsZero() {
		begin = a.now()
	}
	end := room.ScheduledEnd
	if end.IsZero() {
		end = a.now()
	}

	duration := models.DurationMinutes(begin, end)

	return models.RoomUsage{
		RoomUUID:        room.RoomUUID,
		Title:           room.Title,
		DurationMinutes: duration,
		ActualBeginTime: begin,
		ActualEndTime:   end,
		Status:          room.EffectiveStatus(),
		Participants:    models.EstimateParticipants(duration),
		Estimated:       true,
	}
}

// degrade marks the report as systemically degraded and rebuilds every entry
// processed so far (including the room that triggered it) from scheduled
// times, so the degraded report mixes no enriched figures into its totals
func (a *Aggregator) degrade(report *models.UsageReport, processed []models.RoomSummary, err error) {
	report.Degraded = true
	report.Warning = degradedWarning
	a.log.Warn().Err(err).Msg("enrichment degraded to scheduled-time estimates")

	report.Rooms = report.Rooms[:0]
	report.TotalMinutes = 0
	report.TotalParticipants = 0
	report.EnrichedRooms = 0

	for _, room := range processed {
		a.appendEntry(report, a.fallbackEntry(room))
	}
}

// appendEntry adds an entry and folds it into the running totals; totals are
// never recomputed from any other source
func (a *Aggregator) appendEntry(report *models.UsageReport, entry models.RoomUsage) {
	report.Rooms = append(report.Rooms, entry)
	report.TotalMinutes += entry.DurationMinutes
	report.TotalParticipants += entry.Participants
}
