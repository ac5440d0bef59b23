package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roomboard/roomboard/internal/models"
)

func TestDurationMinutes(t *testing.T) {
	base := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		begin time.Time
		end   time.Time
		want  int
	}{
		{"exact hour", base, base.Add(time.Hour), 60},
		{"rounds up from 30s", base, base.Add(90 * time.Second), 2},
		{"rounds down below 30s", base, base.Add(89 * time.Second), 1},
		{"zero duration", base, base, 0},
		{"end before begin clamps to zero", base, base.Add(-45 * time.Minute), 0},
		{"sub-minute end before begin", base, base.Add(-10 * time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.DurationMinutes(tt.begin, tt.end))
		})
	}
}

func TestDurationMinutesNeverNegative(t *testing.T) {
	base := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)

	for offset := -300; offset <= 300; offset += 7 {
		got := models.DurationMinutes(base, base.Add(time.Duration(offset)*time.Second))
		assert.GreaterOrEqual(t, got, 0, "offset %ds", offset)
	}
}

func TestEstimateParticipants(t *testing.T) {
	assert.Equal(t, 1, models.EstimateParticipants(0))
	assert.Equal(t, 1, models.EstimateParticipants(5))
	assert.Equal(t, 1, models.EstimateParticipants(12))
	assert.Equal(t, 2, models.EstimateParticipants(15))
	assert.Equal(t, 6, models.EstimateParticipants(60))
}

func TestEffectiveStatus(t *testing.T) {
	room := models.RoomSummary{Status: models.RoomStatusIdle}
	assert.Equal(t, models.RoomStatusIdle, room.EffectiveStatus())

	// A soft-deleted idle room counts as cancelled
	room.Deleted = true
	assert.Equal(t, models.RoomStatusCancelled, room.EffectiveStatus())

	// The delete flag does not rewrite other statuses
	room.Status = models.RoomStatusStopped
	assert.Equal(t, models.RoomStatusStopped, room.EffectiveStatus())
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&models.RoomSummary{Status: models.RoomStatusStarted}).IsActive())
	assert.True(t, (&models.RoomSummary{Status: models.RoomStatusIdle}).IsActive())
	assert.False(t, (&models.RoomSummary{Status: models.RoomStatusIdle, Deleted: true}).IsActive())
	assert.False(t, (&models.RoomSummary{Status: models.RoomStatusStopped}).IsActive())
}

func TestOptionalTimestampsOmittedWhenUnset(t *testing.T) {
	sub, err := json.Marshal(models.Subscription{ID: "s-1", Status: models.SubscriptionStatusActive})
	assert.NoError(t, err)
	assert.NotContains(t, string(sub), "cancelled_at")

	invoice, err := json.Marshal(models.Invoice{ID: "i-1", Status: models.InvoiceStatusPending})
	assert.NoError(t, err)
	assert.NotContains(t, string(invoice), "paid_at")

	// Set stamps still serialize
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	cancelled, err := json.Marshal(models.Subscription{ID: "s-1", CancelledAt: &now})
	assert.NoError(t, err)
	assert.Contains(t, string(cancelled), "cancelled_at")
}

func TestSubscriptionIsCurrent(t *testing.T) {
	now := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	sub := models.Subscription{
		Status:      models.SubscriptionStatusActive,
		PeriodStart: now.AddDate(0, -1, 0),
		PeriodEnd:   now.AddDate(0, 1, 0),
	}

	assert.True(t, sub.IsCurrent(now))
	assert.True(t, sub.IsCurrent(sub.PeriodStart))
	assert.False(t, sub.IsCurrent(sub.PeriodEnd))

	sub.Status = models.SubscriptionStatusCancelled
	assert.False(t, sub.IsCurrent(now))
}
