package models

import (
	"math"
	"time"
)

// DurationMinutes converts a begin/end pair into whole minutes, rounding to
// the nearest minute and clamping at zero when end precedes begin
func DurationMinutes(begin, end time.Time) int {
	minutes := int(math.Round(end.Sub(begin).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// EstimateParticipants estimates attendance from a duration in minutes when
// the provider's participant data is unavailable: one participant per ten
// minutes, never fewer than one
func EstimateParticipants(durationMinutes int) int {
	estimate := int(math.Round(float64(durationMinutes) / 10))
	if estimate < 1 {
		return 1
	}
	return estimate
}

// RoomUsage is one room's entry in a usage report. Estimated marks entries
// built from scheduled times because detail enrichment failed for that room
type RoomUsage struct {
	RoomUUID        string     `json:"roomUUID"`
	Title           string     `json:"title"`
	DurationMinutes int        `json:"duration"`
	ActualBeginTime time.Time  `json:"beginTime"`
	ActualEndTime   time.Time  `json:"endTime"`
	Status          RoomStatus `json:"roomStatus"`
	Participants    int        `json:"participants"`
	Estimated       bool       `json:"estimated,omitempty"`
}

// UsageReport is the consolidated usage view for one account. It is a value
// object built fresh per request and never persisted.
//
// TotalRooms counts all rooms that survived filtering, even when the
// enrichment cap truncated the per-room list; TotalMinutes and
// TotalParticipants cover only the rooms present in Rooms.
type UsageReport struct {
	TotalMinutes      int         `json:"totalMinutes"`
	TotalRooms        int         `json:"totalRooms"`
	TotalParticipants int         `json:"totalParticipants"`
	EnrichedRooms     int         `json:"enrichedRooms"`
	Truncated         bool        `json:"truncated,omitempty"`
	Degraded          bool        `json:"degraded,omitempty"`
	Warning           string      `json:"warning,omitempty"`
	Rooms             []RoomUsage `json:"rooms"`
}
