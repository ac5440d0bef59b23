package models

import "time"

// RoomStatus represents the lifecycle status of a room as reported by the
// room provider
type RoomStatus string

const (
	RoomStatusIdle    RoomStatus = "Idle"
	RoomStatusStarted RoomStatus = "Started"
	RoomStatusStopped RoomStatus = "Stopped"
	RoomStatusPaused  RoomStatus = "Paused"
	// RoomStatusCancelled is a derived status: the provider reports such
	// rooms as Idle with the delete flag set
	RoomStatusCancelled RoomStatus = "Cancelled"
)

// RoomSummary is a room as returned by the provider's list endpoint, with
// scheduled (not actual) begin and end times
type RoomSummary struct {
	RoomUUID       string     `json:"room_uuid"`
	Title          string     `json:"title"`
	OwnerUUID      string     `json:"owner_uuid"`
	Status         RoomStatus `json:"room_status"`
	ScheduledBegin time.Time  `json:"begin_time"`
	ScheduledEnd   time.Time  `json:"end_time"`
	Deleted        bool       `json:"is_delete"`
	HasRecord      bool       `json:"has_record"`
}

// EffectiveStatus folds the delete flag into the status: an Idle room that
// has been soft-deleted counts as Cancelled
func (r *RoomSummary) EffectiveStatus() RoomStatus {
	if r.Status == RoomStatusIdle && r.Deleted {
		return RoomStatusCancelled
	}
	return r.Status
}

// IsActive returns true for rooms that are running or still bookable
func (r *RoomSummary) IsActive() bool {
	return r.Status == RoomStatusStarted || (r.Status == RoomStatusIdle && !r.Deleted)
}

// ScheduledMinutes returns the scheduled duration in whole minutes
func (r *RoomSummary) ScheduledMinutes() int {
	return DurationMinutes(r.ScheduledBegin, r.ScheduledEnd)
}

// RoomDetail is a room as returned by the provider's per-room info endpoint,
// carrying actual begin and end times that may differ from the schedule
type RoomDetail struct {
	Title       string     `json:"title"`
	ActualBegin time.Time  `json:"beginTime"`
	ActualEnd   time.Time  `json:"endTime"`
	Status      RoomStatus `json:"roomStatus"`
	OwnerUUID   string     `json:"ownerUUID"`
	OwnerName   string     `json:"ownerName"`
	HasRecord   bool       `json:"hasRecord"`
	InviteCode  string     `json:"inviteCode"`
	Region      string     `json:"region"`
}

// ActualMinutes returns the actual duration in whole minutes
func (d *RoomDetail) ActualMinutes() int {
	return DurationMinutes(d.ActualBegin, d.ActualEnd)
}
