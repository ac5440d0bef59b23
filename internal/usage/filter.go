package usage

import (
	"time"

	"github.com/roomboard/roomboard/internal/models"
)

// Filter narrows a room summary set before enrichment. Zero-valued bounds
// and an empty status mean no filtering on that dimension. Bounds are
// inclusive and compare against the scheduled begin time.
type Filter struct {
	Start  time.Time
	End    time.Time
	Status models.RoomStatus
}

// FilterRooms returns the subsequence of rooms matching f, preserving input
// order. Filtering happens before any detail fetch so excluded rooms cost no
// provider calls.
func FilterRooms(rooms []models.RoomSummary, f Filter) []models.RoomSummary {
	filtered := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		if !f.Start.IsZero() && room.ScheduledBegin.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && room.ScheduledBegin.After(f.End) {
			continue
		}
		if f.Status != "" && room.EffectiveStatus() != f.Status {
			continue
		}
		filtered = append(filtered, room)
	}
	return filtered
}

// MonthRange returns the calendar-month bounds containing t in t's location:
// the first instant of the 1st through 23:59:59.999 on the last day
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// DayRange returns the bounds of the calendar day containing t in t's
// location: midnight through 23:59:59.999. The end is derived from the next
// calendar midnight, so DST-shortened and -lengthened days keep a correct
// local end bound.
func DayRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
	return start, end
}
