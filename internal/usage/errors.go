package usage

import "errors"

// Aggregation error kinds. Only ErrRoomListFetchFailed escalates to the
// caller; the per-room kinds are logged and absorbed by the fallback path.
var (
	// ErrRoomListFetchFailed means the paginated room listing could not be
	// retrieved at all; the aggregation returns no report
	ErrRoomListFetchFailed = errors.New("room list fetch failed")

	// ErrRoomDetailFetchFailed marks a per-room detail failure handled by
	// the scheduled-time fallback
	ErrRoomDetailFetchFailed = errors.New("room detail fetch failed")

	// ErrParticipantsFetchFailed marks a per-room participant failure
	// handled by the scheduled-time fallback
	ErrParticipantsFetchFailed = errors.New("participants fetch failed")
)

// degradedWarning is attached to reports whose enrichment was abandoned
// because of a systemic failure; every figure in such a report is derived
// from scheduled times
const degradedWarning = "usage figures are estimated from scheduled times; detail enrichment was unavailable"
