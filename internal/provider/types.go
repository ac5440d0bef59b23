package provider

import (
	"time"

	"github.com/roomboard/roomboard/internal/models"
)

// Every provider response carries an embedded status field; zero means
// success regardless of the HTTP status code. The payload field names below
// must round-trip losslessly: the list endpoints speak snake_case while the
// room info endpoint speaks camelCase with epoch-millisecond times.

// RoomListResponse is the provider's list-room envelope
type RoomListResponse struct {
	Status int          `json:"status"`
	Data   RoomListData `json:"data"`
}

// RoomListData is the paginated room list payload
type RoomListData struct {
	Total int        `json:"total"`
	List  []RoomItem `json:"list"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// RoomItem is one room in the list payload; begin/end times are the
// scheduled ones, formatted as RFC 3339 strings
type RoomItem struct {
	ID                 string `json:"id"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	Version            int    `json:"version"`
	RoomUUID           string `json:"room_uuid"`
	PeriodicUUID       string `json:"periodic_uuid"`
	OwnerUUID          string `json:"owner_uuid"`
	Title              string `json:"title"`
	RoomType           string `json:"room_type"`
	RoomStatus         string `json:"room_status"`
	BeginTime          string `json:"begin_time"`
	EndTime            string `json:"end_time"`
	Region             string `json:"region"`
	WhiteboardRoomUUID string `json:"whiteboard_room_uuid"`
	IsDelete           int    `json:"is_delete"`
	HasRecord          int    `json:"has_record"`
	IsAI               int    `json:"is_ai"`
	UserUUID           string `json:"user_uuid"`
	UserName           string `json:"user_name"`
}

// Summary converts the wire item into the domain model. Unparseable
// timestamps become zero times, which downstream fallback logic replaces
// with the current time.
func (it RoomItem) Summary() models.RoomSummary {
	begin, _ := time.Parse(time.RFC3339, it.BeginTime)
	end, _ := time.Parse(time.RFC3339, it.EndTime)

	return models.RoomSummary{
		RoomUUID:       it.RoomUUID,
		Title:          it.Title,
		OwnerUUID:      it.OwnerUUID,
		Status:         models.RoomStatus(it.RoomStatus),
		ScheduledBegin: begin,
		ScheduledEnd:   end,
		Deleted:        it.IsDelete != 0,
		HasRecord:      it.HasRecord != 0,
	}
}

// RoomInfoResponse is the provider's room info envelope
type RoomInfoResponse struct {
	Status int `json:"status"`
	Data   struct {
		RoomInfo RoomInfo `json:"roomInfo"`
	} `json:"data"`
}

// RoomInfo is the detailed room payload with actual begin/end times in
// epoch milliseconds
type RoomInfo struct {
	Title         string `json:"title"`
	BeginTime     int64  `json:"beginTime"`
	EndTime       int64  `json:"endTime"`
	RoomType      string `json:"roomType"`
	RoomStatus    string `json:"roomStatus"`
	OwnerUUID     string `json:"ownerUUID"`
	OwnerUserName string `json:"ownerUserName"`
	OwnerName     string `json:"ownerName"`
	HasRecord     bool   `json:"hasRecord"`
	Region        string `json:"region"`
	InviteCode    string `json:"inviteCode"`
	IsPmi         bool   `json:"isPmi"`
	IsAI          bool   `json:"isAI"`
}

// Detail converts the wire payload into the domain model
func (ri RoomInfo) Detail() models.RoomDetail {
	return models.RoomDetail{
		Title:       ri.Title,
		ActualBegin: time.UnixMilli(ri.BeginTime),
		ActualEnd:   time.UnixMilli(ri.EndTime),
		Status:      models.RoomStatus(ri.RoomStatus),
		OwnerUUID:   ri.OwnerUUID,
		OwnerName:   ri.OwnerName,
		HasRecord:   ri.HasRecord,
		InviteCode:  ri.InviteCode,
		Region:      ri.Region,
	}
}

// roomInfoRequest is the body for the room info endpoint
type roomInfoRequest struct {
	RoomUUID string `json:"roomUUID"`
}

// Participant is one attendee in a room's participant list
type Participant struct {
	RoomTitle string `json:"room_title"`
	AvatarURL string `json:"avatar_url"`
	UserName  string `json:"user_name"`
}

// ParticipantsResponse is the provider's room participant list envelope
type ParticipantsResponse struct {
	Status int              `json:"status"`
	Data   ParticipantsData `json:"data"`
}

// ParticipantsData is the paginated participant list payload
type ParticipantsData struct {
	Total int           `json:"total"`
	List  []Participant `json:"list"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// participantsRequest is the body for the participant list endpoint
type participantsRequest struct {
	RoomUUID string `json:"room_uuid"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// OrganizationUser is one user in the organization-wide user list
type OrganizationUser struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Version    int    `json:"version"`
	UserUUID   string `json:"user_uuid"`
	UserName   string `json:"user_name"`
	AvatarURL  string `json:"avatar_url"`
	Gender     string `json:"gender"`
	IsDelete   int    `json:"is_delete"`
	ParentUUID string `json:"parent_uuid"`
}

// OrganizationUsersResponse is the provider's organization user list envelope
type OrganizationUsersResponse struct {
	Status int `json:"status"`
	Data   struct {
		Total int                `json:"total"`
		List  []OrganizationUser `json:"list"`
		Page  int                `json:"page"`
		Limit int                `json:"limit"`
	} `json:"data"`
}

// StopRoomResponse is the provider's stop-room envelope
type StopRoomResponse struct {
	Status int `json:"status"`
	Data   struct {
		RoomUUID   string `json:"roomUUID"`
		RoomStatus string `json:"roomStatus"`
	} `json:"data"`
}

// stopRoomRequest is the body for the stop-room endpoint
type stopRoomRequest struct {
	RoomUUID string `json:"roomUUID"`
}

// CreateRoomResponse is the provider's create-room envelope
type CreateRoomResponse struct {
	Status int `json:"status"`
	Data   struct {
		RoomUUID     string `json:"roomUUID"`
		RoomID       int64  `json:"roomId"`
		RoomOriginID string `json:"roomOriginId"`
		InviteCode   string `json:"inviteCode"`
		JoinURL      string `json:"joinUrl"`
		CreatedAt    int64  `json:"createdAt"`
	} `json:"data"`
}

// roomTokenRequest is the body for the pre-signed create/update room endpoints
type roomTokenRequest struct {
	Token string `json:"token"`
}

// Account is the authenticated user payload returned by login and register
type Account struct {
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	UserUUID    string `json:"userUUID"`
	Token       string `json:"token"`
	HasPhone    bool   `json:"hasPhone"`
	HasPassword bool   `json:"hasPassword"`
	IsAnonymous bool   `json:"isAnonymous"`
	ClientKey   string `json:"clientKey,omitempty"`
}

// LoginResponse is the provider's login envelope
type LoginResponse struct {
	Status int     `json:"status"`
	Data   Account `json:"data"`
}

// loginRequest is the body for the login endpoint
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the body for the register endpoint
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// verificationCodeRequest is the body for the send-verification-code endpoint
type verificationCodeRequest struct {
	Email string `json:"email"`
	Lang  string `json:"lang"`
}

// statusResponse is the envelope for endpoints whose payload we discard
type statusResponse struct {
	Status int `json:"status"`
}
