package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/provider"
)

// RoomClient is the slice of the provider client the room routes proxy
type RoomClient interface {
	ListRooms(ctx context.Context, token string, page, limit int) (*provider.RoomListData, error)
	StopRoom(ctx context.Context, token, roomUUID string) error
	CreateRoom(ctx context.Context, roomToken string) (*provider.CreateRoomResponse, error)
	UpdateRoom(ctx context.Context, roomToken string) error
	AllRoomParticipants(ctx context.Context, token, roomUUID string, pageSize int) ([]provider.Participant, error)
}

// RoomHandler handles HTTP requests for room management; it is a thin proxy
// over the provider API
type RoomHandler struct {
	client RoomClient
	log    zerolog.Logger
}

// NewRoomHandler creates a new room handler over the given provider client
func NewRoomHandler(client RoomClient, log zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		client: client,
		log:    log.With().Str("component", "api").Logger(),
	}
}

// ServeHTTP handles HTTP requests for room management
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	token := BearerToken(r)
	if token == "" {
		http.Error(w, "Missing bearer token", http.StatusUnauthorized)
		return
	}

	// Path format: /api/rooms[/{roomUUID}/stop|/participants]
	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/rooms":
		h.listRooms(w, r, token)
	case r.Method == http.MethodPost && r.URL.Path == "/api/rooms":
		h.createRoom(w, r)
	case r.Method == http.MethodPut && r.URL.Path == "/api/rooms":
		h.updateRoom(w, r)
	case r.Method == http.MethodPost && len(pathParts) == 5 && pathParts[4] == "stop":
		h.stopRoom(w, r, token, pathParts[3])
	case r.Method == http.MethodGet && len(pathParts) == 5 && pathParts[4] == "participants":
		h.listParticipants(w, r, token, pathParts[3])
	default:
		http.NotFound(w, r)
	}
}

// listRooms handles GET /api/rooms, proxying one page of the provider's
// room list
func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request, token string) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	data, err := h.client.ListRooms(r.Context(), token, page, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("room list proxy failed")
		http.Error(w, "Failed to retrieve rooms", http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(data)
}

// createRoom handles POST /api/rooms with a pre-signed room token body
func (h *RoomHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		http.Error(w, "Room token is required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.client.CreateRoom(r.Context(), body.Token)
	if err != nil {
		h.log.Error().Err(err).Msg("room creation failed")
		http.Error(w, "Failed to create room", http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created.Data)
}

// updateRoom handles PUT /api/rooms with a pre-signed room token body
func (h *RoomHandler) updateRoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		http.Error(w, "Room token is required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.client.UpdateRoom(r.Context(), body.Token); err != nil {
		h.log.Error().Err(err).Msg("room update failed")
		http.Error(w, "Failed to update room", http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Room updated"})
}

// listParticipants handles GET /api/rooms/{roomUUID}/participants, walking
// the provider's paginated participant list to completion
func (h *RoomHandler) listParticipants(w http.ResponseWriter, r *http.Request, token, roomUUID string) {
	pageSize := queryInt(r, "limit", 50)

	participants, err := h.client.AllRoomParticipants(r.Context(), token, roomUUID, pageSize)
	if err != nil {
		h.log.Error().Err(err).Str("room_uuid", roomUUID).Msg("participant list proxy failed")
		http.Error(w, "Failed to retrieve participants", http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"total": len(participants),
		"list":  participants,
	})
}

// stopRoom handles POST /api/rooms/{roomUUID}/stop
func (h *RoomHandler) stopRoom(w http.ResponseWriter, r *http.Request, token, roomUUID string) {
	if err := h.client.StopRoom(r.Context(), token, roomUUID); err != nil {
		h.log.Error().Err(err).Str("room_uuid", roomUUID).Msg("room stop failed")
		http.Error(w, "Failed to stop room", http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"roomUUID":   roomUUID,
		"roomStatus": "Stopped",
	})
}

// queryInt reads an integer query parameter with a default
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
