// Package provider implements the HTTP client for the room provider's REST
// API. A single Client is constructed at process start and shared by every
// consumer; per-account access tokens are passed call by call.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/config"
)

// maxErrorBodyLength bounds how much of a failed response body is kept on
// the returned error
const maxErrorBodyLength = 512

// Client handles interactions with the room provider API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new room provider API client
func NewClient(cfg config.ProviderConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With().Str("component", "provider").Logger(),
	}
}

// ListRooms fetches one page of the caller's rooms
func (c *Client) ListRooms(ctx context.Context, token string, page, limit int) (*RoomListData, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp RoomListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/user/organization/list-room", token, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	if resp.Status != 0 {
		return nil, &Error{Op: "list-room", Code: resp.Status}
	}

	return &resp.Data, nil
}

// RoomInfo fetches detailed information for a single room, including its
// actual begin and end times
func (c *Client) RoomInfo(ctx context.Context, token, roomUUID string) (*RoomInfo, error) {
	var resp RoomInfoResponse
	err := c.do(ctx, http.MethodPost, "/v1/user/organization/room/info/ordinary", token, nil,
		roomInfoRequest{RoomUUID: roomUUID}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room info: %w", err)
	}
	if resp.Status != 0 {
		return nil, &Error{Op: "room-info", Code: resp.Status}
	}

	return &resp.Data.RoomInfo, nil
}

// ListParticipants fetches one page of a room's participants
func (c *Client) ListParticipants(ctx context.Context, token, roomUUID string, page, limit int) (*ParticipantsData, error) {
	var resp ParticipantsResponse
	err := c.do(ctx, http.MethodPost, "/v1/user/organization/room/list-user", token, nil,
		participantsRequest{RoomUUID: roomUUID, Page: page, Limit: limit}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	if resp.Status != 0 {
		return nil, &Error{Op: "list-participants", Code: resp.Status}
	}

	return &resp.Data, nil
}

// AllRoomParticipants fetches every participant of a room by walking the
// paginated list endpoint until it is exhausted
func (c *Client) AllRoomParticipants(ctx context.Context, token, roomUUID string, pageSize int) ([]Participant, error) {
	var all []Participant
	page := 1

	for {
		data, err := c.ListParticipants(ctx, token, roomUUID, page, pageSize)
		if err != nil {
			return nil, err
		}
		if len(data.List) == 0 {
			break
		}

		all = append(all, data.List...)

		if len(all) >= data.Total || len(data.List) < pageSize {
			break
		}
		page++
	}

	return all, nil
}

// ListOrganizationUsers fetches one page of the organization's users
func (c *Client) ListOrganizationUsers(ctx context.Context, token string, page, limit int) (int, []OrganizationUser, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp OrganizationUsersResponse
	if err := c.do(ctx, http.MethodGet, "/v1/user/organization/list-user", token, query, nil, &resp); err != nil {
		return 0, nil, fmt.Errorf("failed to list organization users: %w", err)
	}
	if resp.Status != 0 {
		return 0, nil, &Error{Op: "list-organization-users", Code: resp.Status}
	}

	return resp.Data.Total, resp.Data.List, nil
}

// StopRoom asks the provider to stop a running room
func (c *Client) StopRoom(ctx context.Context, token, roomUUID string) error {
	var resp StopRoomResponse
	err := c.do(ctx, http.MethodPost, "/v1/user/organization/room/update-status/stopped", token, nil,
		stopRoomRequest{RoomUUID: roomUUID}, &resp)
	if err != nil {
		return fmt.Errorf("failed to stop room: %w", err)
	}
	if resp.Status != 0 {
		return &Error{Op: "stop-room", Code: resp.Status}
	}

	c.log.Info().Str("room_uuid", roomUUID).Msg("room stopped")
	return nil
}

// CreateRoom creates a room from a pre-signed room token
func (c *Client) CreateRoom(ctx context.Context, roomToken string) (*CreateRoomResponse, error) {
	var resp CreateRoomResponse
	err := c.do(ctx, http.MethodPost, "/v1/room/create/ordinary-by-user", "", nil,
		roomTokenRequest{Token: roomToken}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	if resp.Status != 0 {
		return nil, &Error{Op: "create-room", Code: resp.Status}
	}

	return &resp, nil
}

// UpdateRoom updates a room from a pre-signed room token
func (c *Client) UpdateRoom(ctx context.Context, roomToken string) error {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/v1/user/organization/room/update/ordinary", "", nil,
		roomTokenRequest{Token: roomToken}, &resp)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if resp.Status != 0 {
		return &Error{Op: "update-room", Code: resp.Status}
	}

	return nil
}

// Login authenticates against the provider and returns the account with its
// access token
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v2/login/email", "", nil,
		loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if resp.Status != 0 {
		return nil, &Error{Op: "login", Code: resp.Status}
	}

	return &resp.Data, nil
}

// Register creates a provider account using an emailed verification code
func (c *Client) Register(ctx context.Context, email, password, code string) (*Account, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v2/register/email", "", nil,
		registerRequest{Email: email, Password: password, Code: code}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if resp.Status != 0 {
		return nil, &Error{Op: "register", Code: resp.Status}
	}

	return &resp.Data, nil
}

// SendVerificationCode asks the provider to email a registration code
func (c *Client) SendVerificationCode(ctx context.Context, email string) error {
	var resp statusResponse
	err := c.do(ctx, http.MethodPost, "/v2/register/email/send-message", "", nil,
		verificationCodeRequest{Email: email, Lang: "en"}, &resp)
	if err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	if resp.Status != 0 {
		return &Error{Op: "send-verification-code", Code: resp.Status}
	}

	return nil
}

// do executes a single provider call and decodes the response into out.
// Non-2xx responses become *Error values carrying the HTTP status and a
// truncated copy of the body; the embedded status field is checked by the
// caller because its location varies per endpoint.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("http_status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("provider call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{Op: path, HTTPStatus: resp.StatusCode, Body: truncate(string(respBody))}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

func truncate(s string) string {
	if len(s) > maxErrorBodyLength {
		return s[:maxErrorBodyLength] + "... (truncated)"
	}
	return s
}
