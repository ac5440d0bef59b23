package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/service"
)

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(usageService *service.UsageService, accountService *service.AccountService, roomClient RoomClient, authClient AuthClient, log zerolog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.HandleFunc("/health/ready", HealthReadyHandler)

	// Usage report endpoints
	usageHandler := NewUsageHandler(usageService, log)
	mux.Handle("/api/usage", usageHandler)
	mux.Handle("/api/usage/", usageHandler)

	// Room proxy endpoints
	roomHandler := NewRoomHandler(roomClient, log)
	mux.Handle("/api/rooms", roomHandler)
	mux.Handle("/api/rooms/", roomHandler)

	// Provider auth proxy endpoints
	authHandler := NewAuthHandler(authClient, accountService, log)
	mux.Handle("/api/auth/", authHandler)

	// Account management endpoints
	accountHandler := NewAccountHandler(accountService, log)
	mux.Handle("/api/customers", accountHandler)
	mux.Handle("/api/customers/", accountHandler)
	mux.Handle("/api/plans", accountHandler)
	mux.Handle("/api/subscriptions", accountHandler)
	mux.Handle("/api/subscriptions/", accountHandler)

	return mux
}
