package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/provider"
	"github.com/roomboard/roomboard/internal/service"
)

// AuthClient is the slice of the provider client the auth routes proxy
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*provider.Account, error)
	Register(ctx context.Context, email, password, code string) (*provider.Account, error)
	SendVerificationCode(ctx context.Context, email string) error
}

// AuthHandler proxies the provider's email auth endpoints. Login responses
// carry the derived client key when the customer has a secret key on file;
// register provisions the platform customer record.
type AuthHandler struct {
	client   AuthClient
	accounts *service.AccountService
	log      zerolog.Logger
}

// NewAuthHandler creates a new auth handler over the given provider client
func NewAuthHandler(client AuthClient, accounts *service.AccountService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		client:   client,
		accounts: accounts,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// ServeHTTP handles HTTP requests for authentication
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/auth/login":
		h.login(w, r)
	case "/api/auth/register":
		h.register(w, r)
	case "/api/auth/send-code":
		h.sendCode(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login handles POST /api/auth/login
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	account, err := h.client.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.log.Warn().Err(err).Msg("login failed")
		http.Error(w, "Login failed", http.StatusUnauthorized)
		return
	}

	// Attach the derived client key so the frontend can request pre-signed
	// room tokens without ever seeing the secret
	if customer, err := h.accounts.GetCustomerByEmail(r.Context(), body.Email); err == nil && customer.SecretKey != "" {
		account.ClientKey = provider.ClientKey(customer.SecretKey)
	}

	json.NewEncoder(w).Encode(account)
}

// register handles POST /api/auth/register
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" || body.Password == "" || body.Code == "" {
		http.Error(w, "Email, password and verification code are required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	account, err := h.client.Register(r.Context(), body.Email, body.Password, body.Code)
	if err != nil {
		h.log.Warn().Err(err).Msg("registration failed")
		http.Error(w, "Registration failed", http.StatusBadRequest)
		return
	}

	// Provision the platform customer record alongside the provider account.
	// A pre-existing record (re-registration) is not an error.
	customer := &models.Customer{
		UUID:      account.UserUUID,
		Email:     body.Email,
		Name:      account.Name,
		AvatarURL: account.Avatar,
	}
	if err := h.accounts.CreateCustomer(r.Context(), customer); err != nil {
		h.log.Warn().Err(err).Str("email", body.Email).Msg("customer provisioning skipped")
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
}

// sendCode handles POST /api/auth/send-code
func (h *AuthHandler) sendCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.client.SendVerificationCode(r.Context(), body.Email); err != nil {
		h.log.Error().Err(err).Msg("verification code delivery failed")
		http.Error(w, "Failed to send verification code", http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Verification code sent"})
}
