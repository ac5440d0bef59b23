package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomboard/roomboard/internal/api"
	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/provider"
	"github.com/roomboard/roomboard/internal/repository/memory"
	"github.com/roomboard/roomboard/internal/service"
)

type fakeAuthClient struct {
	account *provider.Account
	err     error

	sentCodes []string
	codeErr   error
}

func (f *fakeAuthClient) Login(ctx context.Context, email, password string) (*provider.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	account := *f.account
	return &account, nil
}

func (f *fakeAuthClient) Register(ctx context.Context, email, password, code string) (*provider.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	account := *f.account
	return &account, nil
}

func (f *fakeAuthClient) SendVerificationCode(ctx context.Context, email string) error {
	if f.codeErr != nil {
		return f.codeErr
	}
	f.sentCodes = append(f.sentCodes, email)
	return nil
}

func newAuthFixture(t *testing.T, client *fakeAuthClient) (*api.AuthHandler, *service.AccountService) {
	t.Helper()
	accounts := service.NewAccountService(memory.NewRepository(), zerolog.Nop())
	return api.NewAuthHandler(client, accounts, zerolog.Nop()), accounts
}

func postAuth(handler http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestLoginProxy(t *testing.T) {
	client := &fakeAuthClient{account: &provider.Account{
		Name: "Ada", UserUUID: "u-1", Token: "fresh-token",
	}}
	handler, _ := newAuthFixture(t, client)

	rec := postAuth(handler, "/api/auth/login",
		`{"email":"ada@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var account provider.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "fresh-token", account.Token)
	assert.Empty(t, account.ClientKey, "no client key without a stored secret")
}

func TestLoginAttachesClientKey(t *testing.T) {
	client := &fakeAuthClient{account: &provider.Account{
		Name: "Ada", UserUUID: "u-1", Token: "fresh-token",
	}}
	handler, accounts := newAuthFixture(t, client)

	require.NoError(t, accounts.CreateCustomer(context.Background(), &models.Customer{
		Email:     "ada@example.com",
		Name:      "Ada",
		SecretKey: "my-secret-key",
	}))

	rec := postAuth(handler, "/api/auth/login",
		`{"email":"ada@example.com","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var account provider.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, provider.ClientKey("my-secret-key"), account.ClientKey)
}

func TestLoginFailure(t *testing.T) {
	client := &fakeAuthClient{err: &provider.Error{Op: "login", Code: 4}}
	handler, _ := newAuthFixture(t, client)

	rec := postAuth(handler, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRequiresCredentials(t *testing.T) {
	handler, _ := newAuthFixture(t, &fakeAuthClient{})

	rec := postAuth(handler, "/api/auth/login", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterProvisionsCustomer(t *testing.T) {
	client := &fakeAuthClient{account: &provider.Account{
		Name: "Ada", UserUUID: "u-1", Token: "fresh-token",
	}}
	handler, accounts := newAuthFixture(t, client)

	rec := postAuth(handler, "/api/auth/register",
		`{"email":"ada@example.com","password":"hunter2","code":"123456"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	customer, err := accounts.GetCustomerByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", customer.UUID, "customer keeps the provider account UUID")
	assert.Equal(t, "Ada", customer.Name)
}

func TestRegisterExistingCustomerIsNotAnError(t *testing.T) {
	client := &fakeAuthClient{account: &provider.Account{
		Name: "Ada", UserUUID: "u-1", Token: "fresh-token",
	}}
	handler, accounts := newAuthFixture(t, client)

	require.NoError(t, accounts.CreateCustomer(context.Background(), &models.Customer{
		Email: "ada@example.com", Name: "Ada",
	}))

	rec := postAuth(handler, "/api/auth/register",
		`{"email":"ada@example.com","password":"hunter2","code":"123456"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterRequiresCode(t *testing.T) {
	handler, _ := newAuthFixture(t, &fakeAuthClient{})

	rec := postAuth(handler, "/api/auth/register",
		`{"email":"ada@example.com","password":"hunter2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendCode(t *testing.T) {
	client := &fakeAuthClient{}
	handler, _ := newAuthFixture(t, client)

	rec := postAuth(handler, "/api/auth/send-code", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"ada@example.com"}, client.sentCodes)
}

func TestSendCodeUpstreamFailure(t *testing.T) {
	client := &fakeAuthClient{codeErr: &provider.Error{Op: "send-verification-code", HTTPStatus: 500}}
	handler, _ := newAuthFixture(t, client)

	rec := postAuth(handler, "/api/auth/send-code", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAuthMethodNotAllowed(t *testing.T) {
	handler, _ := newAuthFixture(t, &fakeAuthClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
