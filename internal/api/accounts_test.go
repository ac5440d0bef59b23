package api_test

import (
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
	"github.com/roomboard/roomboard/internal/repository/memory"
	"github.com/roomboard/roomboard/internal/service"
)

func newAccountHandler(t *testing.T) *api.AccountHandler {
	t.Helper()
	svc := service.NewAccountService(memory.NewRepository(), zerolog.Nop())
	return api.NewAccountHandler(svc, zerolog.Nop())
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createTestCustomer(t *testing.T, handler http.Handler) models.Customer {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/customers",
		`{"email":"ada@example.com","name":"Ada"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var customer models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
	require.NotEmpty(t, customer.UUID)
	return customer
}

func TestCustomerCRUD(t *testing.T) {
	handler := newAccountHandler(t)
	customer := createTestCustomer(t, handler)

	// Read back
	rec := doJSON(t, handler, http.MethodGet, "/api/customers/"+customer.UUID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Update
	rec = doJSON(t, handler, http.MethodPut, "/api/customers/"+customer.UUID,
		`{"email":"ada@example.com","name":"Ada L."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// List
	rec = doJSON(t, handler, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var customers []models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "Ada L.", customers[0].Name)

	// Delete
	rec = doJSON(t, handler, http.MethodDelete, "/api/customers/"+customer.UUID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/customers/"+customer.UUID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCustomerInvalidBody(t *testing.T) {
	handler := newAccountHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/customers", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/customers", `{"name":"no email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicateEmail(t *testing.T) {
	handler := newAccountHandler(t)
	createTestCustomer(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/customers",
		`{"email":"ada@example.com","name":"Imposter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanEndpoints(t *testing.T) {
	handler := newAccountHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/plans",
		`{"id":"pro","name":"Pro","price_cents":4900,"currency":"USD","included_minutes":3000,"max_rooms":50}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/plans", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var plans []models.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, int64(4900), plans[0].PriceCents)
	assert.Equal(t, 50, plans[0].MaxRooms)
}

func TestSubscribeFlow(t *testing.T) {
	handler := newAccountHandler(t)
	customer := createTestCustomer(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/plans",
		`{"id":"pro","name":"Pro","price_cents":4900,"currency":"USD"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/subscriptions",
		`{"customer_uuid":"`+customer.UUID+`","plan_id":"pro"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Subscription models.Subscription `json:"subscription"`
		Invoice      models.Invoice      `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.SubscriptionStatusActive, created.Subscription.Status)
	assert.Equal(t, int64(4900), created.Invoice.AmountCents)

	// The customer's subscription and invoice listings pick it up
	rec = doJSON(t, handler, http.MethodGet, "/api/customers/"+customer.UUID+"/subscriptions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var subs []models.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subs))
	require.Len(t, subs, 1)

	rec = doJSON(t, handler, http.MethodGet, "/api/customers/"+customer.UUID+"/invoices", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var invoices []models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoices))
	require.Len(t, invoices, 1)

	// Cancel
	rec = doJSON(t, handler, http.MethodPost, "/api/subscriptions/"+created.Subscription.ID+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/customers/"+customer.UUID+"/subscriptions", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subs))
	assert.Equal(t, models.SubscriptionStatusCancelled, subs[0].Status)
}

func TestSubscribeUnknownCustomer(t *testing.T) {
	handler := newAccountHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/subscriptions",
		`{"customer_uuid":"missing","plan_id":"pro"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelUnknownSubscription(t *testing.T) {
	handler := newAccountHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/subscriptions/missing/cancel", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
