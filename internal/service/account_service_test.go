package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/repository/memory"
)

var fixedNow = time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	svc := NewAccountService(memory.NewRepository(), zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCreateCustomer(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	customer := &models.Customer{Email: "ada@example.com", Name: "Ada"}
	require.NoError(t, svc.CreateCustomer(ctx, customer))

	assert.NotEmpty(t, customer.UUID, "a UUID is generated when none is supplied")
	assert.Equal(t, fixedNow, customer.CreatedAt)

	got, err := svc.GetCustomer(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
}

func TestCreateCustomerRequiresEmail(t *testing.T) {
	svc := newAccountService(t)

	err := svc.CreateCustomer(context.Background(), &models.Customer{Name: "Ada"})
	assert.Error(t, err)
}

func TestCreateCustomerRejectsDuplicateEmail(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateCustomer(ctx, &models.Customer{Email: "ada@example.com"}))

	err := svc.CreateCustomer(ctx, &models.Customer{Email: "ada@example.com"})
	assert.ErrorContains(t, err, "already exists")
}

func TestUpdateCustomerKeepsCreationTime(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	customer := &models.Customer{Email: "ada@example.com", Name: "Ada"}
	require.NoError(t, svc.CreateCustomer(ctx, customer))

	later := fixedNow.Add(48 * time.Hour)
	svc.now = func() time.Time { return later }

	updated := &models.Customer{UUID: customer.UUID, Email: "ada@example.com", Name: "Ada L."}
	require.NoError(t, svc.UpdateCustomer(ctx, updated))

	got, err := svc.GetCustomer(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)
}

func TestSubscribe(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	customer := &models.Customer{Email: "ada@example.com"}
	require.NoError(t, svc.CreateCustomer(ctx, customer))
	require.NoError(t, svc.SavePlan(ctx, &models.Plan{
		ID: "pro", Name: "Pro", PriceCents: 4900, Currency: "USD",
	}))

	sub, invoice, err := svc.Subscribe(ctx, customer.UUID, "pro")
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, fixedNow, sub.PeriodStart)
	assert.Equal(t, fixedNow.AddDate(0, 1, 0), sub.PeriodEnd)
	assert.True(t, sub.IsCurrent(fixedNow))

	assert.Equal(t, int64(4900), invoice.AmountCents)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Regexp(t, regexp.MustCompile(`^INV-20240215-[0-9A-F]{8}$`), invoice.Number)

	subs, err := svc.ListSubscriptions(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	invoices, err := svc.ListInvoices(ctx, customer.UUID)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
}

func TestSubscribeUnknownPlan(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	customer := &models.Customer{Email: "ada@example.com"}
	require.NoError(t, svc.CreateCustomer(ctx, customer))

	_, _, err := svc.Subscribe(ctx, customer.UUID, "nope")
	assert.Error(t, err)
}

func TestCancelSubscription(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	customer := &models.Customer{Email: "ada@example.com"}
	require.NoError(t, svc.CreateCustomer(ctx, customer))
	require.NoError(t, svc.SavePlan(ctx, &models.Plan{ID: "pro", PriceCents: 4900}))

	sub, _, err := svc.Subscribe(ctx, customer.UUID, "pro")
	require.NoError(t, err)

	require.NoError(t, svc.CancelSubscription(ctx, sub.ID))

	subs, err := svc.ListSubscriptions(ctx, customer.UUID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, models.SubscriptionStatusCancelled, subs[0].Status)
	require.NotNil(t, subs[0].CancelledAt)
	assert.Equal(t, fixedNow, *subs[0].CancelledAt)
	assert.Equal(t, fixedNow.AddDate(0, 1, 0), subs[0].PeriodEnd, "cancelling keeps the paid period")

	// Cancelling twice is a no-op
	require.NoError(t, svc.CancelSubscription(ctx, sub.ID))
}

func TestSavePlanRequiresID(t *testing.T) {
	svc := newAccountService(t)
	assert.Error(t, svc.SavePlan(context.Background(), &models.Plan{Name: "no id"}))
}
