package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/models"
	"github.com/roomboard/roomboard/internal/repository"
)

// AccountService provides business logic for customers, subscriptions and
// invoices on top of the repository
type AccountService struct {
	repo repository.Repository
	log  zerolog.Logger
	now  func() time.Time
}

// NewAccountService creates a new AccountService with the given repository
func NewAccountService(repo repository.Repository, log zerolog.Logger) *AccountService {
	return &AccountService{
		repo: repo,
		log:  log.With().Str("component", "account-service").Logger(),
		now:  time.Now,
	}
}

// CreateCustomer registers a new customer. The UUID is generated here unless
// the caller brings a provider-issued one.
func (s *AccountService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.Email == "" {
		return fmt.Errorf("customer email is required")
	}
	if customer.UUID == "" {
		customer.UUID = uuid.NewString()
	}

	if _, err := s.repo.GetCustomerByEmail(ctx, customer.Email); err == nil {
		return fmt.Errorf("customer with email %s already exists", customer.Email)
	}

	now := s.now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if err := s.repo.SaveCustomer(ctx, customer); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	s.log.Info().Str("customer_uuid", customer.UUID).Msg("customer created")
	return nil
}

// GetCustomer retrieves a customer by UUID
func (s *AccountService) GetCustomer(ctx context.Context, uuid string) (*models.Customer, error) {
	return s.repo.GetCustomer(ctx, uuid)
}

// GetCustomerByEmail retrieves a customer by email address
func (s *AccountService) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.repo.GetCustomerByEmail(ctx, email)
}

// ListCustomers returns all customers
func (s *AccountService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// UpdateCustomer persists changes to an existing customer
func (s *AccountService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	existing, err := s.repo.GetCustomer(ctx, customer.UUID)
	if err != nil {
		return err
	}

	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = s.now()
	return s.repo.SaveCustomer(ctx, customer)
}

// DeleteCustomer removes a customer
func (s *AccountService) DeleteCustomer(ctx context.Context, uuid string) error {
	return s.repo.DeleteCustomer(ctx, uuid)
}

// ListPlans returns all purchasable plans
func (s *AccountService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// SavePlan inserts or updates a plan
func (s *AccountService) SavePlan(ctx context.Context, plan *models.Plan) error {
	if plan.ID == "" {
		return fmt.Errorf("plan ID is required")
	}
	return s.repo.SavePlan(ctx, plan)
}

// Subscribe activates a one-month subscription for a customer and issues the
// matching invoice
func (s *AccountService) Subscribe(ctx context.Context, customerUUID, planID string) (*models.Subscription, *models.Invoice, error) {
	customer, err := s.repo.GetCustomer(ctx, customerUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load customer: %w", err)
	}

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load plan: %w", err)
	}

	now := s.now()
	sub := &models.Subscription{
		ID:           uuid.NewString(),
		CustomerUUID: customer.UUID,
		PlanID:       plan.ID,
		Status:       models.SubscriptionStatusActive,
		PeriodStart:  now,
		PeriodEnd:    now.AddDate(0, 1, 0),
	}
	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	invoice := &models.Invoice{
		ID:           uuid.NewString(),
		Number:       invoiceNumber(now),
		CustomerUUID: customer.UUID,
		PlanID:       plan.ID,
		AmountCents:  plan.PriceCents,
		Currency:     plan.Currency,
		Status:       models.InvoiceStatusPending,
		IssuedAt:     now,
	}
	if err := s.repo.SaveInvoice(ctx, invoice); err != nil {
		return nil, nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.log.Info().
		Str("customer_uuid", customer.UUID).
		Str("plan_id", plan.ID).
		Str("invoice", invoice.Number).
		Msg("subscription activated")

	return sub, invoice, nil
}

// CancelSubscription marks a subscription cancelled; the period is left
// untouched so access runs out naturally
func (s *AccountService) CancelSubscription(ctx context.Context, id string) error {
	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return err
	}

	if sub.Status == models.SubscriptionStatusCancelled {
		return nil
	}

	sub.Status = models.SubscriptionStatusCancelled
	cancelledAt := s.now()
	sub.CancelledAt = &cancelledAt

	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	s.log.Info().Str("subscription_id", sub.ID).Msg("subscription cancelled")
	return nil
}

// ListSubscriptions returns a customer's subscriptions
func (s *AccountService) ListSubscriptions(ctx context.Context, customerUUID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptionsByCustomer(ctx, customerUUID)
}

// ListInvoices returns a customer's invoices
func (s *AccountService) ListInvoices(ctx context.Context, customerUUID string) ([]*models.Invoice, error) {
	return s.repo.ListInvoicesByCustomer(ctx, customerUUID)
}

// invoiceNumber builds a human-readable invoice number: date plus a short
// unique suffix
func invoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), suffix)
}
