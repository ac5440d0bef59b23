// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/roomboard/roomboard/internal/models"
)

// ErrNotFound is returned when a requested entity is not found
var ErrNotFound = errors.New("entity not found")

// Repository implements the repository interface with in-memory storage
type Repository struct {
	customers     map[string]*models.Customer
	plans         map[string]*models.Plan
	subscriptions map[string]*models.Subscription
	invoices      map[string]*models.Invoice
	mu            sync.RWMutex
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{
		customers:     make(map[string]*models.Customer),
		plans:         make(map[string]*models.Plan),
		subscriptions: make(map[string]*models.Subscription),
		invoices:      make(map[string]*models.Invoice),
	}
}

// SaveCustomer inserts or updates a customer
func (r *Repository) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *customer
	r.customers[customer.UUID] = &copied
	return nil
}

// GetCustomer retrieves a customer by UUID
func (r *Repository) GetCustomer(ctx context.Context, uuid string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[uuid]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *customer
	return &copied, nil
}

// GetCustomerByEmail retrieves a customer by email address
func (r *Repository) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.Email == email {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// ListCustomers returns all customers ordered by creation time
func (r *Repository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		copied := *customer
		customers = append(customers, &copied)
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CreatedAt.Before(customers[j].CreatedAt)
	})
	return customers, nil
}

// DeleteCustomer removes a customer by UUID
func (r *Repository) DeleteCustomer(ctx context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[uuid]; !ok {
		return ErrNotFound
	}

	delete(r.customers, uuid)
	return nil
}

// SavePlan inserts or updates a plan
func (r *Repository) SavePlan(ctx context.Context, plan *models.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *plan
	r.plans[plan.ID] = &copied
	return nil
}

// GetPlan retrieves a plan by ID
func (r *Repository) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *plan
	return &copied, nil
}

// ListPlans returns all plans ordered by price
func (r *Repository) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := make([]*models.Plan, 0, len(r.plans))
	for _, plan := range r.plans {
		copied := *plan
		plans = append(plans, &copied)
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].PriceCents < plans[j].PriceCents
	})
	return plans, nil
}

// SaveSubscription inserts or updates a subscription
func (r *Repository) SaveSubscription(ctx context.Context, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *sub
	r.subscriptions[sub.ID] = &copied
	return nil
}

// GetSubscription retrieves a subscription by ID
func (r *Repository) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subscriptions[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *sub
	return &copied, nil
}

// ListSubscriptionsByCustomer returns a customer's subscriptions ordered by
// period start
func (r *Repository) ListSubscriptionsByCustomer(ctx context.Context, customerUUID string) ([]*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var subs []*models.Subscription
	for _, sub := range r.subscriptions {
		if sub.CustomerUUID == customerUUID {
			copied := *sub
			subs = append(subs, &copied)
		}
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].PeriodStart.Before(subs[j].PeriodStart)
	})
	return subs, nil
}

// SaveInvoice inserts or updates an invoice
func (r *Repository) SaveInvoice(ctx context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *invoice
	r.invoices[invoice.ID] = &copied
	return nil
}

// GetInvoice retrieves an invoice by ID
func (r *Repository) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *invoice
	return &copied, nil
}

// ListInvoicesByCustomer returns a customer's invoices ordered by issue time
func (r *Repository) ListInvoicesByCustomer(ctx context.Context, customerUUID string) ([]*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var invoices []*models.Invoice
	for _, invoice := range r.invoices {
		if invoice.CustomerUUID == customerUUID {
			copied := *invoice
			invoices = append(invoices, &copied)
		}
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].IssuedAt.Before(invoices[j].IssuedAt)
	})
	return invoices, nil
}
