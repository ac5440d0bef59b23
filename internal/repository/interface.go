// Package repository defines interfaces for account data storage
package repository

import (
	"context"

	"github.com/roomboard/roomboard/internal/models"
)

// Repository defines the interface for storing and retrieving account data:
// customers, plans, subscriptions and invoices. Room and participant data is
// owned by the room provider and is never stored here.
type Repository interface {
	// Customer operations
	SaveCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, uuid string) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	DeleteCustomer(ctx context.Context, uuid string) error

	// Plan operations
	SavePlan(ctx context.Context, plan *models.Plan) error
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]*models.Plan, error)

	// Subscription operations
	SaveSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
	ListSubscriptionsByCustomer(ctx context.Context, customerUUID string) ([]*models.Subscription, error)

	// Invoice operations
	SaveInvoice(ctx context.Context, invoice *models.Invoice) error
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	ListInvoicesByCustomer(ctx context.Context, customerUUID string) ([]*models.Invoice, error)
}
