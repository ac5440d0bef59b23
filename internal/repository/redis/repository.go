// Package redis provides a Redis/Valkey implementation of the repository interface
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomboard/roomboard/internal/config"
	"github.com/roomboard/roomboard/internal/models"
)

// ErrNotFound is returned when a requested entity is not found
var ErrNotFound = errors.New("entity not found")

// Repository implements the repository interface with Redis storage
type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRepository creates a new Redis repository
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		if opt.DB == 0 {
			opt.DB = cfg.DB
		}
		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}

		client = redis.NewClient(opt)
	} else {
		address := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

		client = redis.NewClient(&redis.Options{
			Addr:     address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.RecordTTL,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) customerKey(uuid string) string {
	return fmt.Sprintf("%scustomers:%s", r.keyPrefix, uuid)
}

func (r *Repository) customerEmailKey(email string) string {
	return fmt.Sprintf("%scustomers:email:%s", r.keyPrefix, email)
}

func (r *Repository) customerSetKey() string {
	return r.keyPrefix + "customers"
}

func (r *Repository) planKey(id string) string {
	return fmt.Sprintf("%splans:%s", r.keyPrefix, id)
}

func (r *Repository) planSetKey() string {
	return r.keyPrefix + "plans"
}

func (r *Repository) subscriptionKey(id string) string {
	return fmt.Sprintf("%ssubscriptions:%s", r.keyPrefix, id)
}

func (r *Repository) customerSubscriptionsKey(customerUUID string) string {
	return fmt.Sprintf("%scustomers:%s:subscriptions", r.keyPrefix, customerUUID)
}

func (r *Repository) invoiceKey(id string) string {
	return fmt.Sprintf("%sinvoices:%s", r.keyPrefix, id)
}

func (r *Repository) customerInvoicesKey(customerUUID string) string {
	return fmt.Sprintf("%scustomers:%s:invoices", r.keyPrefix, customerUUID)
}

// setJSON stores a JSON-encoded value under key with the configured TTL
func (r *Repository) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to Redis: %w", err)
	}
	return nil
}

// getJSON loads and decodes the value under key into out
func (r *Repository) getJSON(ctx context.Context, key string, out any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read from Redis: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// SaveCustomer saves a customer and its email and membership indexes
func (r *Repository) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	if err := r.setJSON(ctx, r.customerKey(customer.UUID), customer); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.customerEmailKey(customer.Email), customer.UUID, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save customer email index: %w", err)
	}
	if err := r.client.SAdd(ctx, r.customerSetKey(), customer.UUID).Err(); err != nil {
		return fmt.Errorf("failed to add customer to set: %w", err)
	}
	return nil
}

// GetCustomer retrieves a customer by UUID
func (r *Repository) GetCustomer(ctx context.Context, uuid string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.getJSON(ctx, r.customerKey(uuid), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerByEmail retrieves a customer through the email index
func (r *Repository) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	uuid, err := r.client.Get(ctx, r.customerEmailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read email index: %w", err)
	}

	return r.GetCustomer(ctx, uuid)
}

// ListCustomers returns all customers
func (r *Repository) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	uuids, err := r.client.SMembers(ctx, r.customerSetKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]*models.Customer, 0, len(uuids))
	for _, uuid := range uuids {
		customer, err := r.GetCustomer(ctx, uuid)
		if errors.Is(err, ErrNotFound) {
			// Index entry outlived its record (TTL expiry)
			continue
		}
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// DeleteCustomer removes a customer and its index entries
func (r *Repository) DeleteCustomer(ctx context.Context, uuid string) error {
	customer, err := r.GetCustomer(ctx, uuid)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.customerKey(uuid))
	pipe.Del(ctx, r.customerEmailKey(customer.Email))
	pipe.SRem(ctx, r.customerSetKey(), uuid)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// SavePlan saves a plan
func (r *Repository) SavePlan(ctx context.Context, plan *models.Plan) error {
	if err := r.setJSON(ctx, r.planKey(plan.ID), plan); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, r.planSetKey(), plan.ID).Err(); err != nil {
		return fmt.Errorf("failed to add plan to set: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID
func (r *Repository) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.getJSON(ctx, r.planKey(id), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlans returns all plans
func (r *Repository) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	ids, err := r.client.SMembers(ctx, r.planSetKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*models.Plan, 0, len(ids))
	for _, id := range ids {
		plan, err := r.GetPlan(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// SaveSubscription saves a subscription and links it to its customer
func (r *Repository) SaveSubscription(ctx context.Context, sub *models.Subscription) error {
	if err := r.setJSON(ctx, r.subscriptionKey(sub.ID), sub); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, r.customerSubscriptionsKey(sub.CustomerUUID), sub.ID).Err(); err != nil {
		return fmt.Errorf("failed to link subscription to customer: %w", err)
	}
	return nil
}

// GetSubscription retrieves a subscription by ID
func (r *Repository) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.getJSON(ctx, r.subscriptionKey(id), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubscriptionsByCustomer returns a customer's subscriptions
func (r *Repository) ListSubscriptionsByCustomer(ctx context.Context, customerUUID string) ([]*models.Subscription, error) {
	ids, err := r.client.SMembers(ctx, r.customerSubscriptionsKey(customerUUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs := make([]*models.Subscription, 0, len(ids))
	for _, id := range ids {
		sub, err := r.GetSubscription(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// SaveInvoice saves an invoice and links it to its customer
func (r *Repository) SaveInvoice(ctx context.Context, invoice *models.Invoice) error {
	if err := r.setJSON(ctx, r.invoiceKey(invoice.ID), invoice); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, r.customerInvoicesKey(invoice.CustomerUUID), invoice.ID).Err(); err != nil {
		return fmt.Errorf("failed to link invoice to customer: %w", err)
	}
	return nil
}

// GetInvoice retrieves an invoice by ID
func (r *Repository) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.getJSON(ctx, r.invoiceKey(id), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoicesByCustomer returns a customer's invoices
func (r *Repository) ListInvoicesByCustomer(ctx context.Context, customerUUID string) ([]*models.Invoice, error) {
	ids, err := r.client.SMembers(ctx, r.customerInvoicesKey(customerUUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*models.Invoice, 0, len(ids))
	for _, id := range ids {
		invoice, err := r.GetInvoice(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}
