package models

import "time"

// SubscriptionStatus represents the billing state of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// Customer is an account holder on the platform. SecretKey is the
// provider-issued secret used to derive the client key for room tokens.
type Customer struct {
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	SecretKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plan is a purchasable subscription plan
type Plan struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PriceCents     int64   `json:"price_cents"`
	Currency       string  `json:"currency"`
	IncludedMinutes int    `json:"included_minutes"`
	MaxRooms       int     `json:"max_rooms"`
	Description    string  `json:"description,omitempty"`
}

// Subscription ties a customer to a plan for a billing period
type Subscription struct {
	ID           string             `json:"id"`
	CustomerUUID string             `json:"customer_uuid"`
	PlanID       string             `json:"plan_id"`
	Status       SubscriptionStatus `json:"status"`
	PeriodStart  time.Time          `json:"period_start"`
	PeriodEnd    time.Time          `json:"period_end"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
}

// IsCurrent returns true when the subscription is active and the given
// instant falls inside its billing period
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionStatusActive &&
		!now.Before(s.PeriodStart) && now.Before(s.PeriodEnd)
}

// Invoice records a charge against a customer
type Invoice struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	CustomerUUID string        `json:"customer_uuid"`
	PlanID       string        `json:"plan_id"`
	AmountCents  int64         `json:"amount_cents"`
	Currency     string        `json:"currency"`
	Status       InvoiceStatus `json:"status"`
	IssuedAt     time.Time     `json:"issued_at"`
	PaidAt       *time.Time    `json:"paid_at,omitempty"`
}
