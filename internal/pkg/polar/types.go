package polar

import (
	"time"

	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

// Event types delivered by Polar.
const (
	EventCheckoutCreated        = "checkout.created"
	EventCheckoutUpdated        = "checkout.updated"
	EventCustomerCreated        = "customer.created"
	EventCustomerUpdated        = "customer.updated"
	EventOrderCreated           = "order.created"
	EventOrderPaid              = "order.paid"
	EventOrderRefunded          = "order.refunded"
	EventSubscriptionCreated    = "subscription.created"
	EventSubscriptionUpdated    = "subscription.updated"
	EventSubscriptionCanceled   = "subscription.canceled"
	EventSubscriptionActive     = "subscription.active"
	EventSubscriptionRevoked    = "subscription.revoked"
	EventSubscriptionUncanceled = "subscription.uncanceled"
)

// CheckoutStatusSucceeded is the only checkout status that changes state.
const CheckoutStatusSucceeded = "succeeded"

const metadataUserID = "user_id"

type Checkout struct {
	ID            string         `json:"id" validate:"required"`
	Status        string         `json:"status"`
	CustomerID    string         `json:"customer_id"`
	CustomerEmail string         `json:"customer_email"`
	Metadata      map[string]any `json:"metadata"`
}

type Customer struct {
	ID        string         `json:"id" validate:"required"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt *time.Time     `json:"created_at"`
}

type Order struct {
	ID             string         `json:"id" validate:"required"`
	CustomerID     string         `json:"customer_id"`
	ProductID      string         `json:"product_id"`
	ProductPriceID string         `json:"product_price_id"`
	Amount         int64          `json:"amount" validate:"gte=0"`
	RefundedAmount int64          `json:"refunded_amount" validate:"gte=0"`
	Currency       string         `json:"currency"`
	Status         string         `json:"status"`
	Metadata       map[string]any `json:"metadata"`
}

type Subscription struct {
	ID                 string         `json:"id" validate:"required"`
	Status             string         `json:"status"`
	CustomerID         string         `json:"customer_id"`
	ProductID          string         `json:"product_id"`
	PriceID            string         `json:"price_id"`
	CurrentPeriodStart *time.Time     `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time     `json:"current_period_end"`
	CancelAtPeriodEnd  bool           `json:"cancel_at_period_end"`
	StartedAt          *time.Time     `json:"started_at"`
	EndedAt            *time.Time     `json:"ended_at"`
	Metadata           map[string]any `json:"metadata"`
}

func userIDFrom(metadata map[string]any) string {
	return webhook.StringValue(metadata, metadataUserID)
}
