package repository

import (
	"context"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
)

// OrderRepository defines the store operations used to reconcile orders
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateByID(ctx context.Context, id string, updates map[string]any) error
}

// SubscriptionRepository defines the store operations used to reconcile subscriptions
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
	UpdateByID(ctx context.Context, id string, updates map[string]any) error
}

// CustomerRepository defines the store operations used to reconcile customers
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	UpdateByID(ctx context.Context, id string, updates map[string]any) error
}

// ProfileRepository covers the externally owned user profile table
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error
}

// WebhookEventRepository persists webhook deliveries for deduplication and replay
type WebhookEventRepository interface {
	CreateIfNotExists(ctx context.Context, event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	GetByID(ctx context.Context, id uint) (*models.WebhookEvent, error)
	MarkProcessed(ctx context.Context, id uint, processingError string) error
	ListFailed(ctx context.Context, provider string, limit int) ([]models.WebhookEvent, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Order        OrderRepository
	Subscription SubscriptionRepository
	Customer     CustomerRepository
	Profile      ProfileRepository
	WebhookEvent WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:        NewOrderRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Customer:     NewCustomerRepository(db),
		Profile:      NewProfileRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
	}
}
