package repository

import (
	"context"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create inserts a new subscription; an existing id yields ErrDuplicate
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	return translateError(r.db.WithContext(ctx).Create(sub).Error)
}

// GetByID retrieves a subscription by the provider's subscription id
func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}

// UpdateByID updates the given columns of an existing subscription
func (r *subscriptionRepository) UpdateByID(ctx context.Context, id string, updates map[string]any) error {
	return updateByKey(r.db.WithContext(ctx), &models.Subscription{}, "id", id, withUpdatedAt(updates))
}
