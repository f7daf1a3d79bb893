package repository

import (
	"context"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order; an existing id yields ErrDuplicate
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return translateError(r.db.WithContext(ctx).Create(order).Error)
}

// GetByID retrieves an order by the provider's order id
func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// UpdateByID updates the given columns of an existing order
func (r *orderRepository) UpdateByID(ctx context.Context, id string, updates map[string]any) error {
	return updateByKey(r.db.WithContext(ctx), &models.Order{}, "id", id, withUpdatedAt(updates))
}
