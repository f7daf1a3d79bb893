package repository

import (
	"context"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Upsert inserts the customer or refreshes the linkage columns of an existing one
func (r *customerRepository) Upsert(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id",
			"email",
			"metadata_json",
			"updated_at",
		}),
	}).Create(customer).Error
	return translateError(err)
}

// GetByID retrieves a customer by the provider's customer id
func (r *customerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

// UpdateByID updates the given columns of an existing customer
func (r *customerRepository) UpdateByID(ctx context.Context, id string, updates map[string]any) error {
	return updateByKey(r.db.WithContext(ctx), &models.Customer{}, "id", id, withUpdatedAt(updates))
}
