package repository

import (
	"context"
	"time"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a webhook delivery ledger backed by GORM.
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

// CreateIfNotExists records a delivery once per (provider, delivery_id). It
// returns whether a new row was written together with the stored row.
func (r *webhookEventRepository) CreateIfNotExists(ctx context.Context, event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	db := r.db.WithContext(ctx)
	tx := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "delivery_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, translateError(tx.Error)
	}

	created := tx.RowsAffected > 0
	var stored models.WebhookEvent
	if err := db.Where("provider = ? AND delivery_id = ?", event.Provider, event.DeliveryID).
		First(&stored).Error; err != nil {
		return false, nil, translateError(err)
	}
	return created, &stored, nil
}

func (r *webhookEventRepository) GetByID(ctx context.Context, id uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

func (r *webhookEventRepository) MarkProcessed(ctx context.Context, id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
		"updated_at":       now,
	}
	return translateError(r.db.WithContext(ctx).Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error)
}

// ListFailed returns verified deliveries whose last processing attempt failed,
// oldest first.
func (r *webhookEventRepository) ListFailed(ctx context.Context, provider string, limit int) ([]models.WebhookEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	q := r.db.WithContext(ctx).
		Where("signature_valid = ? AND processing_error <> ''", true).
		Order("created_at ASC").
		Limit(limit)
	if provider != "" {
		q = q.Where("provider = ?", provider)
	}
	var events []models.WebhookEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
