package repository

import (
	"context"

	"github.com/ManuelReschke/HookFox/app/models"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	return translateError(r.db.WithContext(ctx).Create(profile).Error)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

// UpdateByUserID updates the profile owned by userID. The profile table has no
// updated_at column, so nothing is stamped here.
func (r *profileRepository) UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error {
	return updateByKey(r.db.WithContext(ctx), &models.UserProfile{}, "user_id", userID, updates)
}
