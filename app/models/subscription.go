package models

import "time"

const (
	SubscriptionStatusActive            = "active"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusUnpaid            = "unpaid"
)

// Subscription mirrors a provider subscription. Rows are never deleted;
// cancellation and revocation are status transitions.
type Subscription struct {
	ID                 string     `gorm:"primaryKey;type:varchar(191)" json:"id"`
	UserID             string     `gorm:"type:varchar(191);not null;index" json:"user_id"`
	PolarProductID     string     `gorm:"type:varchar(191);not null" json:"polar_product_id"`
	PolarPriceID       string     `gorm:"type:varchar(191);not null" json:"polar_price_id"`
	Status             string     `gorm:"type:varchar(32);not null;default:'incomplete';index" json:"status"`
	CurrentPeriodStart *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  int        `gorm:"not null;default:0" json:"cancel_at_period_end"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValidSubscriptionStatus reports whether status is one the store accepts.
func IsValidSubscriptionStatus(status string) bool {
	switch status {
	case SubscriptionStatusActive,
		SubscriptionStatusCanceled,
		SubscriptionStatusIncomplete,
		SubscriptionStatusIncompleteExpired,
		SubscriptionStatusPastDue,
		SubscriptionStatusTrialing,
		SubscriptionStatusUnpaid:
		return true
	default:
		return false
	}
}

// BoolToFlag converts a boolean into the 0/1 integer persisted by the store.
func BoolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FlagToBool is the inverse of BoolToFlag. Any non-zero value is true.
func FlagToBool(flag int) bool {
	return flag != 0
}

// WillCancel reports whether the subscription ends at the close of the current period.
func (s *Subscription) WillCancel() bool {
	return FlagToBool(s.CancelAtPeriodEnd)
}
