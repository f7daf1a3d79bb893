package models

import "time"

const (
	OrderStatusPaid              = "paid"
	OrderStatusRefunded          = "refunded"
	OrderStatusPartiallyRefunded = "partially_refunded"
)

// Order is a one-time purchase reported by the payments provider. The primary
// key is the provider's order id, never a generated one.
type Order struct {
	ID             string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	UserID         string    `gorm:"type:varchar(191);not null;index" json:"user_id"`
	PolarProductID string    `gorm:"type:varchar(191);not null" json:"polar_product_id"`
	PolarPriceID   string    `gorm:"type:varchar(191);not null" json:"polar_price_id"`
	Status         string    `gorm:"type:varchar(32);not null;default:'paid';index" json:"status"`
	Amount         int64     `gorm:"not null" json:"amount"`
	RefundedAmount int64     `gorm:"not null;default:0" json:"refunded_amount"`
	Currency       string    `gorm:"type:varchar(8);not null;default:'usd'" json:"currency"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
