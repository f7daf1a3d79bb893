package models

import "time"

// Webhook provider constants used across webhook-related models.
const (
	WebhookProviderPolar     = "polar"
	WebhookProviderOneSignal = "onesignal"
)

// WebhookEvent stores provider webhook deliveries with deduplication metadata
// for idempotent processing and later replay.
type WebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"type:varchar(20);not null;index:ux_webhook_events_provider_delivery,unique,priority:1;index" json:"provider"`
	DeliveryID      string     `gorm:"type:varchar(191);not null;default:'';index:ux_webhook_events_provider_delivery,unique,priority:2" json:"delivery_id"`
	EventType       string     `gorm:"type:varchar(100);not null;index" json:"event_type"`
	PayloadJSON     string     `gorm:"type:longtext;not null" json:"payload_json"`
	SignatureValid  bool       `gorm:"default:false;index" json:"signature_valid"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	ProcessingError string     `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Succeeded reports whether the delivery was processed without error.
func (e *WebhookEvent) Succeeded() bool {
	return e.ProcessedAt != nil && e.ProcessingError == ""
}
