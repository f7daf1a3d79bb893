package models

// UserProfile is the externally owned profile row. The webhook pipeline only
// ever writes PolarCustomerID.
type UserProfile struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	UserID          string  `gorm:"type:varchar(191);not null;uniqueIndex" json:"user_id"`
	Email           string  `gorm:"type:varchar(200);not null;default:''" json:"email"`
	FirstName       string  `gorm:"type:varchar(100);not null;default:''" json:"first_name"`
	LastName        string  `gorm:"type:varchar(100);not null;default:''" json:"last_name"`
	PolarCustomerID *string `gorm:"type:varchar(191);default:null;index" json:"polar_customer_id,omitempty"`
}

// TableName keeps the table name shared with the rest of the platform.
func (UserProfile) TableName() string {
	return "general_user_profiles"
}
