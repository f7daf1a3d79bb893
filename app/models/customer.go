package models

import (
	"encoding/json"
	"time"
)

// Customer links a payments provider customer to a local user.
type Customer struct {
	ID           string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	UserID       string    `gorm:"type:varchar(191);not null;index" json:"user_id"`
	Email        string    `gorm:"type:varchar(200);default:''" json:"email"`
	MetadataJSON string    `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Metadata decodes the stored metadata map. Broken JSON yields an empty map.
func (c *Customer) Metadata() map[string]any {
	out := map[string]any{}
	if c.MetadataJSON == "" {
		return out
	}
	_ = json.Unmarshal([]byte(c.MetadataJSON), &out)
	return out
}

// SetMetadata encodes m into MetadataJSON.
func (c *Customer) SetMetadata(m map[string]any) error {
	if len(m) == 0 {
		c.MetadataJSON = ""
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	c.MetadataJSON = string(raw)
	return nil
}
