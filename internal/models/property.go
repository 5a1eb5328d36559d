package models

import (
	"time"

	"gorm.io/datatypes"
)

// Property is a stored analysis owned by a user. The canonical
// PropertyData is persisted verbatim in AnalysisData. Uniqueness of
// (user_id, address) is enforced by the database index, not by an
// application-level pre-check.
type Property struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_address" json:"user_id"`
	Address      string         `gorm:"type:text;not null;uniqueIndex:idx_user_address" json:"address"`
	AnalysisData datatypes.JSON `gorm:"type:jsonb" json:"analysis_data"`
	IsFavorite   bool           `gorm:"not null;default:false" json:"is_favorite"`
	Status       string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyImage is an image attached to a stored property. The blob
// itself lives in the file store; this row carries its location.
type PropertyImage struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID string    `gorm:"type:uuid;not null;index" json:"property_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// UserSettings holds per-user preferences. Authentication is delegated
// to the fronting proxy; UserID is whatever identity it forwards.
type UserSettings struct {
	UserID               string    `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	DisplayName          string    `gorm:"type:varchar(120)" json:"display_name"`
	Email                string    `gorm:"type:varchar(255)" json:"email"`
	NotificationsEnabled bool      `gorm:"not null;default:true" json:"notifications_enabled"`
	DefaultExportFormat  string    `gorm:"type:varchar(10);not null;default:'pdf'" json:"default_export_format"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
