package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homesight/server/internal/models"
)

// GetUserSettings returns the user's settings, falling back to the
// defaults for users that have never saved any.
func (d *Database) GetUserSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := d.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserSettings{
			UserID:               userID,
			NotificationsEnabled: true,
			DefaultExportFormat:  "pdf",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return &settings, nil
}

// SaveUserSettings inserts or updates the user's settings row.
func (d *Database) SaveUserSettings(settings *models.UserSettings) error {
	err := d.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "email", "notifications_enabled",
			"default_export_format", "updated_at",
		}),
	}).Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save user settings: %w", err)
	}
	return nil
}
