package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homesight/server/internal/models"
)

var ErrNotFound = errors.New("record not found")

// UpsertProperty stores an analysis for (user, address). A concurrent
// or repeated analysis of the same address updates the existing row in
// place through the unique index instead of inserting a duplicate.
func (d *Database) UpsertProperty(property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	if property.Status == "" {
		property.Status = "active"
	}

	err := d.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"analysis_data", "status", "updated_at",
		}),
	}).Create(property).Error
	if err != nil {
		return fmt.Errorf("failed to upsert property: %w", err)
	}

	// On conflict the generated ID was discarded; read back the row so
	// the caller sees the persisted one.
	return d.db.Where("user_id = ? AND address = ?", property.UserID, property.Address).
		First(property).Error
}

// GetProperty fetches one property owned by the user.
func (d *Database) GetProperty(userID, id string) (*models.Property, error) {
	var property models.Property
	err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// ListProperties returns the user's properties, favorites first, then
// most recently updated.
func (d *Database) ListProperties(userID string, favoritesOnly bool) ([]models.Property, error) {
	query := d.db.Where("user_id = ?", userID)
	if favoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	var properties []models.Property
	err := query.Order("is_favorite DESC, updated_at DESC").Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// SetFavorite flips the favorite flag.
func (d *Database) SetFavorite(userID, id string, favorite bool) error {
	result := d.db.Model(&models.Property{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_favorite", favorite)
	if result.Error != nil {
		return fmt.Errorf("failed to update favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus updates the listing status string.
func (d *Database) SetStatus(userID, id, status string) error {
	result := d.db.Model(&models.Property{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProperty removes the property and its image records. The
// caller is responsible for deleting the blobs afterwards.
func (d *Database) DeleteProperty(userID, id string) ([]models.PropertyImage, error) {
	images, err := d.ListImages(id)
	if err != nil {
		return nil, err
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Property{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete property: %w", err)
	}
	return images, nil
}
