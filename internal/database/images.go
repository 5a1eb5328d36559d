package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"homesight/server/internal/models"
)

// AddImage records a stored image for a property.
func (d *Database) AddImage(image *models.PropertyImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if err := d.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	return nil
}

// ListImages returns a property's images in sort order.
func (d *Database) ListImages(propertyID string) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := d.db.Where("property_id = ?", propertyID).
		Order("sort_order ASC, created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// GetImage fetches a single image record.
func (d *Database) GetImage(id string) (*models.PropertyImage, error) {
	var image models.PropertyImage
	err := d.db.Where("id = ?", id).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}

// DeleteImage removes one image record.
func (d *Database) DeleteImage(id string) error {
	result := d.db.Where("id = ?", id).Delete(&models.PropertyImage{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
