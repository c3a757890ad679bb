package repository

import (
	"github.com/ayatsuji/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormImageRepository is a GORM implementation of ImageRepository
type GormImageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &GormImageRepository{db: db}
}

// Create records a completed media-host upload
func (r *GormImageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

// FindByOwner lists upload records for an owner, newest first
func (r *GormImageRepository) FindByOwner(ownerID string) ([]models.Image, error) {
	images := make([]models.Image, 0)
	if err := r.db.
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
