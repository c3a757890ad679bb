package repository

import (
	"github.com/ayatsuji/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new profile
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByClerkID finds a profile by its identity-provider id
func (r *GormUserRepository) FindByClerkID(clerkID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("clerk_id = ?", clerkID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceByClerkID overwrites the editable profile fields. ClerkID itself is
// never part of the update set.
func (r *GormUserRepository) ReplaceByClerkID(clerkID string, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("clerk_id = ?", clerkID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteByClerkID removes a profile
func (r *GormUserRepository) DeleteByClerkID(clerkID string) (int64, error) {
	result := r.db.Where("clerk_id = ?", clerkID).Delete(&models.User{})
	return result.RowsAffected, result.Error
}
