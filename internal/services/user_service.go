package services

import (
	"errors"
	"fmt"

	"github.com/ayatsuji/taskboard/internal/models"
	"github.com/ayatsuji/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("user not found")
	ErrProfileExists   = errors.New("profile already exists for this account")
)

// UserService handles profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	Name       string
	Email      string
	Phone      string
	ProfilePic string
}

// Get returns the profile for a provider account
func (s *UserService) Get(clerkID string) (*models.User, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create persists a new profile bound to the provider account id.
func (s *UserService) Create(clerkID string, input ProfileInput) (*models.User, error) {
	if _, err := s.userRepo.FindByClerkID(clerkID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	user := &models.User{
		ClerkID:    clerkID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		ProfilePic: input.ProfilePic,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Replace overwrites the full editable profile document.
func (s *UserService) Replace(clerkID string, input ProfileInput) (*models.User, error) {
	fields := map[string]interface{}{
		"name":        input.Name,
		"email":       input.Email,
		"phone":       input.Phone,
		"profile_pic": input.ProfilePic,
	}

	rows, err := s.userRepo.ReplaceByClerkID(clerkID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to replace user: %w", err)
	}
	if rows == 0 {
		return nil, ErrProfileNotFound
	}

	return s.Get(clerkID)
}

// Delete removes a profile
func (s *UserService) Delete(clerkID string) error {
	rows, err := s.userRepo.DeleteByClerkID(clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}
