package repository

import (
	"github.com/ayatsuji/taskboard/internal/models"
)

// TaskRepository defines the interface for task data access.
//
// Every mutation is scoped by both id and owner in a single statement, so a
// caller can never touch another user's task even with a valid id. A zero
// affected-row count is the only "not found" signal mutations report.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByOwner lists all tasks belonging to an owner
	FindByOwner(ownerID string) ([]models.Task, error)

	// FindByIDAndOwner finds a single task scoped by owner
	FindByIDAndOwner(id, ownerID string) (*models.Task, error)

	// UpdateFields applies a partial or full update scoped by owner and
	// returns the number of rows affected
	UpdateFields(id, ownerID string, fields map[string]interface{}) (int64, error)

	// Delete removes a task scoped by owner and returns the number of rows affected
	Delete(id, ownerID string) (int64, error)
}

// UserRepository defines the interface for profile data access
type UserRepository interface {
	// Create creates a new profile
	Create(user *models.User) error

	// FindByClerkID finds a profile by its identity-provider id
	FindByClerkID(clerkID string) (*models.User, error)

	// ReplaceByClerkID overwrites the editable profile fields and returns
	// the number of rows affected
	ReplaceByClerkID(clerkID string, fields map[string]interface{}) (int64, error)

	// DeleteByClerkID removes a profile and returns the number of rows affected
	DeleteByClerkID(clerkID string) (int64, error)
}

// ImageRepository defines the interface for upload-record data access
type ImageRepository interface {
	// Create records a completed media-host upload
	Create(image *models.Image) error

	// FindByOwner lists upload records for an owner
	FindByOwner(ownerID string) ([]models.Image, error)
}
