package repository

import (
	"github.com/ayatsuji/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByOwner lists all tasks belonging to an owner, newest first
func (r *GormTaskRepository) FindByOwner(ownerID string) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := r.db.
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByIDAndOwner finds a single task scoped by owner
func (r *GormTaskRepository) FindByIDAndOwner(id, ownerID string) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateFields applies the given column values in one filter-and-mutate
// statement. The owner filter is the authorization check: a foreign or absent
// id both yield zero affected rows.
func (r *GormTaskRepository) UpdateFields(id, ownerID string, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// Delete removes a task scoped by owner
func (r *GormTaskRepository) Delete(id, ownerID string) (int64, error) {
	result := r.db.
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
