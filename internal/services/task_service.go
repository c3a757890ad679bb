package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayatsuji/taskboard/internal/models"
	"github.com/ayatsuji/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title cannot be empty")
	ErrInvalidStatus = errors.New("status must be one of Backlog, Ongoing or Completed")
)

// TaskService handles task business logic. Every operation takes the caller
// identity explicitly and fails closed when it cannot be satisfied under
// that identity.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Status      models.TaskStatus
	Description string
	Image       string
	OwnerID     string
}

// ReplaceTaskInput represents a full-document overwrite
type ReplaceTaskInput struct {
	Title       string
	Status      models.TaskStatus
	Description string
	Image       string
}

// List returns all tasks owned by the caller
func (s *TaskService) List(ownerID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task scoped by owner
func (s *TaskService) Get(id, ownerID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create validates and persists a new task under the caller's identity.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.StatusBacklog
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		Title:       title,
		Status:      status,
		Description: input.Description,
		Image:       input.Image,
		UserID:      input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Patch applies only the fields present in updates. The id and owner columns
// are not patchable; unknown keys are dropped. The repository filter makes a
// foreign id indistinguishable from an absent one.
func (s *TaskService) Patch(id, ownerID string, updates map[string]interface{}) (*models.Task, error) {
	fields := make(map[string]interface{})

	if raw, ok := updates["title"]; ok {
		title, ok := raw.(string)
		if !ok || strings.TrimSpace(title) == "" {
			return nil, ErrTitleRequired
		}
		fields["title"] = strings.TrimSpace(title)
	}
	if raw, ok := updates["status"]; ok {
		str, ok := raw.(string)
		if !ok {
			return nil, ErrInvalidStatus
		}
		status := models.TaskStatus(str)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = status
	}
	if raw, ok := updates["description"]; ok {
		if desc, ok := raw.(string); ok {
			fields["description"] = desc
		}
	}
	if raw, ok := updates["image"]; ok {
		if image, ok := raw.(string); ok {
			fields["image"] = image
		}
	}

	if len(fields) == 0 {
		// Nothing updatable was sent; still report NotFound for foreign ids.
		return s.Get(id, ownerID)
	}

	rows, err := s.taskRepo.UpdateFields(id, ownerID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	return s.Get(id, ownerID)
}

// Replace overwrites the full editable document scoped by owner.
func (s *TaskService) Replace(id, ownerID string, input ReplaceTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.StatusBacklog
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	fields := map[string]interface{}{
		"title":       title,
		"status":      status,
		"description": input.Description,
		"image":       input.Image,
	}

	rows, err := s.taskRepo.UpdateFields(id, ownerID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to replace task: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	return s.Get(id, ownerID)
}

// Delete removes a task scoped by owner. Deleting an absent or foreign id
// reports NotFound, so repeated deletes are safe.
func (s *TaskService) Delete(id, ownerID string) error {
	rows, err := s.taskRepo.Delete(id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}
