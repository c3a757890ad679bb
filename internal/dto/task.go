package dto

import (
	"github.com/ayatsuji/taskboard/internal/models"
)

// CreateTaskRequest is the POST /tasks body. Any owner field a client sends
// is absent here on purpose: ownership comes from the caller identity.
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Status      models.TaskStatus `json:"status"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
}

// ReplaceTaskRequest is the PUT /tasks/:id body, a full document overwrite.
type ReplaceTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Status      models.TaskStatus `json:"status"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
}

// MessageResponse is the confirmation body for deletes.
type MessageResponse struct {
	Message string `json:"message"`
}
