package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ayatsuji/taskboard/internal/dto"
	apierrors "github.com/ayatsuji/taskboard/internal/errors"
	"github.com/ayatsuji/taskboard/internal/middleware"
	"github.com/ayatsuji/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService       *services.TaskService
	suggestionService *services.SuggestionService
}

// NewTaskHandler creates a new TaskHandler. suggestionService may be nil when
// no API key is configured.
func NewTaskHandler(taskService *services.TaskService, suggestionService *services.SuggestionService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		suggestionService: suggestionService,
	}
}

// ListTasks returns all tasks owned by the caller
func (h *TaskHandler) ListTasks(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.List(ownerID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a new task owned by the caller. Any owner field in the
// request body is ignored.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Status:      req.Status,
		Description: req.Description,
		Image:       req.Image,
		OwnerID:     ownerID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask returns a single task scoped by the caller
func (h *TaskHandler) GetTask(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	task, err := h.taskService.Get(c.Param("id"), ownerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// PatchTask applies a partial update to a task scoped by the caller
func (h *TaskHandler) PatchTask(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Patch(c.Param("id"), ownerID, updates)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ReplaceTask overwrites the full task document scoped by the caller
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.ReplaceTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Replace(c.Param("id"), ownerID, services.ReplaceTaskInput{
		Title:       req.Title,
		Status:      req.Status,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task scoped by the caller
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.Delete(c.Param("id"), ownerID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}

// SuggestTasks extracts task suggestions from free text using AI
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SuggestTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.suggestionService == nil {
		apierrors.ServiceUnavailable(c, "AI suggestions are not configured")
		return
	}

	suggestions, err := h.suggestionService.SuggestTasksFromText(context.Background(), req.Text)
	if err != nil {
		apierrors.UpstreamFailure(c, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
