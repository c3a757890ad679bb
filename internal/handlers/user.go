package handlers

import (
	"errors"
	"net/http"

	"github.com/ayatsuji/taskboard/internal/dto"
	apierrors "github.com/ayatsuji/taskboard/internal/errors"
	"github.com/ayatsuji/taskboard/internal/middleware"
	"github.com/ayatsuji/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler coordinates profile HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUser returns the profile for a provider account
func (h *UserHandler) GetUser(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.userService.Get(c.Param("clerkId"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser creates a profile bound to the provider account in the path
func (h *UserHandler) CreateUser(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(c.Param("clerkId"), services.ProfileInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ReplaceUser overwrites the full profile document
func (h *UserHandler) ReplaceUser(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Replace(c.Param("clerkId"), services.ProfileInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a profile
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.userService.Delete(c.Param("clerkId")); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrProfileExists):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
