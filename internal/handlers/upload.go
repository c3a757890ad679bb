package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/ayatsuji/taskboard/internal/constants"
	"github.com/ayatsuji/taskboard/internal/dto"
	apierrors "github.com/ayatsuji/taskboard/internal/errors"
	"github.com/ayatsuji/taskboard/internal/media"
	"github.com/ayatsuji/taskboard/internal/middleware"
	"github.com/ayatsuji/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// UploadHandler accepts multipart image uploads and hands them to the media host.
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadImage stores the `image` form file on the media host and returns the
// durable URL plus the local upload record id.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		apierrors.BadRequest(c, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadSize {
		apierrors.BadRequest(c, services.ErrFileTooLarge.Error())
		return
	}

	// Size headers can lie; cap the read as well.
	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadSize+1))
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}

	result, err := h.uploadService.Upload(c.Request.Context(), services.UploadInput{
		OwnerID:     ownerID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, media.ErrUploadFailed):
			apierrors.UpstreamFailure(c, "Image host rejected the upload")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		ImageURL: result.ImageURL,
		ImageID:  result.ImageID,
	})
}

// ListUploads returns the caller's past upload records, newest first.
func (h *UploadHandler) ListUploads(c *gin.Context) {
	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	images, err := h.uploadService.History(ownerID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, images)
}
