package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayatsuji/taskboard/internal/constants"
	"github.com/ayatsuji/taskboard/internal/media"
	"github.com/ayatsuji/taskboard/internal/models"
	"github.com/ayatsuji/taskboard/internal/repository"
)

var ErrFileTooLarge = errors.New("file exceeds the 5 MB upload limit")

// UploadService sequences "upload to the media host, then record the durable
// URL". The local bytes are never persisted.
type UploadService struct {
	uploader  media.Uploader
	imageRepo repository.ImageRepository
}

// NewUploadService creates a new UploadService
func NewUploadService(uploader media.Uploader, imageRepo repository.ImageRepository) *UploadService {
	return &UploadService{
		uploader:  uploader,
		imageRepo: imageRepo,
	}
}

// UploadInput carries one image file and its owner.
type UploadInput struct {
	OwnerID     string
	Filename    string
	ContentType string
	Data        []byte
}

// UploadOutput is the durable location plus the local upload record id.
type UploadOutput struct {
	ImageURL string
	ImageID  string
}

// Upload pushes the file to the media host and records the returned URL.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	if len(input.Data) > constants.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	result, err := s.uploader.Upload(ctx, input.Data, input.Filename, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrUploadFailed, err)
	}

	image := &models.Image{
		UserID:       input.OwnerID,
		URL:          result.URL,
		PublicID:     result.PublicID,
		OriginalName: input.Filename,
	}

	if err := s.imageRepo.Create(image); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return &UploadOutput{
		ImageURL: result.URL,
		ImageID:  image.ID,
	}, nil
}

// History lists the caller's upload records, newest first.
func (s *UploadService) History(ownerID string) ([]models.Image, error) {
	images, err := s.imageRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return images, nil
}
