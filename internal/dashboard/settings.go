package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayatsuji/taskboard/internal/constants"
	"github.com/ayatsuji/taskboard/internal/dto"
	"github.com/ayatsuji/taskboard/internal/identity"
	"github.com/ayatsuji/taskboard/internal/models"
)

var ErrImageTooLarge = errors.New("dashboard: image exceeds the 5 MB upload limit")

// LocalImage is a file picked from the user's machine, not yet hosted.
type LocalImage struct {
	Name string
	Data []byte
}

// Settings drives the profile page: lazy profile creation from identity
// claims, and profile saves that host a local image before persisting its URL.
type Settings struct {
	api *Client
}

// NewSettings creates a Settings flow over the API client.
func NewSettings(api *Client) *Settings {
	return &Settings{api: api}
}

// EnsureProfile fetches the caller's profile, creating it from the identity
// provider's claims on first visit.
func (s *Settings) EnsureProfile(ctx context.Context, claims *identity.Claims) (*models.User, error) {
	user, err := s.api.GetUser(ctx, claims.UserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return s.api.CreateUser(ctx, claims.UserID, dto.UserRequest{
		Name:       claims.Name,
		Email:      claims.Email,
		Phone:      claims.Phone,
		ProfilePic: claims.ImageURL,
	})
}

// SaveProfile persists the edited profile. When a local image is attached it
// is uploaded first and only the host-assigned URL is written; a local path
// or blob URL must never reach the stored document.
func (s *Settings) SaveProfile(ctx context.Context, clerkID string, profile dto.UserRequest, image *LocalImage) (*models.User, error) {
	if image != nil {
		if len(image.Data) > constants.MaxUploadSize {
			return nil, ErrImageTooLarge
		}

		uploaded, err := s.api.UploadImage(ctx, image.Name, image.Data)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		profile.ProfilePic = uploaded.ImageURL
	}

	if profile.ProfilePic != "" && !hostedURL(profile.ProfilePic) {
		return nil, fmt.Errorf("refusing to persist non-hosted image URL %q", profile.ProfilePic)
	}

	return s.api.ReplaceUser(ctx, clerkID, profile)
}

func hostedURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
