package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken = errors.New("identity: invalid or expired token")
	ErrUnavailable  = errors.New("identity: provider unavailable")
)

// Claims is the caller identity resolved by the external provider.
// UserID is the only field the API layer relies on; the rest feed the
// lazy profile synthesis on the settings flow.
type Claims struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	ImageURL string `json:"image_url"`
}

// Provider verifies a bearer token and returns the claims it carries.
type Provider interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
