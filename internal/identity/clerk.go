package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ClerkProvider resolves caller identity against a Clerk-style verification
// endpoint, authenticated with the instance secret key.
type ClerkProvider struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewClerkProvider(baseURL, secretKey string) *ClerkProvider {
	return &ClerkProvider{
		baseURL:   baseURL,
		secretKey: secretKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify posts the session token to the provider and decodes the claims.
func (p *ClerkProvider) Verify(ctx context.Context, token string) (*Claims, error) {
	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/tokens/verify", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var claims Claims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
