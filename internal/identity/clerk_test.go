package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClerkVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/verify", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "session-token", payload["token"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Claims{
			UserID:   "user_2abc",
			Name:     "Jamie Example",
			Email:    "jamie@example.com",
			ImageURL: "https://img.clerk.example/avatar.png",
		})
	}))
	defer server.Close()

	provider := NewClerkProvider(server.URL, "sk_test_secret")

	claims, err := provider.Verify(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", claims.UserID)
	assert.Equal(t, "Jamie Example", claims.Name)
}

func TestClerkVerifyRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewClerkProvider(server.URL, "sk_test_secret")

	_, err := provider.Verify(context.Background(), "expired-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClerkVerifyEmptySubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Claims{})
	}))
	defer server.Close()

	provider := NewClerkProvider(server.URL, "sk_test_secret")

	_, err := provider.Verify(context.Background(), "odd-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClerkVerifyProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewClerkProvider(server.URL, "sk_test_secret")

	_, err := provider.Verify(context.Background(), "session-token")
	assert.ErrorIs(t, err, ErrUnavailable)
}
