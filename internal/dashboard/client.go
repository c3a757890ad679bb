package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ayatsuji/taskboard/internal/dto"
	"github.com/ayatsuji/taskboard/internal/models"
)

var (
	ErrUnauthorized   = errors.New("dashboard: not authenticated")
	ErrNotFound       = errors.New("dashboard: resource not found")
	ErrInvalidRequest = errors.New("dashboard: request rejected")
	ErrRequestFailed  = errors.New("dashboard: request failed")
)

// Client is the typed HTTP client for the task API, one per signed-in session.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client. httpClient may be nil to use the default.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    httpClient,
	}
}

// ListTasks fetches every task owned by the session user.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the stored document.
func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// PatchTask applies a partial update.
func (c *Client) PatchTask(ctx context.Context, id string, fields map[string]interface{}) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id, fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ReplaceTask overwrites the full task document.
func (c *Client) ReplaceTask(ctx context.Context, id string, req dto.ReplaceTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// GetUser fetches the profile for a provider account.
func (c *Client) GetUser(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+clerkID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates the profile for a provider account.
func (c *Client) CreateUser(ctx context.Context, clerkID string, req dto.UserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/"+clerkID, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceUser overwrites the full profile document.
func (c *Client) ReplaceUser(ctx context.Context, clerkID string, req dto.UserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+clerkID, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the profile for a provider account.
func (c *Client) DeleteUser(ctx context.Context, clerkID string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+clerkID, nil, nil)
}

// UploadImage sends one file as the multipart `image` field and returns the
// durable URL assigned by the media host.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (*dto.UploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return nil, err
	}

	var uploaded dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrRequestFailed, err)
	}
	return &uploaded, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid response: %v", ErrRequestFailed, err)
	}
	return nil
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadRequest:
		return ErrInvalidRequest
	default:
		return fmt.Errorf("%w: status %d", ErrRequestFailed, code)
	}
}
