package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultUploadEndpoint = "https://api.cloudinary.com/v1_1"

// CloudinaryUploader pushes images to a Cloudinary unsigned upload endpoint.
type CloudinaryUploader struct {
	endpoint     string
	cloudName    string
	uploadPreset string
	client       *http.Client
}

func NewCloudinaryUploader(cloudName, uploadPreset string) *CloudinaryUploader {
	return &CloudinaryUploader{
		endpoint:     defaultUploadEndpoint,
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewCloudinaryUploaderWithEndpoint overrides the API host (used for testing).
func NewCloudinaryUploaderWithEndpoint(endpoint, cloudName, uploadPreset string) *CloudinaryUploader {
	u := NewCloudinaryUploader(cloudName, uploadPreset)
	u.endpoint = endpoint
	return u
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends the image as a multipart unsigned upload and returns the
// host-assigned URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.WriteField("folder", "imgs"); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", u.endpoint, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUploadFailed, resp.StatusCode)
	}

	var decoded cloudinaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrUploadFailed, err)
	}
	if decoded.SecureURL == "" {
		return nil, fmt.Errorf("%w: response missing secure_url", ErrUploadFailed)
	}

	return &UploadResult{
		URL:      decoded.SecureURL,
		PublicID: decoded.PublicID,
	}, nil
}
