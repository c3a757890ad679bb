package media

import (
	"context"
	"errors"
)

var ErrUploadFailed = errors.New("media: upload failed")

// UploadResult holds the durable location assigned by the media host.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader stores image bytes on the external media host and returns the
// durable URL to persist. Implementations must not retry.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error)
}
