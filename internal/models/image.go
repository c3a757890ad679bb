package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image records one successful upload to the media host. The URL is the
// durable location returned by the host, not the uploaded bytes.
type Image struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       string    `gorm:"type:varchar(64);not null;index" json:"userId"`
	URL          string    `gorm:"type:varchar(512);not null" json:"url"`
	PublicID     string    `gorm:"type:varchar(255)" json:"publicId,omitempty"`
	OriginalName string    `gorm:"type:varchar(255)" json:"originalName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
