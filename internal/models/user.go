package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the locally persisted profile for an identity-provider account.
// ClerkID bridges to the external provider and never changes after creation.
type User struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ClerkID    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"clerkId"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone"`
	ProfilePic string    `gorm:"type:varchar(512)" json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
