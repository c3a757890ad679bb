package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusBacklog   TaskStatus = "Backlog"
	StatusOngoing   TaskStatus = "Ongoing"
	StatusCompleted TaskStatus = "Completed"
)

// Statuses lists the three dashboard buckets in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusBacklog, StatusOngoing, StatusCompleted}
}

// Valid reports whether s is one of the three recognized statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'Backlog'" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	Image       string     `gorm:"type:varchar(512)" json:"image,omitempty"`
	UserID      string     `gorm:"type:varchar(64);not null;index" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusBacklog
	}
	return nil
}
