package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Poll is a question with a fixed set of options, owned by its creator.
type Poll struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string    `gorm:"column:title;size:255;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	OwnerID     string    `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for Poll
func (Poll) TableName() string {
	return "polls"
}

func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PollWithOptions is the list/detail representation of a poll.
type PollWithOptions struct {
	Poll
	Options []Option `json:"options"`
}

// CreatePollRequest defines the input for creating a poll
type CreatePollRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Options     []string `json:"options" binding:"required"`
}

// PollDetailResponse merges a poll, its options and its current tally.
type PollDetailResponse struct {
	PollWithOptions
	Tally Tally `json:"tally"`
}
