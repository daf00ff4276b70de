package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option is one selectable answer belonging to exactly one poll. Options are
// only ever created as a batch alongside their parent poll.
type Option struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	PollID     string    `gorm:"column:poll_id;type:uuid;not null;index" json:"poll_id"`
	OptionText string    `gorm:"column:option_text;size:255;not null" json:"option_text"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for Option
func (Option) TableName() string {
	return "poll_options"
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
