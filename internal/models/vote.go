package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a voter's current choice for one poll. The unique index on
// (poll_id, voter_id) is what keeps re-votes from ever producing a second row.
type Vote struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PollID    string    `gorm:"column:poll_id;type:uuid;not null;uniqueIndex:idx_votes_poll_voter" json:"poll_id"`
	OptionID  string    `gorm:"column:option_id;type:uuid;not null;index" json:"option_id"`
	VoterID   string    `gorm:"column:voter_id;type:uuid;not null;uniqueIndex:idx_votes_poll_voter" json:"voter_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// CastVoteRequest defines the input for casting a vote
type CastVoteRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

// CastVoteResponse reports whether an existing vote was moved to a new option
// (true) or this was the voter's first vote on the poll (false).
type CastVoteResponse struct {
	Updated bool `json:"updated"`
}

// Tally is the always-recomputed per-option vote count for a poll. It is never
// stored; counts come straight from the votes table at read time.
type Tally struct {
	PerOption    map[string]int64 `json:"per_option"`
	Total        int64            `json:"total"`
	ViewerChoice string           `json:"viewer_choice,omitempty"`
}
