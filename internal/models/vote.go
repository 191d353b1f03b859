package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteType is the direction of a vote.
type VoteType string

const (
	Upvote   VoteType = "upvote"
	Downvote VoteType = "downvote"
)

// Vote records one user's vote on exactly one of a post or a comment.
// The partial unique indexes back up the lookup-before-insert in the service;
// a user can hold at most one vote per target.
type Vote struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_post;uniqueIndex:idx_votes_user_comment" json:"user_id"`
	PostID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_votes_user_post" json:"post_id,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_votes_user_comment" json:"comment_id,omitempty"`
	VoteType  VoteType   `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt time.Time  `json:"created_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
