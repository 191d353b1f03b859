package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPublished CommentStatus = "published"
	CommentRejected  CommentStatus = "rejected"
	CommentFlagged   CommentStatus = "flagged"
)

// Comment belongs to a post. ParentID forms a single-level reply tree:
// nil parent means a root comment, non-nil a reply. Creating a comment
// increments the post's comment_count, deleting decrements it.
type Comment struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PostID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	ParentID         *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Upvotes          int            `gorm:"default:0" json:"upvotes"`
	Downvotes        int            `gorm:"default:0" json:"downvotes"`
	Status           CommentStatus  `gorm:"size:20;default:'published';index" json:"status"`
	ModerationReason *string        `gorm:"size:500" json:"moderation_reason,omitempty"`
	ModeratedAt      *time.Time     `json:"moderated_at,omitempty"`
	ModeratedBy      *uuid.UUID     `gorm:"type:uuid" json:"moderated_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Replies []Comment `gorm:"-" json:"replies,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
