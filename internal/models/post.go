package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the moderation state of a post.
type PostStatus string

const (
	PostPending   PostStatus = "pending"
	PostPublished PostStatus = "published"
	PostRejected  PostStatus = "rejected"
	PostFlagged   PostStatus = "flagged"
)

// Post is a single article. User-submitted posts start pending unless the
// author's trust score clears the direct-publish threshold; admin- and
// AI-authored posts are published immediately.
type Post struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string         `gorm:"size:255;not null" json:"title"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	ImageURL         *string        `gorm:"size:255" json:"image_url,omitempty"`
	IsAiGenerated    bool           `gorm:"default:false" json:"is_ai_generated"`
	TopicID          *uuid.UUID     `gorm:"type:uuid;index" json:"topic_id,omitempty"`
	Status           PostStatus     `gorm:"size:20;default:'pending';index" json:"status"`
	IsPinned         bool           `gorm:"default:false" json:"is_pinned"`
	Upvotes          int            `gorm:"default:0" json:"upvotes"`
	Downvotes        int            `gorm:"default:0" json:"downvotes"`
	CommentCount     int            `gorm:"default:0" json:"comment_count"`
	Reports          int            `gorm:"default:0" json:"reports"`
	ModerationReason *string        `gorm:"size:500" json:"moderation_reason,omitempty"`
	ModeratedAt      *time.Time     `json:"moderated_at,omitempty"`
	ModeratedBy      *uuid.UUID     `gorm:"type:uuid" json:"moderated_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Topic *Topic `gorm:"foreignKey:TopicID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
