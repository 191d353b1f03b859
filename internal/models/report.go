package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostReport records a reader flagging a post. The unique pair index keeps a
// user from inflating a post's report counter by reporting it repeatedly.
type PostReport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_reports_pair" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_reports_pair" json:"user_id"`
	Reason    string    `gorm:"size:500" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *PostReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
