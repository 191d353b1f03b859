package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Topic groups posts into browsable sections, ordered by SortOrder.
type Topic struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Description *string   `gorm:"size:500" json:"description,omitempty"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
