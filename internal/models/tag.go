package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagPalette is the fixed set of colors assigned to new tags.
var TagPalette = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e", "#14b8a6",
	"#3b82f6", "#8b5cf6", "#ec4899", "#64748b",
}

// Tag names are unique case-insensitively; NameKey holds the lowercased form
// and carries the unique index so concurrent creates collapse to one row.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	NameKey   string    `gorm:"size:50;not null;uniqueIndex" json:"-"`
	Color     string    `gorm:"size:10;not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// PostTag joins posts to tags. Deleting a tag removes its associations first.
type PostTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_tags_pair" json:"post_id"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_tags_pair" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (pt *PostTag) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	return nil
}
