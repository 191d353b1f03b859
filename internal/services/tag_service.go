package services

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTagNotFound = errors.New("tag not found")

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// EnsureTag returns the tag with the given name, matching case-insensitively,
// creating it with a random palette color if absent. The insert goes through
// ON CONFLICT DO NOTHING on the lowercased name key, so two concurrent
// callers racing on a new name still collapse to a single row.
func (s *TagService) EnsureTag(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("tag name is required")
	}
	key := strings.ToLower(name)

	tag := models.Tag{
		ID:      uuid.New(),
		Name:    name,
		NameKey: key,
		Color:   models.TagPalette[rand.Intn(len(models.TagPalette))],
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name_key"}},
		DoNothing: true,
	}).Create(&tag).Error; err != nil {
		return nil, err
	}

	// Re-fetch: on conflict the insert was a no-op and the winner's row,
	// possibly with different original casing, is the canonical one.
	var existing models.Tag
	if err := s.db.Where("name_key = ?", key).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// AttachTags ensures each named tag exists and links it to the post,
// skipping pairs that are already associated.
func (s *TagService) AttachTags(postID uuid.UUID, tagNames []string) error {
	for _, name := range tagNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := s.EnsureTag(name)
		if err != nil {
			return err
		}

		link := models.PostTag{ID: uuid.New(), PostID: postID, TagID: tag.ID}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// TagsForPost returns the tags linked to a post.
func (s *TagService) TagsForPost(postID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Find(&tags).Error
	return tags, err
}

// List returns all tags ordered by name.
func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("name_key ASC").Find(&tags).Error
	return tags, err
}

// Delete removes a tag and all of its post associations.
func (s *TagService) Delete(tagID uuid.UUID) error {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", tagID).Error; err != nil {
		return ErrTagNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}
