package services

import (
	"errors"
	"strings"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTopicNotFound = errors.New("topic not found")

type TopicService struct {
	db *gorm.DB
}

func NewTopicService(db *gorm.DB) *TopicService {
	return &TopicService{db: db}
}

// List returns all topics in their configured order.
func (s *TopicService) List() ([]models.Topic, error) {
	var topics []models.Topic
	err := s.db.Order("sort_order ASC, name ASC").Find(&topics).Error
	return topics, err
}

func (s *TopicService) GetBySlug(slug string) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.Where("slug = ?", slug).First(&topic).Error; err != nil {
		return nil, ErrTopicNotFound
	}
	return &topic, nil
}

// Create adds a topic; the slug is derived from the name when absent.
func (s *TopicService) Create(name, icon, slug string, description *string, sortOrder int) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("topic name is required")
	}
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}

	topic := models.Topic{
		ID:          uuid.New(),
		Name:        name,
		Icon:        icon,
		Slug:        slug,
		Description: description,
		SortOrder:   sortOrder,
	}
	if err := s.db.Create(&topic).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}
