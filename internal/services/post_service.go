package services

import (
	"errors"
	"strings"

	"github.com/glowstories/glowstories-backend/internal/dto"
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotPostOwner = errors.New("not allowed to modify this post")

// PostService owns the post lifecycle: creation through the trust-gated
// publishing workflow, the public feed, and ownership-checked edits/deletes.
type PostService struct {
	db         *gorm.DB
	trust      *TrustService
	tags       *TagService
	moderation *ModerationService
}

func NewPostService(db *gorm.DB, trust *TrustService, tags *TagService, moderation *ModerationService) *PostService {
	return &PostService{db: db, trust: trust, tags: tags, moderation: moderation}
}

// Create persists a new post. Admins, contributors and high-trust users
// publish directly; everyone else lands in the pending review queue. A
// submission that trips the content filter is created flagged regardless
// of who wrote it, except for the AI pipeline.
func (s *PostService) Create(userID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.New("content is required")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	status := models.PostPending
	switch user.Role {
	case models.RoleAdmin, models.RoleSuperadmin, models.RoleContributor:
		status = models.PostPublished
	default:
		direct, err := s.trust.CanPublishDirectly(&user)
		if err != nil {
			return nil, err
		}
		if direct {
			status = models.PostPublished
		}
	}

	var filterReason *string
	if ok, reason := s.moderation.FilterContent(title + "\n" + req.Content); !ok {
		status = models.PostFlagged
		filterReason = &reason
	}

	post := models.Post{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            title,
		Content:          req.Content,
		ImageURL:         req.ImageURL,
		TopicID:          req.TopicID,
		Status:           status,
		ModerationReason: filterReason,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.tags.AttachTags(post.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return &post, nil
}

// CreateGenerated persists an AI-authored post owned by an admin identity.
// Generated content skips review entirely.
func (s *PostService) CreateGenerated(ownerID uuid.UUID, title, content string, topicID *uuid.UUID, tagNames []string) (*models.Post, error) {
	post := models.Post{
		ID:            uuid.New(),
		UserID:        ownerID,
		Title:         title,
		Content:       content,
		TopicID:       topicID,
		IsAiGenerated: true,
		Status:        models.PostPublished,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	if len(tagNames) > 0 {
		if err := s.tags.AttachTags(post.ID, tagNames); err != nil {
			return nil, err
		}
	}
	return &post, nil
}

// GetByID returns a post by id.
func (s *PostService) GetByID(postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// Feed lists published posts, pinned first, newest first.
func (s *PostService) Feed(topicID *uuid.UUID, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := s.db.Model(&models.Post{}).Where("status = ?", models.PostPublished)
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}
	query.Count(&total)

	err := query.Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// ListByUser lists a user's own posts in every status.
func (s *PostService) ListByUser(userID uuid.UUID, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := s.db.Model(&models.Post{}).Where("user_id = ?", userID)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// Update edits a post. Only the owner or an admin may edit; edited fields
// are applied selectively.
func (s *PostService) Update(postID, actorID uuid.UUID, actorRole string, req *dto.UpdatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if post.UserID != actorID && actorRole != models.RoleAdmin && actorRole != models.RoleSuperadmin {
		return nil, ErrNotPostOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errors.New("title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.TopicID != nil {
		updates["topic_id"] = *req.TopicID
	}
	if len(updates) > 0 {
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	if len(req.Tags) > 0 {
		if err := s.tags.AttachTags(post.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return s.GetByID(postID)
}

// Delete removes a post. Owners delete their own; admins delete anything.
func (s *PostService) Delete(postID, actorID uuid.UUID, actorRole string) error {
	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return ErrPostNotFound
	}

	isAdmin := actorRole == models.RoleAdmin || actorRole == models.RoleSuperadmin
	if post.UserID != actorID && !isAdmin {
		return ErrNotPostOwner
	}

	return s.db.Delete(&post).Error
}
