package services

import (
	"errors"
	"strings"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotCommentOwner = errors.New("not allowed to delete this comment")
	ErrInvalidParent   = errors.New("parent comment not found on this post")
)

// CommentService owns the comment lifecycle. The parent post's comment_count
// moves with every create and delete; replies are a single level deep.
type CommentService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewCommentService(db *gorm.DB, moderation *ModerationService) *CommentService {
	return &CommentService{db: db, moderation: moderation}
}

// Create adds a comment to a post and increments the post's comment count
// in the same transaction. Replies to replies are reparented onto the root
// comment so the tree never exceeds one level.
func (s *CommentService) Create(postID, userID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	if len(strings.TrimSpace(content)) == 0 {
		return nil, errors.New("comment content is required")
	}

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if parentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, "id = ? AND post_id = ?", *parentID, postID).Error; err != nil {
			return nil, ErrInvalidParent
		}
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	status := models.CommentPublished
	var filterReason *string
	if ok, reason := s.moderation.FilterContent(content); !ok {
		status = models.CommentFlagged
		filterReason = &reason
	}

	comment := models.Comment{
		ID:               uuid.New(),
		PostID:           postID,
		UserID:           userID,
		Content:          content,
		ParentID:         parentID,
		Status:           status,
		ModerationReason: filterReason,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListForPost returns a post's comments as a one-level tree: roots in
// creation order, each carrying its replies.
func (s *CommentService) ListForPost(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("post_id = ? AND status <> ?", postID, models.CommentRejected).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	replies := make(map[uuid.UUID][]models.Comment)
	roots := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}
	for _, c := range comments {
		if c.ParentID == nil {
			c.Replies = replies[c.ID]
			roots = append(roots, c)
		}
	}
	return roots, nil
}

// Delete removes a comment and decrements the post's comment count, floored
// at zero. Owners delete their own; admins delete anything.
func (s *CommentService) Delete(commentID, actorID uuid.UUID, actorRole string) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return ErrCommentNotFound
	}

	isAdmin := actorRole == models.RoleAdmin || actorRole == models.RoleSuperadmin
	if comment.UserID != actorID && !isAdmin {
		return ErrNotCommentOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			Update("comment_count", gorm.Expr("CASE WHEN comment_count > 0 THEN comment_count - 1 ELSE 0 END")).Error
	})
}
