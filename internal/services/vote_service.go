package services

import (
	"errors"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidVoteType = errors.New("vote_type must be upvote or downvote")

// VoteService enforces at-most-one-vote-per-user-per-target with toggle and
// flip semantics: repeating a vote removes it, switching direction flips it
// and adjusts both counters. All counter movement happens inside a
// transaction so the denormalized tallies stay consistent under a real
// database.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

func counterColumn(vt models.VoteType) string {
	if vt == models.Upvote {
		return "upvotes"
	}
	return "downvotes"
}

// VotePost applies a vote to a post.
func (s *VoteService) VotePost(userID, postID uuid.UUID, voteType models.VoteType) error {
	if voteType != models.Upvote && voteType != models.Downvote {
		return ErrInvalidVoteType
	}

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		return ErrPostNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if err != nil {
			vote := models.Vote{ID: uuid.New(), UserID: userID, PostID: &postID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			return bump(tx, &models.Post{}, postID, counterColumn(voteType), +1)
		}
		return applyExisting(tx, &existing, &models.Post{}, postID, voteType)
	})
}

// VoteComment applies a vote to a comment.
func (s *VoteService) VoteComment(userID, commentID uuid.UUID, voteType models.VoteType) error {
	if voteType != models.Upvote && voteType != models.Downvote {
		return ErrInvalidVoteType
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return ErrCommentNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		if err != nil {
			vote := models.Vote{ID: uuid.New(), UserID: userID, CommentID: &commentID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			return bump(tx, &models.Comment{}, commentID, counterColumn(voteType), +1)
		}
		return applyExisting(tx, &existing, &models.Comment{}, commentID, voteType)
	})
}

// applyExisting handles the toggle-off and flip cases for a found vote.
func applyExisting(tx *gorm.DB, existing *models.Vote, model interface{}, targetID uuid.UUID, voteType models.VoteType) error {
	if existing.VoteType == voteType {
		// Toggle off: remove the vote and take back its count.
		if err := tx.Delete(existing).Error; err != nil {
			return err
		}
		return bump(tx, model, targetID, counterColumn(voteType), -1)
	}

	// Flip: one counter up, the other down.
	old := existing.VoteType
	if err := tx.Model(existing).Update("vote_type", voteType).Error; err != nil {
		return err
	}
	if err := bump(tx, model, targetID, counterColumn(voteType), +1); err != nil {
		return err
	}
	return bump(tx, model, targetID, counterColumn(old), -1)
}

func bump(tx *gorm.DB, model interface{}, id uuid.UUID, column string, delta int) error {
	return tx.Model(model).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}
