package services

import (
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DirectPublishThreshold is the trust score at which a user's posts skip
// review. The same bar gates contributor applications.
const DirectPublishThreshold = 50

// TrustService derives trust scores from live activity. Nothing is stored:
// the score is recomputed on every read, so it can never drift from the
// post/comment/vote data it summarizes. An admin-set TrustOverride on the
// user wins over the computed value.
type TrustService struct {
	db *gorm.DB
}

func NewTrustService(db *gorm.DB) *TrustService {
	return &TrustService{db: db}
}

// Score computes the trust score for a user: base 15, up to 25 from posts
// (5 each), up to 20 from comments (2 each), up to 40 from upvotes received
// (1 per 3), clamped to [0, 100].
func (s *TrustService) Score(userID uuid.UUID) (int, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return 0, ErrUserNotFound
	}
	return s.ScoreFor(&user)
}

// ScoreFor computes the score for an already-loaded user.
func (s *TrustService) ScoreFor(user *models.User) (int, error) {
	if user.TrustOverride != nil {
		return clampScore(*user.TrustOverride), nil
	}

	var postCount, commentCount int64
	if err := s.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount).Error; err != nil {
		return 0, err
	}
	if err := s.db.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount).Error; err != nil {
		return 0, err
	}

	var postUpvotes, commentUpvotes int64
	row := s.db.Model(&models.Post{}).Where("user_id = ?", user.ID).Select("COALESCE(SUM(upvotes), 0)").Row()
	if err := row.Scan(&postUpvotes); err != nil {
		return 0, err
	}
	row = s.db.Model(&models.Comment{}).Where("user_id = ?", user.ID).Select("COALESCE(SUM(upvotes), 0)").Row()
	if err := row.Scan(&commentUpvotes); err != nil {
		return 0, err
	}

	score := 15
	score += minInt(25, int(postCount)*5)
	score += minInt(20, int(commentCount)*2)
	score += minInt(40, int(postUpvotes+commentUpvotes)/3)
	return clampScore(score), nil
}

// CanPublishDirectly reports whether a user's posts go live without review.
func (s *TrustService) CanPublishDirectly(user *models.User) (bool, error) {
	score, err := s.ScoreFor(user)
	if err != nil {
		return false, err
	}
	return score >= DirectPublishThreshold, nil
}

// CanApplyAsContributor reports whether a user may apply for a contributor role.
func (s *TrustService) CanApplyAsContributor(user *models.User) (bool, error) {
	score, err := s.ScoreFor(user)
	if err != nil {
		return false, err
	}
	return score >= DirectPublishThreshold, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
