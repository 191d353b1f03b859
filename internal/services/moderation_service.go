package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/glowstories/glowstories-backend/internal/dto"
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyReported = errors.New("post already reported by this user")
)

// Action is a moderation action applied to a post or comment.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionFlag    Action = "flag"
	ActionPin     Action = "pin"
	ActionUnpin   Action = "unpin"
)

const defaultModerationReason = "No reason provided"

// ReportAutoFlagThreshold is the report count at which a published post is
// pulled back into the flagged queue automatically.
const ReportAutoFlagThreshold = 3

// postTransitions is the full transition table for post statuses. Every
// status admits approve, reject and flag: moderators can reverse any prior
// decision at any time. Unknown actions fail validation before the table is
// consulted.
var postTransitions = map[models.PostStatus]map[Action]models.PostStatus{
	models.PostPending: {
		ActionApprove: models.PostPublished,
		ActionReject:  models.PostRejected,
		ActionFlag:    models.PostFlagged,
	},
	models.PostPublished: {
		ActionApprove: models.PostPublished,
		ActionReject:  models.PostRejected,
		ActionFlag:    models.PostFlagged,
	},
	models.PostRejected: {
		ActionApprove: models.PostPublished,
		ActionReject:  models.PostRejected,
		ActionFlag:    models.PostFlagged,
	},
	models.PostFlagged: {
		ActionApprove: models.PostPublished,
		ActionReject:  models.PostRejected,
		ActionFlag:    models.PostFlagged,
	},
}

var commentTransitions = map[models.CommentStatus]map[Action]models.CommentStatus{
	models.CommentPublished: {
		ActionApprove: models.CommentPublished,
		ActionReject:  models.CommentRejected,
		ActionFlag:    models.CommentFlagged,
	},
	models.CommentRejected: {
		ActionApprove: models.CommentPublished,
		ActionReject:  models.CommentRejected,
		ActionFlag:    models.CommentFlagged,
	},
	models.CommentFlagged: {
		ActionApprove: models.CommentPublished,
		ActionReject:  models.CommentRejected,
		ActionFlag:    models.CommentFlagged,
	},
}

var validPostActions = []Action{ActionApprove, ActionReject, ActionFlag, ActionPin, ActionUnpin}
var validCommentActions = []Action{ActionApprove, ActionReject, ActionFlag}

// Banned content patterns for the automatic submission filter.
var bannedWords = []string{
	"spam", "scam", "scammer", "phishing", "malware",
	"porn", "porno", "nude", "nudes",
}

// ModerationService owns post and comment status transitions, the flagged
// queue, reader reports, and the automatic content filter applied to user
// submissions. Authorization is the HTTP layer's job; the service trusts
// its caller.
type ModerationService struct {
	db                *gorm.DB
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
	repeatedPattern   *regexp.Regexp
}

func NewModerationService(db *gorm.DB) *ModerationService {
	ms := &ModerationService{db: db}
	for _, word := range bannedWords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err == nil {
			ms.bannedWordRegexps = append(ms.bannedWordRegexps, re)
		}
	}
	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	ms.repeatedPattern = regexp.MustCompile(`(!{5,}|\?{5,}|\.{5,})`)
	return ms
}

// FilterContent checks a submission against the banned-content patterns.
// Returns false plus a machine-readable reason on a match.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_content"
		}
	}
	if ms.urlPattern.MatchString(text) && strings.Count(text, "http") > 3 {
		return false, "link_spam"
	}
	if ms.repeatedPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}

func invalidActionError(action string, valid []Action) error {
	names := make([]string, len(valid))
	for i, a := range valid {
		names[i] = string(a)
	}
	return fmt.Errorf("invalid action %q: must be one of %s", action, strings.Join(names, ", "))
}

// ModeratePost applies a moderation action to a post. approve/reject/flag
// move the status per the transition table and stamp moderated_at/by/reason;
// pin/unpin only toggle the pin flag.
func (ms *ModerationService) ModeratePost(postID uuid.UUID, action Action, reason string, moderatorID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := ms.db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	switch action {
	case ActionPin, ActionUnpin:
		post.IsPinned = action == ActionPin
		if err := ms.db.Model(&post).Update("is_pinned", post.IsPinned).Error; err != nil {
			return nil, err
		}
		return &post, nil
	case ActionApprove, ActionReject, ActionFlag:
		next, ok := postTransitions[post.Status][action]
		if !ok {
			return nil, fmt.Errorf("no transition from status %q via %q", post.Status, action)
		}
		if reason == "" {
			reason = defaultModerationReason
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":            next,
			"moderation_reason": reason,
			"moderated_at":      now,
			"moderated_by":      moderatorID,
		}
		if err := ms.db.Model(&post).Updates(updates).Error; err != nil {
			return nil, err
		}
		post.Status = next
		post.ModerationReason = &reason
		post.ModeratedAt = &now
		post.ModeratedBy = &moderatorID
		return &post, nil
	default:
		return nil, invalidActionError(string(action), validPostActions)
	}
}

// ModerateComment is the comment analogue of ModeratePost, without pinning.
func (ms *ModerationService) ModerateComment(commentID uuid.UUID, action Action, reason string, moderatorID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := ms.db.First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, ErrCommentNotFound
	}

	switch action {
	case ActionApprove, ActionReject, ActionFlag:
		next, ok := commentTransitions[comment.Status][action]
		if !ok {
			return nil, fmt.Errorf("no transition from status %q via %q", comment.Status, action)
		}
		if reason == "" {
			reason = defaultModerationReason
		}
		now := time.Now()
		updates := map[string]interface{}{
			"status":            next,
			"moderation_reason": reason,
			"moderated_at":      now,
			"moderated_by":      moderatorID,
		}
		if err := ms.db.Model(&comment).Updates(updates).Error; err != nil {
			return nil, err
		}
		comment.Status = next
		comment.ModerationReason = &reason
		comment.ModeratedAt = &now
		comment.ModeratedBy = &moderatorID
		return &comment, nil
	default:
		return nil, invalidActionError(string(action), validCommentActions)
	}
}

// ReportPost records a reader's report, bumps the post's report counter and
// auto-flags the post once the counter crosses the threshold.
func (ms *ModerationService) ReportPost(postID, userID uuid.UUID, reason string) error {
	var post models.Post
	if err := ms.db.First(&post, "id = ?", postID).Error; err != nil {
		return ErrPostNotFound
	}

	report := models.PostReport{ID: uuid.New(), PostID: postID, UserID: userID, Reason: reason}
	res := ms.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&report)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyReported
	}

	if err := ms.db.Model(&post).Update("reports", gorm.Expr("reports + 1")).Error; err != nil {
		return err
	}

	if post.Reports+1 >= ReportAutoFlagThreshold && post.Status == models.PostPublished {
		return ms.db.Model(&post).Update("status", models.PostFlagged).Error
	}
	return nil
}

// FlaggedContent returns the posts and comments awaiting moderator review.
func (ms *ModerationService) FlaggedContent() ([]models.Post, []models.Comment, error) {
	var posts []models.Post
	if err := ms.db.Where("status = ?", models.PostFlagged).Order("updated_at DESC").Find(&posts).Error; err != nil {
		return nil, nil, err
	}
	var comments []models.Comment
	if err := ms.db.Where("status = ?", models.CommentFlagged).Order("updated_at DESC").Find(&comments).Error; err != nil {
		return nil, nil, err
	}
	return posts, comments, nil
}

// Stats summarizes the moderation workload.
func (ms *ModerationService) Stats() (*dto.ModerationStatsResponse, error) {
	stats := &dto.ModerationStatsResponse{}
	counts := []struct {
		dest   *int64
		status models.PostStatus
	}{
		{&stats.PendingPosts, models.PostPending},
		{&stats.PublishedPosts, models.PostPublished},
		{&stats.RejectedPosts, models.PostRejected},
		{&stats.FlaggedPosts, models.PostFlagged},
	}
	for _, c := range counts {
		if err := ms.db.Model(&models.Post{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	if err := ms.db.Model(&models.Comment{}).Where("status = ?", models.CommentFlagged).Count(&stats.FlaggedComments).Error; err != nil {
		return nil, err
	}
	if err := ms.db.Model(&models.PostReport{}).Count(&stats.OpenReports).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
