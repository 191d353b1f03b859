package services

import (
	"testing"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrustScore(t *testing.T) {
	t.Run("new user gets the base score", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "newbie", models.RoleUser)

		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, score)
	})

	t.Run("posts add five each up to twenty five", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "writer", models.RoleUser)

		for i := 0; i < 3; i++ {
			createPost(t, db, user.ID, models.PostPublished)
		}
		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 15+15, score)

		// Past the cap more posts change nothing.
		for i := 0; i < 10; i++ {
			createPost(t, db, user.ID, models.PostPublished)
		}
		score, err = svc.Score(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 15+25, score)
	})

	t.Run("comments add two each up to twenty", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "talker", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		for i := 0; i < 4; i++ {
			c := models.Comment{PostID: post.ID, UserID: user.ID, Content: "nice", Status: models.CommentPublished}
			require.NoError(t, db.Create(&c).Error)
		}

		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		// 15 base + 5 for the post + 8 for the comments.
		assert.Equal(t, 28, score)
	})

	t.Run("upvotes received add one per three up to forty", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "popular", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		require.NoError(t, db.Model(post).Update("upvotes", 30).Error)

		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 15+5+10, score)
	})

	t.Run("score is clamped to one hundred", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "legend", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)
		require.NoError(t, db.Model(post).Update("upvotes", 100000).Error)

		score, err := svc.Score(user.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, score, 100)
	})

	t.Run("admin override replaces the computed score", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "overridden", models.RoleUser)

		override := 90
		require.NoError(t, db.Model(user).Update("trust_override", override).Error)

		var fresh models.User
		require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)

		score, err := svc.ScoreFor(&fresh)
		require.NoError(t, err)
		assert.Equal(t, 90, score)
	})

	t.Run("override is clamped too", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)
		user := createUser(t, db, "outofrange", models.RoleUser)

		over := 250
		user.TrustOverride = &over
		score, err := svc.ScoreFor(user)
		require.NoError(t, err)
		assert.Equal(t, 100, score)

		under := -10
		user.TrustOverride = &under
		score, err = svc.ScoreFor(user)
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})

	t.Run("unknown user", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewTrustService(db)

		_, err := svc.Score(uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCanPublishDirectly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrustService(db)

	t.Run("below threshold", func(t *testing.T) {
		user := createUser(t, db, "low", models.RoleUser)
		ok, err := svc.CanPublishDirectly(user)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("at threshold", func(t *testing.T) {
		user := createUser(t, db, "high", models.RoleUser)
		override := DirectPublishThreshold
		user.TrustOverride = &override
		ok, err := svc.CanPublishDirectly(user)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
