package services

import (
	"testing"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVotePost(t *testing.T) {
	t.Run("first vote creates and increments", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewVoteService(db)
		author := createUser(t, db, "author", models.RoleUser)
		voter := createUser(t, db, "voter", models.RoleUser)
		post := createPost(t, db, author.ID, models.PostPublished)

		require.NoError(t, svc.VotePost(voter.ID, post.ID, models.Upvote))

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 1, fresh.Upvotes)
		assert.Equal(t, 0, fresh.Downvotes)
	})

	t.Run("same vote again toggles off", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewVoteService(db)
		author := createUser(t, db, "author", models.RoleUser)
		voter := createUser(t, db, "voter", models.RoleUser)
		post := createPost(t, db, author.ID, models.PostPublished)

		require.NoError(t, svc.VotePost(voter.ID, post.ID, models.Upvote))
		require.NoError(t, svc.VotePost(voter.ID, post.ID, models.Upvote))

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 0, fresh.Upvotes)

		var votes int64
		db.Model(&models.Vote{}).Count(&votes)
		assert.EqualValues(t, 0, votes)
	})

	t.Run("opposite vote flips both counters", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewVoteService(db)
		author := createUser(t, db, "author", models.RoleUser)
		voter := createUser(t, db, "voter", models.RoleUser)
		post := createPost(t, db, author.ID, models.PostPublished)

		require.NoError(t, svc.VotePost(voter.ID, post.ID, models.Upvote))
		require.NoError(t, svc.VotePost(voter.ID, post.ID, models.Downvote))

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 0, fresh.Upvotes)
		assert.Equal(t, 1, fresh.Downvotes)

		var votes int64
		db.Model(&models.Vote{}).Count(&votes)
		assert.EqualValues(t, 1, votes)
	})

	t.Run("two voters count independently", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewVoteService(db)
		author := createUser(t, db, "author", models.RoleUser)
		a := createUser(t, db, "alice", models.RoleUser)
		b := createUser(t, db, "bob", models.RoleUser)
		post := createPost(t, db, author.ID, models.PostPublished)

		require.NoError(t, svc.VotePost(a.ID, post.ID, models.Upvote))
		require.NoError(t, svc.VotePost(b.ID, post.ID, models.Upvote))

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 2, fresh.Upvotes)
	})

	t.Run("invalid vote type", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewVoteService(db)
		author := createUser(t, db, "author", models.RoleUser)
		post := createPost(t, db, author.ID, models.PostPublished)

		err := svc.VotePost(author.ID, post.ID, models.VoteType("sideways"))
		assert.ErrorIs(t, err, ErrInvalidVoteType)
	})

	t.Run("missing post", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewVoteService(db)
		voter := createUser(t, db, "voter", models.RoleUser)

		err := svc.VotePost(voter.ID, uuid.New(), models.Upvote)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestVoteComment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVoteService(db)
	author := createUser(t, db, "author", models.RoleUser)
	voter := createUser(t, db, "voter", models.RoleUser)
	post := createPost(t, db, author.ID, models.PostPublished)

	comment := models.Comment{PostID: post.ID, UserID: author.ID, Content: "hello", Status: models.CommentPublished}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, svc.VoteComment(voter.ID, comment.ID, models.Downvote))

	var fresh models.Comment
	require.NoError(t, db.First(&fresh, "id = ?", comment.ID).Error)
	assert.Equal(t, 1, fresh.Downvotes)

	// Flip to upvote.
	require.NoError(t, svc.VoteComment(voter.ID, comment.ID, models.Upvote))
	require.NoError(t, db.First(&fresh, "id = ?", comment.ID).Error)
	assert.Equal(t, 1, fresh.Upvotes)
	assert.Equal(t, 0, fresh.Downvotes)

	t.Run("missing comment", func(t *testing.T) {
		err := svc.VoteComment(voter.ID, uuid.New(), models.Upvote)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
