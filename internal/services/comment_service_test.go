package services

import (
	"testing"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(db, NewModerationService(db))
}

func TestCreateComment(t *testing.T) {
	t.Run("creates and bumps the post counter", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		comment, err := svc.Create(post.ID, user.ID, "So glad you shared this", nil)
		require.NoError(t, err)
		assert.Equal(t, models.CommentPublished, comment.Status)
		assert.Nil(t, comment.ParentID)

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 1, fresh.CommentCount)
	})

	t.Run("reply to a reply lands on the root", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		root, err := svc.Create(post.ID, user.ID, "root", nil)
		require.NoError(t, err)
		reply, err := svc.Create(post.ID, user.ID, "reply", &root.ID)
		require.NoError(t, err)
		deep, err := svc.Create(post.ID, user.ID, "deep", &reply.ID)
		require.NoError(t, err)

		require.NotNil(t, deep.ParentID)
		assert.Equal(t, root.ID, *deep.ParentID)
	})

	t.Run("parent from another post is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		postA := createPost(t, db, user.ID, models.PostPublished)
		postB := createPost(t, db, user.ID, models.PostPublished)

		parent, err := svc.Create(postA.ID, user.ID, "on A", nil)
		require.NoError(t, err)

		_, err = svc.Create(postB.ID, user.ID, "on B", &parent.ID)
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("banned content is created flagged", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		comment, err := svc.Create(post.ID, user.ID, "this is pure spam honestly", nil)
		require.NoError(t, err)
		assert.Equal(t, models.CommentFlagged, comment.Status)
		require.NotNil(t, comment.ModerationReason)
		assert.Equal(t, "inappropriate_content", *comment.ModerationReason)
	})

	t.Run("missing post", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)

		_, err := svc.Create(uuid.New(), user.ID, "hello", nil)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("empty content", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		_, err := svc.Create(post.ID, user.ID, "   ", nil)
		assert.Error(t, err)
	})
}

func TestListForPost(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	user := createUser(t, db, "reader", models.RoleUser)
	post := createPost(t, db, user.ID, models.PostPublished)

	root1, err := svc.Create(post.ID, user.ID, "first root", nil)
	require.NoError(t, err)
	root2, err := svc.Create(post.ID, user.ID, "second root", nil)
	require.NoError(t, err)
	_, err = svc.Create(post.ID, user.ID, "a reply", &root1.ID)
	require.NoError(t, err)

	// Rejected comments disappear from the listing.
	rejected, err := svc.Create(post.ID, user.ID, "gone soon", nil)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", rejected.ID).
		Update("status", models.CommentRejected).Error)

	roots, err := svc.ListForPost(post.ID)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, root1.ID, roots[0].ID)
	assert.Equal(t, root2.ID, roots[1].ID)
	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "a reply", roots[0].Replies[0].Content)
	assert.Empty(t, roots[1].Replies)
}

func TestDeleteComment(t *testing.T) {
	t.Run("owner deletes and counter decrements", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		comment, err := svc.Create(post.ID, user.ID, "oops", nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(comment.ID, user.ID, models.RoleUser))

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 0, fresh.CommentCount)
	})

	t.Run("counter never goes negative", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		user := createUser(t, db, "reader", models.RoleUser)
		post := createPost(t, db, user.ID, models.PostPublished)

		comment, err := svc.Create(post.ID, user.ID, "only one", nil)
		require.NoError(t, err)

		// Simulate drift: the counter is already at zero.
		require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
			Update("comment_count", 0).Error)

		require.NoError(t, svc.Delete(comment.ID, user.ID, models.RoleUser))

		var fresh models.Post
		require.NoError(t, db.First(&fresh, "id = ?", post.ID).Error)
		assert.Equal(t, 0, fresh.CommentCount)
	})

	t.Run("stranger cannot delete, admin can", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newCommentService(db)
		owner := createUser(t, db, "owner", models.RoleUser)
		stranger := createUser(t, db, "stranger", models.RoleUser)
		admin := createUser(t, db, "admin", models.RoleAdmin)
		post := createPost(t, db, owner.ID, models.PostPublished)

		comment, err := svc.Create(post.ID, owner.ID, "mine", nil)
		require.NoError(t, err)

		err = svc.Delete(comment.ID, stranger.ID, models.RoleUser)
		assert.ErrorIs(t, err, ErrNotCommentOwner)

		require.NoError(t, svc.Delete(comment.ID, admin.ID, models.RoleAdmin))
	})
}
