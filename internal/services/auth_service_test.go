package services

import (
	"testing"
	"time"

	"github.com/glowstories/glowstories-backend/internal/dto"
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, testConfig(), NewTrustService(db))
}

func TestRegister(t *testing.T) {
	t.Run("creates a user with a hashed password", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		resp, err := svc.Register(&dto.RegisterRequest{
			Username: "maria",
			Email:    "maria@example.com",
			Password: "secretpass1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "maria", resp.User.Username)
		assert.Equal(t, models.RoleUser, resp.User.Role)
		assert.Equal(t, 15, resp.User.TrustScore)

		var user models.User
		require.NoError(t, db.Where("username = ?", "maria").First(&user).Error)
		assert.NotEqual(t, "secretpass1", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secretpass1")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		_, err := svc.Register(&dto.RegisterRequest{Username: "taken", Password: "secretpass1"})
		require.NoError(t, err)

		_, err = svc.Register(&dto.RegisterRequest{Username: "taken", Password: "otherpass22"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("validation", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		_, err := svc.Register(&dto.RegisterRequest{Username: "ab", Password: "secretpass1"})
		assert.Error(t, err)

		_, err = svc.Register(&dto.RegisterRequest{Username: "goodname", Password: "short"})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{Username: "carol", Password: "secretpass1"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{Username: "carol", Password: "secretpass1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "carol", claims["username"])
		assert.Equal(t, models.RoleUser, claims["role"])
		assert.Equal(t, false, claims["is_admin"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Username: "carol", Password: "wrongpass11"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Username: "ghost", Password: "whatever123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		first, err := svc.Register(&dto.RegisterRequest{Username: "dave", Password: "secretpass1"})
		require.NoError(t, err)

		second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// The first token is spent.
		_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		resp, err := svc.Register(&dto.RegisterRequest{Username: "erin", Password: "secretpass1"})
		require.NoError(t, err)

		require.NoError(t, db.Model(&models.RefreshToken{}).
			Where("token_hash = ?", hashToken(resp.RefreshToken)).
			Update("expires_at", time.Now().Add(-time.Hour)).Error)

		_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "nonsense"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&dto.RegisterRequest{Username: "frank", Password: "secretpass1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
