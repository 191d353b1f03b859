package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the password-free view of a user. TrustScore carries the
// value derived on read.
type UserResponse struct {
	ID              uuid.UUID      `json:"id"`
	Username        string         `json:"username"`
	Email           *string        `json:"email,omitempty"`
	Role            string         `json:"role"`
	ContributorType *string        `json:"contributor_type,omitempty"`
	TrustScore      int            `json:"trust_score"`
	Verified        bool           `json:"verified"`
	Bio             *string        `json:"bio,omitempty"`
	AvatarURL       *string        `json:"avatar_url,omitempty"`
	ProfileLinks    datatypes.JSON `json:"profile_links,omitempty"`
}

type AuthResponse struct {
	AccessToken  string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
