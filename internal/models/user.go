package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role values, ordered by privilege.
const (
	RoleUser        = "user"
	RoleContributor = "contributor"
	RoleAdmin       = "admin"
	RoleSuperadmin  = "superadmin"
)

// ContributorType values. Set only while Role == contributor.
const (
	ContributorSurgeon    = "surgeon"
	ContributorPatient    = "patient"
	ContributorInfluencer = "influencer"
	ContributorBlogger    = "blogger"
)

var ValidContributorTypes = []string{
	ContributorSurgeon, ContributorPatient, ContributorInfluencer, ContributorBlogger,
}

// User is an account on the platform. The trust score is derived from activity
// on read (see services.TrustService); TrustOverride, when set by an admin,
// replaces the computed value.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username        string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email           *string        `gorm:"size:255" json:"email,omitempty"`
	Password        string         `gorm:"not null" json:"-"`
	Role            string         `gorm:"size:20;default:'user';index" json:"role"`
	ContributorType *string        `gorm:"size:20" json:"contributor_type,omitempty"`
	TrustOverride   *int           `json:"trust_override,omitempty"`
	Verified        bool           `gorm:"default:false" json:"verified"`
	Bio             *string        `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL       *string        `gorm:"size:255" json:"avatar_url,omitempty"`
	ProfileLinks    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"profile_links"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds a moderation-capable role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}
