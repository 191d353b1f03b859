package dto

import "gorm.io/datatypes"

type UpdateProfileRequest struct {
	Bio          *string        `json:"bio,omitempty"`
	AvatarURL    *string        `json:"avatar_url,omitempty"`
	ProfileLinks datatypes.JSON `json:"profile_links,omitempty"`
}

type ContributorApplicationRequest struct {
	ContributorType string `json:"contributor_type"`
}

type AdminUpdateUserRequest struct {
	Role            *string `json:"role,omitempty"`
	ContributorType *string `json:"contributor_type,omitempty"`
	TrustOverride   *int    `json:"trust_override,omitempty"`
	Verified        *bool   `json:"verified,omitempty"`
}
