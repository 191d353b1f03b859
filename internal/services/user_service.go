package services

import (
	"errors"

	"github.com/glowstories/glowstories-backend/internal/dto"
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSelfDelete         = errors.New("cannot delete your own account via admin endpoint")
	ErrSuperadminTarget   = errors.New("only a superadmin may delete a superadmin")
	ErrTrustTooLow        = errors.New("trust score too low to apply as contributor")
	ErrBadContributorType = errors.New("invalid contributor type")
	ErrBadRole            = errors.New("invalid role")
)

// UserService covers profiles, contributor applications and admin user
// management.
type UserService struct {
	db    *gorm.DB
	trust *TrustService
}

func NewUserService(db *gorm.DB, trust *TrustService) *UserService {
	return &UserService{db: db, trust: trust}
}

func (s *UserService) GetByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdateProfile applies the user's own profile edits.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.ProfileLinks != nil {
		updates["profile_links"] = req.ProfileLinks
	}
	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(userID)
}

// ApplyAsContributor promotes a user to contributor when their trust score
// clears the threshold. Verification stays with the admins.
func (s *UserService) ApplyAsContributor(userID uuid.UUID, contributorType string) (*models.User, error) {
	if !isValidContributorType(contributorType) {
		return nil, ErrBadContributorType
	}

	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.trust.CanApplyAsContributor(user)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrTrustTooLow
	}

	updates := map[string]interface{}{
		"role":             models.RoleContributor,
		"contributor_type": contributorType,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(userID)
}

// List pages through users for the admin panel.
func (s *UserService) List(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	s.db.Model(&models.User{}).Count(&total)
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

// AdminUpdate applies role, contributor type, trust override and verified
// changes. Role and contributor type are kept consistent: contributor_type
// is set iff the role is contributor.
func (s *UserService) AdminUpdate(userID uuid.UUID, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		if !isValidRole(*req.Role) {
			return nil, ErrBadRole
		}
		updates["role"] = *req.Role
		if *req.Role != models.RoleContributor {
			updates["contributor_type"] = nil
		}
	}
	if req.ContributorType != nil {
		if !isValidContributorType(*req.ContributorType) {
			return nil, ErrBadContributorType
		}
		role := user.Role
		if req.Role != nil {
			role = *req.Role
		}
		if role != models.RoleContributor {
			return nil, errors.New("contributor_type requires the contributor role")
		}
		updates["contributor_type"] = *req.ContributorType
	}
	if req.TrustOverride != nil {
		updates["trust_override"] = *req.TrustOverride
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(userID)
}

// AdminDelete removes a user. Self-deletion through this path is refused,
// and superadmin accounts can only be removed by another superadmin.
func (s *UserService) AdminDelete(targetID, actorID uuid.UUID, actorRole string) error {
	if targetID == actorID {
		return ErrSelfDelete
	}

	target, err := s.GetByID(targetID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleSuperadmin && actorRole != models.RoleSuperadmin {
		return ErrSuperadminTarget
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", targetID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(target).Error
	})
}

func isValidContributorType(t string) bool {
	for _, v := range models.ValidContributorTypes {
		if v == t {
			return true
		}
	}
	return false
}

func isValidRole(r string) bool {
	switch r {
	case models.RoleUser, models.RoleContributor, models.RoleAdmin, models.RoleSuperadmin:
		return true
	}
	return false
}
