package profile

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
	"github.com/Shobhit-Singhh/harmony/internal/auth"
)

// Repository is the profile slice of the user-record store. The auth
// package's mock repository implements it for tests.
type Repository interface {
	GetProfile(id uuid.UUID) (*auth.UserProfile, error)
	SaveProfile(profile *auth.UserProfile) error
	// DeleteProfile hard-deletes the row or, for soft deletes, anonymizes
	// the PII fields in place and forces the profile fully hidden.
	DeleteProfile(id uuid.UUID, hard bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProfile(id uuid.UUID) (*auth.UserProfile, error) {
	var profile auth.UserProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.NotFound, "profile not found", err)
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "store query failed", err)
	}
	return &profile, nil
}

func (r *repository) SaveProfile(profile *auth.UserProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.Conflict, "conflicting profile update", err)
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to save profile", err)
	}
	return nil
}

func (r *repository) DeleteProfile(id uuid.UUID, hard bool) error {
	if hard {
		if err := r.db.Delete(&auth.UserProfile{}, "id = ?", id).Error; err != nil {
			return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete profile", err)
		}
		return nil
	}

	profile, err := r.GetProfile(id)
	if err != nil {
		return err
	}
	profile.FullName = nil
	profile.DateOfBirth = nil
	profile.Gender = nil
	profile.Location = nil
	profile.Timezone = nil
	profile.CrisisContact = nil
	profile.PrivacySettings = map[string]bool{"show_profile": false}
	return r.SaveProfile(profile)
}
