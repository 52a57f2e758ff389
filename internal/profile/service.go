// Package profile manages user profiles: reads through the privacy filter,
// validated updates, privacy-flag changes and PII-safe deletion.
package profile

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
	"github.com/Shobhit-Singhh/harmony/internal/auth"
)

// allowedPrivacyKeys is the closed set of privacy flags. Unknown keys are
// rejected, never silently stored.
var allowedPrivacyKeys = map[string]struct{}{
	"show_profile":  {},
	"show_email":    {},
	"show_phone":    {},
	"show_location": {},
	"show_birthday": {},
}

const maxCrisisContactLen = 255

type Service struct {
	log        *zap.Logger
	repository Repository
}

func NewService(log *zap.Logger, repo Repository) *Service {
	return &Service{
		log:        log,
		repository: repo,
	}
}

type UpdateInput struct {
	FullName    *string
	DateOfBirth *time.Time
	Gender      *string
	Location    *string
	Timezone    *string

	PillarWeights map[string]float64
	Medications   []string
	Conditions    []string
	CrisisContact *string

	PreferredLanguage *string
}

// Get returns the profile as seen by the requester, redacted by the
// privacy filter for non-owner, non-admin viewers.
func (s *Service) Get(userID uuid.UUID, requester access.Requester) (*View, error) {
	profile, err := s.repository.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return Filter(profile, requester), nil
}

// Populate fills an empty profile. Registration creates the row; this
// rejects overwriting a profile that already has content.
func (s *Service) Populate(userID uuid.UUID, in UpdateInput, requester access.Requester) (*View, error) {
	if !access.CanWrite(requester, userID) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to create profile for this user")
	}

	profile, err := s.repository.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile.FullName != nil {
		return nil, apperrors.E(apperrors.Conflict, "profile already exists")
	}

	return s.apply(profile, in, requester)
}

func (s *Service) Update(userID uuid.UUID, in UpdateInput, requester access.Requester) (*View, error) {
	if !access.CanWrite(requester, userID) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to update this profile")
	}

	profile, err := s.repository.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	return s.apply(profile, in, requester)
}

func (s *Service) apply(profile *auth.UserProfile, in UpdateInput, requester access.Requester) (*View, error) {
	if err := validateUpdateInput(in); err != nil {
		return nil, err
	}

	if in.FullName != nil {
		profile.FullName = in.FullName
	}
	if in.DateOfBirth != nil {
		profile.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		profile.Gender = in.Gender
	}
	if in.Location != nil {
		profile.Location = in.Location
	}
	if in.Timezone != nil {
		profile.Timezone = in.Timezone
	}
	if in.PillarWeights != nil {
		profile.PillarWeights = in.PillarWeights
	}
	if in.Medications != nil {
		profile.Medications = in.Medications
	}
	if in.Conditions != nil {
		profile.Conditions = in.Conditions
	}
	if in.CrisisContact != nil {
		profile.CrisisContact = in.CrisisContact
	}
	if in.PreferredLanguage != nil {
		profile.PreferredLanguage = in.PreferredLanguage
	}

	if err := s.repository.SaveProfile(profile); err != nil {
		return nil, err
	}

	return Filter(profile, requester), nil
}

// UpdatePrivacy replaces the privacy-flag mapping. Validation is
// all-or-nothing: one unknown key rejects the whole update and nothing is
// written.
func (s *Service) UpdatePrivacy(userID uuid.UUID, settings map[string]bool, requester access.Requester) (*View, error) {
	if !access.CanWrite(requester, userID) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to update privacy settings")
	}

	if err := ValidatePrivacySettings(settings); err != nil {
		return nil, err
	}

	profile, err := s.repository.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.PrivacySettings = settings
	if err := s.repository.SaveProfile(profile); err != nil {
		return nil, err
	}

	return Filter(profile, requester), nil
}

// Delete removes a profile. Soft delete anonymizes PII and forces the
// profile hidden; hard delete removes the row.
func (s *Service) Delete(userID uuid.UUID, hard bool, requester access.Requester) error {
	if !access.CanDelete(requester, userID) {
		return apperrors.E(apperrors.PermissionDenied, "not authorized to delete this profile")
	}

	if _, err := s.repository.GetProfile(userID); err != nil {
		return err
	}

	if err := s.repository.DeleteProfile(userID, hard); err != nil {
		return err
	}

	s.log.Info("deleted profile",
		zap.String("user_id", userID.String()),
		zap.Bool("hard", hard))
	return nil
}

// ValidatePrivacySettings checks every key against the allowed set before
// anything is stored.
func ValidatePrivacySettings(settings map[string]bool) error {
	if settings == nil {
		return apperrors.E(apperrors.ValidationFailed, "no privacy settings provided")
	}
	for key := range settings {
		if _, ok := allowedPrivacyKeys[key]; !ok {
			return apperrors.E(apperrors.ValidationFailed, "invalid privacy setting: "+key)
		}
	}
	return nil
}

func validateUpdateInput(in UpdateInput) error {
	if in.DateOfBirth != nil && in.DateOfBirth.After(time.Now()) {
		return apperrors.E(apperrors.ValidationFailed, "date of birth cannot be in the future")
	}
	if in.CrisisContact != nil && len(*in.CrisisContact) > maxCrisisContactLen {
		return apperrors.E(apperrors.ValidationFailed, "crisis contact too long")
	}
	return nil
}
