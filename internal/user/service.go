// Package user implements account lifecycle management: registration,
// reads and updates under the access rules, status transitions and
// account deletion.
package user

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
	"github.com/Shobhit-Singhh/harmony/internal/auth"
)

type Service struct {
	log        *zap.Logger
	repository auth.Repository
}

func NewService(log *zap.Logger, repo auth.Repository) *Service {
	return &Service{
		log:        log,
		repository: repo,
	}
}

type CreateInput struct {
	Email       string
	Password    string
	Username    string
	PhoneNumber *string
	Role        access.Role
}

type UpdateInput struct {
	Username            *string
	PhoneNumber         *string
	Role                *access.Role
	OnboardingCompleted *bool
}

// Register creates an account together with its empty profile in a single
// store transaction.
func (s *Service) Register(in CreateInput) (*auth.PublicUser, error) {
	if err := validateCreateInput(&in); err != nil {
		return nil, err
	}

	email := strings.ToLower(in.Email)
	if _, err := s.repository.GetUserByEmail(email); err == nil {
		return nil, apperrors.E(apperrors.Conflict, "email already registered")
	} else if !apperrors.IsKind(err, apperrors.NotFound) {
		return nil, err
	}

	if in.PhoneNumber != nil {
		if _, err := s.repository.GetUserByPhone(*in.PhoneNumber); err == nil {
			return nil, apperrors.E(apperrors.Conflict, "phone number already registered")
		} else if !apperrors.IsKind(err, apperrors.NotFound) {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ValidationFailed, "could not hash password", err)
	}

	newUser := &auth.User{
		Email:        email,
		Username:     in.Username,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       access.StatusActive,
	}
	profile := &auth.UserProfile{}

	if err := s.repository.CreateUser(newUser, profile); err != nil {
		return nil, err
	}

	s.log.Info("registered user", zap.String("user_id", newUser.ID.String()))

	public := auth.NewPublicUser(newUser)
	return &public, nil
}

func (s *Service) Get(userID uuid.UUID, requester access.Requester) (*auth.PublicUser, error) {
	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if !access.CanRead(requester, userID) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to view this user")
	}

	public := auth.NewPublicUser(user)
	return &public, nil
}

// Update mutates account fields. Role changes are admin-only regardless of
// ownership.
func (s *Service) Update(userID uuid.UUID, in UpdateInput, requester access.Requester) (*auth.PublicUser, error) {
	if !access.CanWrite(requester, userID) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to update this user")
	}

	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if !access.CanChangeRole(requester) {
			return nil, apperrors.E(apperrors.PermissionDenied, "only admins can change user roles")
		}
		if !in.Role.Valid() {
			return nil, apperrors.E(apperrors.ValidationFailed, "invalid role")
		}
		user.Role = *in.Role
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.OnboardingCompleted != nil {
		user.OnboardingCompleted = *in.OnboardingCompleted
	}

	if err := s.repository.UpdateUser(user); err != nil {
		return nil, err
	}

	public := auth.NewPublicUser(user)
	return &public, nil
}

// UpdateStatus transitions the account status. Admin-only, idempotent:
// re-applying the current status is a no-op write, not an error.
func (s *Service) UpdateStatus(userID uuid.UUID, status access.Status, requester access.Requester) (*auth.PublicUser, error) {
	if !access.CanChangeStatus(requester) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to change user status")
	}

	if !status.Valid() {
		return nil, apperrors.E(apperrors.ValidationFailed, "invalid status")
	}

	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.repository.UpdateStatus(userID, status); err != nil {
		return nil, err
	}

	user.Status = status
	public := auth.NewPublicUser(user)
	return &public, nil
}

// Delete removes an account. Soft delete flips status to deactivated; hard
// delete removes the row and cascades to the profile.
func (s *Service) Delete(userID uuid.UUID, hard bool, requester access.Requester) error {
	if !access.CanDelete(requester, userID) {
		return apperrors.E(apperrors.PermissionDenied, "not authorized to delete this user")
	}

	if _, err := s.repository.GetUserByID(userID); err != nil {
		return err
	}

	if err := s.repository.DeleteUser(userID, hard); err != nil {
		return err
	}

	s.log.Info("deleted user",
		zap.String("user_id", userID.String()),
		zap.Bool("hard", hard))
	return nil
}

func validateCreateInput(in *CreateInput) error {
	if in.Email == "" {
		return apperrors.E(apperrors.ValidationFailed, "email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperrors.E(apperrors.ValidationFailed, "invalid email format")
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return err
	}
	if in.Role == "" {
		in.Role = access.RoleStandard
	}
	if !in.Role.Valid() {
		return apperrors.E(apperrors.ValidationFailed, "invalid role")
	}
	return nil
}
