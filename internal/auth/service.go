package auth

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
	"github.com/Shobhit-Singhh/harmony/internal/config"
)

// Service orchestrates credential verification, lockout bookkeeping and
// token issuance against the user-record store.
type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
	tokens     *TokenService
	lockout    LockoutPolicy
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository, tokens *TokenService) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
		tokens:     tokens,
		lockout:    NewLockoutPolicy(config.LockoutThreshold, config.LockoutDuration),
	}
}

// PublicUser is the account view returned to callers. It never carries the
// password hash or the security counters.
type PublicUser struct {
	ID                  uuid.UUID     `json:"id"`
	Username            string        `json:"username,omitempty"`
	Email               string        `json:"email"`
	PhoneNumber         *string       `json:"phone_number,omitempty"`
	Role                access.Role   `json:"role"`
	Status              access.Status `json:"status"`
	IsVerified          bool          `json:"is_verified"`
	OnboardingCompleted bool          `json:"onboarding_completed"`
	CreatedAt           time.Time     `json:"created_at"`
	LastLoginAt         *time.Time    `json:"last_login_at,omitempty"`
}

func NewPublicUser(user *User) PublicUser {
	return PublicUser{
		ID:                  user.ID,
		Username:            user.Username,
		Email:               user.Email,
		PhoneNumber:         user.PhoneNumber,
		Role:                user.Role,
		Status:              user.Status,
		IsVerified:          user.IsVerified,
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           user.CreatedAt,
		LastLoginAt:         user.LastLoginAt,
	}
}

type LoginResult struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	User         PublicUser `json:"user"`
}

// invalidCredentials is the single outcome for every rejected login except
// an active lockout. Unknown email, wrong password and disabled account are
// indistinguishable to the caller.
func invalidCredentials() error {
	return apperrors.E(apperrors.Unauthorized, "invalid email or password")
}

// Login verifies credentials and issues an access/refresh token pair.
// Ordering matters: the lockout gate runs before password verification so a
// locked account neither leaks password correctness nor keeps counting
// attempts, and the status gate runs before verification so disabled
// accounts cannot be brute-force probed.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	user, err := s.repository.GetUserByEmail(email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			_, _ = HashPassword("dummy") // Prevent timing attacks
			return nil, invalidCredentials()
		}
		return nil, err
	}

	now := time.Now().UTC()
	if s.lockout.IsLocked(user, now) {
		return nil, apperrors.E(apperrors.Unauthorized, "account is locked, try again later")
	}

	if user.Status != access.StatusActive {
		s.log.Info("login rejected for non-active account",
			zap.String("user_id", user.ID.String()),
			zap.String("status", string(user.Status)))
		return nil, invalidCredentials()
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		attempts, err := s.repository.RecordFailedLogin(user.ID)
		if err != nil {
			s.log.Error("failed to record login attempt", zap.Error(err))
		} else if s.lockout.ShouldLock(attempts) {
			if err := s.repository.LockAccount(user.ID, s.lockout.LockUntil(now)); err != nil {
				s.log.Error("failed to lock account", zap.Error(err))
			}
		}
		return nil, invalidCredentials()
	}

	if err := s.repository.RecordSuccessfulLogin(user.ID); err != nil {
		s.log.Error("failed to record successful login", zap.Error(err))
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to sign access token", err)
	}
	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to sign refresh token", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         NewPublicUser(user),
	}, nil
}

// Refresh exchanges a valid, non-stale refresh token for a new access
// token. Refresh tokens are not rotated.
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", apperrors.E(apperrors.ValidationFailed, "malformed subject in token")
	}

	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	if s.tokens.IsStale(claims, user.PasswordChangedAt) {
		s.log.Info("refresh token revoked by password change",
			zap.String("user_id", user.ID.String()))
		return "", apperrors.E(apperrors.Unauthorized, "invalid or expired token")
	}

	return s.tokens.IssueAccess(user)
}

// ChangePassword stores a new credential and advances password_changed_at,
// which invalidates every token issued before the change. Non-admin
// requesters must prove the current password first.
func (s *Service) ChangePassword(userID uuid.UUID, oldPassword, newPassword string, requester access.Requester) (*PublicUser, error) {
	if !access.CanWrite(requester, userID) {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized to change this password")
	}

	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if !access.IsAdmin(requester) && !CheckPasswordHash(oldPassword, user.PasswordHash) {
		return nil, apperrors.E(apperrors.ValidationFailed, "current password does not match")
	}

	if err := ValidatePassword(newPassword); err != nil {
		return nil, err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ValidationFailed, "could not hash password", err)
	}

	if err := s.repository.UpdatePassword(user.ID, hash); err != nil {
		return nil, err
	}

	public := NewPublicUser(user)
	return &public, nil
}

// Authenticate resolves an access token to its account. Any failure, from
// a bad signature to a deleted account to a stale token, is the same
// Unauthorized outcome.
func (s *Service) Authenticate(accessToken string) (*User, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		s.log.Debug("access token carried malformed subject", zap.Error(err))
		return nil, apperrors.E(apperrors.Unauthorized, "invalid or expired token")
	}

	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.NotFound) {
			return nil, apperrors.E(apperrors.Unauthorized, "invalid or expired token")
		}
		return nil, err
	}

	if s.tokens.IsStale(claims, user.PasswordChangedAt) {
		return nil, apperrors.E(apperrors.Unauthorized, "invalid or expired token")
	}

	return user, nil
}

// ValidatePassword enforces the minimum credential rule shared by
// registration and password change.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.E(apperrors.ValidationFailed, "password must be at least 8 characters")
	}
	return nil
}
