package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
)

// Repository is the user-record store consumed by the identity core. The
// gorm implementation is the production store; tests use the in-memory mock.
type Repository interface {
	// CreateUser persists the account and its empty profile in one
	// transaction, so a registered account never exists without a profile.
	CreateUser(user *User, profile *UserProfile) error
	GetUserByID(id uuid.UUID) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByPhone(phone string) (*User, error)
	UpdateUser(user *User) error

	// RecordFailedLogin increments the failed-attempt counter under a row
	// lock and returns the post-increment count, so concurrent failures
	// cannot lose increments and the caller can apply the lockout
	// threshold exactly.
	RecordFailedLogin(id uuid.UUID) (int, error)
	LockAccount(id uuid.UUID, until time.Time) error
	// RecordSuccessfulLogin resets the counter, clears any lockout and
	// stamps last_login_at.
	RecordSuccessfulLogin(id uuid.UUID) error

	// UpdatePassword stores the new hash and advances password_changed_at,
	// which invalidates every previously issued token.
	UpdatePassword(id uuid.UUID, passwordHash string) error
	UpdateStatus(id uuid.UUID, status access.Status) error
	// DeleteUser soft-deletes by flipping status to deactivated, or hard
	// deletes the row (the profile goes with it via FK cascade).
	DeleteUser(id uuid.UUID, hard bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(user *User, profile *UserProfile) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.ID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.Conflict, "user already exists", err)
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to create user", err)
	}
	return nil
}

func (r *repository) GetUserByID(id uuid.UUID) (*User, error) {
	var user User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOrStoreErr(err, "user not found")
	}
	return &user, nil
}

func (r *repository) GetUserByEmail(email string) (*User, error) {
	var user User
	if err := r.db.First(&user, "lower(email) = lower(?)", email).Error; err != nil {
		return nil, notFoundOrStoreErr(err, "user not found")
	}
	return &user, nil
}

func (r *repository) GetUserByPhone(phone string) (*User, error) {
	var user User
	if err := r.db.First(&user, "phone_number = ?", phone).Error; err != nil {
		return nil, notFoundOrStoreErr(err, "user not found")
	}
	return &user, nil
}

func (r *repository) UpdateUser(user *User) error {
	if err := r.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.Conflict, "conflicting user update", err)
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to update user", err)
	}
	return nil
}

func (r *repository) RecordFailedLogin(id uuid.UUID) (int, error) {
	var count int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		count = user.FailedLoginAttempts + 1
		return tx.Model(&User{}).Where("id = ?", id).
			Update("failed_login_attempts", count).Error
	})
	if err != nil {
		return 0, notFoundOrStoreErr(err, "user not found")
	}
	return count, nil
}

func (r *repository) LockAccount(id uuid.UUID, until time.Time) error {
	err := r.db.Model(&User{}).Where("id = ?", id).
		Update("lockout_until", until).Error
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to lock account", err)
	}
	return nil
}

func (r *repository) RecordSuccessfulLogin(id uuid.UUID) error {
	err := r.db.Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"lockout_until":         nil,
		"last_login_at":         time.Now().UTC(),
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to record login", err)
	}
	return nil
}

func (r *repository) UpdatePassword(id uuid.UUID, passwordHash string) error {
	err := r.db.Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":       passwordHash,
		"password_changed_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to update password", err)
	}
	return nil
}

func (r *repository) UpdateStatus(id uuid.UUID, status access.Status) error {
	err := r.db.Model(&User{}).Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to update status", err)
	}
	return nil
}

func (r *repository) DeleteUser(id uuid.UUID, hard bool) error {
	if !hard {
		return r.UpdateStatus(id, access.StatusDeactivated)
	}
	if err := r.db.Delete(&User{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete user", err)
	}
	return nil
}

func notFoundOrStoreErr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.NotFound, msg, err)
	}
	return apperrors.Wrap(apperrors.StoreUnavailable, "store query failed", err)
}
