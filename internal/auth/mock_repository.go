package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
)

// mockRepository is the in-memory store used by the package tests and by
// the profile/user service tests. It mirrors the transactional guarantees
// of the gorm implementation with a single mutex.
type mockRepository struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*User
	profiles map[uuid.UUID]*UserProfile
}

func NewMockRepository() Repository {
	return &mockRepository{
		users:    make(map[uuid.UUID]*User),
		profiles: make(map[uuid.UUID]*UserProfile),
	}
}

func (r *mockRepository) CreateUser(user *User, profile *UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.E(apperrors.Conflict, "user already exists")
		}
		if u.PhoneNumber != nil && user.PhoneNumber != nil && *u.PhoneNumber == *user.PhoneNumber {
			return apperrors.E(apperrors.Conflict, "user already exists")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored

	profile.ID = user.ID
	profile.LastUpdatedAt = now
	storedProfile := *profile
	r.profiles[user.ID] = &storedProfile

	return nil
}

func (r *mockRepository) GetUserByID(id uuid.UUID) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "user not found")
	}
	clone := *user
	return &clone, nil
}

func (r *mockRepository) GetUserByEmail(email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.E(apperrors.NotFound, "user not found")
}

func (r *mockRepository) GetUserByPhone(phone string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.PhoneNumber != nil && *u.PhoneNumber == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.E(apperrors.NotFound, "user not found")
}

func (r *mockRepository) UpdateUser(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	user.UpdatedAt = time.Now().UTC()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *mockRepository) RecordFailedLogin(id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return 0, apperrors.E(apperrors.NotFound, "user not found")
	}
	user.FailedLoginAttempts++
	return user.FailedLoginAttempts, nil
}

func (r *mockRepository) LockAccount(id uuid.UUID, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	user.LockoutUntil = &until
	return nil
}

func (r *mockRepository) RecordSuccessfulLogin(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	now := time.Now().UTC()
	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil
	user.LastLoginAt = &now
	return nil
}

func (r *mockRepository) UpdatePassword(id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	now := time.Now().UTC()
	user.PasswordHash = passwordHash
	user.PasswordChangedAt = &now
	return nil
}

func (r *mockRepository) UpdateStatus(id uuid.UUID, status access.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	user.Status = status
	return nil
}

func (r *mockRepository) DeleteUser(id uuid.UUID, hard bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	if hard {
		delete(r.users, id)
		delete(r.profiles, id)
		return nil
	}
	user.Status = access.StatusDeactivated
	return nil
}

// Profile accessors shared with the profile package's repository interface.

func (r *mockRepository) GetProfile(id uuid.UUID) (*UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "profile not found")
	}
	clone := *profile
	return &clone, nil
}

func (r *mockRepository) SaveProfile(profile *UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.ID]; !ok {
		return apperrors.E(apperrors.NotFound, "profile not found")
	}
	profile.LastUpdatedAt = time.Now().UTC()
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *mockRepository) DeleteProfile(id uuid.UUID, hard bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "profile not found")
	}
	if hard {
		delete(r.profiles, id)
		return nil
	}
	profile.FullName = nil
	profile.DateOfBirth = nil
	profile.Gender = nil
	profile.Location = nil
	profile.Timezone = nil
	profile.CrisisContact = nil
	profile.PrivacySettings = map[string]bool{"show_profile": false}
	profile.LastUpdatedAt = time.Now().UTC()
	return nil
}
