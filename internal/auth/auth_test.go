package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	assert.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		AccessTokenSecret:    "test-access-secret",
		RefreshTokenSecret:   "test-refresh-secret",
		SigningAlgorithm:     "HS256",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: time.Hour * 24,
		LockoutThreshold:     5,
		LockoutDuration:      time.Minute * 15,
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	return NewTokenService(newTestConfig(), newTestLogger(t))
}

func newTestService(t *testing.T) *Service {
	return newTestServiceWithRepo(t, NewMockRepository())
}

func newTestServiceWithRepo(t *testing.T, repo Repository) *Service {
	cfg := newTestConfig()
	log := newTestLogger(t)
	return NewService(cfg, log, repo, NewTokenService(cfg, log))
}

func createTestUser(t *testing.T, repo Repository, email, password string) *User {
	hash, err := HashPassword(password)
	require.NoError(t, err)

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Role:         access.RoleStandard,
		Status:       access.StatusActive,
	}
	require.NoError(t, repo.CreateUser(user, &UserProfile{}))
	return user
}

func newRequesterID() uuid.UUID {
	return uuid.New()
}
