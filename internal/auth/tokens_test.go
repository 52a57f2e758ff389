package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
)

func TestTokenService_IssueAndVerifyAccess(t *testing.T) {
	svc := newTestTokenService(t)
	user := &User{ID: uuid.New(), Email: "a@x.com"}

	token, err := svc.IssueAccess(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Empty(t, claims.TokenType)
	require.NotNil(t, claims.IssuedAt)
}

func TestTokenService_IssueAndVerifyRefresh(t *testing.T) {
	svc := newTestTokenService(t)
	user := &User{ID: uuid.New(), Email: "a@x.com"}

	token, err := svc.IssueRefresh(user)
	require.NoError(t, err)

	claims, err := svc.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, refreshTokenType, claims.TokenType)
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(t)
	user := &User{ID: uuid.New(), Email: "a@x.com"}

	accessToken, err := svc.IssueAccess(user)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefresh(user)
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(accessToken)
	assert.Error(t, err)
	assert.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))

	_, err = svc.VerifyAccess(refreshToken)
	assert.Error(t, err)
	assert.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))
}

func TestTokenService_Verify(t *testing.T) {
	user := &User{ID: uuid.New(), Email: "a@x.com"}

	tests := []struct {
		name       string
		setupToken func(t *testing.T) string
	}{
		{
			name: "expired token",
			setupToken: func(t *testing.T) string {
				cfg := newTestConfig()
				cfg.AccessTokenDuration = -time.Hour
				token, err := NewTokenService(cfg, newTestLogger(t)).IssueAccess(user)
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "malformed token",
			setupToken: func(t *testing.T) string {
				return "invalid.token.here"
			},
		},
		{
			name: "token signed with a different key",
			setupToken: func(t *testing.T) string {
				cfg := newTestConfig()
				cfg.AccessTokenSecret = "some-other-secret"
				token, err := NewTokenService(cfg, newTestLogger(t)).IssueAccess(user)
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestTokenService(t)
			_, err := svc.VerifyAccess(tt.setupToken(t))

			// Every rejection collapses into the same unauthorized outcome
			require.Error(t, err)
			assert.Equal(t, apperrors.Unauthorized, apperrors.KindOf(err))
			assert.EqualError(t, err, "unauthorized: invalid or expired token")
		})
	}
}

func TestTokenService_IsStale(t *testing.T) {
	svc := newTestTokenService(t)
	changedAt := time.Now()
	before := changedAt.Add(-time.Minute)
	after := changedAt.Add(time.Minute)

	tests := []struct {
		name              string
		issuedAt          *jwt.NumericDate
		passwordChangedAt *time.Time
		want              bool
	}{
		{
			name:              "no password change on record",
			issuedAt:          jwt.NewNumericDate(before),
			passwordChangedAt: nil,
			want:              false,
		},
		{
			name:              "issued before password change",
			issuedAt:          jwt.NewNumericDate(before),
			passwordChangedAt: &changedAt,
			want:              true,
		},
		{
			name:              "issued after password change",
			issuedAt:          jwt.NewNumericDate(after),
			passwordChangedAt: &changedAt,
			want:              false,
		},
		{
			name:              "missing issued-at is always stale",
			issuedAt:          nil,
			passwordChangedAt: &changedAt,
			want:              true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{
				RegisteredClaims: jwt.RegisteredClaims{IssuedAt: tt.issuedAt},
			}
			assert.Equal(t, tt.want, svc.IsStale(claims, tt.passwordChangedAt))
		})
	}
}
