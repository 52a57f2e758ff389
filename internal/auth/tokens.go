package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Shobhit-Singhh/harmony/internal/apperrors"
	"github.com/Shobhit-Singhh/harmony/internal/config"
)

// refreshTokenType is the explicit discriminator carried by refresh tokens.
// Access tokens carry no type claim.
const refreshTokenType = "refresh"

type Claims struct {
	Email     string `json:"email"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens. The two kinds
// use separate secrets; verification failures of any internal cause
// (signature, expiry, malformed payload) collapse into one Unauthorized
// error so callers cannot be used as a token oracle.
type TokenService struct {
	config *config.AuthConfig
	log    *zap.Logger
}

func NewTokenService(config *config.AuthConfig, log *zap.Logger) *TokenService {
	return &TokenService{
		config: config,
		log:    log,
	}
}

func (s *TokenService) signingMethod() jwt.SigningMethod {
	if method := jwt.GetSigningMethod(s.config.SigningAlgorithm); method != nil {
		return method
	}
	return jwt.SigningMethodHS256
}

func (s *TokenService) IssueAccess(user *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

func (s *TokenService) IssueRefresh(user *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:     user.Email,
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.RefreshTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(s.signingMethod(), claims)
	return token.SignedString([]byte(s.config.RefreshTokenSecret))
}

func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.config.AccessTokenSecret)
}

func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := s.verify(tokenString, s.config.RefreshTokenSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		s.log.Debug("token rejected: missing refresh discriminator")
		return nil, apperrors.E(apperrors.Unauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *TokenService) verify(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{s.signingMethod().Alg()}),
	)
	if err != nil || !token.Valid {
		// The specific cause stays in the logs only.
		s.log.Debug("token verification failed", zap.Error(err))
		return nil, apperrors.E(apperrors.Unauthorized, "invalid or expired token")
	}
	return claims, nil
}

// IsStale reports whether the token predates the account's last password
// change. Stale tokens are structurally valid and unexpired but must be
// rejected; this is the revocation mechanism for stateless tokens. A token
// without an issued-at claim is always stale once a password change exists.
func (s *TokenService) IsStale(claims *Claims, passwordChangedAt *time.Time) bool {
	if passwordChangedAt == nil {
		return false
	}
	if claims.IssuedAt == nil {
		return true
	}
	return claims.IssuedAt.Time.Before(*passwordChangedAt)
}
