package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shobhit-Singhh/harmony/internal/config"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			// Provide repository
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			// Provide token service
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger) *TokenService {
					return NewTokenService(&config.Auth, log)
				},
			),
			// Provide service
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository, tokens *TokenService) *Service {
					return NewService(&config.Auth, log, repo, tokens)
				},
			),
			// Provide middleware
			fx.Annotate(
				func(svc *Service) *Middleware {
					return NewMiddleware(svc)
				},
			),
		),
	)
}
