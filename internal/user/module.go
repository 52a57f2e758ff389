package user

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Shobhit-Singhh/harmony/internal/auth"
)

// NewModule returns the user module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(log *zap.Logger, repo auth.Repository) *Service {
					return NewService(log, repo)
				},
			),
		),
	)
}
