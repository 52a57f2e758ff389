package server

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Shobhit-Singhh/harmony/internal/auth"
	"github.com/Shobhit-Singhh/harmony/internal/config"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

func LoadConfig() (*config.AppConfig, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = EnvDevelopment
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("./config/server")

	v.SetDefault("auth.signing_algorithm", "HS256")
	v.SetDefault("auth.access_token_duration", time.Hour)
	v.SetDefault("auth.refresh_token_duration", 3*24*time.Hour)
	v.SetDefault("auth.lockout_threshold", auth.DefaultLockoutThreshold)
	v.SetDefault("auth.lockout_duration", auth.DefaultLockoutDuration)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config config.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Load environment-specific configurations
	if envSettings := v.GetStringMap(fmt.Sprintf("grpc.%s", env)); len(envSettings) > 0 {
		if err := v.UnmarshalKey(fmt.Sprintf("grpc.%s", env), &config.GRPC); err != nil {
			return nil, fmt.Errorf("error unmarshaling env config: %w", err)
		}
	}

	return &config, nil
}
