package config

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// EnvPrefix is the prefix of every environment variable read by FromEnv
const EnvPrefix = "IMPORTFIX"

type envConfig struct {
	RootDir string   `envconfig:"ROOT_DIR"`
	Subdirs []string `envconfig:"SUBDIRS"`
	OnError string   `envconfig:"ON_ERROR"`
}

// 🌱 FromEnv reads IMPORTFIX_ROOT_DIR, IMPORTFIX_SUBDIRS (comma separated)
// and IMPORTFIX_ON_ERROR. When envFile is set it is loaded first; variables
// already present in the environment win over the file.
func FromEnv(ctx context.Context, envFile string) (*Config, error) {
	if envFile != "" {
		zerolog.Ctx(ctx).Debug().Str("path", envFile).Msg("loading env file")
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Errorf("loading env file: %w", err)
		}
	}

	var env envConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}

	return &Config{
		RootDir: env.RootDir,
		Subdirs: env.Subdirs,
		OnError: OnError(env.OnError),
	}, nil
}
