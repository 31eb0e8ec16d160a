package opts

import (
	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	EnvFile    string
	Debug      bool
	NoColor    bool

	// values given on the command line, empty when unset
	RootDir string
	Subdirs []string
	OnError string
}

// Sources returns the config sources described by the flags
func (o *RootOpts) Sources() config.Sources {
	return config.Sources{
		ConfigFile: o.ConfigFile,
		EnvFile:    o.EnvFile,
		Flags: &config.Config{
			RootDir: o.RootDir,
			Subdirs: o.Subdirs,
			OnError: config.OnError(o.OnError),
		},
	}
}

// LogLevel is the level of the diagnostic logger
func (o *RootOpts) LogLevel() zerolog.Level {
	if o.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
