// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🚦 OnError selects what a run does when a file cannot be processed
type OnError string

const (
	OnErrorAbort    OnError = "abort"    // stop at the first failure
	OnErrorContinue OnError = "continue" // log the failure and move on
)

// ErrRootNotFound is returned when root_dir does not exist
var ErrRootNotFound = errors.Base("root directory not found")

// DefaultSubdirs are the page folders scanned when none are configured
var DefaultSubdirs = []string{
	"categories",
	"collections",
	"dashboard",
	"discounts",
	"orders",
	"products",
	"settings",
	"users",
}

// 📚 Config is the complete run configuration
type Config struct {
	RootDir string   `json:"root_dir" yaml:"root_dir" validate:"required"`
	Subdirs []string `json:"subdirs" yaml:"subdirs" validate:"required,min=1,dive,required,subdir"`
	OnError OnError  `json:"on_error" yaml:"on_error" validate:"required,oneof=abort continue"`
}

// 🏭 Default returns a config holding the default subdirectories and policy
func Default() *Config {
	return &Config{
		Subdirs: append([]string(nil), DefaultSubdirs...),
		OnError: OnErrorAbort,
	}
}

// Merge copies every non-zero field of other onto cfg
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.RootDir != "" {
		cfg.RootDir = other.RootDir
	}
	if len(other.Subdirs) > 0 {
		cfg.Subdirs = append([]string(nil), other.Subdirs...)
	}
	if other.OnError != "" {
		cfg.OnError = other.OnError
	}
}

// 🔍 Finalize validates cfg and resolves root_dir to a cleaned absolute path
// that must exist as a directory.
func (cfg *Config) Finalize(ctx context.Context) error {
	cfg.OnError = OnError(strings.ToLower(strings.TrimSpace(string(cfg.OnError))))

	if err := cfg.Validate(); err != nil {
		return err
	}

	abs, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return errors.Errorf("resolving root_dir: %w", err)
	}
	cfg.RootDir = filepath.Clean(abs)

	fi, err := os.Stat(cfg.RootDir)
	if os.IsNotExist(err) {
		return errors.Errorf("%w: %s", ErrRootNotFound, cfg.RootDir)
	} else if err != nil {
		return errors.Errorf("checking root_dir: %w", err)
	}
	if !fi.IsDir() {
		return errors.Errorf("root_dir is not a directory: %s", cfg.RootDir)
	}

	zerolog.Ctx(ctx).Debug().
		Str("root_dir", cfg.RootDir).
		Strs("subdirs", cfg.Subdirs).
		Str("on_error", string(cfg.OnError)).
		Msg("configuration resolved")

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [%s] on_error=%s", cfg.RootDir, strings.Join(cfg.Subdirs, ","), cfg.OnError)
}

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 LoadFile reads a config file. Fields the file leaves out stay zero, so
// the result is meant to be merged over Default.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🧩 Sources lists every place a run configuration can come from, lowest
// precedence first after the defaults.
type Sources struct {
	ConfigFile string  // optional .yaml, .yml, .json or .hcl file
	EnvFile    string  // optional dotenv file loaded before reading the environment
	Flags      *Config // values given on the command line
}

// 🎯 Resolve builds the final config: defaults, then file, then environment,
// then flags.
func Resolve(ctx context.Context, src Sources) (*Config, error) {
	cfg := Default()

	if src.ConfigFile != "" {
		fileCfg, err := LoadFile(ctx, src.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	envCfg, err := FromEnv(ctx, src.EnvFile)
	if err != nil {
		return nil, err
	}
	cfg.Merge(envCfg)

	cfg.Merge(src.Flags)

	if err := cfg.Finalize(ctx); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
