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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
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

// DefaultFileNames are looked up in the working directory, in order, when no
// config file is given explicitly
var DefaultFileNames = []string{".isofix.yaml", ".isofix.yml", ".isofix.hcl", ".isofix.json"}

// 📚 Config represents the complete configuration
type Config struct {
	Root         string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Pattern      string   `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"`
	Exclude      []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Encoding     string   `json:"encoding,omitempty" yaml:"encoding,omitempty" hcl:"encoding,optional"`
	BackupSuffix string   `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty" hcl:"backup_suffix,optional"`
	DisableRules []string `json:"disable_rules,omitempty" yaml:"disable_rules,omitempty" hcl:"disable_rules,optional"`
	VerifyScript *bool    `json:"verify_script,omitempty" yaml:"verify_script,omitempty" hcl:"verify_script,optional"`
	Strict       bool     `json:"strict,omitempty" yaml:"strict,omitempty" hcl:"strict,optional"`

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "*.py"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "utf-8"
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = ".backup"
	}
	if cfg.VerifyScript == nil {
		enabled := true
		cfg.VerifyScript = &enabled
	}
}

// Location returns the file the config was loaded from, or "" for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// WantVerifyScript reports whether the verification script should be emitted
func (cfg *Config) WantVerifyScript() bool {
	return cfg.VerifyScript == nil || *cfg.VerifyScript
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

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

	// a relative root in a file is relative to that file
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	cfg.location = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔎 LoadDefault loads the first default config file found in dir, or the
// defaults when there is none
func LoadDefault(ctx context.Context, dir string) (*Config, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(ctx, path)
		} else if !os.IsNotExist(err) {
			return nil, errors.Errorf("checking config file: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Pattern == "" {
		return errors.Errorf("pattern is required")
	}
	if !doublestar.ValidatePattern(cfg.Pattern) {
		return errors.Errorf("pattern %q is not a valid glob", cfg.Pattern)
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude pattern %q is not a valid glob", pattern)
		}
	}
	if cfg.Encoding == "" {
		return errors.Errorf("encoding is required")
	}
	if !strings.HasPrefix(cfg.BackupSuffix, ".") || len(cfg.BackupSuffix) < 2 {
		return errors.Errorf("backup_suffix %q must start with a dot", cfg.BackupSuffix)
	}
	if strings.ContainsAny(cfg.BackupSuffix, `/\`) {
		return errors.Errorf("backup_suffix %q must not contain a path separator", cfg.BackupSuffix)
	}

	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [%s] encoding=%s backup=%s", cfg.Root, cfg.Pattern, cfg.Encoding, cfg.BackupSuffix)
}
