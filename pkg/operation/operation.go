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

package operation

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/walteh/isofix/pkg/config"
	"github.com/walteh/isofix/pkg/files"
	"github.com/walteh/isofix/pkg/scan"
	"github.com/walteh/isofix/pkg/status"
	"github.com/walteh/isofix/pkg/text"
	"github.com/walteh/isofix/pkg/verify"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the batch operations over a source tree
type Operator interface {
	// Fix rewrites matching files in place, backing each one up first
	Fix(ctx context.Context) (*status.Summary, error)
	// Check reports which files Fix would change without writing anything
	Check(ctx context.Context) (*status.Summary, error)
	// Restore copies every backup over its original and removes the backup
	Restore(ctx context.Context) (*status.Summary, error)
	// Clean removes every backup
	Clean(ctx context.Context) (*status.Summary, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Root is the directory to process
	Root string
	// Scanner finds candidate files under Root
	Scanner *scan.Scanner
	// Fixer rewrites file content
	Fixer *text.Fixer
	// Codec reads and writes files in the configured encoding
	Codec *files.Codec
	// Backups writes and restores backup siblings
	Backups *files.BackupManager
	// VerifyScript emits the verification script after a fix run
	VerifyScript bool
	// ShowDiff attaches a line diff to each result of a check run
	ShowDiff bool
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	if opts.Scanner == nil {
		return nil, errors.Errorf("scanner is required")
	}
	if opts.Fixer == nil {
		return nil, errors.Errorf("fixer is required")
	}
	if opts.Codec == nil {
		return nil, errors.Errorf("codec is required")
	}
	if opts.Backups == nil {
		return nil, errors.Errorf("backup manager is required")
	}
	if err := opts.Scanner.Validate(); err != nil {
		return nil, errors.Errorf("validating scanner: %w", err)
	}
	return &operator{opts: opts}, nil
}

// 🧩 OptionsFromConfig builds operator options from a loaded configuration
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	fixer, err := text.NewDefaultFixer(cfg.DisableRules...)
	if err != nil {
		return Options{}, errors.Errorf("creating fixer: %w", err)
	}

	codec, err := files.NewCodec(cfg.Encoding)
	if err != nil {
		return Options{}, errors.Errorf("creating codec: %w", err)
	}

	backups := files.NewBackupManager(cfg.BackupSuffix)

	scanner := &scan.Scanner{
		Pattern: cfg.Pattern,
		Exclude: append(slices.Clone(scan.DefaultExcludes), cfg.Exclude...),
		Skip: func(name string) bool {
			return name == verify.ScriptName || backups.IsBackup(name)
		},
	}

	return Options{
		Root:         filepath.Clean(cfg.Root),
		Scanner:      scanner,
		Fixer:        fixer,
		Codec:        codec,
		Backups:      backups,
		VerifyScript: cfg.WantVerifyScript(),
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	opts Options
}

// categories lists what the configured rules fix, in application order
func (o *operator) categories() []status.Category {
	rules := o.opts.Fixer.Rules()
	out := make([]status.Category, 0, len(rules))
	for _, r := range rules {
		out = append(out, status.Category{Rule: r.Name, Description: r.Category})
	}
	return out
}

// display returns path relative to the root for output
func (o *operator) display(path string) string {
	rel, err := filepath.Rel(o.opts.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
