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

// Package scan finds candidate source files under a root directory.
package scan

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrPathNotFound is returned when the scan root is missing or not a directory
var ErrPathNotFound = errors.Base("path not found")

// DefaultExcludes are directories that never hold files worth rewriting
var DefaultExcludes = []string{
	"**/.git",
	"**/.venv",
	"**/venv",
	"**/__pycache__",
	"**/node_modules",
}

// 🔎 Scanner walks a directory tree and yields matching files
type Scanner struct {
	// Pattern is matched against the base name when it contains no "/",
	// otherwise against the slash separated path relative to the root
	Pattern string

	// Exclude patterns are matched against relative paths; a matching
	// directory is not descended into
	Exclude []string

	// Skip reports names that must never be yielded, such as backups
	Skip func(name string) bool
}

// Validate checks that every pattern is well formed
func (s *Scanner) Validate() error {
	if !doublestar.ValidatePattern(s.Pattern) {
		return errors.Errorf("invalid pattern %q", s.Pattern)
	}
	for _, pattern := range s.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// Scan checks root and returns a lazy sequence of matching file paths.
//
// The sequence walks the tree as it is consumed; ranging over it a second time
// walks again. Entries that cannot be read while walking are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, root string) (iter.Seq[string], error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)

	return func(yield func(string) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if s.Excluded(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if s.Skip != nil && s.Skip(d.Name()) {
				return nil
			}
			if !s.matches(rel) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			logger.Error().Err(err).Str("root", root).Msg("walking directory")
		}
	}, nil
}

// CheckRoot fails with ErrPathNotFound unless root is an existing directory
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Errorf("%w: %v", ErrPathNotFound, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrPathNotFound, root)
	}
	return nil
}

func (s *Scanner) matches(rel string) bool {
	pattern := s.Pattern
	target := rel
	if !strings.Contains(pattern, "/") {
		target = rel[strings.LastIndex(rel, "/")+1:]
	}
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}

// Excluded reports whether a slash separated relative path matches an exclude pattern
func (s *Scanner) Excluded(rel string) bool {
	for _, pattern := range s.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
