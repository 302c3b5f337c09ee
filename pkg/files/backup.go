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

package files

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultBackupSuffix is appended to a file's full name to form its backup
const DefaultBackupSuffix = ".backup"

// ErrNoBackup is returned when restoring a file that has no backup
var ErrNoBackup = errors.Base("backup file does not exist")

// 💾 BackupRecord pairs a source file with its backup copy
type BackupRecord struct {
	Original string
	Backup   string
	Size     int64
}

// 🗄️ BackupManager creates, restores and removes sibling backup files
type BackupManager struct {
	suffix string
}

// NewBackupManager creates a backup manager; an empty suffix means DefaultBackupSuffix
func NewBackupManager(suffix string) *BackupManager {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return &BackupManager{suffix: suffix}
}

// Suffix returns the backup suffix in use
func (m *BackupManager) Suffix() string {
	return m.suffix
}

// PathFor returns the backup path for a source file
func (m *BackupManager) PathFor(path string) string {
	return path + m.suffix
}

// IsBackup reports whether a file name is a backup written by this manager
func (m *BackupManager) IsBackup(name string) bool {
	return strings.HasSuffix(name, m.suffix) && len(name) > len(m.suffix)
}

// OriginalFor strips the backup suffix from a backup path
func (m *BackupManager) OriginalFor(backup string) string {
	return strings.TrimSuffix(backup, m.suffix)
}

// Backup copies path byte for byte to its backup, replacing an older backup.
func (m *BackupManager) Backup(ctx context.Context, path string) (BackupRecord, error) {
	backupPath := m.PathFor(path)

	n, err := copyFile(path, backupPath)
	if err != nil {
		return BackupRecord{}, errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", path).Str("backup", backupPath).Msg("backup written")

	return BackupRecord{Original: path, Backup: backupPath, Size: n}, nil
}

// Restore copies the backup over the original and removes the backup.
func (m *BackupManager) Restore(ctx context.Context, path string) error {
	backupPath := m.PathFor(path)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("%w: %s", ErrNoBackup, backupPath)
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if _, err := copyFile(backupPath, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("file", path).Msg("restored from backup")
	return nil
}

// Remove deletes the backup of path. A missing backup is not an error.
func (m *BackupManager) Remove(ctx context.Context, path string) error {
	if err := os.Remove(m.PathFor(path)); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing backup: %w", err)
	}
	return nil
}

// List finds every backup under root, sorted by path. skip is consulted for
// directories and may be nil.
func (m *BackupManager) List(ctx context.Context, root string, skip func(rel string) bool) ([]BackupRecord, error) {
	var records []BackupRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != root && skip != nil {
				if rel, relErr := filepath.Rel(root, path); relErr == nil && skip(filepath.ToSlash(rel)) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !d.Type().IsRegular() || !m.IsBackup(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		records = append(records, BackupRecord{
			Original: m.OriginalFor(path),
			Backup:   path,
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("listing backups: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Backup < records[j].Backup })
	return records, nil
}

// copyFile copies src to dst, keeping src's permissions, and returns the byte count
func copyFile(src, dst string) (int64, error) {
	source, err := os.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return 0, errors.Errorf("reading source info: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.Errorf("creating destination file: %w", err)
	}

	n, err := io.Copy(destination, source)
	if err != nil {
		destination.Close()
		return 0, errors.Errorf("copying file: %w", err)
	}
	if err := destination.Close(); err != nil {
		return 0, errors.Errorf("closing destination file: %w", err)
	}

	return n, nil
}
