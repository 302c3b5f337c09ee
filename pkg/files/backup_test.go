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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBackupManager_Naming(t *testing.T) {
	m := NewBackupManager("")
	assert.Equal(t, ".backup", m.Suffix())
	assert.Equal(t, "a/b.py.backup", m.PathFor("a/b.py"))
	assert.Equal(t, "a/b.py", m.OriginalFor("a/b.py.backup"))
	assert.True(t, m.IsBackup("b.py.backup"))
	assert.False(t, m.IsBackup("b.py"))
	assert.False(t, m.IsBackup(".backup"), "a bare suffix is not a backup of anything")

	custom := NewBackupManager(".orig")
	assert.Equal(t, "b.py.orig", custom.PathFor("b.py"))
}

func TestBackupManager_Backup(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "handlers.py")
	original := "ts = now.isoformat() + \"Z\"\n"
	writeFile(t, path, original)

	m := NewBackupManager("")
	rec, err := m.Backup(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, path, rec.Original)
	assert.Equal(t, path+".backup", rec.Backup)
	assert.Equal(t, int64(len(original)), rec.Size)
	assert.Equal(t, original, readFile(t, rec.Backup), "backup should hold the original bytes")

	// a later backup replaces the earlier one
	writeFile(t, path, "changed\n")
	_, err = m.Backup(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "changed\n", readFile(t, rec.Backup), "backup should be overwritten")
}

func TestBackupManager_Backup_Missing(t *testing.T) {
	m := NewBackupManager("")
	_, err := m.Backup(testContext(t), filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating backup")
}

func TestBackupManager_Restore(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "models.py")
	writeFile(t, path, "original\n")

	m := NewBackupManager("")
	_, err := m.Backup(ctx, path)
	require.NoError(t, err)
	writeFile(t, path, "rewritten\n")

	require.NoError(t, m.Restore(ctx, path))
	assert.Equal(t, "original\n", readFile(t, path), "original content should be restored")
	assert.NoFileExists(t, m.PathFor(path), "backup should be removed after restore")

	err = m.Restore(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBackup)
}

func TestBackupManager_Remove(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "x.py")
	writeFile(t, path, "x\n")

	m := NewBackupManager("")
	_, err := m.Backup(ctx, path)
	require.NoError(t, err)

	require.NoError(t, m.Remove(ctx, path))
	assert.NoFileExists(t, m.PathFor(path))
	assert.FileExists(t, path, "original should be untouched")

	require.NoError(t, m.Remove(ctx, path), "removing a missing backup is fine")
}

func TestBackupManager_List(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	for _, p := range []string{
		"a.py", "a.py.backup",
		"pkg/b.py", "pkg/b.py.backup",
		"pkg/notes.txt.backup",
		".venv/lib.py.backup",
		".backup",
	} {
		writeFile(t, filepath.Join(dir, p), "x")
	}

	m := NewBackupManager("")
	skip := func(rel string) bool { return strings.HasPrefix(rel, ".venv") }

	records, err := m.List(ctx, dir, skip)
	require.NoError(t, err)

	var got []string
	for _, r := range records {
		rel, err := filepath.Rel(dir, r.Backup)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
		assert.Equal(t, m.OriginalFor(r.Backup), r.Original)
		assert.Equal(t, int64(1), r.Size)
	}
	assert.Equal(t, []string{"a.py.backup", "pkg/b.py.backup", "pkg/notes.txt.backup"}, got)

	_, err = m.List(ctx, filepath.Join(dir, "missing"), nil)
	require.Error(t, err)
}
