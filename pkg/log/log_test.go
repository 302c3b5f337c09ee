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

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/isofix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func line(symbol, path, state, detail string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %-*s %-*s %s", symbol, nameWidth, path, statusWidth, state, detail))
}

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_fixed_result",
			op: func(t *testing.T, logger *Logger) {
				logger.LogResult(context.Background(), status.FileResult{
					Path:    "app/models.py",
					Status:  status.StatusFixed,
					Changes: 2,
				})
			},
			wantLogs: []string{
				line("✓", "app/models.py", "fixed", "2 changes"),
			},
		},
		{
			name: "unchanged_is_quiet",
			op: func(t *testing.T, logger *Logger) {
				logger.LogResult(context.Background(), status.FileResult{Path: "a.py", Status: status.StatusUnchanged})
				logger.Info("done")
			},
			wantLogs: []string{
				"ℹ️  done",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("fixing timestamps in ./app")
			},
			wantLogs: []string{
				"isofix • fixing timestamps in ./app",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
		{
			name: "log_diff",
			op: func(t *testing.T, logger *Logger) {
				logger.LogDiff("-   1 │ old\n+   1 │ new\n")
			},
			wantLogs: []string{
				"-   1 │ old",
				"+   1 │ new",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback, "a missing logger should fall back to a discarding one")
	assert.NotPanics(t, func() { fallback.Info("ignored") })
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name      string
		result    status.FileResult
		unchanged bool
		want      string
	}{
		{
			name:   "fixed_single_change",
			result: status.FileResult{Path: "a.py", Status: status.StatusFixed, Changes: 1},
			want:   line("✓", "a.py", "fixed", "1 change"),
		},
		{
			name:   "fixed_with_import",
			result: status.FileResult{Path: "a.py", Status: status.StatusFixed, Changes: 3, ImportAdded: true},
			want:   line("✓", "a.py", "fixed", "3 changes, import added"),
		},
		{
			name:   "would_fix",
			result: status.FileResult{Path: "a.py", Status: status.StatusWouldFix, Changes: 2},
			want:   line("⟳", "a.py", "would fix", "2 changes"),
		},
		{
			name:   "failed",
			result: status.FileResult{Path: "bad.py", Status: status.StatusFailed, Err: errors.New("reading file: boom")},
			want:   line("✗", "bad.py", "failed", "reading file: boom"),
		},
		{
			name:   "error_overrides_status",
			result: status.FileResult{Path: "bad.py", Status: status.StatusFixed, Changes: 2, Err: errors.New("disk full")},
			want:   line("✗", "bad.py", "failed", "disk full"),
		},
		{
			name:   "restored",
			result: status.FileResult{Path: "a.py", Status: status.StatusRestored},
			want:   line("✓", "a.py", "restored", ""),
		},
		{
			name:   "removed_backup",
			result: status.FileResult{Path: "a.py.backup", Status: status.StatusRemoved},
			want:   line("-", "a.py.backup", "removed", ""),
		},
		{
			name:      "unchanged_when_enabled",
			result:    status.FileResult{Path: "a.py", Status: status.StatusUnchanged},
			unchanged: true,
			want:      line("•", "a.py", "unchanged", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t))).WithUnchanged(tt.unchanged)

			logger.LogResult(context.Background(), tt.result)

			output := strings.TrimSpace(buf.String())
			assert.Equal(t, tt.want, output, "formatted output should match")
		})
	}
}
