package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultFileFormatter_FormatResult(t *testing.T) {
	tests := []struct {
		name        string
		result      FileResult
		want        string
		description string
	}{
		{
			name:        "fixed_file",
			result:      FileResult{Path: "app/models.py", Status: StatusFixed, Changes: 3},
			want:        "📝 Fixed app/models.py (3 changes)",
			description: "should show change count for fixed files",
		},
		{
			name:        "fixed_single_change",
			result:      FileResult{Path: "a.py", Status: StatusFixed, Changes: 1},
			want:        "📝 Fixed a.py (1 change)",
			description: "should use singular for one change",
		},
		{
			name:        "would_fix",
			result:      FileResult{Path: "a.py", Status: StatusWouldFix, Changes: 2},
			want:        "🔍 Would fix a.py (2 changes)",
			description: "should describe dry run results",
		},
		{
			name:        "unchanged_file",
			result:      FileResult{Path: "stable.py", Status: StatusUnchanged},
			want:        "👍 Unchanged stable.py",
			description: "should show unchanged symbol for clean files",
		},
		{
			name:        "restored_file",
			result:      FileResult{Path: "a.py", Status: StatusRestored},
			want:        "♻️  Restored a.py",
			description: "should show restore symbol",
		},
		{
			name:        "removed_backup",
			result:      FileResult{Path: "a.py.backup", Status: StatusRemoved},
			want:        "🗑️  Removed a.py.backup",
			description: "should show removal symbol for deleted backups",
		},
		{
			name:        "failed_with_error",
			result:      FileResult{Path: "bad.py", Status: StatusFailed, Err: errors.New("boom")},
			want:        "❌ Failed bad.py: boom",
			description: "should include the error message",
		},
		{
			name:        "failed_without_error",
			result:      FileResult{Path: "bad.py", Status: StatusFailed},
			want:        "❌ Failed bad.py",
			description: "should still mark the failure",
		},
	}

	f := NewDefaultFileFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatResult(tt.result), tt.description)
		})
	}
}

func TestDefaultFileFormatter_FormatError(t *testing.T) {
	f := NewDefaultFileFormatter()
	assert.Equal(t, "", f.FormatError(nil))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.New("boom")))
}
