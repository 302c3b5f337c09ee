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

package text

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
)

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   []DiffLine
	}{
		{
			name:   "single_line_changed",
			before: "a\nb\nc\n",
			after:  "a\nB\nc\n",
			want: []DiffLine{
				{Op: diffmatchpatch.DiffDelete, Line: 2, Text: "b"},
				{Op: diffmatchpatch.DiffInsert, Line: 2, Text: "B"},
			},
		},
		{
			name:   "line_inserted",
			before: "import os\n",
			after:  "from datetime import timezone\nimport os\n",
			want: []DiffLine{
				{Op: diffmatchpatch.DiffInsert, Line: 1, Text: "from datetime import timezone"},
			},
		},
		{
			name:   "identical",
			before: "same\n",
			after:  "same\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineDiff(tt.before, tt.after))
		})
	}
}

func TestFormatDiff(t *testing.T) {
	got := FormatDiff(LineDiff("a\nb\nc\n", "a\nB\nc\n"))
	assert.Equal(t, "-   2 │ b\n+   2 │ B\n", got)
	assert.Empty(t, FormatDiff(nil))
}
