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
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one removed or added line of a line diff
type DiffLine struct {
	Op   diffmatchpatch.Operation
	Line int // 1-based line in the old text for deletions, new text for insertions
	Text string
}

// 🔍 LineDiff computes the removed and added lines between two texts
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				out = append(out, DiffLine{Op: d.Type, Line: oldLine, Text: line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				out = append(out, DiffLine{Op: d.Type, Line: newLine, Text: line})
				newLine++
			}
		}
	}
	return out
}

// FormatDiff renders a line diff as "-  12 │ text" / "+  12 │ text" rows
func FormatDiff(diff []DiffLine) string {
	var b strings.Builder
	for _, d := range diff {
		sign := "+"
		if d.Op == diffmatchpatch.DiffDelete {
			sign = "-"
		}
		fmt.Fprintf(&b, "%s%4d │ %s\n", sign, d.Line, d.Text)
	}
	return b.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
