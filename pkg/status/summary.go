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

package status

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus is the final state of one processed file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // nothing to rewrite
	StatusFixed                // backed up and rewritten
	StatusWouldFix             // dry run found something to rewrite
	StatusRestored             // original brought back from its backup
	StatusRemoved              // backup deleted
	StatusFailed               // read, backup or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusFixed:
		return "fixed"
	case StatusWouldFix:
		return "would fix"
	case StatusRestored:
		return "restored"
	case StatusRemoved:
		return "removed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Acted reports whether the file was (or would be) changed on disk
func (s FileStatus) Acted() bool {
	switch s {
	case StatusFixed, StatusWouldFix, StatusRestored, StatusRemoved:
		return true
	}
	return false
}

// Mode names the kind of run a Summary describes
type Mode string

const (
	ModeFix     Mode = "fix"
	ModeCheck   Mode = "check"
	ModeRestore Mode = "restore"
	ModeClean   Mode = "clean"
)

// 📄 FileResult is the outcome of processing one file
type FileResult struct {
	Path        string
	Status      FileStatus
	Changes     int            // rule matches rewritten in this file
	PerRule     map[string]int // matches by rule name
	ImportAdded bool
	Backup      string // backup path, when one was written
	Diff        string // rendered line diff, dry runs only
	Err         error
}

// FileError is a per-file failure kept in the summary
type FileError struct {
	Path string
	Err  error
}

// Error implements error
func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e FileError) Unwrap() error {
	return e.Err
}

// Category is one kind of problem the run knows how to fix
type Category struct {
	Rule        string
	Description string
}

// 📈 Summary accumulates FileResults for a whole run
type Summary struct {
	Mode           Mode
	FilesScanned   int
	FilesFixed     int
	FilesUnchanged int
	TotalChanges   int
	Errors         []FileError
	Results        []FileResult
	PerRule        map[string]int
	Categories     []Category
	VerifyScript   string // path of the emitted verification script, if any
}

// 🏭 NewSummary creates an empty summary for the given run mode
func NewSummary(mode Mode, categories []Category) *Summary {
	return &Summary{
		Mode:       mode,
		PerRule:    make(map[string]int),
		Categories: slices.Clone(categories),
	}
}

// Record adds the outcome of one file. Each file must be recorded once.
func (s *Summary) Record(r FileResult) {
	if s.PerRule == nil {
		s.PerRule = make(map[string]int)
	}

	s.FilesScanned++
	s.Results = append(s.Results, r)

	switch {
	case r.Status == StatusFailed || r.Err != nil:
		err := r.Err
		if err == nil {
			err = errors.New("failed")
		}
		s.Errors = append(s.Errors, FileError{Path: r.Path, Err: err})
	case r.Status.Acted():
		s.FilesFixed++
		s.TotalChanges += r.Changes
		for rule, n := range r.PerRule {
			s.PerRule[rule] += n
		}
	default:
		s.FilesUnchanged++
	}
}

// HasErrors reports whether any file failed
func (s *Summary) HasErrors() bool {
	return len(s.Errors) > 0
}

// Changed returns the results for files that were (or would be) changed
func (s *Summary) Changed() []FileResult {
	var out []FileResult
	for _, r := range s.Results {
		if r.Err == nil && r.Status.Acted() {
			out = append(out, r)
		}
	}
	return out
}

func (s *Summary) actedLabel() string {
	switch s.Mode {
	case ModeCheck:
		return "Files that would change"
	case ModeRestore:
		return "Files restored"
	case ModeClean:
		return "Backups removed"
	default:
		return "Files fixed"
	}
}

// 🖨️ Render writes the summary report to w
func (s *Summary) Render(w io.Writer) error {
	fmt.Fprint(w, pterm.DefaultSection.Sprint("Summary"))

	totals := pterm.TableData{
		{"Files scanned", strconv.Itoa(s.FilesScanned)},
		{s.actedLabel(), strconv.Itoa(s.FilesFixed)},
	}
	if s.Mode == ModeFix || s.Mode == ModeCheck {
		totals = append(totals, []string{"Total changes", strconv.Itoa(s.TotalChanges)})
	}
	totals = append(totals, []string{"Errors", strconv.Itoa(len(s.Errors))})

	table, err := pterm.DefaultTable.WithData(totals).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	if len(s.PerRule) > 0 {
		rows := pterm.TableData{{"Rule", "Matches"}}
		for _, rule := range s.ruleOrder() {
			rows = append(rows, []string{rule, strconv.Itoa(s.PerRule[rule])})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, table)
	}

	if len(s.Errors) > 0 {
		fmt.Fprintln(w)
		for _, e := range s.Errors {
			fmt.Fprint(w, pterm.Error.Sprintln(e.Error()))
		}
	}

	if len(s.Categories) > 0 && (s.Mode == ModeFix || s.Mode == ModeCheck) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Fixes applied by this tool:")
		for _, c := range s.Categories {
			fmt.Fprintf(w, "  • %s\n", c.Description)
		}
	}

	if s.VerifyScript != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Run %s to verify the timestamp format.\n", s.VerifyScript)
	}

	return nil
}

// ruleOrder lists rules in category order first, then any others sorted by name
func (s *Summary) ruleOrder() []string {
	var order []string
	seen := make(map[string]bool)
	for _, c := range s.Categories {
		if _, ok := s.PerRule[c.Rule]; ok {
			order = append(order, c.Rule)
			seen[c.Rule] = true
		}
	}
	for _, rule := range slices.Sorted(maps.Keys(s.PerRule)) {
		if !seen[rule] {
			order = append(order, rule)
		}
	}
	return order
}
