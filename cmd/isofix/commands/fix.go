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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/isofix/cmd/isofix/opts"
	"github.com/walteh/isofix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrFilesFailed is returned in strict mode when any file could not be processed
	ErrFilesFailed = errors.Base("files failed")

	// ErrWouldChange is returned by check when any file would be rewritten
	ErrWouldChange = errors.Base("files would change")
)

// RunFix runs a fix over the configured root and renders the summary
func RunFix(cmd *cobra.Command, opts *opts.RootOpts) error {
	ctx := cmd.Context()

	op, err := opts.Operator(false)
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	opts.Console.Header("fixing timestamps in " + opts.Config.Root)

	summary, err := op.Fix(ctx)
	if summary != nil {
		if renderErr := summary.Render(opts.Out); renderErr != nil {
			return errors.Errorf("rendering summary: %w", renderErr)
		}
	}
	if err != nil {
		return errors.Errorf("fixing files: %w", err)
	}

	return strictCheck(opts, summary)
}

func NewFixCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [dir]",
		Short: "Rewrite timestamp serialization in place",
		Long: `Fix scans the root for matching files and rewrites known bad timestamp
serialization to the canonical ISO 8601 form.
It will:
1. Back up every file it changes next to the original
2. Add the timezone import where a rewrite needs it
3. Print a summary of what changed
4. Write verify_timestamp_format.py into the root`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunFix(cmd, opts)
		},
	}

	return cmd
}

// strictCheck turns per-file errors into a command failure in strict mode
func strictCheck(opts *opts.RootOpts, summary *status.Summary) error {
	if opts.Config.Strict && summary.HasErrors() {
		return errors.Errorf("%w: %d of %d", ErrFilesFailed, len(summary.Errors), summary.FilesScanned)
	}
	return nil
}
