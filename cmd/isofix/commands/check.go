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
	"gitlab.com/tozd/go/errors"
)

func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report files that fix would change",
		Long: `Check runs the same pipeline as fix without writing anything.
It exits non-zero when any file would change, so it can gate CI.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator(showDiff)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			opts.Console.Header("checking timestamps in " + opts.Config.Root)

			summary, err := op.Check(ctx)
			if summary != nil {
				if renderErr := summary.Render(opts.Out); renderErr != nil {
					return errors.Errorf("rendering summary: %w", renderErr)
				}
			}
			if err != nil {
				return errors.Errorf("checking files: %w", err)
			}

			if err := strictCheck(opts, summary); err != nil {
				return err
			}
			if summary.FilesFixed > 0 {
				return errors.Errorf("%w: %d", ErrWouldChange, summary.FilesFixed)
			}

			opts.Console.Success("all timestamps are canonical")
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a line diff for each file that would change")

	return cmd
}
