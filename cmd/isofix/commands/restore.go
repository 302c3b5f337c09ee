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

func NewRestoreCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [dir]",
		Short: "Put every backup back in place",
		Long: `Restore copies each backup over the file it was taken from and then
deletes the backup. Files without a backup are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator(false)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			opts.Console.Header("restoring backups in " + opts.Config.Root)

			summary, err := op.Restore(ctx)
			if summary != nil {
				if renderErr := summary.Render(opts.Out); renderErr != nil {
					return errors.Errorf("rendering summary: %w", renderErr)
				}
			}
			if err != nil {
				return errors.Errorf("restoring files: %w", err)
			}

			return strictCheck(opts, summary)
		},
	}

	return cmd
}
