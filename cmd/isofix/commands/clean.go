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

func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Delete every backup",
		Long: `Clean removes the backups left by fix once the rewritten files have
been reviewed. The rewritten files themselves are kept.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator(false)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			opts.Console.Header("removing backups in " + opts.Config.Root)

			summary, err := op.Clean(ctx)
			if summary != nil {
				if renderErr := summary.Render(opts.Out); renderErr != nil {
					return errors.Errorf("rendering summary: %w", renderErr)
				}
			}
			if err != nil {
				return errors.Errorf("cleaning backups: %w", err)
			}

			return strictCheck(opts, summary)
		},
	}

	return cmd
}
