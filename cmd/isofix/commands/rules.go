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
	"fmt"
	"slices"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/isofix/cmd/isofix/opts"
	"github.com/walteh/isofix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in application order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := pterm.TableData{{"#", "Rule", "Fixes", "Before", "After", "Enabled"}}
			for i, rule := range text.DefaultRules() {
				enabled := "yes"
				if slices.Contains(opts.Config.DisableRules, rule.Name) {
					enabled = "no"
				}
				rows = append(rows, []string{
					fmt.Sprint(i + 1),
					rule.Name,
					rule.Category,
					rule.Before,
					rule.After,
					enabled,
				})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			fmt.Fprintln(opts.Out, table)
			return nil
		},
	}

	return cmd
}
