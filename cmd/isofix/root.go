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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/isofix/cmd/isofix/commands"
	"github.com/walteh/isofix/cmd/isofix/opts"
	"github.com/walteh/isofix/pkg/config"
	"github.com/walteh/isofix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags are shared by every subcommand
type rootFlags struct {
	configFile     string
	root           string
	pattern        string
	exclude        []string
	encoding       string
	backupSuffix   string
	disableRules   []string
	noVerifyScript bool
	strict         bool
	showUnchanged  bool
	debug          bool
}

func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file path (default: .isofix.yaml in the working directory, if present)")
	pf.StringVar(&f.root, "root", ".", "directory to process")
	pf.StringVar(&f.pattern, "pattern", "*.py", "file name glob; a glob containing / matches paths relative to the root")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "glob of paths to skip (repeatable)")
	pf.StringVar(&f.encoding, "encoding", "utf-8", "source file encoding")
	pf.StringVar(&f.backupSuffix, "backup-suffix", ".backup", "suffix appended to backup copies")
	pf.StringSliceVar(&f.disableRules, "disable-rule", nil, "rule to skip (repeatable, see 'isofix rules')")
	pf.BoolVar(&f.noVerifyScript, "no-verify-script", false, "do not write verify_timestamp_format.py")
	pf.BoolVar(&f.strict, "strict", false, "exit non-zero when any file fails")
	pf.BoolVarP(&f.showUnchanged, "verbose", "v", false, "also list files that need no change")
	pf.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(ctx context.Context, cmd *cobra.Command, f *rootFlags, args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configFile != "" {
		cfg, err = config.Load(ctx, f.configFile)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, errors.Errorf("getting working directory: %w", wdErr)
		}
		cfg, err = config.LoadDefault(ctx, wd)
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = f.root
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if flags.Changed("pattern") {
		cfg.Pattern = f.pattern
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, f.exclude...)
	}
	if flags.Changed("encoding") {
		cfg.Encoding = f.encoding
	}
	if flags.Changed("backup-suffix") {
		cfg.BackupSuffix = f.backupSuffix
	}
	if flags.Changed("disable-rule") {
		cfg.DisableRules = append(cfg.DisableRules, f.disableRules...)
	}
	if f.noVerifyScript {
		off := false
		cfg.VerifyScript = &off
	}
	if f.strict {
		cfg.Strict = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setupLogging(ctx context.Context, stderr io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// newRootCmd builds the command tree. Running the root without a subcommand runs fix.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{Out: stdout}

	rootCmd := &cobra.Command{
		Use:   "isofix [dir]",
		Short: "Normalize Python timestamp serialization to ISO 8601 UTC with a Z suffix",
		Long: `isofix scans a tree of Python sources for known bad date/time serialization
(naive utcnow(), isoformat() + "Z", "+00:00Z" literals) and rewrites it to

    <value>.isoformat(timespec='milliseconds').replace('+00:00', 'Z')

Every changed file is backed up next to the original first.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)
			zlog := zerolog.Ctx(ctx).With().Str("command", cmd.Name()).Logger()
			ctx = zlog.WithContext(ctx)

			if cmd.Name() == "version" {
				cmd.SetContext(ctx)
				return nil
			}

			cfg, err := loadConfig(ctx, cmd, flags, args)
			if err != nil {
				return err
			}
			zlog.Debug().Str("config", cfg.Location()).Stringer("settings", cfg).Msg("configuration loaded")

			rootOpts.Config = cfg
			rootOpts.Console = log.New(stdout, zlog).WithUnchanged(flags.showUnchanged)

			cmd.SetContext(log.NewContext(ctx, rootOpts.Console))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFix(cmd, rootOpts)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewFixCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewRestoreCmd(rootOpts),
		commands.NewCleanCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(stdout),
	)

	return rootCmd
}
