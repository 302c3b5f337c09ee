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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/isofix/pkg/log"
	"github.com/walteh/isofix/pkg/status"
	"github.com/walteh/isofix/pkg/text"
	"github.com/walteh/isofix/pkg/verify"
	"gitlab.com/tozd/go/errors"
)

// Fix method on operator
func (o *operator) Fix(ctx context.Context) (*status.Summary, error) {
	summary, err := o.run(ctx, status.ModeFix)
	if err != nil {
		return summary, err
	}

	if o.opts.VerifyScript {
		path, err := verify.Emit(o.opts.Root)
		if err != nil {
			// a script failure does not fail the run
			zerolog.Ctx(ctx).Warn().Err(err).Msg("emitting verification script")
			log.FromContext(ctx).Warningf("could not write %s: %v", verify.ScriptName, err)
		} else {
			summary.VerifyScript = o.display(path)
		}
	}

	return summary, nil
}

// Check method on operator
func (o *operator) Check(ctx context.Context) (*status.Summary, error) {
	return o.run(ctx, status.ModeCheck)
}

// 🔄 run processes every scanned file in order
func (o *operator) run(ctx context.Context, mode status.Mode) (*status.Summary, error) {
	logger := zerolog.Ctx(ctx).With().Str("root", o.opts.Root).Str("mode", string(mode)).Logger()
	console := log.FromContext(ctx)

	paths, err := o.opts.Scanner.Scan(ctx, o.opts.Root)
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", o.opts.Root, err)
	}

	summary := status.NewSummary(mode, o.categories())

	for path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, errors.Errorf("processing cancelled: %w", err)
		}

		result := o.processFile(logger.WithContext(ctx), path, mode == status.ModeCheck)
		summary.Record(result)
		console.LogResult(ctx, result)
		console.LogDiff(result.Diff)
	}

	logger.Debug().
		Int("scanned", summary.FilesScanned).
		Int("fixed", summary.FilesFixed).
		Int("errors", len(summary.Errors)).
		Msg("run complete")

	return summary, nil
}

// 📄 processFile reads, normalizes and (unless dryRun) backs up and rewrites one file
func (o *operator) processFile(ctx context.Context, path string, dryRun bool) status.FileResult {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()
	result := status.FileResult{Path: o.display(path)}

	src, err := o.opts.Codec.ReadSource(path)
	if err != nil {
		return failed(result, err)
	}

	fixed := o.opts.Fixer.Normalize(src.Content)
	if !fixed.Changed {
		result.Status = status.StatusUnchanged
		return result
	}

	result.Changes = fixed.ChangesMade
	result.PerRule = fixed.PerRule
	result.ImportAdded = fixed.ImportAdded

	if dryRun {
		result.Status = status.StatusWouldFix
		if o.opts.ShowDiff {
			result.Diff = text.FormatDiff(text.LineDiff(src.Content, fixed.Content))
		}
		return result
	}

	// the backup must exist before the original is touched
	rec, err := o.opts.Backups.Backup(ctx, path)
	if err != nil {
		return failed(result, err)
	}
	result.Backup = rec.Backup

	if err := o.opts.Codec.WriteSource(src, fixed.Content); err != nil {
		return failed(result, err)
	}

	logger.Debug().Int("changes", fixed.ChangesMade).Bool("import_added", fixed.ImportAdded).Msg("file rewritten")

	result.Status = status.StatusFixed
	return result
}

func failed(result status.FileResult, err error) status.FileResult {
	result.Status = status.StatusFailed
	result.Err = err
	return result
}
