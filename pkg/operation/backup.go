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
	"github.com/walteh/isofix/pkg/files"
	"github.com/walteh/isofix/pkg/log"
	"github.com/walteh/isofix/pkg/scan"
	"github.com/walteh/isofix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Restore method on operator
func (o *operator) Restore(ctx context.Context) (*status.Summary, error) {
	return o.eachBackup(ctx, status.ModeRestore, func(ctx context.Context, rec files.BackupRecord) status.FileResult {
		result := status.FileResult{Path: o.display(rec.Original)}
		if err := o.opts.Backups.Restore(ctx, rec.Original); err != nil {
			return failed(result, err)
		}
		result.Status = status.StatusRestored
		return result
	})
}

// Clean method on operator
func (o *operator) Clean(ctx context.Context) (*status.Summary, error) {
	return o.eachBackup(ctx, status.ModeClean, func(ctx context.Context, rec files.BackupRecord) status.FileResult {
		result := status.FileResult{Path: o.display(rec.Backup)}
		if err := o.opts.Backups.Remove(ctx, rec.Original); err != nil {
			return failed(result, err)
		}
		result.Status = status.StatusRemoved
		return result
	})
}

// 🗂️ eachBackup applies fn to every backup under the root, in path order
func (o *operator) eachBackup(ctx context.Context, mode status.Mode, fn func(context.Context, files.BackupRecord) status.FileResult) (*status.Summary, error) {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	if err := scan.CheckRoot(o.opts.Root); err != nil {
		return nil, errors.Errorf("scanning %s: %w", o.opts.Root, err)
	}

	records, err := o.opts.Backups.List(ctx, o.opts.Root, o.opts.Scanner.Excluded)
	if err != nil {
		return nil, err
	}

	summary := status.NewSummary(mode, nil)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, errors.Errorf("processing cancelled: %w", err)
		}

		result := fn(ctx, rec)
		summary.Record(result)
		console.LogResult(ctx, result)
	}

	logger.Debug().Str("mode", string(mode)).Int("backups", len(records)).Msg("backups processed")

	return summary, nil
}
