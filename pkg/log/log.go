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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/isofix/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for filename
	statusWidth = 12 // Width for status text
)

// 🎯 FileOperation represents one file line in the console output
type FileOperation struct {
	Path      string // File path
	Status    string // Operation status
	Detail    string // change count or error text
	IsFixed   bool   // Whether the file was rewritten (or restored)
	IsPending bool   // Whether a dry run would rewrite the file
	IsRemoved bool   // Whether a backup was removed
	IsFailed  bool   // Whether processing failed
	Changes   int    // Number of rewrites made
}

// OperationFromResult builds the console line for a file outcome
func OperationFromResult(r status.FileResult) FileOperation {
	op := FileOperation{
		Path:      r.Path,
		Status:    r.Status.String(),
		Changes:   r.Changes,
		IsFixed:   r.Status == status.StatusFixed || r.Status == status.StatusRestored,
		IsPending: r.Status == status.StatusWouldFix,
		IsRemoved: r.Status == status.StatusRemoved,
		IsFailed:  r.Status == status.StatusFailed || r.Err != nil,
	}
	switch {
	case op.IsFailed:
		op.Status = status.StatusFailed.String()
		if r.Err != nil {
			op.Detail = r.Err.Error()
		}
	case r.Changes == 1:
		op.Detail = "1 change"
	case r.Changes > 1:
		op.Detail = fmt.Sprintf("%d changes", r.Changes)
	}
	if r.ImportAdded && !op.IsFailed {
		op.Detail = strings.TrimPrefix(op.Detail+", import added", ", ")
	}
	return op
}

// 🎯 Logger handles per-file console output mirrored to zerolog
type Logger struct {
	zlog          zerolog.Logger
	console       io.Writer
	formatter     status.FileFormatter
	mu            sync.Mutex
	showUnchanged bool
}

// 🏭 New creates a new logger writing lines to console and records to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// WithUnchanged makes the logger print a line for files that needed no change
func (l *Logger) WithUnchanged(show bool) *Logger {
	l.showUnchanged = show
	return l
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding logger if none is set
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, *zerolog.Ctx(ctx))
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsRemoved:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsFixed:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsPending:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgHiBlack
	}

	detail := op.Detail
	if op.IsFailed {
		detail = color.New(color.FgRed).Sprint(detail)
	} else {
		detail = color.New(color.Faint).Sprint(detail)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		fmt.Sprintf("%-*s", statusWidth, op.Status),
		detail)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	quiet := !op.IsFailed && !op.IsFixed && !op.IsPending && !op.IsRemoved
	if !quiet || l.showUnchanged {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	event := l.zlog.Info()
	if op.IsFailed {
		event = l.zlog.Warn()
	} else if quiet {
		event = l.zlog.Debug()
	}
	event.
		Str("file", op.Path).
		Str("status", op.Status).
		Int("changes", op.Changes).
		Str("detail", op.Detail).
		Msg("file processed")
}

// 📝 LogResult logs the outcome of one file
func (l *Logger) LogResult(ctx context.Context, r status.FileResult) {
	l.LogFileOperation(ctx, OperationFromResult(r))
	if r.Err != nil {
		l.zlog.Debug().Err(r.Err).Str("file", r.Path).Msg(l.formatter.FormatResult(r))
	}
}

// 📝 LogDiff prints a rendered line diff under the current file
func (l *Logger) LogDiff(diff string) {
	if diff == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	indent := strings.Repeat(" ", fileIndent+2)
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		c := color.New(color.FgGreen)
		if strings.HasPrefix(line, "-") {
			c = color.New(color.FgRed)
		}
		fmt.Fprintln(l.console, indent+c.Sprint(line))
	}
}

// LogNewline prints an empty line
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header prints the tool name followed by msg
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("isofix")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 💬 message prints one icon-prefixed console line and records it at level
func (l *Logger) message(level zerolog.Level, icon string, attr color.Attribute, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", icon, color.New(attr).Sprint(msg))
	l.zlog.WithLevel(level).Msg(msg)
}

func (l *Logger) Success(msg string) { l.message(zerolog.InfoLevel, "✅", color.FgGreen, msg) }
func (l *Logger) Warning(msg string) { l.message(zerolog.WarnLevel, "⚠️ ", color.FgYellow, msg) }
func (l *Logger) Error(msg string)   { l.message(zerolog.ErrorLevel, "❌", color.FgRed, msg) }
func (l *Logger) Info(msg string)    { l.message(zerolog.InfoLevel, "ℹ️ ", color.FgCyan, msg) }

func (l *Logger) Successf(format string, args ...any) { l.Success(fmt.Sprintf(format, args...)) }
func (l *Logger) Warningf(format string, args ...any) { l.Warning(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
