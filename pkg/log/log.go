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
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	fileIndent     = 4  // spaces to indent file entries
	nameWidth      = 45 // Base width for filename
	providerWidth  = 12 // Width for provider name
	statusWidth    = 10 // Width for status text
	statusNew      = "NEW"
	statusUpdated  = "UPDATED"
	statusDryRun   = "DRY-RUN"
	statusNoChange = ""
)

// 🎯 FileOperation represents a file written by the extractor
type FileOperation struct {
	Path       string // Destination path
	Provider   string // Provider the file came from
	IsNew      bool   // File did not exist before
	IsModified bool   // File existed with different content
	DryRun     bool   // Nothing was written
}

// 📦 ProviderOperation represents one provider being scaffolded
type ProviderOperation struct {
	Name        string // Provider name
	Mode        string // Extraction mode
	Source      string // Catalog path being extracted
	Destination string // Destination root
}

// 🎯 Logger writes user facing output to a console and mirrors it into zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	files   map[string]int
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		files:   make(map[string]int),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context. Without one, console output is
// discarded and messages only reach the context's zerolog logger.
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
	status := statusNoChange
	switch {
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = statusNew
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = statusUpdated
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}
	if op.DryRun {
		symbolColor = color.Faint
		status = statusDryRun
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*s", providerWidth, op.Provider)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files[op.Provider]++

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Debug().
		Str("file", op.Path).
		Str("provider", op.Provider).
		Bool("is_new", op.IsNew).
		Bool("is_modified", op.IsModified).
		Bool("dry_run", op.DryRun).
		Msg("file operation")
}

// 📝 StartProviderOperation prints the header for a provider
func (l *Logger) StartProviderOperation(ctx context.Context, op ProviderOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files[op.Name] = 0

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Destination))

	l.zlog.Info().
		Str("provider", op.Name).
		Str("mode", op.Mode).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Msg("scaffolding provider")
}

// 📝 EndProviderOperation logs the number of files written for a provider
func (l *Logger) EndProviderOperation(ctx context.Context, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zlog.Info().
		Str("provider", name).
		Int("files", l.files[name]).
		Msg("provider scaffolded")
}

// FileCount returns how many files were logged for a provider
func (l *Logger) FileCount(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.files[name]
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("ai-dlc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📊 Table renders rows under a header
func (l *Logger) Table(header []string, rows [][]string) error {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, out)
	return nil
}
