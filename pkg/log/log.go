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
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	matchesWidth = 10 // Width for match count
	statusWidth  = 10 // Width for status text
)

// 🎯 FileMatch is a file with matches, as shown to the user
type FileMatch struct {
	Path      string // Path shown, usually relative to the run root
	Matches   int    // Occurrences found
	Rewritten bool   // Whether the file was written back
}

// 📦 RunOperation describes the run being displayed
type RunOperation struct {
	Root    string
	Include string
	Exclude string
	Search  string
	Replace bool
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *RunOperation
	matches []FileMatch
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a logger that mirrors console lines to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext returns the console logger a command stored with NewContext.
// Without one, console lines are dropped and the mirror goes to the context's
// zerolog logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return l
	}
	return NewWithZerolog(io.Discard, *zerolog.Ctx(ctx))
}

// 🎯 NewContext stores l for FromContext
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatMatch formats a matched file for display
func (l *Logger) formatMatch(m FileMatch) string {
	symbol, symbolColor, status := '✓', color.FgGreen, "found"
	if m.Rewritten {
		symbol, symbolColor, status = '⟳', color.FgBlue, "replaced"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, m.Path),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*d", matchesWidth, m.Matches)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogMatch logs a matched file
func (l *Logger) LogMatch(ctx context.Context, m FileMatch) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.matches = append(l.matches, m)

	fmt.Fprintln(l.console, l.formatMatch(m))

	l.zlog.Info().
		Str("file", m.Path).
		Int("matches", m.Matches).
		Bool("rewritten", m.Rewritten).
		Msg("file matched")
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op
	l.matches = nil

	verb := "finding"
	if op.Replace {
		verb = "replacing"
	}

	fmt.Fprintf(l.console, "[%s in %s]\n", verb, color.New(color.FgCyan).Sprint(op.Root))

	filter := op.Include
	if op.Exclude != "" {
		filter += " !" + op.Exclude
	}
	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%q", op.Search),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(filter))

	l.zlog.Info().
		Str("root", op.Root).
		Str("include", op.Include).
		Str("exclude", op.Exclude).
		Bool("replace", op.Replace).
		Msg("starting run")
}

// 📝 EndRun closes the current run and returns the matches logged during it
func (l *Logger) EndRun(ctx context.Context) []FileMatch {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return nil
	}

	matches := l.matches
	l.zlog.Info().
		Str("root", l.current.Root).
		Int("files", len(matches)).
		Msg("run complete")

	l.current = nil
	l.matches = nil
	return matches
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header prints a banner line naming what the command is about to do
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("findrep")
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

// 📝 Infof is Info with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf is Warning with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
