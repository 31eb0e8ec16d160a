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
	"github.com/walteh/importfix/pkg/status"
)

// 🎯 FileOperation is one file outcome shown to the user
type FileOperation struct {
	Path         string            // Absolute file path
	Status       status.FileStatus // What happened to the file
	Replacements int               // Number of imports rewritten
	Err          error             // Failure cause
}

// 🎯 Logger writes user-facing lines to the console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Console lines go to console, structured
// diagnostics to diag.
func New(console io.Writer, diag io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: diag, NoColor: color.NoColor}).
		With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Zerolog returns the structured logger behind l
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 🎯 NewContext returns ctx carrying l's zerolog logger for zerolog.Ctx
func NewContext(ctx context.Context, l *Logger) context.Context {
	return l.zlog.WithContext(ctx)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	switch op.Status {
	case status.StatusModified:
		return fmt.Sprintf("%s %s", color.New(color.FgGreen).Sprint("Updated:"), op.Path)
	case status.StatusFailed:
		if op.Err != nil {
			return fmt.Sprintf("%s %s: %v", color.New(color.FgRed).Sprint("Failed:"), op.Path, op.Err)
		}
		return fmt.Sprintf("%s %s", color.New(color.FgRed).Sprint("Failed:"), op.Path)
	default:
		return ""
	}
}

// 📝 LogFileOperation reports a file outcome. Unchanged files only reach the
// debug log.
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if line := l.formatFileOperation(op); line != "" {
		fmt.Fprintln(l.console, line)
	}

	event := l.zlog.Debug()
	if op.Err != nil {
		event = l.zlog.Error().Err(op.Err)
	}
	event.
		Str("file", op.Path).
		Str("status", op.Status.String()).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 Summary prints the end-of-run summary box
func (l *Logger) Summary(msg string, failed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if failed {
		pterm.Error.WithWriter(l.console).Println(msg)
		l.zlog.Warn().Msg(msg)
		return
	}
	pterm.Success.WithWriter(l.console).Println(msg)
	l.zlog.Info().Msg(msg)
}
