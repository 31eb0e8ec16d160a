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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a run did to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // No rule matched, file left alone
	StatusModified             // Content rewritten on disk
	StatusFailed               // Read, decode or write failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains what is known about one processed file
type FileInfo struct {
	Path         string     // Absolute path to the file
	Status       FileStatus // Outcome for this run
	Replacements int        // Number of matches rewritten
	Checksum     string     // Hash of the written content
	Error        error      // Cause when Status is StatusFailed
}

// 💾 FileManager handles file system access for a run
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// 📈 StatusReporter tracks per-file outcomes
type StatusReporter interface {
	TrackFile(ctx context.Context, info FileInfo)
	Report() *Report
}

// 📋 Report is the ordered result of one run
type Report struct {
	// Modified lists rewritten files in processing order
	Modified []string

	// Failed lists files that could not be processed, in processing order
	Failed []FileInfo

	// Scanned is the number of candidate files looked at
	Scanned int
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	formatter FileFormatter

	mu    sync.RWMutex
	order []string
	files map[string]FileInfo
}

var (
	_ FileManager    = (*Manager)(nil)
	_ StatusReporter = (*Manager)(nil)
)

// 🏭 New creates a new status manager
func New(formatter FileFormatter) *Manager {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Manager{
		formatter: formatter,
		files:     make(map[string]FileInfo),
	}
}

// Checksum returns the SHA-256 of content as hex
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFileAtomic replaces path with content through a temp file in the same
// directory. The existing file mode is kept. When path is a symlink the
// target is replaced and the link is left in place.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else if !os.IsNotExist(err) {
		return errors.Errorf("resolving file: %w", err)
	}

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// StatusReporter interface implementation

// TrackFile records the outcome for a file. A path tracked twice keeps its
// first position and takes the latest info.
func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[info.Path]; !ok {
		m.order = append(m.order, info.Path)
	}
	m.files[info.Path] = info

	// failures reach the error level through the console logger
	zerolog.Ctx(ctx).Debug().
		Err(info.Error).
		Str("path", info.Path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Str("checksum", info.Checksum).
		Msg(m.formatter.FormatFileOperation(info))
}

// Report builds the run report from everything tracked so far
func (m *Manager) Report() *Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report := &Report{
		Modified: []string{},
		Scanned:  len(m.order),
	}
	for _, path := range m.order {
		info := m.files[path]
		switch info.Status {
		case StatusModified:
			report.Modified = append(report.Modified, path)
		case StatusFailed:
			report.Failed = append(report.Failed, info)
		}
	}
	return report
}

// Summary formats the report with the manager's formatter
func (m *Manager) Summary() string {
	return m.formatter.FormatSummary(m.Report())
}
