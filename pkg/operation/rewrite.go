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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/config"
	"github.com/walteh/importfix/pkg/log"
	"github.com/walteh/importfix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 RewriteOperation rewrites one-level-up imports in the configured subdirectories
type RewriteOperation struct {
	Options
}

// 📦 NewRewriteOperation creates a new rewrite operation
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &RewriteOperation{Options: opts}, nil
}

// Name implements Operation
func (op *RewriteOperation) Name() string {
	return "rewrite"
}

// Report returns the ordered outcome of the run so far
func (op *RewriteOperation) Report() *status.Report {
	return op.Tracker.Report()
}

// scriptGlob matches script files directly inside a directory
func scriptGlob() string {
	return "*.{" + strings.Join(ScriptExtensions, ",") + "}"
}

// 🏃 Execute visits every subdirectory in order and rewrites matching files.
// Under OnErrorAbort the first failure is returned. Under OnErrorContinue
// every failure is logged and all of them are returned together at the end.
func (op *RewriteOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	var failures []error

	fail := func(path string, err error) error {
		err = errors.Errorf("processing %s: %w", path, err)
		if op.Config.OnError == config.OnErrorContinue {
			failures = append(failures, err)
			return nil
		}
		return err
	}

	for _, subdir := range op.Config.Subdirs {
		dir := filepath.Join(op.Config.RootDir, subdir)

		files, err := op.listScripts(ctx, dir)
		if err != nil {
			op.record(ctx, status.FileInfo{Path: dir, Status: status.StatusFailed, Error: err})
			if err := fail(dir, err); err != nil {
				return err
			}
			continue
		}

		logger.Debug().Str("dir", dir).Int("files", len(files)).Msg("scanning subdirectory")

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("rewrite cancelled: %w", err)
			}

			info, err := op.processFile(ctx, path)
			op.record(ctx, info)
			if err != nil {
				if err := fail(path, err); err != nil {
					return err
				}
			}
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return nil
}

// 📂 listScripts returns the script files directly inside dir, sorted by
// name. A missing dir, or one that is not a directory, yields nothing.
func (op *RewriteOperation) listScripts(ctx context.Context, dir string) ([]string, error) {
	fi, err := os.Stat(dir)
	if os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("subdirectory does not exist, skipping")
		return nil, nil
	} else if err != nil {
		return nil, errors.Errorf("checking subdirectory: %w", err)
	}
	if !fi.IsDir() {
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("not a directory, skipping")
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), scriptGlob(), doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("listing scripts: %w", err)
	}
	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, name := range matches {
		files = append(files, filepath.Join(dir, filepath.FromSlash(name)))
	}
	return files, nil
}

// 📄 processFile rewrites a single file. The returned info is always
// populated, including on failure.
func (op *RewriteOperation) processFile(ctx context.Context, path string) (status.FileInfo, error) {
	info := status.FileInfo{Path: path, Status: status.StatusFailed}

	content, err := op.Files.ReadFile(ctx, path)
	if err != nil {
		info.Error = err
		return info, err
	}

	if !utf8.Valid(content) {
		info.Error = ErrInvalidEncoding
		return info, ErrInvalidEncoding
	}

	result, err := op.Replacer.ReplaceText(ctx, bytes.NewReader(content), op.Rules)
	if err != nil {
		info.Error = errors.Errorf("replacing text: %w", err)
		return info, info.Error
	}

	if !result.WasModified {
		info.Status = status.StatusUnchanged
		return info, nil
	}

	if err := op.Files.WriteFileAtomic(ctx, path, result.ModifiedContent); err != nil {
		info.Error = err
		return info, err
	}

	info.Status = status.StatusModified
	info.Replacements = result.ReplacementCount
	info.Checksum = status.Checksum(result.ModifiedContent)
	return info, nil
}

// record tracks the outcome and tells the user about it
func (op *RewriteOperation) record(ctx context.Context, info status.FileInfo) {
	op.Tracker.TrackFile(ctx, info)
	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:         info.Path,
		Status:       info.Status,
		Replacements: info.Replacements,
		Err:          info.Error,
	})
}
