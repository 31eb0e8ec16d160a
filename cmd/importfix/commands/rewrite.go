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
	"github.com/spf13/cobra"
	"github.com/walteh/importfix/cmd/importfix/opts"
	"github.com/walteh/importfix/pkg/config"
	"github.com/walteh/importfix/pkg/log"
	"github.com/walteh/importfix/pkg/operation"
	"github.com/walteh/importfix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRewriteCmd creates a new rewrite command
func NewRewriteCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite one-level relative imports to two levels",
		Long: `Rewrite visits each configured subdirectory of the root and updates the
.js and .jsx files directly inside it. It will:
1. Replace from "../<token> with from "../../<token>
2. Save only the files whose content changed
3. Print "Updated: <path>" for every saved file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRewrite(cmd, opts)
		},
	}

	return cmd
}

// RunRewrite resolves the configuration and runs a rewrite, printing to the
// command's output streams.
func RunRewrite(cmd *cobra.Command, opts *opts.RootOpts) error {
	logger := log.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.LogLevel())
	ctx := log.NewContext(cmd.Context(), logger)

	cfg, err := config.Resolve(ctx, opts.Sources())
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	logger.Zerolog().Debug().Stringer("config", cfg).Msg("starting rewrite")

	mgr := status.New(nil)
	_, err = operation.Rewrite(ctx, operation.Options{
		Config:  cfg,
		Files:   mgr,
		Tracker: mgr,
		Logger:  logger,
	})

	logger.Summary(mgr.Summary(), err != nil)

	if err != nil {
		return errors.Errorf("rewriting imports: %w", err)
	}
	return nil
}
