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
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/importfix/cmd/importfix/commands"
	"github.com/walteh/importfix/cmd/importfix/opts"
)

// newRootCmd builds the command tree. Running it without a subcommand
// performs a rewrite.
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "importfix",
		Short: "Deepen relative imports after moving pages one directory down",
		Long: `importfix rewrites imports such as from "../components/Button" into
from "../../components/Button" in the .js and .jsx files of each page
directory, after those directories were moved one level deeper.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupColor(o.NoColor, cmd.OutOrStdout() == os.Stdout)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunRewrite(cmd, o)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewRewriteCmd(o),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.RootDir, "root", "r", "", "pages root directory")
	flags.StringArrayVarP(&o.Subdirs, "subdir", "s", nil, "subdirectory to scan, repeatable (default: built-in page list)")
	flags.StringVar(&o.OnError, "on-error", "", "error policy: abort or continue (default abort)")
	flags.StringVarP(&o.ConfigFile, "config", "c", "", "config file path (.yaml, .yml, .json or .hcl)")
	flags.StringVar(&o.EnvFile, "env-file", "", "dotenv file loaded before reading IMPORTFIX_* variables")
	flags.BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&o.NoColor, "no-color", false, "disable colored output")
}

// setupColor disables color when asked to or when stdout is not a terminal
func setupColor(noColor bool, toStdout bool) {
	if noColor || !toStdout || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
		pterm.DisableColor()
	}
}
