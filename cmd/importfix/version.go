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
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// buildInfo describes the running importfix binary
type buildInfo struct {
	Version  string
	Revision string
	Dirty    bool
	BuiltAt  string
	Go       string
	Platform string
}

// readBuildInfo collects what the toolchain stamped into the binary
func readBuildInfo() buildInfo {
	bi, ok := debug.ReadBuildInfo()
	return newBuildInfo(bi, ok)
}

func newBuildInfo(bi *debug.BuildInfo, ok bool) buildInfo {
	info := buildInfo{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if !ok || bi == nil {
		return info
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
			if len(info.Revision) > 12 {
				info.Revision = info.Revision[:12]
			}
		case "vcs.time":
			info.BuiltAt = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// String renders a single line such as
// "importfix v0.3.0 (1a2b3c4d5e6f-dirty, 2025-01-02T03:04:05Z) go1.23.5 linux/amd64"
func (b buildInfo) String() string {
	var meta []string
	if b.Revision != "" {
		rev := b.Revision
		if b.Dirty {
			rev += "-dirty"
		}
		meta = append(meta, rev)
	}
	if b.BuiltAt != "" {
		meta = append(meta, b.BuiltAt)
	}

	line := "importfix " + b.Version
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	return fmt.Sprintf("%s %s %s", line, b.Go, b.Platform)
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := readBuildInfo()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")

	return cmd
}
