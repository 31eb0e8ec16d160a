package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/importfix/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"ROOT_DIR", "SUBDIRS", "ON_ERROR"} {
		t.Setenv(config.EnvPrefix+"_"+name, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating directory")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing file")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name        string
		files       map[string]string
		args        func(root string) []string
		wantOut     []string
		wantFiles   map[string]string
		errContains string
	}{
		{
			name: "default_action_rewrites",
			files: map[string]string{
				"orders/List.jsx": `import Button from "../components/Button";`,
			},
			args: func(root string) []string { return []string{"--root", root} },
			wantOut: []string{
				"Updated: ORDERS_LIST",
				"1 file updated (1 scanned)",
			},
			wantFiles: map[string]string{
				"orders/List.jsx": `import Button from "../../components/Button";`,
			},
		},
		{
			name: "rewrite_subcommand_with_subdir_flag",
			files: map[string]string{
				"orders/List.jsx": `import App from '../App';`,
				"users/Page.js":   `import App from '../App';`,
			},
			args: func(root string) []string { return []string{"rewrite", "-r", root, "-s", "users"} },
			wantOut: []string{
				"1 file updated (1 scanned)",
			},
			wantFiles: map[string]string{
				"orders/List.jsx": `import App from '../App';`,
				"users/Page.js":   `import App from '../../App';`,
			},
		},
		{
			name: "nothing_to_do",
			files: map[string]string{
				"orders/List.jsx": `import App from "../../App";`,
			},
			args:    func(root string) []string { return []string{"--root", root} },
			wantOut: []string{"0 files updated (1 scanned)"},
		},
		{
			name:        "missing_root",
			args:        func(root string) []string { return []string{"--root", filepath.Join(root, "nope")} },
			errContains: "root directory not found",
		},
		{
			name:        "invalid_policy",
			args:        func(root string) []string { return []string{"--root", root, "--on-error", "retry"} },
			errContains: "on_error must be one of",
		},
		{
			name:        "unexpected_argument",
			args:        func(root string) []string { return []string{"--root", root, "extra"} },
			errContains: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			root := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, filepath.Join(root, rel), content)
			}

			out, err := execute(t, tt.args(root)...)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			for _, want := range tt.wantOut {
				want = replacePath(want, "ORDERS_LIST", filepath.Join(root, "orders", "List.jsx"))
				assert.Contains(t, out, want)
			}
			for rel, want := range tt.wantFiles {
				got, err := os.ReadFile(filepath.Join(root, rel))
				require.NoError(t, err, "reading %s", rel)
				assert.Equal(t, want, string(got), "content of %s", rel)
			}
		})
	}
}

func replacePath(s, placeholder, path string) string {
	return string(bytes.ReplaceAll([]byte(s), []byte(placeholder), []byte(path)))
}

func TestRootCommandContinuePolicy(t *testing.T) {
	color.NoColor = true
	clearEnv(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "orders", "Bad.jsx"), "import App from \"../App\";\xff")
	writeFile(t, filepath.Join(root, "users", "Good.jsx"), `import App from "../App";`)

	out, err := execute(t, "--root", root, "--on-error", "continue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewriting imports")
	assert.Contains(t, out, "Failed: "+filepath.Join(root, "orders", "Bad.jsx"))
	assert.Contains(t, out, "Updated: "+filepath.Join(root, "users", "Good.jsx"))
	assert.Contains(t, out, "1 failed")
}

func TestRootCommandConfigSources(t *testing.T) {
	color.NoColor = true
	clearEnv(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "custom", "Page.jsx"), `import x from "../services/api";`)
	writeFile(t, filepath.Join(root, "orders", "List.jsx"), `import x from "../services/api";`)

	cfgPath := filepath.Join(t.TempDir(), "importfix.yaml")
	writeFile(t, cfgPath, "root_dir: "+root+"\nsubdirs: [orders]\n")

	envPath := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envPath, config.EnvPrefix+"_SUBDIRS=custom\n")
	t.Cleanup(func() { os.Unsetenv(config.EnvPrefix + "_SUBDIRS") })
	// godotenv does not override variables that are already set
	os.Unsetenv(config.EnvPrefix + "_SUBDIRS")

	out, err := execute(t, "--config", cfgPath, "--env-file", envPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated: "+filepath.Join(root, "custom", "Page.jsx"))

	got, err := os.ReadFile(filepath.Join(root, "orders", "List.jsx"))
	require.NoError(t, err)
	assert.Equal(t, `import x from "../services/api";`, string(got), "env subdirs win over the config file")
}

func TestRootCommandConfigError(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "importfix.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.False(t, errors.Is(err, config.ErrRootNotFound))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "importfix "), "got %q", out)
	assert.Contains(t, out, runtime.Version())

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, readBuildInfo().Version+"\n", out)
}

func TestBuildInfo(t *testing.T) {
	platform := runtime.GOOS + "/" + runtime.GOARCH

	tests := []struct {
		name string
		bi   *debug.BuildInfo
		ok   bool
		want string
	}{
		{
			name: "no_build_info",
			want: "importfix dev " + runtime.Version() + " " + platform,
		},
		{
			name: "devel_build_without_vcs",
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ok:   true,
			want: "importfix dev " + runtime.Version() + " " + platform,
		},
		{
			name: "tagged_dirty_build",
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123def4567890"},
					{Key: "vcs.time", Value: "2025-01-01T00:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			ok:   true,
			want: "importfix v1.2.3 (abc123def456-dirty, 2025-01-01T00:00:00Z) " + runtime.Version() + " " + platform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newBuildInfo(tt.bi, tt.ok).String())
		})
	}
}
