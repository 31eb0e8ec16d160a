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

package text

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "double_quoted_app",
			content:      `import App from "../App";`,
			want:         `import App from "../../App";`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "single_quoted_services",
			content:      `import api from '../services/api';`,
			want:         `import api from '../../services/api';`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "app_with_extension",
			content:      `import App from "../App.jsx";`,
			want:         `import App from "../../App.jsx";`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "app_js_extension",
			content:      `import { ctx } from "../App.js";`,
			want:         `import { ctx } from "../../App.js";`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "assets_path",
			content:      `import logo from "../assets/logo.png";`,
			want:         `import logo from "../../assets/logo.png";`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "extra_whitespace_after_from",
			content:      "import Button from\t \"../components/Button\";",
			want:         "import Button from\t \"../../components/Button\";",
			wantCount:    1,
			wantModified: true,
		},
		{
			name: "all_occurrences",
			content: strings.Join([]string{
				`import App from "../App";`,
				`import Modal from "../components/Modal";`,
				`import { get } from '../services/http';`,
				`import x from "./local";`,
			}, "\n"),
			want: strings.Join([]string{
				`import App from "../../App";`,
				`import Modal from "../../components/Modal";`,
				`import { get } from '../../services/http';`,
				`import x from "./local";`,
			}, "\n"),
			wantCount:    3,
			wantModified: true,
		},
		{
			name:         "already_two_levels",
			content:      `import { x } from "../../helpers";`,
			want:         `import { x } from "../../helpers";`,
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "already_rewritten_token",
			content:      `import App from "../../App";`,
			want:         `import App from "../../App";`,
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "unknown_token",
			content:      `import { fmt } from "../utils/format";`,
			want:         `import { fmt } from "../utils/format";`,
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "no_from_keyword",
			content:      `const App = require("../App");`,
			want:         `const App = require("../App");`,
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_content",
			content:      "",
			want:         "",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewPatternReplacer()
			result, err := replacer.ReplaceText(context.Background(), strings.NewReader(tt.content), DefaultRules())

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestPatternReplacer_Idempotent(t *testing.T) {
	content := strings.Join([]string{
		`import React from "react";`,
		`import App from "../App";`,
		`import Card from '../components/Card';`,
		`import logo from "../assets/logo.svg";`,
		`import { auth } from "../services/authService";`,
		`import Root from "../App.jsx";`,
	}, "\n")

	replacer := NewPatternReplacer()

	first, err := replacer.ReplaceText(context.Background(), strings.NewReader(content), DefaultRules())
	require.NoError(t, err)
	require.True(t, first.WasModified)
	assert.Equal(t, 5, first.ReplacementCount)

	second, err := replacer.ReplaceText(context.Background(), strings.NewReader(string(first.ModifiedContent)), DefaultRules())
	require.NoError(t, err)
	assert.False(t, second.WasModified, "second pass should not match its own output")
	assert.Equal(t, 0, second.ReplacementCount)
	assert.Equal(t, string(first.ModifiedContent), string(second.ModifiedContent))
}

func TestPatternReplacer_OnlyPrefixChanges(t *testing.T) {
	content := "// header\nimport App from \"../App\";\n\nexport default App;\n"
	want := "// header\nimport App from \"../../App\";\n\nexport default App;\n"

	result, err := NewPatternReplacer().ReplaceText(context.Background(), strings.NewReader(content), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, want, string(result.ModifiedContent))
	assert.Equal(t, len(content)+len("../"), len(result.ModifiedContent), "only one ../ should be added")
}

func TestPatternReplacer_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name:  "valid_rules",
			rules: DefaultRules(),
		},
		{
			name: "missing_pattern",
			rules: []Rule{
				{Name: "broken", Replacement: "x"},
			},
			wantError: "rule 0: pattern is required",
		},
		{
			name: "second_rule_missing_pattern",
			rules: []Rule{
				{Name: "ok", Pattern: regexp.MustCompile("a"), Replacement: "b"},
				{Name: "broken"},
			},
			wantError: "rule 1: pattern is required",
		},
		{
			name:  "empty_rules",
			rules: []Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPatternReplacer().ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestNewImportDepthRule(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		input     string
		want      string
		wantError string
	}{
		{
			name:   "custom_token",
			tokens: []string{"hooks"},
			input:  `import useCart from "../hooks/useCart";`,
			want:   `import useCart from "../../hooks/useCart";`,
		},
		{
			name:   "token_is_quoted",
			tokens: []string{"App.js"},
			input:  `import x from "../AppXjs";`,
			want:   `import x from "../AppXjs";`,
		},
		{
			name:      "no_tokens",
			tokens:    nil,
			wantError: "at least one module token is required",
		},
		{
			name:      "blank_token",
			tokens:    []string{"App", " "},
			wantError: "token 1: must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewImportDepthRule(tt.tokens)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			got, _ := rule.Apply([]byte(tt.input))
			assert.Equal(t, tt.want, string(got))
		})
	}
}
