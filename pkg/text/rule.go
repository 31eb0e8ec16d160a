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
	"regexp"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📦 DefaultModuleTokens are the module names whose one-level-up imports get
// an extra parent segment.
var DefaultModuleTokens = []string{
	"App",
	"assets",
	"services",
	"components",
	"App.jsx",
	"App.js",
}

// 🔧 Rule is a single pattern/replacement pair applied to whole-file content
type Rule struct {
	// Name identifies the rule in logs
	Name string

	// Pattern is matched against the full content
	Pattern *regexp.Regexp

	// Replacement is a regexp.Expand template
	Replacement string
}

// Apply returns the rewritten content and the number of matches.
// content is never modified.
func (r Rule) Apply(content []byte) ([]byte, int) {
	count := len(r.Pattern.FindAllIndex(content, -1))
	if count == 0 {
		return content, 0
	}
	return r.Pattern.ReplaceAll(content, []byte(r.Replacement)), count
}

// 🏭 NewImportDepthRule builds the rule that turns `from "../<token>` into
// `from "../../<token>` for every token, with either quote style.
//
// The pattern requires exactly one `../` between the quote and the token, so
// it does not match its own output.
func NewImportDepthRule(tokens []string) (Rule, error) {
	if len(tokens) == 0 {
		return Rule{}, errors.Errorf("at least one module token is required")
	}

	quoted := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			return Rule{}, errors.Errorf("token %d: must not be empty", i)
		}
		quoted = append(quoted, regexp.QuoteMeta(tok))
	}

	// longest first so the capture always holds the whole token
	sort.SliceStable(quoted, func(i, j int) bool {
		return len(quoted[i]) > len(quoted[j])
	})

	pattern, err := regexp.Compile(`(from\s+["'])\.\./(` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return Rule{}, errors.Errorf("compiling import pattern: %w", err)
	}

	return Rule{
		Name:        "import-depth",
		Pattern:     pattern,
		Replacement: "${1}../../${2}",
	}, nil
}

// DefaultRules returns the rule set built from DefaultModuleTokens.
func DefaultRules() []Rule {
	rule, err := NewImportDepthRule(DefaultModuleTokens)
	if err != nil {
		panic(err)
	}
	return []Rule{rule}
}
