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
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a set of rules to the content, in order
	ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are usable
	ValidateRules(rules []Rule) error
}

// PatternReplacer implements TextReplacer with compiled regular expressions
type PatternReplacer struct{}

// NewPatternReplacer creates a new PatternReplacer
func NewPatternReplacer() *PatternReplacer {
	return &PatternReplacer{}
}

var _ TextReplacer = (*PatternReplacer)(nil)

// ReplaceText implements TextReplacer.ReplaceText
func (r *PatternReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []Rule) (*ReplacementResult, error) {
	if err := r.ValidateRules(rules); err != nil {
		return nil, err
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := originalContent
	for _, rule := range rules {
		next, count := rule.Apply(current)
		if count > 0 {
			zerolog.Ctx(ctx).Trace().Str("rule", rule.Name).Int("count", count).Msg("rule matched")
			result.ReplacementCount += count
		}
		current = next
	}

	result.ModifiedContent = current
	result.WasModified = !bytes.Equal(originalContent, current)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *PatternReplacer) ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Pattern == nil {
			return errors.Errorf("rule %d: pattern is required", i)
		}
	}
	return nil
}
