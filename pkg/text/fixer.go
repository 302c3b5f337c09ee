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
	"slices"

	"gitlab.com/tozd/go/errors"
)

// FixResult contains the results of running the fixer over one file
type FixResult struct {
	// Content is the final text
	Content string

	// Changed is true iff Content differs from the input
	Changed bool

	// ChangesMade is the number of rewritten spans across all rules
	ChangesMade int

	// PerRule maps rule names to their match counts, zero counts omitted
	PerRule map[string]int

	// ImportAdded is true when the timezone import was inserted or augmented
	ImportAdded bool
}

// 🔧 Fixer applies an ordered list of rewrite rules
type Fixer struct {
	rules []RewriteRule
}

// NewFixer creates a fixer for the given rules, applied in slice order
func NewFixer(rules []RewriteRule) (*Fixer, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return &Fixer{rules: slices.Clone(rules)}, nil
}

// NewDefaultFixer creates a fixer over DefaultRules minus the disabled names
func NewDefaultFixer(disabled ...string) (*Fixer, error) {
	rules := DefaultRules()
	for _, name := range disabled {
		idx := slices.IndexFunc(rules, func(r RewriteRule) bool { return r.Name == name })
		if idx < 0 {
			return nil, errors.Errorf("unknown rule %q", name)
		}
		rules = slices.Delete(rules, idx, idx+1)
	}
	return NewFixer(rules)
}

// Rules returns the fixer's rules in application order
func (f *Fixer) Rules() []RewriteRule {
	return slices.Clone(f.rules)
}

// Apply runs every rule in order, each on the output of the previous one
func (f *Fixer) Apply(content string) FixResult {
	result := FixResult{
		Content: content,
		PerRule: map[string]int{},
	}

	for _, rule := range f.rules {
		var n int
		result.Content, n = rule.Apply(result.Content)
		if n > 0 {
			result.PerRule[rule.Name] += n
			result.ChangesMade += n
		}
	}

	result.Changed = result.Content != content
	return result
}

// Normalize ensures the timezone import when an enabled rule needs it, then
// applies the rules. Changed accounts for both steps.
func (f *Fixer) Normalize(content string) FixResult {
	conditioned := content
	imported := false
	if f.needsTimezone() {
		conditioned, imported = EnsureImport(content)
	}

	result := f.Apply(conditioned)
	result.ImportAdded = imported
	result.Changed = result.Content != content
	return result
}

func (f *Fixer) needsTimezone() bool {
	return slices.ContainsFunc(f.rules, func(r RewriteRule) bool { return r.NeedsTimezone })
}

// ValidateRules checks that every rule is named, unique and has a transform
func ValidateRules(rules []RewriteRule) error {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.apply == nil {
			return errors.Errorf("rule %q: no transform", rule.Name)
		}
		if _, dup := seen[rule.Name]; dup {
			return errors.Errorf("rule %q: duplicate name", rule.Name)
		}
		seen[rule.Name] = struct{}{}
	}
	return nil
}
