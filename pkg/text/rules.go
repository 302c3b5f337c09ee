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
	"slices"
	"strings"
)

// CanonicalSuffix turns a timezone-aware datetime receiver into a millisecond
// precision ISO 8601 string ending in "Z".
const CanonicalSuffix = `.isoformat(timespec='milliseconds').replace('+00:00', 'Z')`

// 📏 RewriteRule is a named text-to-text transformation.
//
// Apply must be pure and idempotent: feeding a rule its own output reports
// zero matches.
type RewriteRule struct {
	Name     string // stable identifier used in config and reports
	Category string // what the rule fixes, as shown in the run summary
	Before   string // documented input example
	After    string // Before rewritten by this rule alone

	// NeedsTimezone is set when the rewritten text references timezone.utc
	NeedsTimezone bool

	apply func(content string) (string, int)
}

// NewRule creates a rule from a text transform returning the rewritten
// content and its match count.
func NewRule(name, category string, apply func(content string) (string, int)) RewriteRule {
	return RewriteRule{Name: name, Category: category, apply: apply}
}

// Apply runs the rule over content and returns the new content and the number
// of non-overlapping matches that were rewritten.
func (r RewriteRule) Apply(content string) (string, int) {
	if r.apply == nil {
		return content, 0
	}
	return r.apply(content)
}

var (
	offsetThenZPattern = regexp.MustCompile(
		`(\bdatetime\.now\(\s*(?:tz\s*=\s*)?(?:(?:datetime\.)?timezone\.utc|UTC)\s*\))\.isoformat\(\s*\)\s*\+\s*["']Z["']`)

	naiveUtcnowPattern        = regexp.MustCompile(`(^|[^\w.])datetime\.utcnow\(\s*\)`)
	moduleUtcnowPattern       = regexp.MustCompile(`(^|[^\w.])datetime\.datetime\.utcnow\(\s*\)`)
	naiveFromTimestampPattern = regexp.MustCompile(`(^|[^\w.])datetime\.utcfromtimestamp\(([^()]+)\)`)
	moduleFromTimestamp       = regexp.MustCompile(`(^|[^\w.])datetime\.datetime\.utcfromtimestamp\(([^()]+)\)`)
	utcnowFactoryPattern      = regexp.MustCompile(`(default_factory\s*=\s*)datetime\.utcnow([^\w(]|$)`)

	isoformatZPattern = regexp.MustCompile(
		`\.isoformat\(\s*(?:timespec\s*=\s*["']milliseconds["']\s*)?\)\s*\+\s*["']Z["']`)

	literalOffsetZPattern = regexp.MustCompile(
		`"(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?)\+00:00Z"`)

	// groups: 1 assignment target, 2 receiver wrapped in str(), 3 bare receiver
	timestampAssignPattern = regexp.MustCompile(
		`((?:\btimestamp|\[\s*"timestamp"\s*\])\s*=\s*|"timestamp"\s*:\s*)` +
			`(?:str\(\s*([A-Za-z_][\w.]*(?:\([^()]*\))?)\.isoformat\([^()]*\)\s*\)` +
			`|([A-Za-z_][\w.]*(?:\([^()]*\))?)\.isoformat\([^()]*\))` +
			`\s*\+\s*["']Z["']`)
)

var defaultRules = []RewriteRule{
	{
		Name:     "offset-then-z",
		Category: `aware "now" serialized with offset plus a "Z" suffix`,
		Before:   `ts = datetime.now(timezone.utc).isoformat() + "Z"`,
		After:    `ts = datetime.now(timezone.utc)` + CanonicalSuffix,
		apply:    regexpRewrite(offsetThenZPattern, "${1}"+CanonicalSuffix),
	},
	{
		Name:          "naive-utcnow",
		Category:      "deprecated naive UTC constructors (utcnow, utcfromtimestamp)",
		Before:        `created = datetime.utcnow()`,
		After:         `created = datetime.now(timezone.utc)`,
		NeedsTimezone: true,
		apply: chain(
			regexpRewrite(moduleUtcnowPattern, "${1}datetime.datetime.now(datetime.timezone.utc)"),
			regexpRewrite(moduleFromTimestamp, "${1}datetime.datetime.fromtimestamp(${2}, datetime.timezone.utc)"),
			regexpRewrite(naiveUtcnowPattern, "${1}datetime.now(timezone.utc)"),
			regexpRewrite(naiveFromTimestampPattern, "${1}datetime.fromtimestamp(${2}, timezone.utc)"),
			regexpRewrite(utcnowFactoryPattern, "${1}lambda: datetime.now(timezone.utc)${2}"),
		),
	},
	{
		Name:     "isoformat-z-concat",
		Category: `isoformat() followed by a "Z" concatenation`,
		Before:   `stamp = event.created_at.isoformat() + "Z"`,
		After:    `stamp = event.created_at` + CanonicalSuffix,
		apply:    regexpRewrite(isoformatZPattern, CanonicalSuffix),
	},
	{
		Name:     "literal-offset-z",
		Category: `timestamp literals ending in "+00:00Z"`,
		Before:   `expected = "2024-01-01T00:00:00.000+00:00Z"`,
		After:    `expected = "2024-01-01T00:00:00.000Z"`,
		apply:    regexpRewrite(literalOffsetZPattern, `"${1}Z"`),
	},
	{
		Name:     "timestamp-assignment",
		Category: `"timestamp" assignments built from isoformat plus "Z"`,
		Before:   `payload = {"timestamp": str(now.isoformat()) + "Z"}`,
		After:    `payload = {"timestamp": now` + CanonicalSuffix + `}`,
		apply:    rewriteTimestampAssignment,
	},
}

// 📚 DefaultRules returns the built-in rules in application order.
func DefaultRules() []RewriteRule {
	return slices.Clone(defaultRules)
}

// regexpRewrite replaces every match of re with the expanded template.
func regexpRewrite(re *regexp.Regexp, template string) func(string) (string, int) {
	return func(content string) (string, int) {
		n := len(re.FindAllStringIndex(content, -1))
		if n == 0 {
			return content, 0
		}
		return re.ReplaceAllString(content, template), n
	}
}

// chain runs each rewrite on the output of the previous one and sums the counts.
func chain(steps ...func(string) (string, int)) func(string) (string, int) {
	return func(content string) (string, int) {
		total := 0
		for _, step := range steps {
			var n int
			content, n = step(content)
			total += n
		}
		return content, total
	}
}

func rewriteTimestampAssignment(content string) (string, int) {
	matches := timestampAssignPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		target := content[m[2]:m[3]]
		receiver := ""
		if m[4] >= 0 {
			receiver = content[m[4]:m[5]]
		} else {
			receiver = content[m[6]:m[7]]
		}
		b.WriteString(content[last:m[0]])
		b.WriteString(target)
		b.WriteString(receiver)
		b.WriteString(CanonicalSuffix)
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String(), len(matches)
}
