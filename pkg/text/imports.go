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
	"strings"
)

// TimezoneSymbol is the name rewritten expressions rely on.
const TimezoneSymbol = "timezone"

var (
	// groups: 1 indentation, 2 imported names (parenthesized, or the logical
	// line including backslash continuations)
	datetimeImportPattern = regexp.MustCompile(`(?m)^([ \t]*)from[ \t]+datetime[ \t]+import[ \t]*(\([^)]*\)|(?:\\\r?\n|[^\n#])*(?:#[^\n]*)?)`)

	// a call on the datetime class itself; datetime.datetime.now() reaches the
	// class through the module and needs no from-import
	constructionCallPattern = regexp.MustCompile(`(?:^|[^\w.])datetime\.(?:now|utcnow|today|fromtimestamp|utcfromtimestamp)\b`)

	topLevelImportPattern = regexp.MustCompile(`(?m)^(?:import[ \t]+\S|from[ \t]+\S+[ \t]+import\b)`)
	futureImportPattern   = regexp.MustCompile(`^from[ \t]+__future__[ \t]+import\b`)
	codingCookiePattern   = regexp.MustCompile(`^[ \t]*#.*coding[:=]`)
	commentPattern        = regexp.MustCompile(`#[^\n]*`)

	continuationReplacer = strings.NewReplacer("\\\r\n", " ", "\\\n", " ")
)

// 🧭 EnsureImport makes the timezone symbol importable from datetime.
//
// An existing "from datetime import" that already names timezone wins. One that
// lacks it is augmented in place. Without any such import, content that calls a
// datetime constructor gets a new statement before the first top-level import,
// or after the shebang, encoding cookie and module docstring. Anything inside
// a string literal or comment is not an import.
func EnsureImport(content string) (string, bool) {
	spans := stringSpans(content)

	var matches [][]int
	for _, m := range datetimeImportPattern.FindAllStringSubmatchIndex(content, -1) {
		if !inSpan(spans, m[0]) {
			matches = append(matches, m)
		}
	}

	for _, m := range matches {
		if importsName(content[m[4]:m[5]], TimezoneSymbol) {
			return content, false
		}
	}

	if len(matches) > 0 {
		return augmentImport(content, pickImport(matches)), true
	}

	if !constructionCallPattern.MatchString(content) {
		return content, false
	}

	return insertImport(content, spans), true
}

// pickImport prefers a module-level import over function-local ones.
func pickImport(matches [][]int) []int {
	for _, m := range matches {
		if m[3] == m[2] {
			return m
		}
	}
	return matches[0]
}

func augmentImport(content string, m []int) string {
	names := content[m[4]:m[5]]

	var updated string
	if strings.HasPrefix(names, "(") {
		updated = augmentParenthesized(names)
	} else {
		updated = augmentLine(names)
	}

	return content[:m[4]] + updated + content[m[5]:]
}

// augmentLine appends the symbol at the end of the logical line, before any
// trailing comment or statement separator.
func augmentLine(names string) string {
	code, rest := names, ""
	if idx := strings.IndexAny(names, "#;"); idx >= 0 {
		code, rest = names[:idx], names[idx:]
	}
	trimmed := strings.TrimRight(code, " \t\r")
	trailing := code[len(trimmed):]
	if rest != "" && trailing == "" {
		trailing = " "
	}
	return trimmed + ", " + TimezoneSymbol + trailing + rest
}

func augmentParenthesized(names string) string {
	inner := names[1 : len(names)-1]

	if strings.HasPrefix(strings.TrimLeft(inner, " \t"), "\n") || strings.HasPrefix(strings.TrimLeft(inner, " \t"), "\r\n") {
		indent := "    "
		for _, line := range strings.Split(inner, "\n")[1:] {
			if strings.TrimSpace(line) == "" {
				continue
			}
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			break
		}
		newline := "\n"
		if strings.Contains(inner, "\r\n") {
			newline = "\r\n"
		}
		head := strings.TrimRight(inner[:strings.Index(inner, "\n")], "\r")
		return "(" + head + newline + indent + TimezoneSymbol + "," + inner[len(head):] + ")"
	}

	trimmed := strings.TrimRight(inner, " \t")
	sep := ", "
	if strings.HasSuffix(trimmed, ",") {
		sep = " "
	}
	return "(" + trimmed + sep + TimezoneSymbol + inner[len(trimmed):] + ")"
}

// insertImport adds a fresh import statement. __future__ imports must stay
// first, so the statement goes before the first other top-level import or,
// failing that, after the shebang, encoding cookie and module docstring.
func insertImport(content string, spans [][2]int) string {
	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
	}
	statement := "from datetime import " + TimezoneSymbol + newline

	afterFuture := -1
	for _, loc := range topLevelImportPattern.FindAllStringIndex(content, -1) {
		if inSpan(spans, loc[0]) {
			continue
		}
		line := content[loc[0]:lineEnd(content, loc[0])]
		if futureImportPattern.MatchString(line) {
			afterFuture = lineEnd(content, loc[0])
			continue
		}
		return content[:loc[0]] + statement + content[loc[0]:]
	}

	if afterFuture >= 0 {
		return insertAfter(content, afterFuture, statement, newline)
	}

	end, pos := -1, 0
	for i := 0; i < 2 && pos < len(content); i++ {
		e := lineEnd(content, pos)
		line := content[pos:e]
		if !(i == 0 && strings.HasPrefix(line, "#!")) && !codingCookiePattern.MatchString(line) {
			break
		}
		end, pos = e, e+1
	}

	if docEnd, ok := docstringAt(content, pos, spans); ok {
		end = lineEnd(content, docEnd)
	}

	if end < 0 {
		return statement + content
	}
	return insertAfter(content, end, statement, newline)
}

// insertAfter inserts statement after the line ending at end.
func insertAfter(content string, end int, statement, newline string) string {
	if end == len(content) {
		return content + newline + statement
	}
	return content[:end+1] + statement + content[end+1:]
}

// docstringAt reports the end of a triple-quoted string that is the first
// thing at or after pos.
func docstringAt(content string, pos int, spans [][2]int) (int, bool) {
	if pos > len(content) {
		return 0, false
	}
	start := pos + len(content[pos:]) - len(strings.TrimLeft(content[pos:], " \t\r\n"))
	if !strings.HasPrefix(content[start:], `"""`) && !strings.HasPrefix(content[start:], "'''") {
		return 0, false
	}
	for _, s := range spans {
		if s[0] == start {
			return s[1], true
		}
	}
	return 0, false
}

// lineEnd returns the index of the newline ending the line that starts at pos,
// or len(content) for the last line.
func lineEnd(content string, pos int) int {
	if idx := strings.IndexByte(content[pos:], '\n'); idx >= 0 {
		return pos + idx
	}
	return len(content)
}

// stringSpans returns the [start, end) offsets of every string literal,
// skipping comments.
func stringSpans(content string) [][2]int {
	var spans [][2]int
	for i := 0; i < len(content); {
		switch content[i] {
		case '#':
			i = lineEnd(content, i)
		case '"', '\'':
			end := stringEnd(content, i)
			spans = append(spans, [2]int{i, end})
			i = end
		default:
			i++
		}
	}
	return spans
}

// stringEnd returns the offset just past the literal opening at start. An
// unterminated single-quoted literal ends at the newline.
func stringEnd(content string, start int) int {
	quote := content[start : start+1]
	if strings.HasPrefix(content[start:], strings.Repeat(quote, 3)) {
		quote = strings.Repeat(quote, 3)
	}
	for i := start + len(quote); i < len(content); i++ {
		switch {
		case content[i] == '\\':
			i++
		case len(quote) == 1 && content[i] == '\n':
			return i
		case strings.HasPrefix(content[i:], quote):
			return i + len(quote)
		}
	}
	return len(content)
}

func inSpan(spans [][2]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

// importsName reports whether an import name list binds name. A star import
// counts; an alias ("timezone as tz") does not.
func importsName(names, name string) bool {
	names = commentPattern.ReplaceAllString(continuationReplacer.Replace(names), "")
	if idx := strings.IndexByte(names, ';'); idx >= 0 {
		names = names[:idx]
	}
	names = strings.Trim(strings.TrimSpace(names), "()")
	for _, part := range strings.Split(names, ",") {
		fields := strings.Fields(part)
		switch {
		case len(fields) == 1 && (fields[0] == name || fields[0] == "*"):
			return true
		case len(fields) == 3 && fields[1] == "as" && fields[2] == name:
			return true
		}
	}
	return false
}
