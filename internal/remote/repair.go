package remote

import (
	"regexp"
	"strings"
)

var (
	controlChars     = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	breakAfterQuote  = regexp.MustCompile(`"\s*\n\s*`)
	breakBeforeQuote = regexp.MustCompile(`\n\s*"`)
)

// RepairJSON applies best-effort textual fixes to a model reply so it has
// a chance to parse: BOM and code fences are stripped, line breaks next to
// quotes and inside string values are removed, control characters and
// trailing commas are dropped, and a reply that does not end with "}" is
// cut back to its last complete object with the open brackets closed.
//
// RepairJSON is pure and idempotent.
func RepairJSON(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = stripFences(s)

	s = controlChars.ReplaceAllString(s, "")
	s = breakAfterQuote.ReplaceAllString(s, `"`)
	s = breakBeforeQuote.ReplaceAllString(s, `"`)
	s = scrubLiterals(s)
	s = strings.TrimSpace(s)

	if !strings.HasSuffix(s, "}") {
		s = closeTruncated(s)
	}
	return s
}

// closeTruncated cuts s after the last complete object and closes every
// bracket still open at that point
func closeTruncated(s string) string {
	var stack, open []byte
	cut := -1
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return s
			}
			stack = stack[:len(stack)-1]
			if c == '}' {
				cut = i
				open = append(open[:0], stack...)
			}
		}
	}
	if cut < 0 {
		return s
	}

	var b strings.Builder
	b.WriteString(s[:cut+1])
	for j := len(open) - 1; j >= 0; j-- {
		if open[j] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(strings.TrimPrefix(s, "json"), "JSON")
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// scrubLiterals removes raw CR and LF bytes inside string literals, which
// JSON does not allow there, and drops trailing commas before a closing
// bracket outside of them
func scrubLiterals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case (c == '\n' || c == '\r') && inString:
			continue
		case c == ',' && !inString:
			if j := skipCommaRun(s, i+1); j < len(s) && (s[j] == '}' || s[j] == ']') {
				i = j - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// skipCommaRun returns the index of the first byte from i on that is
// neither whitespace nor a comma
func skipCommaRun(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ',', ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
