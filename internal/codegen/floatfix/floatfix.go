// Package floatfix appends float suffixes to bare numeric literals in
// initializer text destined for floating point objects.
package floatfix

import (
	"regexp"
	"strings"
)

// protected spans are replaced by placeholders before rewriting. Leftmost
// match wins, so a quote inside a comment stays part of the comment.
var protected = regexp.MustCompile(
	`/\*[\s\S]*?\*/` + // block comment
		`|//[^\n]*` + // line comment
		`|"(?:\\.|[^"\\])*"` + // string literal
		`|\[[^\]]*\]` + // array index
		`|\(\s*[A-Za-z_][A-Za-z0-9_]*(?:\s+[A-Za-z_][A-Za-z0-9_]*)*\s*\*+\s*\)`, // pointer cast
)

const mark = '\x00'

// IsFloatType reports whether a declared element type names a floating
// point type.
func IsFloatType(typ string) bool {
	t := strings.ToLower(strings.TrimSpace(typ))
	t = strings.TrimPrefix(t, "const ")
	t = strings.TrimPrefix(t, "static ")
	t = strings.TrimSpace(t)
	if strings.Contains(t, "*") {
		return false
	}
	switch t {
	case "f32", "f64", "real", "real32", "real64":
		return true
	}
	return strings.Contains(t, "float") || strings.Contains(t, "double")
}

// Normalize rewrites value if typ is a floating type; otherwise value is
// returned unchanged.
func Normalize(value, typ string) string {
	if !IsFloatType(typ) {
		return value
	}
	return Rewrite(value)
}

// Rewrite suffixes every bare numeric literal in s: "3" -> "3.f",
// "3.0" -> "3.0f". Already suffixed literals are left alone, which makes
// Rewrite idempotent.
func Rewrite(s string) string {
	if s == "" {
		return s
	}
	var saved []string
	masked := protected.ReplaceAllStringFunc(s, func(m string) string {
		saved = append(saved, m)
		return placeholder(len(saved) - 1)
	})
	out := suffix(masked)
	if len(saved) == 0 {
		return out
	}
	for i := len(saved) - 1; i >= 0; i-- {
		out = strings.Replace(out, placeholder(i), saved[i], 1)
	}
	return out
}

// placeholder encodes i in letters only so the digit scanner never sees it.
func placeholder(i int) string {
	var b strings.Builder
	b.WriteRune(mark)
	for {
		b.WriteByte(byte('A' + i%26))
		i /= 26
		if i == 0 {
			break
		}
	}
	b.WriteRune(mark)
	return b.String()
}

func isIdent(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func suffix(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	i := 0
	for i < len(s) {
		c := s[i]
		startsNumber := isDigit(c) || c == '.' && i+1 < len(s) && isDigit(s[i+1])
		if !startsNumber || i > 0 && (isIdent(s[i-1]) || s[i-1] == '.') {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		dot := false
		if j < len(s) && s[j] == '.' {
			dot = true
			j++
			for j < len(s) && isDigit(s[j]) {
				j++
			}
		}
		lit := s[i:j]
		next := byte(0)
		if j < len(s) {
			next = s[j]
		}
		switch {
		case next == '.' || isIdent(next):
			// suffixed (3.0f, 3.f), exponent, hex or part of an identifier
			for j < len(s) && (isIdent(s[j]) || s[j] == '.') {
				j++
			}
			b.WriteString(s[i:j])
		case dot:
			b.WriteString(lit)
			b.WriteByte('f')
		default:
			b.WriteString(lit)
			b.WriteString(".f")
		}
		i = j
	}
	return b.String()
}
