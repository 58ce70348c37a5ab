package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNotReadOnly is returned for ad hoc input that could modify the database.
var ErrNotReadOnly = errors.New("only a single SELECT, WITH or VALUES statement is allowed")

var readOnlyKeywords = map[string]bool{"SELECT": true, "WITH": true, "VALUES": true}

// checkReadOnly accepts exactly one statement (a trailing semicolon is allowed)
// whose first keyword starts a query. Quoted text and comments are skipped when
// looking for statement separators.
func checkReadOnly(stmt string) error {
	statements := 0
	pendingText := false
	rs := []rune(stmt)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '-' && i+1 < len(rs) && rs[i+1] == '-':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(rs) && rs[i+1] == '*':
			i += 2
			for i < len(rs) && !(rs[i] == '*' && i+1 < len(rs) && rs[i+1] == '/') {
				i++
			}
			i++
		case c == '\'' || c == '"' || c == '`' || c == '[':
			closer := c
			if c == '[' {
				closer = ']'
			}
			i++
			for i < len(rs) && rs[i] != closer {
				i++
			}
			if i >= len(rs) {
				return fmt.Errorf("%w: unterminated quoted text", ErrNotReadOnly)
			}
			pendingText = true
		case c == ';':
			if pendingText {
				statements++
				pendingText = false
			}
		case !unicode.IsSpace(c):
			if !pendingText && statements > 0 {
				return ErrNotReadOnly
			}
			pendingText = true
		}
	}
	if pendingText {
		statements++
	}
	if statements != 1 {
		return ErrNotReadOnly
	}
	if kw := firstKeyword(stmt); !readOnlyKeywords[kw] {
		return fmt.Errorf("%w (got %s)", ErrNotReadOnly, kw)
	}
	return nil
}

// firstKeyword returns the upper-cased leading word, skipping whitespace and comments.
func firstKeyword(stmt string) string {
	s := stmt
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		switch {
		case strings.HasPrefix(s, "--"):
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = s[i+1:]
				continue
			}
			return ""
		case strings.HasPrefix(s, "/*"):
			if i := strings.Index(s[2:], "*/"); i >= 0 {
				s = s[i+4:]
				continue
			}
			return ""
		case strings.HasPrefix(s, "("):
			s = s[1:]
			continue
		}
		break
	}
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		end = len(s)
	}
	return strings.ToUpper(s[:end])
}
