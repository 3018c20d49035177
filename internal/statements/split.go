package statements

import (
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/schemaload/pkg/schemaload"
)

// Split returns the executable statements of text in file order.
// Each returned statement is trimmed and carries a trailing terminator.
func Split(text string) []string {
	fragments := strings.Split(text, schemaload.StatementTerminator)
	stmts := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		frag = stripLeadingComments(strings.TrimSpace(frag))
		if frag == "" {
			continue
		}
		stmts = append(stmts, frag+schemaload.StatementTerminator)
	}
	return stmts
}

// stripLeadingComments drops whole lines from the front of fragment while
// they start with the comment marker. The result is trimmed.
func stripLeadingComments(fragment string) string {
	for strings.HasPrefix(fragment, schemaload.CommentMarker) {
		nl := strings.IndexByte(fragment, '\n')
		if nl < 0 {
			return ""
		}
		fragment = strings.TrimSpace(fragment[nl+1:])
	}
	return fragment
}

// Preview returns at most n characters of stmt, counted in runes so
// multi-byte identifiers are never cut mid-character.
func Preview(stmt string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(stmt) <= n {
		return stmt
	}
	runes := []rune(stmt)
	return string(runes[:n])
}
