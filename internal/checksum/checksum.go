package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fingerprint holds both digests of one schema text.
type Fingerprint struct {
	Raw     string
	Content string
}

// Short returns the first 12 hex characters of the raw digest.
func (f Fingerprint) Short() string {
	if len(f.Raw) < 12 {
		return f.Raw
	}
	return f.Raw[:12]
}

// Of computes the fingerprint of text.
func Of(text string) Fingerprint {
	return Fingerprint{
		Raw:     digest(text),
		Content: digest(Normalize(text)),
	}
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Normalize lowercases text outside string literals and quoted identifiers,
// removes -- and /* */ comments and collapses every whitespace run to a
// single space.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := false

	emit := func(s string, fold bool) {
		for _, r := range s {
			if unicode.IsSpace(r) {
				if !space && b.Len() > 0 {
					b.WriteByte(' ')
				}
				space = true
				continue
			}
			if fold {
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
			space = false
		}
	}

	for rest := text; rest != ""; {
		switch {
		case strings.HasPrefix(rest, "--"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				rest = ""
				continue
			}
			emit(" ", false)
			rest = rest[end+1:]

		case strings.HasPrefix(rest, "/*"):
			emit(" ", false)
			rest = skipBlockComment(rest)

		case rest[0] == '\'' || rest[0] == '"':
			lit := quoted(rest)
			emit(lit, false)
			rest = rest[len(lit):]

		case rest[0] == '$':
			if tag := dollarTag(rest); tag != "" {
				body := rest[len(tag):]
				end := strings.Index(body, tag)
				if end < 0 {
					emit(rest, false)
					rest = ""
					continue
				}
				emit(rest[:len(tag)+end+len(tag)], false)
				rest = body[end+len(tag):]
				continue
			}
			emit("$", false)
			rest = rest[1:]

		default:
			_, size := utf8.DecodeRuneInString(rest)
			emit(rest[:size], true)
			rest = rest[size:]
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// skipBlockComment returns s after the block comment it starts with.
// PostgreSQL block comments nest.
func skipBlockComment(s string) string {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch {
		case s[i] == '/' && s[i+1] == '*':
			depth++
			i++
		case s[i] == '*' && s[i+1] == '/':
			depth--
			i++
			if depth == 0 {
				return s[i+1:]
			}
		}
	}
	return ""
}

// quoted returns the string literal or quoted identifier at the start of s.
// The opening character closes it and is escaped by doubling. An
// unterminated run extends to the end of s.
func quoted(s string) string {
	q := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return s[:i+1]
	}
	return s
}

// dollarTag returns the $tag$ or $$ opener at the start of s, or "".
func dollarTag(s string) string {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			return s[:i+1]
		}
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !letter && (i == 1 || c < '0' || c > '9') {
			return ""
		}
	}
	return ""
}
