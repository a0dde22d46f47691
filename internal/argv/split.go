// Package argv splits free-form argument strings into argument vectors.
package argv

import (
	"strings"
	"unicode"
)

// Split tokenizes s the way a shell user would expect for simple argument strings.
// Whitespace outside double quotes separates arguments; double quotes toggle a
// quoted region; inside quotes a backslash escapes the next character, and only
// an escaped quote loses its backslash.
func Split(s string) []string {
	var (
		args      []string
		current   strings.Builder
		inQuotes  bool
		escaped   bool
		lastSpace = true
	)

	appendRune := func(r rune) {
		if escaped && r != '"' {
			current.WriteByte('\\')
		}
		current.WriteRune(r)
		escaped = false
	}

	for _, r := range s {
		if unicode.IsSpace(r) && !inQuotes {
			if !lastSpace {
				args = append(args, current.String())
				current.Reset()
			}
			lastSpace = true
			continue
		}
		lastSpace = false

		switch {
		case r == '"':
			if escaped {
				appendRune(r)
			} else {
				inQuotes = !inQuotes
			}
		case r == '\\' && escaped:
			appendRune(r)
		case r == '\\' && inQuotes:
			escaped = true
		default:
			appendRune(r)
		}
	}

	if !lastSpace {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}
