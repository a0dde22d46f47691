// Package envfile reads dotenv-style KEY=VALUE files used to seed agent
// variables for local runs.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Entry is one assignment in file order.
type Entry struct {
	Key   string
	Value string
}

// Parse returns the assignments in content in file order. Blank lines and
// # comments are skipped; an optional "export " prefix is accepted. Values
// may be double quoted (with \\, \", \n, \r, \t escapes) or single quoted
// (literal). Later duplicates win when converted with ToMap.
func Parse(content string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(content))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		entry, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return entries, nil
}

// ToMap folds entries into a map.
func ToMap(entries []Entry) map[string]string {
	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		values[entry.Key] = entry.Value
	}
	return values
}

func parseLine(line string) (Entry, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))

	key, raw, found := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return Entry{}, false, errors.New(messages.EnvfileExpectedKeyValue)
	}
	raw = strings.TrimSpace(raw)

	var value string
	var rest string
	switch {
	case strings.HasPrefix(raw, `"`):
		end := closingDoubleQuote(raw)
		if end < 0 {
			return Entry{}, false, errors.New(messages.EnvfileUnterminatedQuotedValue)
		}
		value, rest = unescape(raw[1:end]), raw[end+1:]
	case strings.HasPrefix(raw, `'`):
		end := strings.IndexByte(raw[1:], '\'')
		if end < 0 {
			return Entry{}, false, errors.New(messages.EnvfileUnterminatedQuotedValue)
		}
		value, rest = raw[1:end+1], raw[end+2:]
	default:
		return Entry{Key: key, Value: raw}, true, nil
	}

	if rest = strings.TrimSpace(rest); rest != "" && !strings.HasPrefix(rest, "#") {
		return Entry{}, false, errors.New(messages.EnvfileInvalidQuotedSuffix)
	}
	return Entry{Key: key, Value: value}, true, nil
}

// closingDoubleQuote returns the index of the first unescaped quote after
// the opening one, or -1.
func closingDoubleQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

var unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t")

func unescape(s string) string {
	return unescaper.Replace(s)
}
