package gitversion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Field is one top-level property of the GitVersion JSON output. Err is set
// when the value cannot be published as a string.
type Field struct {
	Name  string
	Value string
	Err   error
}

// ParseOutput extracts the JSON object from stdout, ignoring log noise
// around it, and returns its top-level fields in document order. The span
// from the first '{' to the last '}' is tried first, then the span from the
// last '{'.
func ParseOutput(stdout string) ([]Field, error) {
	first := strings.IndexByte(stdout, '{')
	end := strings.LastIndexByte(stdout, '}')
	if first < 0 || end < first {
		return nil, &OutputParseError{}
	}

	fields, err := decodeFields(stdout[first : end+1])
	if err == nil {
		return fields, nil
	}
	if last := strings.LastIndexByte(stdout[:end], '{'); last > first {
		if fields, lastErr := decodeFields(stdout[last : end+1]); lastErr == nil {
			return fields, nil
		}
	}
	return nil, &OutputParseError{Err: err}
}

func decodeFields(doc string) ([]Field, error) {
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf(messages.GitversionUnexpectedTokenFmt, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		value, err := stringify(raw)
		fields = append(fields, Field{Name: name, Value: value, Err: err})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New(messages.GitversionTrailingContent)
	}
	return fields, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf(messages.GitversionExpectedDelimFmt, want, tok)
	}
	return nil
}

// stringify renders a scalar JSON value the way it is published.
func stringify(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return "", errors.New(messages.GitversionNullValue)
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		return "", fmt.Errorf(messages.GitversionStructuredValueFmt, "object")
	case len(trimmed) > 0 && trimmed[0] == '[':
		return "", fmt.Errorf(messages.GitversionStructuredValueFmt, "array")
	default:
		return string(trimmed), nil
	}
}
