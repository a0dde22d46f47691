package gitversion

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Publisher receives published variables.
type Publisher interface {
	SetOutput(name string, value string)
	SetVariable(name string, value string)
	Error(msg string)
}

// Publish emits every field as the outputs <name> and GitVersion_<name> and
// sets variables of the same names, where name is the camelCase field name.
// A field that cannot be published is logged and skipped.
func Publish(p Publisher, fields []Field) {
	for _, field := range fields {
		if field.Err != nil {
			p.Error(fmt.Sprintf(messages.GitversionOutputFieldErrFmt, field.Name, field.Err))
			continue
		}
		name := camelCase(field.Name)
		p.SetOutput(name, field.Value)
		p.SetOutput(OutputPrefix+name, field.Value)
		p.SetVariable(name, field.Value)
		p.SetVariable(OutputPrefix+name, field.Value)
	}
}

// camelCase lowercases the first letter of name.
func camelCase(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
