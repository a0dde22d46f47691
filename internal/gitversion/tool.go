// Package gitversion builds GitVersion command lines and publishes the
// variables GitVersion computes.
package gitversion

import (
	"fmt"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Tool identity.
const (
	ToolName     = "GitVersion.Tool"
	Executable   = "dotnet-gitversion"
	OutputPrefix = "GitVersion_"
)

// ExecutionError reports a GitVersion run that exited non-zero.
type ExecutionError struct {
	Code    int
	Message string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf(messages.GitversionExecutionFailedFmt, e.Code, e.Message)
}

// OutputParseError reports GitVersion output without a well-formed JSON object.
type OutputParseError struct {
	Err error
}

func (e *OutputParseError) Error() string {
	if e.Err == nil {
		return messages.GitversionNonJSONOutput
	}
	return fmt.Sprintf(messages.GitversionParseFailedFmt, e.Err)
}

func (e *OutputParseError) Unwrap() error {
	return e.Err
}
