//go:build tools

// Package tools pins the versions of developer tools run through go run.
package tools

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "gotest.tools/gotestsum"
)
