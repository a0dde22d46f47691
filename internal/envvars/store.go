// Package envvars abstracts the process-wide variable table so build agents can
// run against the real environment or an in-memory map in tests.
package envvars

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/conn-castle/gittools-runner/internal/messages"
)

// Store reads and writes named variables.
type Store interface {
	Get(key string) string
	Lookup(key string) (string, bool)
	Set(key string, value string) error
	Environ() []string
}

// OS implements Store using the process environment.
type OS struct{}

// Get returns the value of the environment variable named by key.
func (OS) Get(key string) string {
	return os.Getenv(key)
}

// Lookup returns the value and presence of an environment variable.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set updates the process environment.
func (OS) Set(key string, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf(messages.EnvvarsSetFailedFmt, key, err)
	}
	return nil
}

// Environ returns a copy of the process environment.
func (OS) Environ() []string {
	return os.Environ()
}

// Map is an in-memory Store. The zero value is ready to use.
type Map struct {
	mu   sync.Mutex
	vars map[string]string
}

// NewMap returns a Map seeded from KEY=VALUE entries.
func NewMap(entries ...string) *Map {
	m := &Map{}
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		_ = m.Set(key, value)
	}
	return m
}

// Get returns the value for key or an empty string.
func (m *Map) Get(key string) string {
	value, _ := m.Lookup(key)
	return value
}

// Lookup returns the value for key and whether it was set.
func (m *Map) Lookup(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.vars[key]
	return value, ok
}

// Set stores value under key.
func (m *Map) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	return nil
}

// Environ returns the stored variables as sorted KEY=VALUE entries.
func (m *Map) Environ() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	env := make([]string, 0, len(m.vars))
	for key, value := range m.vars {
		env = append(env, key+"="+value)
	}
	sort.Strings(env)
	return env
}
