package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/gittools-runner/internal/buildenv"
	"github.com/conn-castle/gittools-runner/internal/envfile"
	"github.com/conn-castle/gittools-runner/internal/envvars"
	"github.com/conn-castle/gittools-runner/internal/messages"
)

// File is an inputs file. [inputs] holds task inputs by name; [env] holds
// raw variables such as the agent directory variables.
//
//	[inputs]
//	versionSpec = "6.x"
//	useConfigFile = true
//	overrideConfig = ["tag-prefix=v"]
//
//	[env]
//	AGENT_SOURCE_DIR = "."
type File struct {
	Inputs map[string]any    `toml:"inputs"`
	Env    map[string]string `toml:"env"`
}

// LoadFile reads and parses the inputs file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator.
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	return ParseFile(data, path)
}

// ParseFile parses inputs file data. Unknown top-level keys are rejected.
func ParseFile(data []byte, source string) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFileFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf(messages.ConfigUnrecognizedKeysFmt, source, err)
	}
	if _, err := f.variables(source); err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeStrict(data []byte) error {
	var f File
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&f)
}

// Variables returns the variables the file defines: INPUT_<NAME> for each
// input and each env entry verbatim. Arrays become newline-delimited lists.
func (f *File) Variables() map[string]string {
	vars, _ := f.variables("")
	return vars
}

func (f *File) variables(source string) (map[string]string, error) {
	vars := make(map[string]string, len(f.Inputs)+len(f.Env))
	for key, value := range f.Env {
		vars[key] = value
	}
	for name, raw := range f.Inputs {
		value, ok := inputString(raw)
		if !ok {
			return nil, fmt.Errorf(messages.ConfigUnsupportedValueFmt, source, "inputs", name, raw)
		}
		vars[buildenv.InputVariable(name)] = value
	}
	return vars, nil
}

func inputString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := inputString(item)
			if !ok {
				return "", false
			}
			items = append(items, s)
		}
		return strings.Join(items, "\n"), true
	default:
		return "", false
	}
}

// LoadEnvFile reads a dotenv-style file into a map.
func LoadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator.
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadEnvFileFmt, path, err)
	}
	entries, err := envfile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	return envfile.ToMap(entries), nil
}

// Seed sets each variable that store does not already define and returns
// how many were set. Keys are applied in sorted order.
func Seed(store envvars.Store, vars map[string]string) (int, error) {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seeded := 0
	for _, key := range keys {
		if _, ok := store.Lookup(key); ok {
			continue
		}
		if err := store.Set(key, vars[key]); err != nil {
			return seeded, fmt.Errorf(messages.ConfigSeedVariableFmt, key, err)
		}
		seeded++
	}
	return seeded, nil
}
