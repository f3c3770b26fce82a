package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
//
// Variables listed in the mapping go to their configured path. Any other
// variable with the prefix is converted by name: the first segment after the
// prefix is the section and the rest form a camelCase key, so
// CMDHISTORY_HISTORY_MAX_SIZE becomes history.maxSize.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // env var -> config path
	sources map[string]string // config path -> env var, from the last Load
	environ func() []string
}

// NewEnvLoader creates an environment variable loader. The prefix should
// include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, nil)
}

// NewEnvLoaderWithMapping creates a loader with explicit variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	if mapping == nil {
		mapping = make(map[string]string)
	}
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// AddMapping adds an explicit environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads environment variables and returns a configuration map.
// Empty values are kept, not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	l.sources = make(map[string]string)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			if !strings.HasPrefix(name, l.prefix) || name == l.prefix {
				continue
			}
			path = l.envToPath(name)
		}
		setByPath(config, path, parseValue(value))
		l.sources[path] = name
	}

	return config, nil
}

// Source returns the variable that set path during the last Load. A variable
// that set a parent of path also counts.
func (l *EnvLoader) Source(path string) (string, bool) {
	for p := path; p != ""; {
		if name, ok := l.sources[p]; ok {
			return name, true
		}
		i := strings.LastIndexByte(p, '.')
		if i < 0 {
			break
		}
		p = p[:i]
	}
	return "", false
}

// envToPath converts CMDHISTORY_HISTORY_MAX_SIZE to history.maxSize.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	var key strings.Builder
	key.WriteString(strings.ToLower(parts[1]))
	for _, part := range parts[2:] {
		if part == "" {
			continue
		}
		key.WriteString(strings.ToUpper(part[:1]))
		key.WriteString(strings.ToLower(part[1:]))
	}
	return section + "." + key.String()
}

// parseValue converts a raw variable value to a bool, number, JSON value or
// string, in that order of preference.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
