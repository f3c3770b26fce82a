package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/cmdhistory/internal/config/loader"
	"github.com/dshills/cmdhistory/internal/engine/history"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CMDHISTORY_"

// DefaultFile is the config file name used when none is given.
const DefaultFile = "cmdhistory.toml"

// maxIncludeDepth limits nested @include directives in config files.
const maxIncludeDepth = 4

// Config is the full cmdhistory configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
	Scope   ScopeConfig   `toml:"scope"`
}

// HistoryConfig configures the undo/redo history.
type HistoryConfig struct {
	// MaxSize is the maximum number of undoable commands kept.
	MaxSize int `toml:"maxSize"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// ScopeConfig configures execution scopes.
type ScopeConfig struct {
	// Strict makes scopes return command failures instead of logging them.
	Strict bool `toml:"strict"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxSize: history.DefaultMaxSize},
		Logging: LoggingConfig{Level: "info"},
	}
}

var validLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "off", "none"}

// Validate checks every setting and returns all failures joined.
func (c Config) Validate() error {
	var errs []error
	if c.History.MaxSize < 1 {
		errs = append(errs, &ValidationError{
			Path:    "history.maxSize",
			Message: "must be at least 1",
			Value:   c.History.MaxSize,
		})
	}
	if !validLevel(c.Logging.Level) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "unknown level, expected one of " + strings.Join(validLevels, ", "),
			Value:   c.Logging.Level,
		})
	}
	return errors.Join(errs...)
}

func validLevel(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range validLevels {
		if s == l {
			return true
		}
	}
	return false
}

// Options controls where Load reads settings from.
type Options struct {
	// Path is the config file. Empty means DefaultFile.
	Path string
	// FS is the file system used to read Path. Nil means the OS.
	FS loader.FileSystem
	// SkipEnv disables the environment layer.
	SkipEnv bool
}

// Load builds a Config from defaults, the config file and the environment,
// then validates it.
func Load(opts Options) (Config, error) {
	path := opts.Path
	if path == "" {
		path = DefaultFile
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}

	fileValues, err := loader.NewTOMLLoaderWithFS(fsys, path).LoadWithIncludes(path, maxIncludeDepth)
	if err != nil {
		return Config{}, err
	}

	merged := loader.DeepMerge(nil, fileValues)
	var env *loader.EnvLoader
	if !opts.SkipEnv {
		env = loader.NewEnvLoader(EnvPrefix)
		envValues, err := env.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, envValues)
	}

	cfg, err := FromMap(merged)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return Config{}, attributeSources(err, env, path, fileValues)
	}
	return cfg, nil
}

// attributeSources fills in the Source of each ValidationError in err. The
// environment wins over the file, matching the merge order.
func attributeSources(err error, env *loader.EnvLoader, file string, fileValues map[string]any) error {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var ve *ValidationError
		if !errors.As(e, &ve) || ve.Source != "" {
			continue
		}
		if env != nil {
			if name, ok := env.Source(ve.Path); ok {
				ve.Source = name
				continue
			}
		}
		if _, ok := lookupPath(fileValues, ve.Path); ok {
			ve.Source = file
		}
	}
	return err
}

// FromMap decodes a settings map over the defaults. Keys that do not name a
// setting are ignored.
func FromMap(values map[string]any) (Config, error) {
	cfg := Default()
	if len(values) == 0 {
		return cfg, nil
	}
	if err := checkTypes(values); err != nil {
		return Config{}, err
	}

	data, err := toml.Marshal(values)
	if err != nil {
		return Config{}, fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding settings: %w", err)
	}
	return cfg, nil
}

// settingKinds lists every setting with the kind of value it takes.
var settingKinds = []struct {
	path string
	kind string
}{
	{"history.maxSize", "integer"},
	{"logging.level", "string"},
	{"logging.pretty", "boolean"},
	{"scope.strict", "boolean"},
}

// checkTypes reports settings whose value has the wrong kind, and sections
// that are not tables.
func checkTypes(values map[string]any) error {
	var errs []error
	for _, section := range []string{"history", "logging", "scope"} {
		if v, ok := values[section]; ok {
			if _, isTable := v.(map[string]any); !isTable {
				errs = append(errs, &ValidationError{Path: section, Message: "expected a table", Value: v})
			}
		}
	}
	for _, s := range settingKinds {
		v, ok := lookupPath(values, s.path)
		if !ok || kindOf(v) == s.kind {
			continue
		}
		errs = append(errs, &ValidationError{Path: s.path, Message: "expected " + s.kind, Value: v})
	}
	return errors.Join(errs...)
}

func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// lookupPath finds a dot-separated path in a nested settings map.
func lookupPath(values map[string]any, path string) (any, bool) {
	current := values
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	v, ok := current[parts[len(parts)-1]]
	return v, ok
}
