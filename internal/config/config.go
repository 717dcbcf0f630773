package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/propbrowser/internal/config/loader"
	"github.com/dshills/propbrowser/internal/logging"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PROPBROWSER_"

// Config is the session configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Tree    TreeConfig    `toml:"tree" yaml:"tree"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-" yaml:"-"`
}

// LoggingConfig configures the session logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// TreeConfig configures the tree viewer.
type TreeConfig struct {
	Indentation                int  `toml:"indentation" yaml:"indentation"`
	RootDecorated              bool `toml:"rootDecorated" yaml:"rootDecorated"`
	AlternatingRowColors       bool `toml:"alternatingRowColors" yaml:"alternatingRowColors"`
	HeaderVisible              bool `toml:"headerVisible" yaml:"headerVisible"`
	SplitterPosition           int  `toml:"splitterPosition" yaml:"splitterPosition"`
	MarkPropertiesWithoutValue bool `toml:"markPropertiesWithoutValue" yaml:"markPropertiesWithoutValue"`
	ExpandNew                  bool `toml:"expandNew" yaml:"expandNew"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Tree: TreeConfig{
			Indentation:          2,
			RootDecorated:        true,
			AlternatingRowColors: true,
			HeaderVisible:        true,
			SplitterPosition:     24,
			ExpandNew:            true,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() (logging.Level, error) {
	level, ok := logging.ParseLevel(c.Logging.Level)
	if !ok {
		return level, &SettingError{Path: "logging.level", Value: c.Logging.Level, Err: ErrInvalidLevel}
	}
	return level, nil
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Tree.Indentation < 0 {
		errs = append(errs, &SettingError{Path: "tree.indentation", Value: c.Tree.Indentation, Err: ErrInvalidValue})
	}
	if c.Tree.SplitterPosition < 0 {
		errs = append(errs, &SettingError{Path: "tree.splitterPosition", Value: c.Tree.SplitterPosition, Err: ErrInvalidValue})
	}
	return errors.Join(errs...)
}

// Options controls Load.
type Options struct {
	// Path is the configuration file. Empty means defaults and environment
	// only.
	Path string
	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem
	// SkipEnv disables environment overrides.
	SkipEnv bool
}

// Load builds a configuration from defaults, the file at opts.Path and the
// environment, then validates it.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	var merged map[string]any
	if opts.Path != "" {
		data, err := loadFile(opts)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
		cfg.Path = opts.Path
	}

	if !opts.SkipEnv {
		env, err := loader.NewEnvLoader(EnvPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	if err := cfg.Apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(opts Options) (map[string]any, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}

	var l loader.FileLoader
	switch strings.ToLower(filepath.Ext(opts.Path)) {
	case ".toml":
		l = loader.NewTOMLLoaderWithFS(fsys, opts.Path)
	case ".yaml", ".yml":
		l = loader.NewYAMLLoaderWithFS(fsys, opts.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.Path)
	}

	if _, err := fsys.Stat(opts.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, opts.Path)
	}

	data, err := l.Load()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// setting applies one raw value to a Config.
type setting struct {
	path  string
	apply func(c *Config, v any) error
}

var settings = []setting{
	{"logging.level", stringSetting(func(c *Config) *string { return &c.Logging.Level })},
	{"tree.indentation", intSetting(func(c *Config) *int { return &c.Tree.Indentation })},
	{"tree.rootDecorated", boolSetting(func(c *Config) *bool { return &c.Tree.RootDecorated })},
	{"tree.alternatingRowColors", boolSetting(func(c *Config) *bool { return &c.Tree.AlternatingRowColors })},
	{"tree.headerVisible", boolSetting(func(c *Config) *bool { return &c.Tree.HeaderVisible })},
	{"tree.splitterPosition", intSetting(func(c *Config) *int { return &c.Tree.SplitterPosition })},
	{"tree.markPropertiesWithoutValue", boolSetting(func(c *Config) *bool { return &c.Tree.MarkPropertiesWithoutValue })},
	{"tree.expandNew", boolSetting(func(c *Config) *bool { return &c.Tree.ExpandNew })},
}

// Paths returns every known setting path.
func Paths() []string {
	paths := make([]string, len(settings))
	for i, s := range settings {
		paths[i] = s.path
	}
	return paths
}

// Apply copies the known settings found in data onto c. Setting paths
// match case-insensitively so that environment variables like
// PROPBROWSER_TREE_EXPANDNEW resolve too. Unknown keys are ignored.
func (c *Config) Apply(data map[string]any) error {
	var errs []error
	for _, s := range settings {
		v, ok := lookup(data, s.path)
		if !ok {
			continue
		}
		if err := s.apply(c, v); err != nil {
			errs = append(errs, &SettingError{Path: s.path, Value: v, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Unknown returns the dotted paths in data that match no setting.
func Unknown(data map[string]any) []string {
	var out []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if sub, ok := v.(map[string]any); ok {
				walk(path, sub)
				continue
			}
			if !slices.ContainsFunc(Paths(), func(p string) bool { return strings.EqualFold(p, path) }) {
				out = append(out, path)
			}
		}
	}
	walk("", data)
	slices.Sort(out)
	return out
}

func lookup(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		v, ok := getFold(current, part)
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func getFold(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func stringSetting(field func(*Config) *string) func(*Config, any) error {
	return func(c *Config, v any) error {
		s, ok := v.(string)
		if !ok {
			return ErrTypeMismatch
		}
		*field(c) = s
		return nil
	}
}

func intSetting(field func(*Config) *int) func(*Config, any) error {
	return func(c *Config, v any) error {
		switch n := v.(type) {
		case int:
			*field(c) = n
		case int64:
			*field(c) = int(n)
		case uint64:
			*field(c) = int(n)
		case float64:
			if n != float64(int(n)) {
				return ErrTypeMismatch
			}
			*field(c) = int(n)
		default:
			return ErrTypeMismatch
		}
		return nil
	}
}

func boolSetting(field func(*Config) *bool) func(*Config, any) error {
	return func(c *Config, v any) error {
		switch b := v.(type) {
		case bool:
			*field(c) = b
		case int64:
			if b != 0 && b != 1 {
				return ErrTypeMismatch
			}
			*field(c) = b == 1
		default:
			return ErrTypeMismatch
		}
		return nil
	}
}
