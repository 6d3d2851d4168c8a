// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/tesso57/postview/internal/application/settings"
	"gopkg.in/yaml.v3"
)

// File formats understood by the store. The format follows the file extension.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "postview", "config.yaml"), nil
}

// Load loads the configuration from the specified path or default location.
// A missing file yields the defaults and nothing is written.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = path
	}

	_, err := os.Stat(configPath)
	return parse(configPath, err == nil)
}

// Defaults returns a store holding the built-in settings bound to path.
// The file at path is neither read nor written.
func Defaults(path string) (*Store, error) {
	return parse(path, false)
}

func parse(configPath string, readFile bool) (*Store, error) {
	cfg := settings.Settings{}
	var options []kong.Option
	if readFile {
		options = append(options, kong.Configuration(loaderFor(configPath), configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Parse([]string{}); err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	return &Store{Settings: normalize(cfg), configPath: configPath}, nil
}

func normalize(cfg settings.Settings) settings.Settings {
	cfg.Source.URL = strings.TrimSpace(cfg.Source.URL)
	cfg.Source.Format = strings.ToLower(strings.TrimSpace(cfg.Source.Format))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
	return cfg
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func loaderFor(path string) kong.ConfigurationLoader {
	if formatFor(path) == FormatTOML {
		return tomlKongLoader
	}
	return yamlKongLoader
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil // Return nil resolver (no op)
		}
		return nil, err
	}
	return mapResolver(values), nil
}

func tomlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, err
	}
	return mapResolver(values), nil
}

func mapResolver(values map[string]any) kong.Resolver {
	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		// Try various naming conventions
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			if v, ok := lookup(values, name); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f
}

// lookup finds name directly or as a nested dot-notation path.
func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return nil, false
	}
	curr := values
	for _, part := range parts[:len(parts)-1] {
		next, ok := curr[part].(map[string]any)
		if !ok {
			return nil, false
		}
		curr = next
	}
	v, ok := curr[parts[len(parts)-1]]
	return v, ok
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.configPath
}

// Exists reports whether the config file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Encode writes the current settings in the config file's format.
func (s *Store) Encode(w io.Writer) error {
	return s.EncodeAs(w, "")
}

// EncodeAs writes the current settings as YAML or TOML. An empty format
// uses the config file's format.
func (s *Store) EncodeAs(w io.Writer, format string) error {
	if format == "" {
		format = formatFor(s.configPath)
	}
	switch strings.ToLower(format) {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s.Settings)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.Settings); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown config format %q", format)
	}
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return s.Encode(f)
}
