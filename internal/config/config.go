// Package config loads the docsource YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
)

// DefaultConfigFile is the file name used when no --config flag is given.
const DefaultConfigFile = "docsource.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
	Metrics  MetricsConfig  `yaml:"metrics"`

	// baseDir is the directory of the loaded file; relative paths resolve against it.
	baseDir string
}

// SourceConfig describes where virtual files come from.
type SourceConfig struct {
	Manifest          string `yaml:"manifest"`
	RootDir           string `yaml:"root_dir"`
	LegacyLengthOrder bool   `yaml:"legacy_length_order,omitempty"`
}

// PipelineConfig selects transformers. An empty list selects every registered one.
type PipelineConfig struct {
	Transformers []string `yaml:"transformers,omitempty"`
	Disabled     []string `yaml:"disabled,omitempty"`
}

// OutputConfig controls how the loaded tree is written.
type OutputConfig struct {
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"` // stdout when empty
}

// MetricsConfig controls the Prometheus endpoint used by watch mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	_ = NewDefaultApplier().ApplyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults and validates a configuration file.
// ${VAR} references are expanded after .env files are loaded.
func Load(configPath string) (*Config, error) {
	for _, f := range loadEnvFiles(filepath.Dir(configPath)) {
		slog.Debug("Loaded environment file", "file", f)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ConfigNotFound(configPath)
		}
		return nil, derrors.FileSystem("read", configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.baseDir = filepath.Dir(configPath)
	return cfg, nil
}

// Parse decodes configuration bytes with environment expansion, defaults and validation.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to parse configuration")
	}

	if err := NewDefaultApplier().ApplyDefaults(&cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to apply defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolvePath makes p relative to the configuration file's directory.
// Absolute paths and configurations not loaded from disk are returned unchanged.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// ManifestPath is the resolved path of the virtual file manifest.
func (c *Config) ManifestPath() string {
	return c.ResolvePath(c.Source.Manifest)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.New(derrors.CategoryConfig, derrors.SeverityFatal,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath)
	}

	example := Default()
	example.Pipeline.Transformers = []string{"titles", "slugs", "page_tree"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return derrors.InternalError("failed to marshal config", err)
	}

	header := []byte("# docsource configuration\n# ${VAR} references are expanded from the environment and .env files.\n")
	if err := os.WriteFile(configPath, append(header, data...), 0o644); err != nil {
		return derrors.FileSystem("write", configPath, err)
	}
	return nil
}
