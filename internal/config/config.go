// Package config loads the treeinfo configuration file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvStore     = "TREEINFO_STORE"
	EnvLogLevel  = "TREEINFO_LOG_LEVEL"
	EnvLogFormat = "TREEINFO_LOG_FORMAT"
	EnvCompress  = "TREEINFO_COMPRESS"
)

// Config is the treeinfo configuration.
type Config struct {
	// Store is the path of the snapshot database.
	Store string `yaml:"store"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Compress enables snappy compression of stored snapshots.
	Compress *bool `yaml:"compress,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	compress := true
	return Config{
		Store:     "treeinfo.db",
		LogLevel:  "warn",
		LogFormat: "console",
		Compress:  &compress,
	}
}

// Parse decodes YAML and fills unset fields from Default. Unknown keys are
// rejected.
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return cfg.withDefaults(), nil
}

// Load reads the file at path, then applies environment overrides. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		default:
			cfg, err = Parse(bytes.NewReader(data))
			if err != nil {
				return Config{}, errors.Wrapf(err, "config %s", path)
			}
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// CompressEnabled reports whether snapshots should be compressed.
func (c Config) CompressEnabled() bool {
	return c.Compress == nil || *c.Compress
}

// String renders the configuration as YAML.
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Store == "" {
		c.Store = def.Store
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
	if c.Compress == nil {
		c.Compress = def.Compress
	}
	return c
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Store = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = v
	}
	if v, ok := lookup(EnvCompress); ok && v != "" {
		var on bool
		if err := yaml.Unmarshal([]byte(v), &on); err == nil {
			c.Compress = &on
		}
	}
}
