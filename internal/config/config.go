// Package config loads wifisort configuration from defaults, an optional
// YAML config file, and WIFISORT_* environment variables, in ascending
// precedence. Command-line flags override everything; pattern sets built
// from the configured files are passed to the classifier explicitly, never
// read ambiently.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultOutput = "output.xlsx"
)

// Config is a read-only view over the resolved configuration.
type Config struct {
	v *viper.Viper
}

// New wraps an already-populated viper instance. Useful in tests.
func New(v *viper.Viper) *Config {
	return &Config{v: v}
}

// Load resolves configuration. path may be empty, in which case only
// defaults and environment variables apply; a named file that cannot be
// read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output", DefaultOutput)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("WIFISORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	return &Config{v: v}, nil
}

// Output is the report file path.
func (c *Config) Output() string { return c.v.GetString("output") }

// ClientPatterns is the client pattern file path.
func (c *Config) ClientPatterns() string { return c.v.GetString("patterns.client") }

// ExcludePatterns is the exclude pattern file path; empty means no exclude
// set.
func (c *Config) ExcludePatterns() string { return c.v.GetString("patterns.exclude") }

// Verbose reports whether per-SSID detail should be printed.
func (c *Config) Verbose() bool { return c.v.GetBool("verbose") }

// Set overrides one key; flags use this to win over file and env values.
func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// IsSet reports whether a key has a value from any source.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(key) }
