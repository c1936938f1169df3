// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config loads the language server process configuration.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"

	"github.com/ezrec/asmls/settings"
	"github.com/ezrec/asmls/translate"
)

var f = translate.From

var (
	ErrTimeoutInvalid = errors.New(f("configuration_timeout_ms must not be negative"))
	ErrTabSizeInvalid = errors.New(f("defaults.tab_size must be at least 1"))
	ErrSectionMissing = errors.New(f("section name missing"))
)

// ErrKeyUnknown lists configuration keys that were not recognized.
type ErrKeyUnknown []string

func (err ErrKeyUnknown) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}

// Config is the language server process configuration.
type Config struct {
	LogVerbosity           int           `toml:"log_verbosity"`            // commonlog verbosity; 0 is quiet.
	LogFile                string        `toml:"log_file"`                 // Log destination, empty for stderr.
	Listen                 string        `toml:"listen"`                   // TCP address, empty for stdio.
	ConfigurationTimeoutMs int           `toml:"configuration_timeout_ms"` // Bound on workspace/configuration requests.
	EditorSection          string        `toml:"editor_section"`           // Client section holding editor settings.
	GlobalSection          string        `toml:"global_section"`           // Client section holding global settings.
	Defaults               settings.File `toml:"defaults"`                 // Editor settings when the client has none.
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ConfigurationTimeoutMs: 2000,
		EditorSection:          "editor",
		GlobalSection:          "asmls",
		Defaults:               settings.DefaultFile,
	}
}

// Load reads the configuration file at path, if path is not empty, over the
// built-in defaults, and then applies ASMLS_* environment overrides.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	if len(path) != 0 {
		var md toml.MetaData
		md, err = toml.DecodeFile(path, &cfg)
		if err != nil {
			return
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			var keys ErrKeyUnknown
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			err = keys
			return
		}
	}

	cfg.applyEnv()

	err = cfg.Validate()
	return
}

// applyEnv overrides configuration from the environment.
func (cfg *Config) applyEnv() {
	cfg.LogVerbosity = env.Int("ASMLS_VERBOSITY", cfg.LogVerbosity)
	cfg.LogFile = env.Str("ASMLS_LOG_FILE", cfg.LogFile)
	cfg.Listen = env.Str("ASMLS_LISTEN", cfg.Listen)
	cfg.ConfigurationTimeoutMs = env.Int("ASMLS_CONFIGURATION_TIMEOUT_MS", cfg.ConfigurationTimeoutMs)
}

// Validate checks the configuration values.
func (cfg Config) Validate() (err error) {
	switch {
	case cfg.ConfigurationTimeoutMs < 0:
		err = ErrTimeoutInvalid
	case cfg.Defaults.TabSize < 1:
		err = ErrTabSizeInvalid
	case len(cfg.EditorSection) == 0 || len(cfg.GlobalSection) == 0:
		err = ErrSectionMissing
	}
	return
}

// ConfigurationTimeout returns the workspace/configuration request bound.
func (cfg Config) ConfigurationTimeout() time.Duration {
	return time.Duration(cfg.ConfigurationTimeoutMs) * time.Millisecond
}

// LogPath returns the log file path for commonlog, or nil for stderr.
func (cfg Config) LogPath() *string {
	if len(cfg.LogFile) == 0 {
		return nil
	}
	path := cfg.LogFile
	return &path
}
