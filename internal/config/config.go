// Package config loads tick's configuration.
//
// Sources, later ones overriding earlier ones:
//  1. Defaults
//  2. User config file (~/.tick/tick.toml or OS-specific config dir)
//  3. Project config file (tick.toml or .tick.toml in current directory)
//  4. Environment variables (TICK_*)
//  5. Root CLI flags
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultDataDir    = "~/.tick"
	DefaultQuotaBytes = 5 << 20
	DefaultTheme      = "classic"
)

// Config carries every runtime knob.
type Config struct {
	DataDir    string `toml:"data_dir"`
	QuotaBytes int64  `toml:"quota_bytes"`
	Theme      string `toml:"theme"`
	Group      bool   `toml:"group"`

	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// Load builds the configuration and returns it together with the args
// left over after root-flag parsing (the subcommand and its arguments).
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	finalize(cfg)
	return cfg, rest, nil
}

func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.QuotaBytes = DefaultQuotaBytes
	cfg.Theme = DefaultTheme
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
}

// loadConfigFile loads TOML config from the given file. Keys present in
// the file override the current values; absent keys are left alone.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TICK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TICK_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.QuotaBytes = n
		}
	}
	if v := os.Getenv("TICK_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TICK_GROUP"); v != "" {
		cfg.Group = boolFromString(v)
	}
	if v := os.Getenv("TICK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TICK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TICK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}

func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("tick", flag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the todo data")
	fs.Int64Var(&cfg.QuotaBytes, "quota-bytes", cfg.QuotaBytes, "per-key storage cap in bytes, 0 for none")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "ui theme: classic, neon, or mono")
	fs.BoolVar(&cfg.Group, "group", cfg.Group, "group ls output by pending/done")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error, or fatal")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json, or logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "include timestamps in log lines")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// finalize computes derived values.
func finalize(cfg *Config) {
	cfg.DataDir = expandPath(cfg.DataDir)
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{"tick.toml", ".tick.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tick/tick.toml first, then falls back to the OS-specific
// config directory.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".tick", "tick.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		path := filepath.Join(cfgDir, "tick", "tick.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// osUserConfigDir returns the OS-specific user config directory, empty
// when it cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// expandPath expands environment variables and a leading ~ in paths.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return home
	}
	if strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
