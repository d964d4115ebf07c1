package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all configurable termfolio settings.
type Config struct {
	GitHubUser   string `toml:"github_user"`    // overrides the profile's GitHub username
	GitHubAPIURL string `toml:"github_api_url"` // REST root for the repository listing
	BrowseURL    string `toml:"browse_url"`     // web root `open` builds file links under
	FallbackRepo string `toml:"fallback_repo"`  // "owner/name" listed when the fetch fails
	FetchTimeout string `toml:"fetch_timeout"`  // Go duration, e.g. "10s"

	OpenWith string `toml:"open_with"` // "browser" | "clipboard" | "none"
	Theme    string `toml:"theme"`     // "green" | "amber"
	NoBoot   *bool  `toml:"no_boot"`

	LogPath  string `toml:"log_path"`
	LogLevel string `toml:"log_level"`

	SSHAddr     string `toml:"ssh_addr"`
	HostKeyPath string `toml:"host_key_path"`
	HTTPAddr    string `toml:"http_addr"`
	PromptUser  string `toml:"prompt_user"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		GitHubAPIURL: "https://api.github.com",
		BrowseURL:    "https://github.com",
		FetchTimeout: "10s",
		OpenWith:     "browser",
		Theme:        "green",
		LogLevel:     "info",
		SSHAddr:      ":2222",
		HTTPAddr:     ":8080",
		PromptUser:   "guest",
	}
}

// Timeout returns FetchTimeout as a duration, falling back to ten seconds
// when it is unset or not a positive duration.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// SkipBoot reports whether the power-on animation is disabled.
func (c Config) SkipBoot() bool {
	return c.NoBoot != nil && *c.NoBoot
}

// GlobalPath returns ~/.config/termfolio/config.toml.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "termfolio", "config.toml"), nil
}

// ProjectFile is the per-directory config file name.
const ProjectFile = ".termfolio.toml"

// LoadGlobal reads ~/.config/termfolio/config.toml.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .termfolio.toml in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(ProjectFile, false)
}

// LoadFile reads a single TOML config file; a missing file is an error.
func LoadFile(path string) (*Config, error) {
	cfg, err := loadFile(path, false)
	if err == nil && cfg == nil {
		return nil, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	}
	return cfg, err
}

// loadFile reads and parses a TOML config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Load resolves the effective configuration. An explicit path replaces the
// global file; the project file in the working directory still applies.
func Load(explicit string) (Config, error) {
	var (
		global *Config
		err    error
	)
	if explicit != "" {
		global, err = LoadFile(explicit)
	} else {
		global, err = LoadGlobal()
	}
	if err != nil {
		return Defaults(), err
	}
	project, err := LoadProject()
	if err != nil {
		return Defaults(), err
	}
	return Merge(global, project), nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, layer := range []*Config{global, project} {
		if layer == nil {
			continue
		}
		override(&result.GitHubUser, layer.GitHubUser)
		override(&result.GitHubAPIURL, layer.GitHubAPIURL)
		override(&result.BrowseURL, layer.BrowseURL)
		override(&result.FallbackRepo, layer.FallbackRepo)
		override(&result.FetchTimeout, layer.FetchTimeout)
		override(&result.OpenWith, layer.OpenWith)
		override(&result.Theme, layer.Theme)
		override(&result.LogPath, layer.LogPath)
		override(&result.LogLevel, layer.LogLevel)
		override(&result.SSHAddr, layer.SSHAddr)
		override(&result.HostKeyPath, layer.HostKeyPath)
		override(&result.HTTPAddr, layer.HTTPAddr)
		override(&result.PromptUser, layer.PromptUser)
		if layer.NoBoot != nil {
			v := *layer.NoBoot
			result.NoBoot = &v
		}
	}
	return result
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
