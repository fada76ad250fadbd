package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML friendly types.
type FileConfig struct {
	Capacity *int     `toml:"capacity"`
	Indent   string   `toml:"indent"`
	LogLevel string   `toml:"log_level"`
	FailFast *bool    `toml:"fail_fast"`
	Watch    *bool    `toml:"watch"`
	Debounce string   `toml:"debounce"`
	Inputs   []string `toml:"inputs"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.diagctx/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".diagctx", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies fc to cfg, skipping flags in changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("capacity", fc.Capacity, &cfg.Capacity)
	s.setString("indent", fc.Indent, &cfg.Indent)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setBool("fail-fast", fc.FailFast, &cfg.FailFast)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setStrings("input", fc.Inputs, &cfg.Inputs)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
