package cliconfig

import "os"

// ApplyEnvConfig applies DIAGCTX_* environment variables, skipping flags
// in changed.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("indent", os.Getenv("DIAGCTX_INDENT"), &cfg.Indent)
	s.setString("log-level", os.Getenv("DIAGCTX_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("capacity", os.Getenv("DIAGCTX_CAPACITY"), &cfg.Capacity); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("DIAGCTX_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("fail-fast", os.Getenv("DIAGCTX_FAIL_FAST"), &cfg.FailFast)
	s.setBoolFromString("watch", os.Getenv("DIAGCTX_WATCH"), &cfg.Watch)

	return nil
}
