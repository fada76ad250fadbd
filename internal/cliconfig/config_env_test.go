package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all env vars",
			envVars: map[string]string{
				"DIAGCTX_CAPACITY":  "0",
				"DIAGCTX_INDENT":    "--",
				"DIAGCTX_LOG_LEVEL": "debug",
				"DIAGCTX_FAIL_FAST": "1",
				"DIAGCTX_WATCH":     "true",
				"DIAGCTX_DEBOUNCE":  "2s",
			},
			changed: map[string]bool{},
			initial: Config{Capacity: 3},
			expected: Config{
				Capacity: 0,
				Indent:   "--",
				LogLevel: "debug",
				FailFast: true,
				Watch:    true,
				Debounce: 2 * time.Second,
			},
		},
		{
			name:     "respects changed flags",
			envVars:  map[string]string{"DIAGCTX_CAPACITY": "9"},
			changed:  map[string]bool{"capacity": true},
			initial:  Config{Capacity: 4},
			expected: Config{Capacity: 4},
		},
		{
			name:    "returns error for invalid capacity",
			envVars: map[string]string{"DIAGCTX_CAPACITY": "many"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"DIAGCTX_DEBOUNCE": "later"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg.Capacity != tt.expected.Capacity {
				t.Errorf("Capacity = %v, want %v", cfg.Capacity, tt.expected.Capacity)
			}
			if cfg.Indent != tt.expected.Indent {
				t.Errorf("Indent = %q, want %q", cfg.Indent, tt.expected.Indent)
			}
			if cfg.LogLevel != tt.expected.LogLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.expected.LogLevel)
			}
			if cfg.FailFast != tt.expected.FailFast {
				t.Errorf("FailFast = %v, want %v", cfg.FailFast, tt.expected.FailFast)
			}
			if cfg.Watch != tt.expected.Watch {
				t.Errorf("Watch = %v, want %v", cfg.Watch, tt.expected.Watch)
			}
			if cfg.Debounce != tt.expected.Debounce {
				t.Errorf("Debounce = %v, want %v", cfg.Debounce, tt.expected.Debounce)
			}
		})
	}
}
