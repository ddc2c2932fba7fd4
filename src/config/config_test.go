package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StepInterval != StepInterval || cfg.LogLevel != LogLevel {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
	if cfg.Machine.EngineFailsAfter != 0 || len(cfg.Machine.FaultySensors) != 0 {
		t.Errorf("Load() machine = %+v, expected healthy machine", cfg.Machine)
	}
}

func TestLoadYaml(t *testing.T) {
	path := writeFile(t, "lift.yaml", `
stepInterval: 250ms
logLevel: info
logFile: lift.log
machine:
  engineFailsAfter: 7
  faultySensors: [2, 5]
`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StepInterval != 250*time.Millisecond {
		t.Errorf("StepInterval = %v, expected 250ms", cfg.StepInterval)
	}
	if cfg.LogLevel != "info" || cfg.LogFile != "lift.log" {
		t.Errorf("logging = %q %q", cfg.LogLevel, cfg.LogFile)
	}
	if cfg.Machine.EngineFailsAfter != 7 || !slices.Equal(cfg.Machine.FaultySensors, []int{2, 5}) {
		t.Errorf("Machine = %+v", cfg.Machine)
	}
}

func TestLoadEmptyYamlKeepsDefaults(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StepInterval != StepInterval {
		t.Errorf("StepInterval = %v, expected default", cfg.StepInterval)
	}
}

func TestEnvOverridesYaml(t *testing.T) {
	path := writeFile(t, "lift.yaml", "stepInterval: 250ms\nlogLevel: info\n")
	envPath := writeFile(t, ".env", `
LIFT_STEP_INTERVAL=40ms
LIFT_LOG_LEVEL=warn
LIFT_ENGINE_FAILS_AFTER=3
LIFT_FAULTY_SENSORS=1, 4,
`)

	cfg, err := Load(path, envPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StepInterval != 40*time.Millisecond {
		t.Errorf("StepInterval = %v, expected 40ms", cfg.StepInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, expected warn", cfg.LogLevel)
	}
	if cfg.Machine.EngineFailsAfter != 3 || !slices.Equal(cfg.Machine.FaultySensors, []int{1, 4}) {
		t.Errorf("Machine = %+v", cfg.Machine)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  string
	}{
		{"bad yaml", "stepInterval: [", ""},
		{"negative interval", "stepInterval: -1s", ""},
		{"negative engine failure", "machine:\n  engineFailsAfter: -2", ""},
		{"unknown log level", "logLevel: loud", ""},
		{"bad env interval", "", "LIFT_STEP_INTERVAL=soon"},
		{"bad env engine failure", "", "LIFT_ENGINE_FAILS_AFTER=x"},
		{"bad env sensor list", "", "LIFT_FAULTY_SENSORS=1,two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, envPath := "", ""
			if tt.yaml != "" {
				path = writeFile(t, "lift.yaml", tt.yaml)
			}
			if tt.env != "" {
				envPath = writeFile(t, ".env", tt.env)
			}
			if _, err := Load(path, envPath); err == nil {
				t.Errorf("Load() error = nil, expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Load(missing, ""); err == nil {
		t.Errorf("Load(%q) error = nil, expected an error", missing)
	}
	if _, err := Load("", missing); err == nil {
		t.Errorf("Load with env %q error = nil, expected an error", missing)
	}
}
