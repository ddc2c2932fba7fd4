package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StepInterval = 500 * time.Millisecond
	StatusBuffer = 16
	LogLevel     = "debug"
)

// Keys read from the .env file.
const (
	EnvStepInterval     = "LIFT_STEP_INTERVAL"
	EnvLogLevel         = "LIFT_LOG_LEVEL"
	EnvLogFile          = "LIFT_LOG_FILE"
	EnvEngineFailsAfter = "LIFT_ENGINE_FAILS_AFTER"
	EnvFaultySensors    = "LIFT_FAULTY_SENSORS"
)

// MachineConfig sets up the simulated hardware. EngineFailsAfter is the
// engine probe that first reports a fault, 0 means never.
type MachineConfig struct {
	EngineFailsAfter int   `yaml:"engineFailsAfter"`
	FaultySensors    []int `yaml:"faultySensors"`
}

type Config struct {
	StepInterval time.Duration `yaml:"stepInterval"`
	LogLevel     string        `yaml:"logLevel"`
	LogFile      string        `yaml:"logFile"`
	Machine      MachineConfig `yaml:"machine"`
}

func Default() Config {
	return Config{
		StepInterval: StepInterval,
		LogLevel:     LogLevel,
	}
}

// Load reads the yaml file at path and then applies overrides from the .env
// file at envPath. Empty paths are skipped.
func Load(path, envPath string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if envPath != "" {
		envFile, err := godotenv.Read(envPath)
		if err != nil {
			return cfg, fmt.Errorf("read env file: %w", err)
		}
		if err := applyEnv(&cfg, envFile); err != nil {
			return cfg, fmt.Errorf("env file %s: %w", envPath, err)
		}
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, env map[string]string) error {
	if v, ok := env[EnvStepInterval]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStepInterval, err)
		}
		cfg.StepInterval = d
	}
	if v, ok := env[EnvLogLevel]; ok {
		cfg.LogLevel = v
	}
	if v, ok := env[EnvLogFile]; ok {
		cfg.LogFile = v
	}
	if v, ok := env[EnvEngineFailsAfter]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEngineFailsAfter, err)
		}
		cfg.Machine.EngineFailsAfter = n
	}
	if v, ok := env[EnvFaultySensors]; ok {
		floors, err := parseFloorList(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFaultySensors, err)
		}
		cfg.Machine.FaultySensors = floors
	}
	return nil
}

func parseFloorList(s string) ([]int, error) {
	var floors []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		floor, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		floors = append(floors, floor)
	}
	return floors, nil
}

func (c Config) Validate() error {
	if c.StepInterval <= 0 {
		return fmt.Errorf("step interval must be positive, got %v", c.StepInterval)
	}
	if c.Machine.EngineFailsAfter < 0 {
		return fmt.Errorf("engineFailsAfter must not be negative, got %d", c.Machine.EngineFailsAfter)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
