package config

import (
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const configFileName = "pulse"

// Config holds the configuration options for the application.
type Config struct {
	TickInterval time.Duration `yaml:"tickInterval,omitempty"`
	Bar          *BarConfig    `yaml:"bar,omitempty"`
	Demo         *DemoConfig   `yaml:"demo,omitempty"`
	Debug        *DebugConfig  `yaml:"debug,omitempty"`
}

// BarConfig holds the characters the progress bar is drawn with.
type BarConfig struct {
	ProgressChar   string `yaml:"progressChar,omitempty"`
	EmptySpaceChar string `yaml:"emptySpaceChar,omitempty"`
}

// DemoConfig holds options for the simulated jobs the demo runs.
type DemoConfig struct {
	Jobs        int    `yaml:"jobs,omitempty"`
	UnitsPerJob int    `yaml:"unitsPerJob,omitempty"`
	JournalPath string `yaml:"journalPath,omitempty"`
}

// DebugConfig holds debug logging options.
type DebugConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	LogPath string `yaml:"logPath,omitempty"`
}

// GetConfig reads the configuration file and returns a Config struct.
// If the configuration file does not exist, it returns the default configuration.
func GetConfig() (*Config, error) {
	configFilePath := filepath.Join(xdg.ConfigHome, configFileName)
	defaults := DefaultConfig()

	b, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &defaults, nil
		}

		return nil, err
	}

	if len(b) == 0 {
		return &defaults, nil
	}

	var cfg Config

	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, err
	}

	barCfg := zeroOr(cfg.Bar, defaults.Bar)
	demoCfg := zeroOr(cfg.Demo, defaults.Demo)
	debugCfg := zeroOr(cfg.Debug, defaults.Debug)

	return &Config{
		TickInterval: zeroOr(cfg.TickInterval, defaults.TickInterval),
		Bar: &BarConfig{
			ProgressChar:   zeroOr(barCfg.ProgressChar, defaults.Bar.ProgressChar),
			EmptySpaceChar: zeroOr(barCfg.EmptySpaceChar, defaults.Bar.EmptySpaceChar),
		},
		Demo: &DemoConfig{
			Jobs:        zeroOr(demoCfg.Jobs, defaults.Demo.Jobs),
			UnitsPerJob: zeroOr(demoCfg.UnitsPerJob, defaults.Demo.UnitsPerJob),
			JournalPath: zeroOr(demoCfg.JournalPath, defaults.Demo.JournalPath),
		},
		Debug: &DebugConfig{
			Enabled: zeroOr(debugCfg.Enabled, defaults.Debug.Enabled),
			LogPath: zeroOr(debugCfg.LogPath, defaults.Debug.LogPath),
		},
	}, nil
}

// zeroOr returns def if v is the zero value for its type.
func zeroOr[T any](v, def T) T {
	if reflect.ValueOf(v).IsZero() {
		return def
	}

	return v
}
