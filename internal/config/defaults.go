package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	tickInterval   = 50 * time.Millisecond
	demoJobs       = 3
	demoUnits      = 120
	progressChar   = "#"
	emptySpaceChar = "-"
)

var (
	journalPath = filepath.Join(xdg.DataHome, configFileName, "journal.db")
	logPath     = filepath.Join(xdg.StateHome, configFileName, configFileName+".log")
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: tickInterval,
		Bar: &BarConfig{
			ProgressChar:   progressChar,
			EmptySpaceChar: emptySpaceChar,
		},
		Demo: &DemoConfig{
			Jobs:        demoJobs,
			UnitsPerJob: demoUnits,
			JournalPath: journalPath,
		},
		Debug: &DebugConfig{
			Enabled: false,
			LogPath: logPath,
		},
	}
}
