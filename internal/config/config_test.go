package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/adrg/xdg"

	cfg "github.com/NamanBalaji/pulse/internal/config"
)

func withTempConfigHome(t *testing.T) (restore func(), dir string, file string) {
	t.Helper()
	orig := xdg.ConfigHome
	dir = t.TempDir()
	xdg.ConfigHome = dir
	restore = func() { xdg.ConfigHome = orig }
	file = filepath.Join(dir, "pulse")
	return
}

func TestGetConfig_Table(t *testing.T) {
	restore, _, cfgFile := withTempConfigHome(t)
	defer restore()

	def := cfg.DefaultConfig()

	tests := []struct {
		name      string
		preWrite  bool
		contents  string
		expectErr bool
		check     func(t *testing.T, got *cfg.Config, def cfg.Config)
	}{
		{
			name:     "missing_file_returns_defaults",
			preWrite: false,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if !reflect.DeepEqual(*got, def) {
					t.Fatalf("expected defaults\nwant: %#v\ngot:  %#v", def, *got)
				}
			},
		},
		{
			name:     "empty_file_returns_defaults",
			preWrite: true,
			contents: "",
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if !reflect.DeepEqual(*got, def) {
					t.Fatalf("expected defaults\nwant: %#v\ngot:  %#v", def, *got)
				}
			},
		},
		{
			name:      "invalid_yaml_returns_error",
			preWrite:  true,
			contents:  ": not yaml",
			expectErr: true,
			check:     func(t *testing.T, _ *cfg.Config, _ cfg.Config) {},
		},
		{
			name:     "no_subconfigs_uses_defaults_for_nested",
			preWrite: true,
			contents: "tickInterval: 200ms\n",
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.TickInterval != 200*time.Millisecond {
					t.Fatalf("tickInterval not applied, got %v", got.TickInterval)
				}
				// Bar and Demo should fall back to defaults when nil in file
				if !reflect.DeepEqual(*got.Bar, *def.Bar) {
					t.Fatalf("bar defaults not applied\nwant: %#v\ngot:  %#v", *def.Bar, *got.Bar)
				}
				if !reflect.DeepEqual(*got.Demo, *def.Demo) {
					t.Fatalf("demo defaults not applied\nwant: %#v\ngot:  %#v", *def.Demo, *got.Demo)
				}
			},
		},
		{
			name:     "partial_override_and_fallback",
			preWrite: true,
			contents: `
tickInterval: 1s
bar:
  progressChar: "="
demo:
  jobs: 7
`,
			check: func(t *testing.T, got *cfg.Config, def cfg.Config) {
				if got.TickInterval != time.Second {
					t.Fatalf("want tickInterval=1s got %v", got.TickInterval)
				}
				if got.Bar.ProgressChar != "=" {
					t.Fatalf("want progressChar== got %q", got.Bar.ProgressChar)
				}
				if got.Bar.EmptySpaceChar != def.Bar.EmptySpaceChar {
					t.Fatalf("emptySpaceChar fallback missing, got %q", got.Bar.EmptySpaceChar)
				}
				if got.Demo.Jobs != 7 {
					t.Fatalf("want demo.jobs=7 got %d", got.Demo.Jobs)
				}
				if got.Demo.UnitsPerJob != def.Demo.UnitsPerJob {
					t.Fatalf("unitsPerJob fallback missing, got %d", got.Demo.UnitsPerJob)
				}
				if got.Demo.JournalPath != def.Demo.JournalPath {
					t.Fatalf("journalPath fallback missing, got %q", got.Demo.JournalPath)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.preWrite {
				if err := os.WriteFile(cfgFile, []byte(tc.contents), 0o644); err != nil {
					t.Fatalf("failed writing config file: %v", err)
				}
			} else {
				os.Remove(cfgFile)
			}

			got, err := cfg.GetConfig()
			if tc.expectErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tc.check(t, got, def)
		})
	}
}
