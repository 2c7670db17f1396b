// Package testsupport provides shared helpers for package tests: configs
// seeded with per-test temp directories, stores opened on throwaway
// databases, and pre-named seasons.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"tvrip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Source = "/dev/sr0"
	cfgVal.Paths.Target = filepath.Join(base, "target")
	cfgVal.Paths.Temp = filepath.Join(base, "temp")
	cfgVal.Paths.Database = filepath.Join(base, "tvrip.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithSource overrides the optical drive path on the test config.
func WithSource(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.Source = path
	}
}

// WithDurationWindow sets the episode duration window, in minutes.
func WithDurationWindow(minMinutes, maxMinutes int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ripping.DurationMin = minMinutes
		b.cfg.Ripping.DurationMax = maxMinutes
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default external binaries
// are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"HandBrakeCLI", "vlc", "eject"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}
