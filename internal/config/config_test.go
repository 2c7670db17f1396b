package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tvrip/internal/episodemap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("TVDB_API_KEY", "")
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if exists {
		t.Fatalf("Load() reported existing file at %s", path)
	}
	if cfg.Paths.Source != "/dev/dvd" {
		t.Errorf("Paths.Source = %q, want /dev/dvd", cfg.Paths.Source)
	}
	if cfg.Binaries.HandBrake != "HandBrakeCLI" {
		t.Errorf("Binaries.HandBrake = %q", cfg.Binaries.HandBrake)
	}
	if cfg.Ripping.Duplicates != "all" {
		t.Errorf("Ripping.Duplicates = %q, want all", cfg.Ripping.Duplicates)
	}
	if !filepath.IsAbs(cfg.Paths.Target) {
		t.Errorf("Paths.Target = %q, want absolute path", cfg.Paths.Target)
	}
	want := episodemap.Window{Min: 40 * time.Minute, Max: 50 * time.Minute}
	if cfg.Window() != want {
		t.Errorf("Window() = %v, want %v", cfg.Window(), want)
	}
	if cfg.DuplicatePolicy() != episodemap.PolicyAll {
		t.Errorf("DuplicatePolicy() = %v, want all", cfg.DuplicatePolicy())
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	t.Setenv("TVDB_API_KEY", "")
	path := writeConfig(t, `
[paths]
source = "/dev/sr1"
target = "~/rips"

[ripping]
duration_min = 20
duration_max = 35
duplicates = " FIRST "
audio_langs = ["ENG", "eng", "", "fra"]

[logging]
format = "JSON"
level = "Debug"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !exists {
		t.Fatal("Load() reported missing file")
	}
	if cfg.Paths.Source != "/dev/sr1" {
		t.Errorf("Paths.Source = %q", cfg.Paths.Source)
	}
	home, _ := os.UserHomeDir()
	if cfg.Paths.Target != filepath.Join(home, "rips") {
		t.Errorf("Paths.Target = %q, want expansion of ~/rips", cfg.Paths.Target)
	}
	if cfg.Ripping.Duplicates != "first" {
		t.Errorf("Ripping.Duplicates = %q, want first", cfg.Ripping.Duplicates)
	}
	if got, want := strings.Join(cfg.Ripping.AudioLangs, ","), "eng,fra"; got != want {
		t.Errorf("Ripping.AudioLangs = %q, want %q", got, want)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.DuplicatePolicy() != episodemap.PolicyFirst {
		t.Errorf("DuplicatePolicy() = %v, want first", cfg.DuplicatePolicy())
	}
}

func TestLoadValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "inverted window",
			body: "[ripping]\nduration_min = 50\nduration_max = 40\n",
			want: "duration_max",
		},
		{
			name: "bad duplicates",
			body: "[ripping]\nduplicates = \"some\"\n",
			want: "ripping.duplicates",
		},
		{
			name: "bad output format",
			body: "[ripping]\noutput_format = \"avi\"\n",
			want: "ripping.output_format",
		},
		{
			name: "template without id or name",
			body: "[ripping]\ntemplate = \"{program}.{ext}\"\n",
			want: "ripping.template",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load() error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestTVDBKeyFromEnvironment(t *testing.T) {
	t.Setenv("TVDB_API_KEY", "env-key")
	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TVDB.APIKey != "env-key" {
		t.Errorf("TVDB.APIKey = %q, want env-key", cfg.TVDB.APIKey)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("TVDB_API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	if !exists {
		t.Fatal("Load(sample) reported missing file")
	}
	if cfg.Ripping.IDTemplate != "{season}x{episode:02}" {
		t.Errorf("sample id_template = %q", cfg.Ripping.IDTemplate)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.Target = filepath.Join(base, "target")
	cfg.Paths.Temp = filepath.Join(base, "temp")
	cfg.Paths.Database = filepath.Join(base, "state", "tvrip.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	for _, dir := range []string{cfg.Paths.Target, cfg.Paths.Temp, filepath.Dir(cfg.Paths.Database)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s missing after EnsureDirectories", dir)
		}
	}
}
