package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tvrip/internal/episodemap"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains device and directory configuration.
type Paths struct {
	Source   string `toml:"source"`   // optical drive device node
	Target   string `toml:"target"`   // directory ripped episodes land in
	Temp     string `toml:"temp"`     // scratch space for in-flight rips
	Database string `toml:"database"` // sqlite database file
}

// Binaries contains the external tool executables.
type Binaries struct {
	HandBrake string `toml:"handbrake"`
	VLC       string `toml:"vlc"`
	Eject     string `toml:"eject"`
}

// Ripping contains episode matching and transcode settings.
type Ripping struct {
	DurationMin     int      `toml:"duration_min"` // minutes, inclusive
	DurationMax     int      `toml:"duration_max"` // minutes, inclusive
	ScanMinDuration int      `toml:"scan_min_duration"` // seconds; titles shorter than this are ignored
	Duplicates      string   `toml:"duplicates"`   // all, first, or last
	Template        string   `toml:"template"`
	IDTemplate      string   `toml:"id_template"`
	OutputFormat    string   `toml:"output_format"` // mp4 or mkv
	MaxWidth        int      `toml:"max_width"`
	MaxHeight       int      `toml:"max_height"`
	VideoQuality    int      `toml:"video_quality"`
	VideoStyle      string   `toml:"video_style"` // tv, film, or animation
	Decomb          string   `toml:"decomb"`      // off, on, or auto
	DVDNav          bool     `toml:"dvdnav"`
	RipTimeout      int      `toml:"rip_timeout"` // seconds; 0 disables
	AudioMix        string   `toml:"audio_mix"`   // mono, stereo, surround, or all
	AudioAll        bool     `toml:"audio_all"`
	AudioLangs      []string `toml:"audio_langs"`
	AudioEncoding   string   `toml:"audio_encoding"`
	SubtitleFormat  string   `toml:"subtitle_format"` // none, vobsub, or pgs
	SubtitleAll     bool     `toml:"subtitle_all"`
	SubtitleDefault bool     `toml:"subtitle_default"`
	SubtitleLangs   []string `toml:"subtitle_langs"`
}

// TVDB contains configuration for the TheTVDB API.
type TVDB struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tvrip.
//
// Configuration sections by subsystem:
//   - Paths: optical device, output/scratch directories, database file
//   - Binaries: HandBrakeCLI, VLC, and eject executables
//   - Ripping: episode duration window, duplicate policy, filename
//     templates, and transcode settings
//   - TVDB: episode metadata lookup via TheTVDB
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Binaries Binaries `toml:"binaries"`
	Ripping  Ripping  `toml:"ripping"`
	TVDB     TVDB     `toml:"tvdb"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tvrip/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/tvrip/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tvrip.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories ripping needs at runtime.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.Target, c.Paths.Temp, filepath.Dir(c.Paths.Database)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Window returns the configured episode duration window.
func (c *Config) Window() episodemap.Window {
	return episodemap.Window{
		Min: time.Duration(c.Ripping.DurationMin) * time.Minute,
		Max: time.Duration(c.Ripping.DurationMax) * time.Minute,
	}
}

// DuplicatePolicy returns the configured duplicate title policy.
func (c *Config) DuplicatePolicy() episodemap.Policy {
	switch c.Ripping.Duplicates {
	case "first":
		return episodemap.PolicyFirst
	case "last":
		return episodemap.PolicyLast
	default:
		return episodemap.PolicyAll
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
