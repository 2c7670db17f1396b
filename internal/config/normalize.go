package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBinaries()
	c.normalizeRipping()
	c.normalizeTVDB()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.Source = strings.TrimSpace(c.Paths.Source)
	if c.Paths.Source == "" {
		c.Paths.Source = defaultSource
	}
	if c.Paths.Target, err = expandPath(c.Paths.Target); err != nil {
		return fmt.Errorf("paths.target: %w", err)
	}
	if c.Paths.Temp, err = expandPath(c.Paths.Temp); err != nil {
		return fmt.Errorf("paths.temp: %w", err)
	}
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabase
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	return nil
}

func (c *Config) normalizeBinaries() {
	c.Binaries.HandBrake = strings.TrimSpace(c.Binaries.HandBrake)
	if c.Binaries.HandBrake == "" {
		c.Binaries.HandBrake = defaultHandBrake
	}
	c.Binaries.VLC = strings.TrimSpace(c.Binaries.VLC)
	if c.Binaries.VLC == "" {
		c.Binaries.VLC = defaultVLC
	}
	c.Binaries.Eject = strings.TrimSpace(c.Binaries.Eject)
	if c.Binaries.Eject == "" {
		c.Binaries.Eject = defaultEject
	}
}

func (c *Config) normalizeRipping() {
	c.Ripping.Duplicates = strings.ToLower(strings.TrimSpace(c.Ripping.Duplicates))
	if c.Ripping.Duplicates == "" {
		c.Ripping.Duplicates = defaultDuplicates
	}
	if strings.TrimSpace(c.Ripping.Template) == "" {
		c.Ripping.Template = defaultTemplate
	}
	if strings.TrimSpace(c.Ripping.IDTemplate) == "" {
		c.Ripping.IDTemplate = defaultIDTemplate
	}
	c.Ripping.OutputFormat = strings.ToLower(strings.TrimSpace(c.Ripping.OutputFormat))
	if c.Ripping.OutputFormat == "" {
		c.Ripping.OutputFormat = defaultOutputFormat
	}
	c.Ripping.VideoStyle = strings.ToLower(strings.TrimSpace(c.Ripping.VideoStyle))
	if c.Ripping.VideoStyle == "" {
		c.Ripping.VideoStyle = defaultVideoStyle
	}
	c.Ripping.Decomb = strings.ToLower(strings.TrimSpace(c.Ripping.Decomb))
	if c.Ripping.Decomb == "" {
		c.Ripping.Decomb = defaultDecomb
	}
	c.Ripping.AudioMix = strings.ToLower(strings.TrimSpace(c.Ripping.AudioMix))
	if c.Ripping.AudioMix == "" {
		c.Ripping.AudioMix = defaultAudioMix
	}
	c.Ripping.AudioEncoding = strings.ToLower(strings.TrimSpace(c.Ripping.AudioEncoding))
	if c.Ripping.AudioEncoding == "" {
		c.Ripping.AudioEncoding = defaultAudioEncoding
	}
	c.Ripping.SubtitleFormat = strings.ToLower(strings.TrimSpace(c.Ripping.SubtitleFormat))
	if c.Ripping.SubtitleFormat == "" {
		c.Ripping.SubtitleFormat = defaultSubtitleFormat
	}
	if c.Ripping.ScanMinDuration <= 0 {
		c.Ripping.ScanMinDuration = defaultScanMinDuration
	}
	if c.Ripping.MaxWidth <= 0 {
		c.Ripping.MaxWidth = defaultMaxWidth
	}
	if c.Ripping.MaxHeight <= 0 {
		c.Ripping.MaxHeight = defaultMaxHeight
	}
	if c.Ripping.VideoQuality <= 0 {
		c.Ripping.VideoQuality = defaultVideoQuality
	}
	c.Ripping.AudioLangs = normalizeLanguages(c.Ripping.AudioLangs)
	c.Ripping.SubtitleLangs = normalizeLanguages(c.Ripping.SubtitleLangs)
}

func normalizeLanguages(langs []string) []string {
	if len(langs) == 0 {
		return []string{"eng"}
	}
	normalized := make([]string, 0, len(langs))
	seen := make(map[string]struct{}, len(langs))
	for _, lang := range langs {
		value := strings.ToLower(strings.TrimSpace(lang))
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		normalized = append(normalized, value)
	}
	if len(normalized) == 0 {
		return []string{"eng"}
	}
	return normalized
}

func (c *Config) normalizeTVDB() {
	c.TVDB.APIKey = strings.TrimSpace(c.TVDB.APIKey)
	if c.TVDB.APIKey == "" {
		if value, ok := os.LookupEnv("TVDB_API_KEY"); ok {
			c.TVDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TVDB.BaseURL = strings.TrimSpace(c.TVDB.BaseURL)
	if c.TVDB.BaseURL == "" {
		c.TVDB.BaseURL = defaultTVDBBaseURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
