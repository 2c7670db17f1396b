package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRipping(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Source) == "" {
		return errors.New("paths.source must be set")
	}
	if strings.TrimSpace(c.Paths.Target) == "" {
		return errors.New("paths.target must be set")
	}
	if strings.TrimSpace(c.Paths.Temp) == "" {
		return errors.New("paths.temp must be set")
	}
	return nil
}

func (c *Config) validateRipping() error {
	if c.Ripping.DurationMin <= 0 {
		return errors.New("ripping.duration_min must be positive (minutes)")
	}
	if c.Ripping.DurationMax < c.Ripping.DurationMin {
		return errors.New("ripping.duration_max must be >= ripping.duration_min")
	}
	if c.Ripping.RipTimeout < 0 {
		return errors.New("ripping.rip_timeout must be >= 0 (seconds)")
	}
	if err := oneOf("ripping.duplicates", c.Ripping.Duplicates, "all", "first", "last"); err != nil {
		return err
	}
	if err := oneOf("ripping.output_format", c.Ripping.OutputFormat, "mp4", "mkv"); err != nil {
		return err
	}
	if err := oneOf("ripping.video_style", c.Ripping.VideoStyle, "tv", "film", "animation"); err != nil {
		return err
	}
	if err := oneOf("ripping.decomb", c.Ripping.Decomb, "off", "on", "auto"); err != nil {
		return err
	}
	if err := oneOf("ripping.audio_mix", c.Ripping.AudioMix, "mono", "stereo", "surround", "all"); err != nil {
		return err
	}
	if err := oneOf("ripping.subtitle_format", c.Ripping.SubtitleFormat, "none", "vobsub", "pgs"); err != nil {
		return err
	}
	if !strings.Contains(c.Ripping.Template, "{id}") && !strings.Contains(c.Ripping.Template, "{name}") {
		return errors.New("ripping.template must reference {id} or {name} so filenames stay unique")
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", key, strings.Join(allowed, ", "))
}
