package ripping

import (
	"tvrip/internal/config"
	"tvrip/internal/disc"
	"tvrip/internal/services/handbrake"
)

// mixCap ranks mix-downs from narrowest to widest so the configured
// audio_mix acts as a ceiling on what each track is encoded to.
var mixCap = map[string]int{
	"mono":     0,
	"stereo":   1,
	"surround": 2,
	"all":      3,
}

// trackMixWidth maps scanned channel layouts onto the same scale.
var trackMixWidth = map[string]int{
	"mono":      0,
	"stereo":    1,
	"downmix":   1,
	"5point1":   2,
	"5.1(side)": 2,
}

var mixArgument = [...]string{"mono", "stereo", "5point1"}

// selectAudio picks the audio tracks to rip from a title per config:
// the best track per matching language, or every matching track when
// audio_all is set. The mix each track is encoded with is the narrower
// of the track's own layout and the configured audio_mix.
func selectAudio(title disc.Title, cfg config.Ripping) []handbrake.AudioSelection {
	ceiling, ok := mixCap[cfg.AudioMix]
	if !ok {
		ceiling = mixCap["stereo"]
	}
	var selections []handbrake.AudioSelection
	for _, track := range title.AudioTracks {
		if !languageWanted(track.Language, cfg.AudioLangs) {
			continue
		}
		if !cfg.AudioAll && !track.Best {
			continue
		}
		width := 1
		if w, ok := trackMixWidth[track.ChannelMix]; ok {
			width = w
		}
		if width > ceiling {
			width = ceiling
		}
		if width > 2 {
			width = 2
		}
		selections = append(selections, handbrake.AudioSelection{
			Track: track.Number,
			Mix:   mixArgument[width],
			Name:  track.Name,
		})
	}
	return selections
}

// selectSubtitles picks the subtitle tracks to rip from a title per
// config. The first selected track is marked default when
// subtitle_default is set.
func selectSubtitles(title disc.Title, cfg config.Ripping) []handbrake.SubtitleSelection {
	if cfg.SubtitleFormat == "none" {
		return nil
	}
	var selections []handbrake.SubtitleSelection
	for _, track := range title.SubtitleTracks {
		if !languageWanted(track.Language, cfg.SubtitleLangs) {
			continue
		}
		if !cfg.SubtitleAll && !track.Best {
			continue
		}
		selections = append(selections, handbrake.SubtitleSelection{
			Track:   track.Number,
			Name:    track.Name,
			Default: cfg.SubtitleDefault && len(selections) == 0,
		})
	}
	return selections
}

func languageWanted(language string, wanted []string) bool {
	for _, lang := range wanted {
		if language == lang {
			return true
		}
	}
	return false
}

// encoderTune maps the configured video style onto an x264 tune.
func encoderTune(style string) string {
	switch style {
	case "animation":
		return "animation"
	case "film", "tv":
		return "film"
	default:
		return ""
	}
}
