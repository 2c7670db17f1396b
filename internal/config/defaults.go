package config

const (
	defaultSource          = "/dev/dvd"
	defaultTarget          = "~/Videos"
	defaultTemp            = "/tmp"
	defaultDatabase        = "~/.local/share/tvrip/tvrip.db"
	defaultHandBrake       = "HandBrakeCLI"
	defaultVLC             = "vlc"
	defaultEject           = "eject"
	defaultDurationMin     = 40
	defaultDurationMax     = 50
	defaultScanMinDuration = 300
	defaultDuplicates      = "all"
	defaultTemplate        = "{program} - {id} - {name}.{ext}"
	defaultIDTemplate      = "{season}x{episode:02}"
	defaultOutputFormat    = "mp4"
	defaultMaxWidth        = 1920
	defaultMaxHeight       = 1080
	defaultVideoQuality    = 23
	defaultVideoStyle      = "tv"
	defaultDecomb          = "off"
	defaultAudioMix        = "stereo"
	defaultAudioEncoding   = "av_aac"
	defaultSubtitleFormat  = "none"
	defaultTVDBBaseURL     = "https://api4.thetvdb.com/v4"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Source:   defaultSource,
			Target:   defaultTarget,
			Temp:     defaultTemp,
			Database: defaultDatabase,
		},
		Binaries: Binaries{
			HandBrake: defaultHandBrake,
			VLC:       defaultVLC,
			Eject:     defaultEject,
		},
		Ripping: Ripping{
			DurationMin:     defaultDurationMin,
			DurationMax:     defaultDurationMax,
			ScanMinDuration: defaultScanMinDuration,
			Duplicates:      defaultDuplicates,
			Template:        defaultTemplate,
			IDTemplate:      defaultIDTemplate,
			OutputFormat:    defaultOutputFormat,
			MaxWidth:        defaultMaxWidth,
			MaxHeight:       defaultMaxHeight,
			VideoQuality:    defaultVideoQuality,
			VideoStyle:      defaultVideoStyle,
			Decomb:          defaultDecomb,
			DVDNav:          true,
			AudioMix:        defaultAudioMix,
			AudioLangs:      []string{"eng"},
			AudioEncoding:   defaultAudioEncoding,
			SubtitleFormat:  defaultSubtitleFormat,
			SubtitleLangs:   []string{"eng"},
		},
		TVDB: TVDB{
			BaseURL: defaultTVDBBaseURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
