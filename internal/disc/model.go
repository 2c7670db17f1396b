package disc

import (
	"fmt"
	"time"

	"tvrip/internal/episodemap"
)

// Type classifies the scanned medium.
type Type string

const (
	TypeDVD    Type = "DVD"
	TypeBluRay Type = "Blu-ray"
)

// Disc is the result of scanning one optical disc.
type Disc struct {
	Type   Type
	Name   string
	Serial string
	Ident  string
	Titles []Title
}

// Title is one playable program unit on the disc.
type Title struct {
	Number         int
	Duration       time.Duration
	Width          int
	Height         int
	Interlaced     bool
	Chapters       []Chapter
	AudioTracks    []AudioTrack
	SubtitleTracks []SubtitleTrack
	Duplicate      episodemap.Duplicate
}

// Chapter is a numbered subdivision of a title.
type Chapter struct {
	Number   int
	Duration time.Duration
}

// AudioTrack describes one audio stream of a title.
type AudioTrack struct {
	Number     int
	Name       string
	Language   string
	Encoding   string
	ChannelMix string
	SampleRate int
	BitRate    int
	Best       bool
}

// SubtitleTrack describes one subtitle stream of a title.
type SubtitleTrack struct {
	Number   int
	Name     string
	Language string
	Format   string
	Best     bool
}

// Title returns the title with the given 1-based number, or false.
func (d *Disc) Title(number int) (Title, bool) {
	for _, title := range d.Titles {
		if title.Number == number {
			return title, true
		}
	}
	return Title{}, false
}

// Start returns the chapter's offset from the title start, the sum of all
// prior chapter durations.
func (t Title) Start(chapter int) time.Duration {
	var offset time.Duration
	for _, c := range t.Chapters {
		if c.Number >= chapter {
			break
		}
		offset += c.Duration
	}
	return offset
}

// Chapter returns the chapter with the given 1-based number, or false.
func (t Title) Chapter(number int) (Chapter, bool) {
	for _, chapter := range t.Chapters {
		if chapter.Number == number {
			return chapter, true
		}
	}
	return Chapter{}, false
}

// MRL builds the VLC media resource locator for a position on this disc:
// the whole disc (title 0), a title, or a chapter within a title.
func (d *Disc) MRL(source string, title, chapter int) string {
	scheme := "dvd"
	if d.Type == TypeBluRay {
		scheme = "bluray"
	}
	switch {
	case title == 0:
		return fmt.Sprintf("%s://%s", scheme, source)
	case chapter == 0:
		return fmt.Sprintf("%s://%s#%d", scheme, source, title)
	default:
		return fmt.Sprintf("%s://%s#%d:%d", scheme, source, title, chapter)
	}
}

// Snapshot converts the scanned titles into the read-only form consumed by
// the mapping core.
func (d *Disc) Snapshot() []episodemap.Title {
	titles := make([]episodemap.Title, 0, len(d.Titles))
	for _, title := range d.Titles {
		chapters := make([]episodemap.Chapter, 0, len(title.Chapters))
		for _, chapter := range title.Chapters {
			chapters = append(chapters, episodemap.Chapter{
				Number:   chapter.Number,
				Duration: chapter.Duration,
			})
		}
		titles = append(titles, episodemap.Title{
			Number:    title.Number,
			Duration:  title.Duration,
			Chapters:  chapters,
			Duplicate: title.Duplicate,
		})
	}
	return titles
}
