package database

import (
	"tvrip/internal/episodemap"
)

// Episode is one episode of a program season, together with its rip
// state. A ripped episode records which disc it came from and the title
// or chapter range it occupies there.
type Episode struct {
	Program      string
	Season       int
	Number       int
	Name         string
	DiscIdent    string
	DiscTitle    int
	StartChapter int
	EndChapter   int
}

// Ripped reports whether the episode has been ripped from some disc.
func (e Episode) Ripped() bool {
	return e.DiscIdent != ""
}

// ProgramSummary aggregates the rip progress of one program.
type ProgramSummary struct {
	Name     string
	Seasons  int
	Episodes int
	Ripped   int
}

// SeasonSummary aggregates the rip progress of one season.
type SeasonSummary struct {
	Number   int
	Episodes int
	Ripped   int
}

// Snapshot converts stored episodes to the matcher's episode view.
func Snapshot(episodes []Episode) []episodemap.Episode {
	out := make([]episodemap.Episode, 0, len(episodes))
	for _, episode := range episodes {
		out = append(out, episodemap.Episode{
			Number: episode.Number,
			Name:   episode.Name,
			Ripped: episode.Ripped(),
		})
	}
	return out
}
