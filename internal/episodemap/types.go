package episodemap

import "time"

// Duplicate marks a title's position within a run of duplicated titles.
// Adjacent titles with equal durations are considered interchangeable copies
// of the same content.
type Duplicate string

const (
	DuplicateNone   Duplicate = "no"
	DuplicateFirst  Duplicate = "first"
	DuplicateMiddle Duplicate = "yes"
	DuplicateLast   Duplicate = "last"
)

// Policy selects which title of a duplicate run survives filtering.
type Policy string

const (
	// PolicyAll keeps every title regardless of duplication.
	PolicyAll Policy = "all"
	// PolicyFirst keeps only the first title of each duplicate run.
	PolicyFirst Policy = "first"
	// PolicyLast keeps only the last title of each duplicate run.
	PolicyLast Policy = "last"
)

// Chapter is a read-only snapshot of one chapter within a scanned title.
// Chapter numbers are 1-based and ordered; the start offset of a chapter is
// implied by the durations of its predecessors.
type Chapter struct {
	Number   int
	Duration time.Duration
}

// Title is a read-only snapshot of one title on a scanned disc.
type Title struct {
	Number    int
	Duration  time.Duration
	Chapters  []Chapter
	Duplicate Duplicate
}

// Episode is a read-only snapshot of one episode of the selected season.
type Episode struct {
	Number int
	Name   string
	Ripped bool
}

// FilterDuplicates returns the titles surviving the given duplicate policy.
// Titles outside any duplicate run always survive.
func FilterDuplicates(titles []Title, policy Policy) []Title {
	filtered := make([]Title, 0, len(titles))
	for _, title := range titles {
		switch {
		case title.Duplicate == DuplicateNone || title.Duplicate == "":
			filtered = append(filtered, title)
		case policy == PolicyAll:
			filtered = append(filtered, title)
		case policy == Policy(title.Duplicate):
			filtered = append(filtered, title)
		}
	}
	return filtered
}

func unripped(episodes []Episode) []Episode {
	remaining := make([]Episode, 0, len(episodes))
	for _, episode := range episodes {
		if !episode.Ripped {
			remaining = append(remaining, episode)
		}
	}
	return remaining
}
