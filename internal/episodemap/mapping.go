package episodemap

import (
	"fmt"
	"strings"
)

// Target identifies where on the disc an episode lives: either an entire
// title (StartChapter and EndChapter zero) or an inclusive chapter range
// within one title.
type Target struct {
	Title        int
	StartChapter int
	EndChapter   int
}

// WholeTitle reports whether the target covers the entire title rather than
// a chapter range.
func (t Target) WholeTitle() bool {
	return t.StartChapter == 0 && t.EndChapter == 0
}

func (t Target) String() string {
	if t.WholeTitle() {
		return fmt.Sprintf("title %d", t.Title)
	}
	return fmt.Sprintf("title %d chapters %d-%d", t.Title, t.StartChapter, t.EndChapter)
}

// Assignment binds one episode to its target on the disc.
type Assignment struct {
	Episode Episode
	Target  Target
}

// Mapping is an ordered set of episode assignments, ascending by episode
// number. It is always returned complete; partial mappings are never
// produced.
type Mapping []Assignment

func (m Mapping) String() string {
	parts := make([]string, 0, len(m))
	for _, assignment := range m {
		parts = append(parts, fmt.Sprintf("episode %d -> %s", assignment.Episode.Number, assignment.Target))
	}
	return strings.Join(parts, ", ")
}
