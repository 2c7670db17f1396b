package episodemap

import (
	"fmt"
	"strings"
)

// dittoName marks an episode whose name continues the previous episode.
const dittoName = `"`

// MultipartPrefix returns how many episodes at the start of the sequence form
// a single multi-part episode. A sequence that does not open with a
// multi-parter yields 1. The heuristic recognizes "Part N" and "(N)" name
// suffixes, plus a bare double-quote as a ditto of the prior episode.
func MultipartPrefix(episodes []Episode) int {
	if len(episodes) == 0 {
		return 0
	}
	first := episodes[0].Name
	part := 1
	for i, episode := range episodes[1:] {
		part = i + 2
		if episode.Name == dittoName {
			continue
		}
		if suffix := fmt.Sprintf("Part %d", part); strings.HasSuffix(episode.Name, suffix) {
			if trimSuffixLen(episode.Name, 6) == trimSuffixLen(first, 6) {
				continue
			}
		} else if suffix := fmt.Sprintf("(%d)", part); strings.HasSuffix(episode.Name, suffix) {
			if trimSuffixLen(episode.Name, 3) == trimSuffixLen(first, 3) {
				continue
			}
		}
		return part - 1
	}
	return part
}

// MultipartName returns the shared episode name of a multi-part run with any
// part suffix removed.
func MultipartName(episodes []Episode) (string, error) {
	if len(episodes) == 0 {
		return "", fmt.Errorf("no episodes given")
	}
	first := episodes[0].Name
	switch {
	case len(episodes) == 1:
		return first, nil
	case allDitto(episodes[1:]):
		return first, nil
	case strings.HasSuffix(first, "(1)"):
		return strings.TrimRight(trimSuffixLen(first, 3), " -,:"), nil
	case strings.HasSuffix(first, "Part 1"):
		return strings.TrimRight(trimSuffixLen(first, 6), " -,:"), nil
	default:
		return "", fmt.Errorf("unable to extract multi-part episode name from %q", first)
	}
}

func allDitto(episodes []Episode) bool {
	for _, episode := range episodes {
		if episode.Name != dittoName {
			return false
		}
	}
	return true
}

func trimSuffixLen(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[:len(s)-n]
}
