package episodemap

// ChapterRef identifies one chapter on the disc for oracle playback.
type ChapterRef struct {
	Title   int
	Chapter int
}

// AskFunc is the human-in-the-loop oracle: it plays the referenced chapter
// and reports whether it begins the given episode. It blocks until an answer
// arrives. Any error aborts the resolution.
type AskFunc func(ref ChapterRef, episode Episode) (bool, error)

// Resolve narrows multiple chapter solutions to exactly one using the fewest
// oracle questions it can manage. Each round locates the earliest episode
// position at which the remaining solutions disagree on the starting chapter,
// asks about the lowest disagreeing chapter, and discards every solution
// inconsistent with the answer. Questions are strictly sequential: one answer
// can eliminate several candidates and make later questions unnecessary.
func Resolve(title Title, episodes []Episode, solutions []Solution, ask AskFunc) (Solution, error) {
	episodes = unripped(episodes)
	for len(solutions) > 1 {
		position, chapter, ok := earliestDisagreement(solutions)
		if !ok {
			// The remaining solutions share every starting chapter; the
			// oracle has no question left that could separate them.
			return nil, ErrUnresolvable
		}
		if ask == nil {
			return nil, ErrOracleUnavailable
		}
		var episode Episode
		if position < len(episodes) {
			episode = episodes[position]
		}
		starts, err := ask(ChapterRef{Title: title.Number, Chapter: chapter}, episode)
		if err != nil {
			return nil, err
		}
		kept := make([]Solution, 0, len(solutions))
		for _, solution := range solutions {
			if (solution[position].Start == chapter) == starts {
				kept = append(kept, solution)
			}
		}
		solutions = kept
	}
	if len(solutions) == 0 {
		return nil, ErrUnresolvable
	}
	return solutions[0], nil
}

// earliestDisagreement returns the first episode position at which the
// solutions name different starting chapters, along with the lowest chapter
// number in dispute there.
func earliestDisagreement(solutions []Solution) (position, chapter int, ok bool) {
	if len(solutions) == 0 {
		return 0, 0, false
	}
	for position := range solutions[0] {
		lowest := 0
		disagree := false
		for _, solution := range solutions {
			start := solution[position].Start
			if lowest == 0 || start < lowest {
				if lowest != 0 {
					disagree = true
				}
				lowest = start
			} else if start != lowest {
				disagree = true
			}
		}
		if disagree {
			return position, lowest, true
		}
	}
	return 0, 0, false
}
