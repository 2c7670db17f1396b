package episodemap

import (
	"errors"
	"fmt"
)

// Automap attempts to map the given episodes onto the scanned titles.
//
// Titles sharing a duplicate run are first filtered according to the policy.
// Whole-title matching is attempted; when that signals ErrNoMatch, the
// longest remaining title is searched for chapter-range solutions, and any
// ambiguity is settled through the oracle. Failures are terminal for the
// invocation: the search is deterministic, so retrying with unchanged inputs
// cannot succeed, and a partial mapping is never returned.
func Automap(titles []Title, episodes []Episode, w Window, opts Options) (Mapping, error) {
	episodes = unripped(episodes)
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}

	filtered := FilterDuplicates(titles, opts.Policy)

	mapping, err := MatchTitles(filtered, episodes, w, opts)
	if err == nil {
		return mapping, nil
	}
	if !errors.Is(err, ErrNoMatch) {
		return nil, err
	}

	title, ok := LongestTitle(filtered)
	if !ok {
		return nil, ErrNoSolution
	}

	solutions, err := MatchChapters(title, episodes, w)
	if err != nil {
		return nil, err
	}

	var solution Solution
	if len(solutions) == 1 {
		solution = solutions[0]
	} else {
		solution, err = Resolve(title, episodes, solutions, opts.Ask)
		if err != nil {
			return nil, err
		}
	}

	if len(solution) != len(episodes) {
		return nil, fmt.Errorf("solution covers %d episodes, expected %d", len(solution), len(episodes))
	}
	mapping = make(Mapping, 0, len(episodes))
	for i, episode := range episodes {
		mapping = append(mapping, Assignment{
			Episode: episode,
			Target: Target{
				Title:        title.Number,
				StartChapter: solution[i].Start,
				EndChapter:   solution[i].End,
			},
		})
	}
	return mapping, nil
}
