package episodemap

// Solution is one partition of a title's chapters into k adjacent ranges,
// one per episode: the i-th range belongs to the i-th episode.
type Solution []Range

// LongestTitle returns the longest of the given titles, breaking duration
// ties in favor of the lowest title number. The second result is false when
// no titles were given.
func LongestTitle(titles []Title) (Title, bool) {
	var longest Title
	found := false
	for _, title := range titles {
		if !found || title.Duration > longest.Duration {
			longest = title
			found = true
		}
	}
	return longest, found
}

// MatchChapters searches one title for every way to assign chapter ranges,
// in chapter order, to the given episodes. A solution partitions the whole
// title: the first range starts at chapter 1, each subsequent range starts
// right after the previous one ends, and the last range ends at the final
// chapter, so no chapter is ever skipped or left over. The search is an
// exhaustive backtracking enumeration over the candidate ranges produced by
// Candidates, pruned as soon as the chapters remaining beyond a partial
// assignment cannot cover the episodes still unassigned. Candidates are
// visited in ascending (start, end) order, so identical inputs always
// produce the identical solution list.
func MatchChapters(title Title, episodes []Episode, w Window) ([]Solution, error) {
	episodes = unripped(episodes)
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}

	candidates := Candidates(title.Chapters, w)
	chapterCount := len(title.Chapters)
	want := len(episodes)

	var solutions []Solution
	current := make(Solution, 0, want)

	var search func(from, lastEnd int)
	search = func(from, lastEnd int) {
		if len(current) == want {
			solution := make(Solution, want)
			copy(solution, current)
			solutions = append(solutions, solution)
			return
		}
		need := want - len(current)
		for i := from; i < len(candidates); i++ {
			candidate := candidates[i]
			if candidate.Start < lastEnd+1 {
				continue
			}
			// Candidates are sorted by start; past the required start
			// nothing later can be adjacent either.
			if candidate.Start > lastEnd+1 {
				break
			}
			// Every unassigned episode needs at least one chapter beyond
			// this range's end.
			if chapterCount-candidate.End < need-1 {
				continue
			}
			// The final range must close out the title.
			if need == 1 && candidate.End != chapterCount {
				continue
			}
			current = append(current, candidate)
			search(i+1, candidate.End)
			current = current[:len(current)-1]
		}
	}
	search(0, 0)

	if len(solutions) == 0 {
		return nil, ErrNoSolution
	}
	return solutions, nil
}
