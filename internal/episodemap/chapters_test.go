package episodemap

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func titleWithChapters(number int, durations ...time.Duration) Title {
	chapters := chaptersOf(durations...)
	var total time.Duration
	for _, chapter := range chapters {
		total += chapter.Duration
	}
	return Title{Number: number, Duration: total, Chapters: chapters}
}

func TestLongestTitleTieBreaksOnLowestNumber(t *testing.T) {
	titles := []Title{
		wholeTitle(3, minutes(40)),
		wholeTitle(1, minutes(90)),
		wholeTitle(2, minutes(90)),
	}
	longest, ok := LongestTitle(titles)
	if !ok {
		t.Fatal("expected a longest title")
	}
	if longest.Number != 1 {
		t.Fatalf("tie should resolve to lowest title number, got %d", longest.Number)
	}
}

func TestLongestTitleEmpty(t *testing.T) {
	if _, ok := LongestTitle(nil); ok {
		t.Fatal("expected no longest title for empty input")
	}
}

func TestMatchChaptersSingleSolution(t *testing.T) {
	// Eight equal seven-minute chapters, paired episodes: only one way to
	// carve out four non-overlapping two-chapter ranges.
	title := titleWithChapters(1,
		minutes(7), minutes(7), minutes(7), minutes(7),
		minutes(7), minutes(7), minutes(7), minutes(7))
	episodes := episodesNamed("E1", "E2", "E3", "E4")
	w := Window{Min: minutes(13), Max: minutes(15)}

	solutions, err := MatchChapters(title, episodes, w)
	if err != nil {
		t.Fatalf("MatchChapters returned error: %v", err)
	}
	if len(solutions) != 1 {
		t.Fatalf("expected exactly 1 solution, got %d: %v", len(solutions), solutions)
	}
	want := Solution{
		{Start: 1, End: 2, Duration: minutes(14)},
		{Start: 3, End: 4, Duration: minutes(14)},
		{Start: 5, End: 6, Duration: minutes(14)},
		{Start: 7, End: 8, Duration: minutes(14)},
	}
	if !reflect.DeepEqual(solutions[0], want) {
		t.Fatalf("solution = %v, want %v", solutions[0], want)
	}
}

func TestMatchChaptersNoSolution(t *testing.T) {
	title := titleWithChapters(1, minutes(30), minutes(30))
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(5), Max: minutes(10)}

	_, err := MatchChapters(title, episodes, w)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestMatchChaptersAmbiguousSolutions(t *testing.T) {
	// The middle two-minute chapter can close the first episode or open the
	// second, giving two valid partitions.
	title := titleWithChapters(1,
		minutes(2), minutes(20), minutes(2), minutes(20), minutes(2))
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(18), Max: minutes(24)}

	solutions, err := MatchChapters(title, episodes, w)
	if err != nil {
		t.Fatalf("MatchChapters returned error: %v", err)
	}
	if len(solutions) != 2 {
		t.Fatalf("expected 2 solutions, got %d: %v", len(solutions), solutions)
	}
	// Ascending enumeration order is part of the contract.
	if solutions[0][0].End != 2 || solutions[1][0].End != 3 {
		t.Fatalf("solutions out of order: %v", solutions)
	}
}

func TestMatchChaptersLeadInChapterUnique(t *testing.T) {
	// A short lead-in chapter is absorbed into the first episode; skipping
	// it is not an option, so the carving is unambiguous.
	title := titleWithChapters(1,
		minutes(2), minutes(20), minutes(22))
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(19), Max: minutes(23)}

	solutions, err := MatchChapters(title, episodes, w)
	if err != nil {
		t.Fatalf("MatchChapters returned error: %v", err)
	}
	if len(solutions) != 1 {
		t.Fatalf("expected exactly 1 solution, got %d: %v", len(solutions), solutions)
	}
	want := Solution{
		{Start: 1, End: 2, Duration: minutes(22)},
		{Start: 3, End: 3, Duration: minutes(22)},
	}
	if !reflect.DeepEqual(solutions[0], want) {
		t.Fatalf("solution = %v, want %v", solutions[0], want)
	}
}

func TestMatchChaptersRejectsSkippedChapters(t *testing.T) {
	// The middle chapter fits no episode, and a solution may not jump over
	// it.
	title := titleWithChapters(1, minutes(20), minutes(5), minutes(20))
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(18), Max: minutes(22)}

	_, err := MatchChapters(title, episodes, w)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestMatchChaptersRejectsLeftoverChapters(t *testing.T) {
	// Both episodes fit the leading chapters, but the trailing chapter
	// would be orphaned: solutions must account for every chapter.
	title := titleWithChapters(1,
		minutes(20), minutes(20), minutes(20), minutes(1))
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(18), Max: minutes(22)}

	_, err := MatchChapters(title, episodes, w)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestMatchChaptersDeterministic(t *testing.T) {
	title := titleWithChapters(1,
		minutes(2), minutes(20), minutes(2), minutes(20), minutes(2))
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(18), Max: minutes(24)}

	first, err := MatchChapters(title, episodes, w)
	if err != nil {
		t.Fatalf("MatchChapters returned error: %v", err)
	}
	second, err := MatchChapters(title, episodes, w)
	if err != nil {
		t.Fatalf("MatchChapters returned error on rerun: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different solution sets:\n%v\n%v", first, second)
	}
}

func TestMatchChaptersPrunesImpossibleTails(t *testing.T) {
	// Only three chapters but four episodes requested: no assignment can
	// exist, and the search must terminate promptly.
	title := titleWithChapters(1, minutes(10), minutes(10), minutes(10))
	episodes := episodesNamed("E1", "E2", "E3", "E4")
	w := Window{Min: minutes(9), Max: minutes(11)}

	_, err := MatchChapters(title, episodes, w)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestMatchChaptersNoEpisodes(t *testing.T) {
	title := titleWithChapters(1, minutes(10))
	_, err := MatchChapters(title, nil, Window{Min: minutes(9), Max: minutes(11)})
	if !errors.Is(err, ErrNoEpisodes) {
		t.Fatalf("expected ErrNoEpisodes, got %v", err)
	}
}
