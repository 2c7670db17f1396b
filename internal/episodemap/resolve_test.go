package episodemap

import (
	"errors"
	"testing"
)

func TestResolveSingleQuestionConverges(t *testing.T) {
	title := wholeTitle(1, minutes(90))
	episodes := episodesNamed("E1", "E2")
	// The two solutions disagree only on whether chapter 5 begins the
	// second episode.
	solutions := []Solution{
		{{Start: 1, End: 4}, {Start: 5, End: 8}},
		{{Start: 1, End: 5}, {Start: 6, End: 8}},
	}

	for _, answer := range []bool{true, false} {
		asked := 0
		ask := func(ref ChapterRef, episode Episode) (bool, error) {
			asked++
			if ref.Title != 1 {
				t.Fatalf("asked about title %d", ref.Title)
			}
			if ref.Chapter != 5 {
				t.Fatalf("asked about chapter %d, want 5", ref.Chapter)
			}
			if episode.Number != 2 {
				t.Fatalf("asked about episode %d, want 2", episode.Number)
			}
			return answer, nil
		}

		solution, err := Resolve(title, episodes, append([]Solution(nil), solutions...), ask)
		if err != nil {
			t.Fatalf("Resolve(answer=%v) returned error: %v", answer, err)
		}
		if asked != 1 {
			t.Fatalf("expected exactly 1 oracle question, got %d", asked)
		}
		wantStart := 5
		if !answer {
			wantStart = 6
		}
		if solution[1].Start != wantStart {
			t.Fatalf("answer %v selected solution %v", answer, solution)
		}
	}
}

func TestResolveAsksEarliestDisagreementFirst(t *testing.T) {
	title := wholeTitle(2, minutes(90))
	episodes := episodesNamed("E1", "E2", "E3")
	solutions := []Solution{
		{{Start: 1, End: 2}, {Start: 3, End: 4}, {Start: 5, End: 6}},
		{{Start: 1, End: 2}, {Start: 4, End: 5}, {Start: 6, End: 7}},
		{{Start: 2, End: 3}, {Start: 4, End: 5}, {Start: 6, End: 7}},
	}

	var questions []ChapterRef
	ask := func(ref ChapterRef, episode Episode) (bool, error) {
		questions = append(questions, ref)
		// Chapter 1 begins the first episode, chapter 3 the second.
		return ref.Chapter == 1 || ref.Chapter == 3, nil
	}

	solution, err := Resolve(title, episodes, solutions, ask)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %v", questions)
	}
	if questions[0].Chapter != 1 {
		t.Fatalf("first question should target the earliest disagreement, got chapter %d", questions[0].Chapter)
	}
	if solution[0].Start != 1 || solution[1].Start != 3 {
		t.Fatalf("unexpected surviving solution: %v", solution)
	}
}

func TestResolveWithoutOracleFails(t *testing.T) {
	title := wholeTitle(1, minutes(90))
	episodes := episodesNamed("E1")
	solutions := []Solution{
		{{Start: 1, End: 4}},
		{{Start: 2, End: 4}},
	}
	_, err := Resolve(title, episodes, solutions, nil)
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

func TestResolveExhaustedIsUnresolvable(t *testing.T) {
	title := wholeTitle(1, minutes(90))
	episodes := episodesNamed("E1")
	// Identical starting chapters with differing ends cannot be separated
	// by asking which chapter begins an episode.
	solutions := []Solution{
		{{Start: 1, End: 3}},
		{{Start: 1, End: 4}},
	}
	ask := func(ref ChapterRef, episode Episode) (bool, error) {
		t.Fatal("oracle must not be consulted when no question can separate the solutions")
		return false, nil
	}
	_, err := Resolve(title, episodes, solutions, ask)
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable, got %v", err)
	}
}

func TestResolveLeavesInputSolutionsIntact(t *testing.T) {
	title := wholeTitle(1, minutes(90))
	episodes := episodesNamed("E1")
	solutions := []Solution{
		{{Start: 1, End: 4}},
		{{Start: 2, End: 4}},
		{{Start: 3, End: 4}},
	}
	ask := func(ref ChapterRef, episode Episode) (bool, error) {
		return ref.Chapter == 3, nil
	}
	if _, err := Resolve(title, episodes, solutions, ask); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if solutions[i][0].Start != want {
			t.Fatalf("Resolve reordered the caller's solutions: %v", solutions)
		}
	}
}

func TestResolveOracleErrorPropagates(t *testing.T) {
	title := wholeTitle(1, minutes(90))
	episodes := episodesNamed("E1")
	solutions := []Solution{
		{{Start: 1, End: 4}},
		{{Start: 2, End: 4}},
	}
	boom := errors.New("player crashed")
	ask := func(ref ChapterRef, episode Episode) (bool, error) {
		return false, boom
	}
	_, err := Resolve(title, episodes, solutions, ask)
	if !errors.Is(err, boom) {
		t.Fatalf("expected oracle error to propagate, got %v", err)
	}
}

func TestResolveSingleSolutionPassesThrough(t *testing.T) {
	title := wholeTitle(1, minutes(90))
	episodes := episodesNamed("E1")
	solutions := []Solution{{{Start: 1, End: 4}}}
	solution, err := Resolve(title, episodes, solutions, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if solution[0].Start != 1 {
		t.Fatalf("unexpected solution: %v", solution)
	}
}
