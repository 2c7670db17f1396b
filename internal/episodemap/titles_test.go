package episodemap

import (
	"errors"
	"testing"
	"time"
)

func wholeTitle(number int, duration time.Duration) Title {
	return Title{Number: number, Duration: duration, Duplicate: DuplicateNone}
}

func episodesNamed(names ...string) []Episode {
	episodes := make([]Episode, len(names))
	for i, name := range names {
		episodes[i] = Episode{Number: i + 1, Name: name}
	}
	return episodes
}

func TestMatchTitlesPositionalAssignment(t *testing.T) {
	titles := []Title{
		wholeTitle(1, minutes(58)),
		wholeTitle(2, minutes(56)),
		wholeTitle(3, minutes(55)),
	}
	episodes := episodesNamed("E1", "E2", "E3")
	w := Window{Min: minutes(50), Max: minutes(65)}

	mapping, err := MatchTitles(titles, episodes, w, Options{})
	if err != nil {
		t.Fatalf("MatchTitles returned error: %v", err)
	}
	if len(mapping) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(mapping))
	}
	for i, assignment := range mapping {
		if assignment.Episode.Number != i+1 {
			t.Errorf("assignment %d maps episode %d", i, assignment.Episode.Number)
		}
		if assignment.Target.Title != i+1 {
			t.Errorf("assignment %d maps title %d", i, assignment.Target.Title)
		}
		if !assignment.Target.WholeTitle() {
			t.Errorf("assignment %d is not a whole-title mapping: %v", i, assignment.Target)
		}
	}
}

func TestMatchTitlesAllOrNothing(t *testing.T) {
	titles := []Title{
		wholeTitle(1, minutes(58)),
		wholeTitle(2, minutes(56)),
		wholeTitle(3, minutes(55)),
		wholeTitle(4, minutes(10)),
	}
	episodes := episodesNamed("E1", "E2", "E3")
	w := Window{Min: minutes(50), Max: minutes(65)}

	_, err := MatchTitles(titles, episodes, w, Options{})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestMatchTitlesExcessEpisodesLeftUnmapped(t *testing.T) {
	titles := []Title{wholeTitle(1, minutes(58)), wholeTitle(2, minutes(56))}
	episodes := episodesNamed("E1", "E2", "E3", "E4")
	w := Window{Min: minutes(50), Max: minutes(65)}

	mapping, err := MatchTitles(titles, episodes, w, Options{})
	if err != nil {
		t.Fatalf("MatchTitles returned error: %v", err)
	}
	if len(mapping) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(mapping))
	}
}

func TestMatchTitlesStrictRequiresFullCoverage(t *testing.T) {
	titles := []Title{wholeTitle(1, minutes(58))}
	episodes := episodesNamed("E1", "E2")
	w := Window{Min: minutes(50), Max: minutes(65)}

	_, err := MatchTitles(titles, episodes, w, Options{Strict: true})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch under strict coverage, got %v", err)
	}
}

func TestMatchTitlesExcessTitlesLeftUnmapped(t *testing.T) {
	titles := []Title{
		wholeTitle(1, minutes(58)),
		wholeTitle(2, minutes(56)),
		wholeTitle(3, minutes(55)),
	}
	episodes := episodesNamed("E1")
	w := Window{Min: minutes(50), Max: minutes(65)}

	mapping, err := MatchTitles(titles, episodes, w, Options{})
	if err != nil {
		t.Fatalf("MatchTitles returned error: %v", err)
	}
	if len(mapping) != 1 || mapping[0].Target.Title != 1 {
		t.Fatalf("unexpected mapping: %v", mapping)
	}
}

func TestMatchTitlesMultipartTitle(t *testing.T) {
	titles := []Title{
		wholeTitle(1, minutes(90)),
		wholeTitle(2, minutes(45)),
	}
	episodes := episodesNamed("The Siege - Part 1", "The Siege - Part 2", "Aftermath")
	w := Window{Min: minutes(40), Max: minutes(50)}

	mapping, err := MatchTitles(titles, episodes, w, Options{})
	if err != nil {
		t.Fatalf("MatchTitles returned error: %v", err)
	}
	if len(mapping) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(mapping))
	}
	if mapping[0].Target.Title != 1 || mapping[1].Target.Title != 1 {
		t.Fatalf("multi-part episodes should share title 1: %v", mapping)
	}
	if mapping[2].Target.Title != 2 {
		t.Fatalf("third episode should map to title 2: %v", mapping)
	}
}

func TestMatchTitlesMultipartDisabled(t *testing.T) {
	titles := []Title{wholeTitle(1, minutes(90))}
	episodes := episodesNamed("The Siege - Part 1", "The Siege - Part 2")
	w := Window{Min: minutes(40), Max: minutes(50)}

	_, err := MatchTitles(titles, episodes, w, Options{DisableMultipart: true})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch with multipart disabled, got %v", err)
	}
}

func TestMatchTitlesSkipsRippedEpisodes(t *testing.T) {
	titles := []Title{wholeTitle(1, minutes(58))}
	episodes := []Episode{
		{Number: 1, Name: "E1", Ripped: true},
		{Number: 2, Name: "E2"},
	}
	w := Window{Min: minutes(50), Max: minutes(65)}

	mapping, err := MatchTitles(titles, episodes, w, Options{})
	if err != nil {
		t.Fatalf("MatchTitles returned error: %v", err)
	}
	if len(mapping) != 1 || mapping[0].Episode.Number != 2 {
		t.Fatalf("ripped episode must never be a mapping target: %v", mapping)
	}
}

func TestMatchTitlesNoEpisodes(t *testing.T) {
	titles := []Title{wholeTitle(1, minutes(58))}
	_, err := MatchTitles(titles, nil, Window{Min: minutes(50), Max: minutes(65)}, Options{})
	if !errors.Is(err, ErrNoEpisodes) {
		t.Fatalf("expected ErrNoEpisodes, got %v", err)
	}
}

func TestFilterDuplicates(t *testing.T) {
	titles := []Title{
		{Number: 1, Duplicate: DuplicateNone},
		{Number: 2, Duplicate: DuplicateFirst},
		{Number: 3, Duplicate: DuplicateMiddle},
		{Number: 4, Duplicate: DuplicateLast},
		{Number: 5, Duplicate: DuplicateNone},
	}

	cases := []struct {
		policy Policy
		want   []int
	}{
		{PolicyAll, []int{1, 2, 3, 4, 5}},
		{PolicyFirst, []int{1, 2, 5}},
		{PolicyLast, []int{1, 4, 5}},
	}
	for _, tc := range cases {
		filtered := FilterDuplicates(titles, tc.policy)
		got := make([]int, 0, len(filtered))
		for _, title := range filtered {
			got = append(got, title.Number)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("policy %s kept %v, want %v", tc.policy, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("policy %s kept %v, want %v", tc.policy, got, tc.want)
			}
		}
	}
}
