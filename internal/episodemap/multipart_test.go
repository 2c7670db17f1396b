package episodemap

import "testing"

func TestMultipartPrefix(t *testing.T) {
	cases := []struct {
		name  string
		names []string
		want  int
	}{
		{"single", []string{"The Gathering"}, 1},
		{"unrelated", []string{"The Gathering", "Soul Hunter"}, 1},
		{"part suffix", []string{"War Zone - Part 1", "War Zone - Part 2", "Epilogue"}, 2},
		{"paren suffix", []string{"Chrysalis (1)", "Chrysalis (2)", "Chrysalis (3)"}, 3},
		{"ditto", []string{"The Long Dark", `"`, `"`}, 3},
		{"mismatched base", []string{"War Zone - Part 1", "Peace Zone - Part 2"}, 1},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MultipartPrefix(episodesNamed(tc.names...)); got != tc.want {
				t.Fatalf("MultipartPrefix(%v) = %d, want %d", tc.names, got, tc.want)
			}
		})
	}
}

func TestMultipartName(t *testing.T) {
	cases := []struct {
		name    string
		names   []string
		want    string
		wantErr bool
	}{
		{"single", []string{"The Gathering"}, "The Gathering", false},
		{"ditto", []string{"The Long Dark", `"`}, "The Long Dark", false},
		{"part suffix", []string{"War Zone - Part 1", "War Zone - Part 2"}, "War Zone", false},
		{"paren suffix", []string{"Chrysalis (1)", "Chrysalis (2)"}, "Chrysalis", false},
		{"unrecognized", []string{"Alpha", "Beta"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MultipartName(episodesNamed(tc.names...))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("MultipartName returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("MultipartName(%v) = %q, want %q", tc.names, got, tc.want)
			}
		})
	}
}
