package ripping

import (
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	cases := []struct {
		name     string
		template string
		fields   map[string]string
		want     string
		wantErr  string
	}{
		{
			name:     "plain fields",
			template: "{program} - {id} - {name}.{ext}",
			fields:   map[string]string{"program": "Farscape", "id": "1x01", "name": "Premiere", "ext": "mp4"},
			want:     "Farscape - 1x01 - Premiere.mp4",
		},
		{
			name:     "zero pad",
			template: "{season}x{episode:02}",
			fields:   map[string]string{"season": "1", "episode": "7"},
			want:     "1x07",
		},
		{
			name:     "pad wider than value",
			template: "{episode:04}",
			fields:   map[string]string{"episode": "12"},
			want:     "0012",
		},
		{
			name:     "unknown field",
			template: "{nope}",
			fields:   map[string]string{},
			wantErr:  "unknown field",
		},
		{
			name:     "unterminated",
			template: "{program",
			fields:   map[string]string{"program": "x"},
			wantErr:  "unterminated",
		},
		{
			name:     "bad pad spec",
			template: "{episode:xx}",
			fields:   map[string]string{"episode": "1"},
			wantErr:  "bad pad spec",
		},
		{
			name:     "pad on non-numeric",
			template: "{name:02}",
			fields:   map[string]string{"name": "Premiere"},
			wantErr:  "not numeric",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expand(tc.template, tc.fields)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("Expand() error = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("Expand() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEpisodeID(t *testing.T) {
	id, err := EpisodeID("{season}x{episode:02}", 2, 3)
	if err != nil {
		t.Fatalf("EpisodeID() error = %v", err)
	}
	if id != "2x03" {
		t.Fatalf("EpisodeID() = %q, want 2x03", id)
	}
}

func TestFileNameScrubsHostileCharacters(t *testing.T) {
	got, err := FileName("{program} - {id} - {name}.{ext}", "Who: Series", "1x01", "What? A *Name*", "mp4")
	if err != nil {
		t.Fatalf("FileName() error = %v", err)
	}
	want := "Who- Series - 1x01 - What_ A _Name_.mp4"
	if got != want {
		t.Fatalf("FileName() = %q, want %q", got, want)
	}
}
