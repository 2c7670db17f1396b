package disc

import (
	"testing"
	"time"
)

const scanStderr = `
libdvdnav: Using dvdnav version 6.1.1
libdvdnav: DVD Title: FARSCAPE_S1_D1
libdvdnav: DVD Serial Number: 4361fe2a
scan: DVD has 4 title(s)
`

const scanStdout = `
Version: {
    "Name": "HandBrake"
}
JSON Title Set: {
    "MainFeature": 1,
    "TitleList": [
        {
            "Index": 1,
            "Duration": {"Hours": 0, "Minutes": 48, "Seconds": 31},
            "Geometry": {"Width": 720, "Height": 576},
            "InterlaceDetected": true,
            "ChapterList": [
                {"Name": "Chapter 1", "Duration": {"Hours": 0, "Minutes": 6, "Seconds": 12}},
                {"Name": "Chapter 2", "Duration": {"Hours": 0, "Minutes": 40, "Seconds": 0}},
                {"Name": "Chapter 3", "Duration": {"Hours": 0, "Minutes": 2, "Seconds": 19}}
            ],
            "AudioList": [
                {"Language": "English", "LanguageCode": "eng", "CodecName": "AC3",
                 "ChannelLayoutName": "5point1", "SampleRate": 48000, "BitRate": 448000},
                {"Language": "English", "LanguageCode": "eng", "CodecName": "AC3",
                 "ChannelLayoutName": "stereo", "SampleRate": 48000, "BitRate": 192000}
            ],
            "SubtitleList": [
                {"Language": "English", "LanguageCode": "eng", "SourceName": "VOBSUB"}
            ]
        },
        {
            "Index": 2,
            "Duration": {"Hours": 0, "Minutes": 48, "Seconds": 31},
            "Geometry": {"Width": 720, "Height": 576},
            "InterlaceDetected": false,
            "ChapterList": [],
            "AudioList": [],
            "SubtitleList": []
        }
    ]
}
`

func TestParseStderr(t *testing.T) {
	var parser handBrakeParser
	discType, name, serial, err := parser.parseStderr(scanStderr)
	if err != nil {
		t.Fatalf("parseStderr returned error: %v", err)
	}
	if discType != TypeDVD {
		t.Errorf("type = %q", discType)
	}
	if name != "FARSCAPE_S1_D1" {
		t.Errorf("name = %q", name)
	}
	if serial != "4361fe2a" {
		t.Errorf("serial = %q", serial)
	}
}

func TestParseStderrUnreadableDisc(t *testing.T) {
	var parser handBrakeParser
	_, _, _, err := parser.parseStderr("libdvdread: Can't open /dev/sr0 for reading\n")
	if err == nil {
		t.Fatal("expected error for unreadable disc")
	}
}

func TestParseStderrUnknownType(t *testing.T) {
	var parser handBrakeParser
	_, _, _, err := parser.parseStderr("nothing useful here\n")
	if err == nil {
		t.Fatal("expected error when disc type cannot be determined")
	}
}

func TestParseStdoutTitles(t *testing.T) {
	var parser handBrakeParser
	titles, err := parser.parseStdout(scanStdout)
	if err != nil {
		t.Fatalf("parseStdout returned error: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(titles))
	}

	title := titles[0]
	if title.Number != 1 {
		t.Errorf("title number = %d", title.Number)
	}
	if want := 48*time.Minute + 31*time.Second; title.Duration != want {
		t.Errorf("duration = %s, want %s", title.Duration, want)
	}
	if !title.Interlaced || title.Width != 720 || title.Height != 576 {
		t.Errorf("geometry = %dx%d interlaced=%v", title.Width, title.Height, title.Interlaced)
	}
	if len(title.Chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(title.Chapters))
	}
	if title.Chapters[1].Number != 2 || title.Chapters[1].Duration != 40*time.Minute {
		t.Errorf("chapter 2 = %+v", title.Chapters[1])
	}
	if len(title.AudioTracks) != 2 {
		t.Fatalf("expected 2 audio tracks, got %d", len(title.AudioTracks))
	}
	if title.AudioTracks[0].Encoding != "ac3" || title.AudioTracks[0].ChannelMix != "5point1" {
		t.Errorf("audio track 1 = %+v", title.AudioTracks[0])
	}
	if len(title.SubtitleTracks) != 1 || title.SubtitleTracks[0].Format != "vobsub" {
		t.Errorf("subtitle tracks = %+v", title.SubtitleTracks)
	}
}

func TestParseStdoutTrailingOutput(t *testing.T) {
	var parser handBrakeParser
	titles, err := parser.parseStdout(scanStdout + "\nScan: DVD ejected\nHandBrake has exited.\n")
	if err != nil {
		t.Fatalf("parseStdout returned error: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(titles))
	}
}

func TestParseStdoutMissingPayload(t *testing.T) {
	var parser handBrakeParser
	if _, err := parser.parseStdout("no JSON here"); err == nil {
		t.Fatal("expected error for missing JSON title set")
	}
}

func TestChapterStartOffsets(t *testing.T) {
	var parser handBrakeParser
	titles, err := parser.parseStdout(scanStdout)
	if err != nil {
		t.Fatalf("parseStdout returned error: %v", err)
	}
	title := titles[0]
	if got := title.Start(1); got != 0 {
		t.Errorf("chapter 1 start = %s", got)
	}
	if want := 6*time.Minute + 12*time.Second; title.Start(2) != want {
		t.Errorf("chapter 2 start = %s, want %s", title.Start(2), want)
	}
	if want := 46*time.Minute + 12*time.Second; title.Start(3) != want {
		t.Errorf("chapter 3 start = %s, want %s", title.Start(3), want)
	}
}
