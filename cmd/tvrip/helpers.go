package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"tvrip/internal/episodemap"
)

// parseTitleChapter parses "3" or "3.5" into a title and optional chapter.
func parseTitleChapter(spec string) (title, chapter int, err error) {
	titlePart, chapterPart, hasChapter := strings.Cut(spec, ".")
	title, err = strconv.Atoi(titlePart)
	if err != nil || title < 1 {
		return 0, 0, fmt.Errorf("invalid title %q", titlePart)
	}
	if !hasChapter {
		return title, 0, nil
	}
	chapter, err = strconv.Atoi(chapterPart)
	if err != nil || chapter < 1 {
		return 0, 0, fmt.Errorf("invalid chapter %q", chapterPart)
	}
	return title, chapter, nil
}

// parseTarget parses "3" (a whole title) or "3.1-5" (an inclusive chapter
// range within a title).
func parseTarget(spec string) (episodemap.Target, error) {
	titlePart, rangePart, hasRange := strings.Cut(spec, ".")
	title, err := strconv.Atoi(titlePart)
	if err != nil || title < 1 {
		return episodemap.Target{}, fmt.Errorf("invalid title %q", titlePart)
	}
	if !hasRange {
		return episodemap.Target{Title: title}, nil
	}
	startPart, endPart, hasEnd := strings.Cut(rangePart, "-")
	if !hasEnd {
		endPart = startPart
	}
	start, err := strconv.Atoi(startPart)
	if err != nil || start < 1 {
		return episodemap.Target{}, fmt.Errorf("invalid start chapter %q", startPart)
	}
	end, err := strconv.Atoi(endPart)
	if err != nil || end < start {
		return episodemap.Target{}, fmt.Errorf("invalid end chapter %q", endPart)
	}
	return episodemap.Target{Title: title, StartChapter: start, EndChapter: end}, nil
}

// formatDuration renders a duration as H:MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	s := (d - m*time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// normalizeName brings externally sourced episode names into NFC form so
// lookups and generated filenames are stable across platforms.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
