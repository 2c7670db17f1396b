package disc

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

type handBrakeParser struct{}

// jsonTitleSetMarker precedes the JSON payload in HandBrakeCLI scan output.
const jsonTitleSetMarker = "JSON Title Set:"

var (
	discTypePattern   = regexp.MustCompile(`scan: (BD|DVD) has \d+ title\(s\)`)
	discNamePattern   = regexp.MustCompile(`^libdvdnav: DVD Title: (.*)$`)
	discSerialPattern = regexp.MustCompile(`^libdvdnav: DVD Serial Number: (.*)$`)
	readErrorPattern  = regexp.MustCompile(`libdvdread: Can't open .* for reading|libdvdnav: vm: failed to open/read the .*`)
)

type scanDuration struct {
	Hours   int `json:"Hours"`
	Minutes int `json:"Minutes"`
	Seconds int `json:"Seconds"`
}

func (d scanDuration) duration() time.Duration {
	return time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

type scanTitleSet struct {
	TitleList []struct {
		Index    int          `json:"Index"`
		Duration scanDuration `json:"Duration"`
		Geometry struct {
			Width  int `json:"Width"`
			Height int `json:"Height"`
		} `json:"Geometry"`
		InterlaceDetected bool `json:"InterlaceDetected"`
		ChapterList       []struct {
			Name     string       `json:"Name"`
			Duration scanDuration `json:"Duration"`
		} `json:"ChapterList"`
		AudioList []struct {
			Language          string `json:"Language"`
			LanguageCode      string `json:"LanguageCode"`
			CodecName         string `json:"CodecName"`
			ChannelLayoutName string `json:"ChannelLayoutName"`
			SampleRate        int    `json:"SampleRate"`
			BitRate           int    `json:"BitRate"`
		} `json:"AudioList"`
		SubtitleList []struct {
			Language     string `json:"Language"`
			LanguageCode string `json:"LanguageCode"`
			SourceName   string `json:"SourceName"`
		} `json:"SubtitleList"`
	} `json:"TitleList"`
}

// parseStderr extracts the disc type, name, and serial from HandBrake's
// diagnostic output, failing fast on unreadable-disc messages.
func (handBrakeParser) parseStderr(output string) (Type, string, string, error) {
	var (
		discType Type
		name     string
		serial   string
	)
	for _, line := range strings.Split(output, "\n") {
		if readErrorPattern.MatchString(line) {
			return "", "", "", errors.New("unable to read disc")
		}
		if match := discNamePattern.FindStringSubmatch(line); match != nil {
			name = match[1]
		} else if match := discSerialPattern.FindStringSubmatch(line); match != nil {
			serial = match[1]
		} else if match := discTypePattern.FindStringSubmatch(line); match != nil {
			switch match[1] {
			case "DVD":
				discType = TypeDVD
			case "BD":
				discType = TypeBluRay
			}
		}
	}
	if discType == "" {
		return "", "", "", errors.New("failed to determine disc type")
	}
	return discType, name, serial, nil
}

// parseStdout locates the trailing JSON Title Set payload and converts it
// into the title model. Chapter numbers come from the "Chapter N" names and
// are re-sorted, matching the scanner's occasionally shuffled output.
func (handBrakeParser) parseStdout(output string) ([]Title, error) {
	index := strings.LastIndex(output, jsonTitleSetMarker)
	if index < 0 {
		return nil, errors.New("no JSON title set in scan output")
	}
	payload := output[index+len(jsonTitleSetMarker):]

	// HandBrake may keep writing after the payload; decode one JSON value
	// and ignore whatever follows.
	var set scanTitleSet
	if err := json.NewDecoder(strings.NewReader(payload)).Decode(&set); err != nil {
		return nil, fmt.Errorf("parse title set: %w", err)
	}

	titles := make([]Title, 0, len(set.TitleList))
	for _, jt := range set.TitleList {
		title := Title{
			Number:     jt.Index,
			Duration:   jt.Duration.duration(),
			Width:      jt.Geometry.Width,
			Height:     jt.Geometry.Height,
			Interlaced: jt.InterlaceDetected,
			Duplicate:  "no",
		}
		for _, jc := range jt.ChapterList {
			number, err := chapterNumber(jc.Name)
			if err != nil {
				return nil, err
			}
			title.Chapters = append(title.Chapters, Chapter{
				Number:   number,
				Duration: jc.Duration.duration(),
			})
		}
		sort.Slice(title.Chapters, func(i, j int) bool {
			return title.Chapters[i].Number < title.Chapters[j].Number
		})
		for i, ja := range jt.AudioList {
			title.AudioTracks = append(title.AudioTracks, AudioTrack{
				Number:     i + 1,
				Name:       ja.Language,
				Language:   strings.ToLower(ja.LanguageCode),
				Encoding:   strings.ToLower(ja.CodecName),
				ChannelMix: strings.ToLower(ja.ChannelLayoutName),
				SampleRate: ja.SampleRate,
				BitRate:    ja.BitRate,
			})
		}
		for i, js := range jt.SubtitleList {
			title.SubtitleTracks = append(title.SubtitleTracks, SubtitleTrack{
				Number:   i + 1,
				Name:     js.Language,
				Language: strings.ToLower(js.LanguageCode),
				Format:   strings.ToLower(js.SourceName),
			})
		}
		titles = append(titles, title)
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i].Number < titles[j].Number })
	return titles, nil
}

func chapterNumber(name string) (int, error) {
	const prefix = "Chapter "
	if !strings.HasPrefix(name, prefix) {
		return 0, fmt.Errorf("unexpected chapter name %q", name)
	}
	number, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(name, prefix)))
	if err != nil {
		return 0, fmt.Errorf("unexpected chapter name %q", name)
	}
	return number, nil
}
