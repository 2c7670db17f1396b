package handbrake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tvrip/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// AudioSelection names one audio track to carry into the output.
type AudioSelection struct {
	Track int
	Mix   string
	Name  string
}

// SubtitleSelection names one subtitle track to carry into the output.
type SubtitleSelection struct {
	Track   int
	Name    string
	Default bool
}

// Request describes one transcode of a title (or chapter range) to a file.
type Request struct {
	Source       string
	Title        int
	StartChapter int
	EndChapter   int
	Output       string

	Format        string // mp4 or mkv container
	MaxWidth      int
	MaxHeight     int
	Quality       int
	EncoderTune   string // empty for no tune
	AudioEncoding string
	Audio         []AudioSelection
	Subtitles     []SubtitleSelection
	SubtitleStyle string // vobsub, pgs, none
	Decomb        string // off, on, auto
	DVDNav        bool
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps HandBrakeCLI transcode invocations.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a HandBrake client. A zero timeout means no limit beyond
// the caller's context.
func New(binary string, timeout time.Duration, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("handbrake binary required")
	}
	client := &Client{binary: binary, timeout: timeout, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Rip transcodes per the request, creating the output's directory first.
func (c *Client) Rip(ctx context.Context, req Request) error {
	if req.Output == "" {
		return services.Wrap(services.ErrConfiguration, "handbrake", "rip", "output path required", nil)
	}
	if req.Source == "" {
		return services.Wrap(services.ErrConfiguration, "handbrake", "rip", "source device required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ripCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ripCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := BuildArgs(req)
	if err := c.exec.Run(ripCtx, c.binary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "handbrake", "rip",
			fmt.Sprintf("title %d to %s", req.Title, filepath.Base(req.Output)), err)
	}
	return nil
}

// BuildArgs assembles the HandBrakeCLI argument list for a request. The
// encoder settings follow the x264 High Profile defaults with streaming
// optimization and chapter markers.
func BuildArgs(req Request) []string {
	format := req.Format
	if format == "" {
		format = "mp4"
	}
	args := []string{
		"-i", req.Source,
		"-t", strconv.Itoa(req.Title),
		"-o", req.Output,
		"-f", "av_" + format,
		"-O",
		"-m",
		"-X", strconv.Itoa(req.MaxWidth),
		"-Y", strconv.Itoa(req.MaxHeight),
		"--encoder", "x264",
		"--encoder-preset", "medium",
		"--encoder-profile", "high",
		"--encoder-level", "4.1",
		"-x", "psy-rd=1|0.15:vbv-bufsize=78125:vbv-maxrate=62500:me=umh:b-adapt=2",
		// Cropping breaks vobsub subtitles; disable it entirely.
		"--crop", "0:0:0:0",
		"--crop-mode", "conservative",
		"--loose-anamorphic",
		"--modulus", "16",
	}

	if len(req.Audio) > 0 {
		tracks := make([]string, 0, len(req.Audio))
		encodings := make([]string, 0, len(req.Audio))
		bitrates := make([]string, 0, len(req.Audio))
		mixes := make([]string, 0, len(req.Audio))
		names := make([]string, 0, len(req.Audio))
		for _, sel := range req.Audio {
			tracks = append(tracks, strconv.Itoa(sel.Track))
			encodings = append(encodings, req.AudioEncoding)
			bitrates = append(bitrates, "160")
			mixes = append(mixes, sel.Mix)
			names = append(names, sel.Name)
		}
		args = append(args,
			"-a", strings.Join(tracks, ","),
			"-E", strings.Join(encodings, ","),
			"-B", strings.Join(bitrates, ","),
			"-6", strings.Join(mixes, ","),
			"-A", strings.Join(names, ","),
		)
	}

	args = append(args, "--quality", strconv.Itoa(req.Quality))
	if req.EncoderTune != "" {
		args = append(args, "--encoder-tune", req.EncoderTune)
	}
	if !req.DVDNav {
		args = append(args, "--no-dvdnav")
	}
	if req.StartChapter > 0 {
		if req.EndChapter > req.StartChapter {
			args = append(args, "-c", fmt.Sprintf("%d-%d", req.StartChapter, req.EndChapter))
		} else {
			args = append(args, "-c", strconv.Itoa(req.StartChapter))
		}
	}
	if (req.SubtitleStyle == "vobsub" || req.SubtitleStyle == "pgs") && len(req.Subtitles) > 0 {
		tracks := make([]string, 0, len(req.Subtitles))
		for _, sel := range req.Subtitles {
			tracks = append(tracks, strconv.Itoa(sel.Track))
		}
		args = append(args, "-s", strings.Join(tracks, ","))
		for _, sel := range req.Subtitles {
			if sel.Default {
				args = append(args, "--subtitle-default", strconv.Itoa(sel.Track))
				break
			}
		}
	}
	switch req.Decomb {
	case "on":
		args = append(args, "-d", "slow")
	case "auto":
		args = append(args, "-5")
	}
	return args
}
