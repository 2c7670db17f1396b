package disc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"tvrip/internal/logging"
)

// Executor abstracts command execution for the scanner, capturing stdout and
// stderr separately.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Scanner gathers disc metadata through HandBrakeCLI scan passes.
type Scanner struct {
	binary      string
	minDuration int
	dvdNav      bool
	exec        Executor
	parser      handBrakeParser
	logger      *slog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithExecutor injects a custom executor, primarily for tests.
func WithExecutor(exec Executor) ScannerOption {
	return func(s *Scanner) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// WithLogger sets the scanner's logging destination.
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logging.NewComponentLogger(logger, "scanner")
	}
}

// WithoutDVDNav disables libdvdnav during scanning, for discs whose menus
// confuse it.
func WithoutDVDNav() ScannerOption {
	return func(s *Scanner) { s.dvdNav = false }
}

// NewScanner constructs a Scanner for the provided HandBrakeCLI binary.
// Titles shorter than minDuration seconds are ignored by the scan.
func NewScanner(binary string, minDuration int, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		binary:      strings.TrimSpace(binary),
		minDuration: minDuration,
		dvdNav:      true,
		exec:        commandExecutor{},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan executes a HandBrakeCLI scan of every title on the device and builds
// the disc model: parsed titles, duplicate-run markers, best-track flags,
// and the disc identity hash.
func (s *Scanner) Scan(ctx context.Context, device string) (*Disc, error) {
	if s.binary == "" {
		return nil, errors.New("handbrake binary not configured")
	}
	if strings.TrimSpace(device) == "" {
		return nil, errors.New("source device not configured")
	}

	args := []string{
		"-i", device,
		"-t", "0",
		"--min-duration", strconv.Itoa(s.minDuration),
		"--scan",
		"--json",
	}
	if !s.dvdNav {
		args = append(args, "--no-dvdnav")
	}

	stdout, stderr, err := s.exec.Run(ctx, s.binary, args)
	if err != nil {
		return nil, fmt.Errorf("handbrake scan failed: %w", err)
	}

	discType, name, serial, err := s.parser.parseStderr(string(stderr))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", device, err)
	}
	titles, err := s.parser.parseStdout(string(stdout))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", device, err)
	}

	d := &Disc{
		Type:   discType,
		Name:   name,
		Serial: serial,
		Titles: titles,
	}
	d.Ident = identify(d)
	markDuplicates(d.Titles)
	markBestTracks(d.Titles)

	s.logger.Info("disc scanned",
		logging.String("device", device),
		logging.String("type", string(d.Type)),
		logging.String("name", d.Name),
		logging.Int("titles", len(d.Titles)),
	)
	return d, nil
}
