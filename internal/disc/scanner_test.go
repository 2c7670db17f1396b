package disc

import (
	"context"
	"strings"
	"testing"
	"time"

	"tvrip/internal/episodemap"
)

type fakeExecutor struct {
	stdout string
	stderr string
	err    error
	args   []string
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args []string) ([]byte, []byte, error) {
	f.args = args
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func TestScannerBuildsDiscModel(t *testing.T) {
	exec := &fakeExecutor{stdout: scanStdout, stderr: scanStderr}
	scanner := NewScanner("HandBrakeCLI", 300, WithExecutor(exec))

	d, err := scanner.Scan(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if d.Type != TypeDVD || d.Name != "FARSCAPE_S1_D1" {
		t.Fatalf("disc = %+v", d)
	}
	if !strings.HasPrefix(d.Ident, "$H1$") {
		t.Fatalf("ident = %q", d.Ident)
	}
	if len(d.Titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(d.Titles))
	}
	// Equal durations make the two titles a duplicate run.
	if d.Titles[0].Duplicate != episodemap.DuplicateFirst ||
		d.Titles[1].Duplicate != episodemap.DuplicateLast {
		t.Fatalf("duplicate markers = %v, %v", d.Titles[0].Duplicate, d.Titles[1].Duplicate)
	}
	// The 5.1 track should win best for its language.
	if !d.Titles[0].AudioTracks[0].Best || d.Titles[0].AudioTracks[1].Best {
		t.Fatalf("audio best flags = %+v", d.Titles[0].AudioTracks)
	}

	joined := strings.Join(exec.args, " ")
	for _, fragment := range []string{"-i /dev/sr0", "-t 0", "--min-duration 300", "--scan", "--json"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("scan command missing %q: %s", fragment, joined)
		}
	}
}

func TestScannerIdentStableAcrossScans(t *testing.T) {
	exec := &fakeExecutor{stdout: scanStdout, stderr: scanStderr}
	scanner := NewScanner("HandBrakeCLI", 300, WithExecutor(exec))

	first, err := scanner.Scan(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	second, err := scanner.Scan(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if first.Ident != second.Ident {
		t.Fatalf("idents differ: %q vs %q", first.Ident, second.Ident)
	}
}

func TestScannerRequiresConfiguration(t *testing.T) {
	if _, err := NewScanner("", 300).Scan(context.Background(), "/dev/sr0"); err == nil {
		t.Fatal("expected error without binary")
	}
	if _, err := NewScanner("HandBrakeCLI", 300).Scan(context.Background(), ""); err == nil {
		t.Fatal("expected error without device")
	}
}

func TestMarkDuplicateRunManual(t *testing.T) {
	titles := []Title{
		{Number: 1, Duration: 40 * time.Minute},
		{Number: 2, Duration: 41 * time.Minute},
		{Number: 3, Duration: 42 * time.Minute},
		{Number: 4, Duration: 43 * time.Minute},
	}
	markDuplicates(titles)

	MarkDuplicateRun(titles, 2, 4)
	want := []episodemap.Duplicate{
		episodemap.DuplicateNone,
		episodemap.DuplicateFirst,
		episodemap.DuplicateMiddle,
		episodemap.DuplicateLast,
	}
	for i, title := range titles {
		if title.Duplicate != want[i] {
			t.Fatalf("title %d duplicate = %v, want %v", title.Number, title.Duplicate, want[i])
		}
	}

	// Shrinking to a single title clears its run state and repairs the rest.
	MarkDuplicateRun(titles, 3, 3)
	if titles[2].Duplicate != episodemap.DuplicateNone {
		t.Fatalf("title 3 duplicate = %v", titles[2].Duplicate)
	}
	if titles[1].Duplicate != episodemap.DuplicateNone {
		t.Fatalf("title 2 duplicate = %v", titles[1].Duplicate)
	}
	if titles[3].Duplicate != episodemap.DuplicateNone {
		t.Fatalf("title 4 duplicate = %v", titles[3].Duplicate)
	}
}

func TestSnapshotMirrorsTitles(t *testing.T) {
	exec := &fakeExecutor{stdout: scanStdout, stderr: scanStderr}
	scanner := NewScanner("HandBrakeCLI", 300, WithExecutor(exec))
	d, err := scanner.Scan(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	snapshot := d.Snapshot()
	if len(snapshot) != len(d.Titles) {
		t.Fatalf("snapshot has %d titles, want %d", len(snapshot), len(d.Titles))
	}
	if snapshot[0].Number != 1 || len(snapshot[0].Chapters) != 3 {
		t.Fatalf("snapshot title 1 = %+v", snapshot[0])
	}
	if snapshot[0].Duplicate != d.Titles[0].Duplicate {
		t.Fatalf("duplicate marker lost in snapshot")
	}
}

func TestMRL(t *testing.T) {
	d := &Disc{Type: TypeDVD}
	if got := d.MRL("/dev/sr0", 0, 0); got != "dvd:///dev/sr0" {
		t.Errorf("disc MRL = %q", got)
	}
	if got := d.MRL("/dev/sr0", 3, 0); got != "dvd:///dev/sr0#3" {
		t.Errorf("title MRL = %q", got)
	}
	bd := &Disc{Type: TypeBluRay}
	if got := bd.MRL("/dev/sr0", 3, 7); got != "bluray:///dev/sr0#3:7" {
		t.Errorf("chapter MRL = %q", got)
	}
}
