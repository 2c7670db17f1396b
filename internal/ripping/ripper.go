package ripping

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tvrip/internal/config"
	"tvrip/internal/database"
	"tvrip/internal/disc"
	"tvrip/internal/episodemap"
	"tvrip/internal/logging"
	"tvrip/internal/services"
	"tvrip/internal/services/handbrake"
)

// Transcoder is the subset of the HandBrake client the ripper needs.
type Transcoder interface {
	Rip(ctx context.Context, req handbrake.Request) error
}

// Ripper rips mapped episodes from a disc and records their rip state.
type Ripper struct {
	cfg    *config.Config
	store  *database.Store
	client Transcoder
	logger *slog.Logger
}

// NewRipper constructs the ripper using the configured HandBrake binary.
func NewRipper(cfg *config.Config, store *database.Store, logger *slog.Logger) (*Ripper, error) {
	client, err := handbrake.New(cfg.Binaries.HandBrake, time.Duration(cfg.Ripping.RipTimeout)*time.Second)
	if err != nil {
		return nil, err
	}
	return NewRipperWithClient(cfg, store, logger, client), nil
}

// NewRipperWithClient allows injecting the transcoder (used in tests).
func NewRipperWithClient(cfg *config.Config, store *database.Store, logger *slog.Logger, client Transcoder) *Ripper {
	return &Ripper{
		cfg:    cfg,
		store:  store,
		client: client,
		logger: logging.NewComponentLogger(logger, "ripper"),
	}
}

// job is one transcode: a target on the disc and the episodes it yields.
// A run of episodes sharing a target becomes a single job.
type job struct {
	target   episodemap.Target
	episodes []database.Episode
}

// RipMapped rips every assignment of the mapping from the disc, one
// output file per distinct target. Each episode is marked ripped as its
// file lands in the target directory, so an interrupted run can resume
// with the remaining episodes.
func (r *Ripper) RipMapped(ctx context.Context, d *disc.Disc, episodes []database.Episode, mapping episodemap.Mapping) error {
	if d == nil {
		return services.Wrap(services.ErrValidation, "ripper", "rip", "no disc scanned", nil)
	}
	jobs, err := buildJobs(episodes, mapping)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if err := r.ripJob(ctx, d, job); err != nil {
			return err
		}
	}
	return nil
}

func buildJobs(episodes []database.Episode, mapping episodemap.Mapping) ([]job, error) {
	byNumber := make(map[int]database.Episode, len(episodes))
	for _, episode := range episodes {
		byNumber[episode.Number] = episode
	}

	var jobs []job
	for _, assignment := range mapping {
		episode, ok := byNumber[assignment.Episode.Number]
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "ripper", "rip",
				fmt.Sprintf("mapping references unknown episode %d", assignment.Episode.Number), nil)
		}
		if n := len(jobs); n > 0 && jobs[n-1].target == assignment.Target {
			jobs[n-1].episodes = append(jobs[n-1].episodes, episode)
			continue
		}
		jobs = append(jobs, job{target: assignment.Target, episodes: []database.Episode{episode}})
	}
	return jobs, nil
}

func (r *Ripper) ripJob(ctx context.Context, d *disc.Disc, job job) error {
	title, ok := d.Title(job.target.Title)
	if !ok {
		return services.Wrap(services.ErrValidation, "ripper", "rip",
			fmt.Sprintf("disc has no title %d", job.target.Title), nil)
	}

	fileName, err := r.outputName(job.episodes)
	if err != nil {
		return err
	}
	tempPath := filepath.Join(r.cfg.Paths.Temp, uuid.NewString()+"."+r.cfg.Ripping.OutputFormat)
	targetPath := filepath.Join(r.cfg.Paths.Target, fileName)

	r.logger.Info("ripping",
		logging.String("target", job.target.String()),
		logging.String("output", fileName),
	)

	req := handbrake.Request{
		Source:        r.cfg.Paths.Source,
		Title:         job.target.Title,
		StartChapter:  job.target.StartChapter,
		EndChapter:    job.target.EndChapter,
		Output:        tempPath,
		Format:        r.cfg.Ripping.OutputFormat,
		MaxWidth:      r.cfg.Ripping.MaxWidth,
		MaxHeight:     r.cfg.Ripping.MaxHeight,
		Quality:       r.cfg.Ripping.VideoQuality,
		EncoderTune:   encoderTune(r.cfg.Ripping.VideoStyle),
		AudioEncoding: r.cfg.Ripping.AudioEncoding,
		Audio:         selectAudio(title, r.cfg.Ripping),
		Subtitles:     selectSubtitles(title, r.cfg.Ripping),
		SubtitleStyle: r.cfg.Ripping.SubtitleFormat,
		Decomb:        r.cfg.Ripping.Decomb,
		DVDNav:        r.cfg.Ripping.DVDNav,
	}
	if err := r.client.Rip(ctx, req); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	if err := moveFile(tempPath, targetPath); err != nil {
		return fmt.Errorf("move rip into place: %w", err)
	}

	for _, episode := range job.episodes {
		err := r.store.MarkRipped(ctx, episode.Program, episode.Season, episode.Number,
			d.Ident, job.target.Title, job.target.StartChapter, job.target.EndChapter)
		if err != nil {
			return err
		}
		r.logger.Info("episode ripped",
			logging.String("program", episode.Program),
			logging.Int("season", episode.Season),
			logging.Int("episode", episode.Number),
		)
	}
	return nil
}

// outputName renders the filename for a job. Multipart jobs combine the
// episode ids and use the episodes' shared name.
func (r *Ripper) outputName(episodes []database.Episode) (string, error) {
	first := episodes[0]
	id, err := EpisodeID(r.cfg.Ripping.IDTemplate, first.Season, first.Number)
	if err != nil {
		return "", err
	}
	name := first.Name
	if len(episodes) > 1 {
		last := episodes[len(episodes)-1]
		lastID, err := EpisodeID(r.cfg.Ripping.IDTemplate, last.Season, last.Number)
		if err != nil {
			return "", err
		}
		id = id + "-" + lastID
		if merged, err := episodemap.MultipartName(database.Snapshot(episodes)); err == nil {
			name = merged
		}
	}
	return FileName(r.cfg.Ripping.Template, first.Program, id, name, r.cfg.Ripping.OutputFormat)
}

// RippedMapping reconstructs the mapping of episodes already ripped from
// this disc, so a rescan shows where each episode lives.
func RippedMapping(d *disc.Disc, episodes []database.Episode) episodemap.Mapping {
	var mapping episodemap.Mapping
	for _, episode := range episodes {
		if episode.DiscIdent != d.Ident {
			continue
		}
		mapping = append(mapping, episodemap.Assignment{
			Episode: episodemap.Episode{Number: episode.Number, Name: episode.Name, Ripped: true},
			Target: episodemap.Target{
				Title:        episode.DiscTitle,
				StartChapter: episode.StartChapter,
				EndChapter:   episode.EndChapter,
			},
		})
	}
	return mapping
}

// UnrippedTitles returns the disc's titles minus those that already
// produced an episode of this season, so a re-inserted half-ripped disc
// offers only its remaining titles for mapping.
func UnrippedTitles(d *disc.Disc, episodes []database.Episode) []episodemap.Title {
	used := make(map[int]bool)
	for _, assignment := range RippedMapping(d, episodes) {
		used[assignment.Target.Title] = true
	}
	var titles []episodemap.Title
	for _, title := range d.Snapshot() {
		if used[title.Number] {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy and remove.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
