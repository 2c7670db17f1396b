package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested program, season, or episode does
// not exist in the database.
var ErrNotFound = errors.New("not found")

// AddProgram creates a program if it does not already exist.
func (s *Store) AddProgram(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("program name required")
	}
	if _, err := s.execWithRetry(ctx, "INSERT OR IGNORE INTO programs (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// Programs lists every program with season and rip counts.
func (s *Store) Programs(ctx context.Context) ([]ProgramSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.name,
               (SELECT COUNT(1) FROM seasons s WHERE s.program = p.name),
               (SELECT COUNT(1) FROM episodes e WHERE e.program = p.name),
               (SELECT COUNT(1) FROM episodes e WHERE e.program = p.name AND e.disc_ident IS NOT NULL)
        FROM programs p
        ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	var summaries []ProgramSummary
	for rows.Next() {
		var summary ProgramSummary
		if err := rows.Scan(&summary.Name, &summary.Seasons, &summary.Episodes, &summary.Ripped); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// AddSeason creates a season (and its program) if missing.
func (s *Store) AddSeason(ctx context.Context, program string, number int) error {
	if err := s.AddProgram(ctx, program); err != nil {
		return err
	}
	if number < 0 {
		return errors.New("season number must be >= 0")
	}
	if _, err := s.execWithRetry(ctx,
		"INSERT OR IGNORE INTO seasons (program, number) VALUES (?, ?)", program, number); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

// Seasons lists the seasons of a program with episode and rip counts.
func (s *Store) Seasons(ctx context.Context, program string) ([]SeasonSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
        SELECT s.number,
               (SELECT COUNT(1) FROM episodes e WHERE e.program = s.program AND e.season = s.number),
               (SELECT COUNT(1) FROM episodes e WHERE e.program = s.program AND e.season = s.number AND e.disc_ident IS NOT NULL)
        FROM seasons s
        WHERE s.program = ?
        ORDER BY s.number`, program)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()

	var summaries []SeasonSummary
	for rows.Next() {
		var summary SeasonSummary
		if err := rows.Scan(&summary.Number, &summary.Episodes, &summary.Ripped); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// SetEpisode creates or renames one episode. Rip state is preserved on
// rename.
func (s *Store) SetEpisode(ctx context.Context, program string, season, number int, name string) error {
	if err := s.AddSeason(ctx, program, season); err != nil {
		return err
	}
	if number < 1 {
		return errors.New("episode number must be >= 1")
	}
	if _, err := s.execWithRetry(ctx, `
        INSERT INTO episodes (program, season, number, name)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (program, season, number) DO UPDATE SET name = excluded.name`,
		program, season, number, name); err != nil {
		return fmt.Errorf("upsert episode: %w", err)
	}
	return nil
}

// ReplaceEpisodes clears a season and installs names as episodes 1..n.
func (s *Store) ReplaceEpisodes(ctx context.Context, program string, season int, names []string) error {
	if err := s.AddSeason(ctx, program, season); err != nil {
		return err
	}
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin episodes tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM episodes WHERE program = ? AND season = ?", program, season); err != nil {
		return fmt.Errorf("clear episodes: %w", err)
	}
	for i, name := range names {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO episodes (program, season, number, name) VALUES (?, ?, ?, ?)",
			program, season, i+1, name); err != nil {
			return fmt.Errorf("insert episode %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit episodes: %w", err)
	}
	return nil
}

// ClearEpisodes removes every episode of a season.
func (s *Store) ClearEpisodes(ctx context.Context, program string, season int) error {
	if _, err := s.execWithRetry(ctx,
		"DELETE FROM episodes WHERE program = ? AND season = ?", program, season); err != nil {
		return fmt.Errorf("clear episodes: %w", err)
	}
	return nil
}

const episodeColumns = `
    program, season, number, name,
    COALESCE(disc_ident, ''), COALESCE(disc_title, 0),
    COALESCE(start_chapter, 0), COALESCE(end_chapter, 0)`

func scanEpisode(scanner interface{ Scan(...any) error }) (Episode, error) {
	var episode Episode
	err := scanner.Scan(
		&episode.Program, &episode.Season, &episode.Number, &episode.Name,
		&episode.DiscIdent, &episode.DiscTitle,
		&episode.StartChapter, &episode.EndChapter,
	)
	return episode, err
}

// Episodes lists the episodes of a season in episode order.
func (s *Store) Episodes(ctx context.Context, program string, season int) ([]Episode, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT"+episodeColumns+" FROM episodes WHERE program = ? AND season = ? ORDER BY number",
		program, season)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}

// Episode fetches a single episode, or ErrNotFound.
func (s *Store) Episode(ctx context.Context, program string, season, number int) (*Episode, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT"+episodeColumns+" FROM episodes WHERE program = ? AND season = ? AND number = ?",
		program, season, number)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("episode %s %dx%d: %w", program, season, number, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan episode: %w", err)
	}
	return &episode, nil
}

// MarkRipped records where an episode was ripped from. A start chapter
// of zero means the whole title.
func (s *Store) MarkRipped(ctx context.Context, program string, season, number int, discIdent string, discTitle, startChapter, endChapter int) error {
	if discIdent == "" {
		return errors.New("disc ident required")
	}
	res, err := s.execWithRetry(ctx, `
        UPDATE episodes
        SET disc_ident = ?, disc_title = ?, start_chapter = ?, end_chapter = ?
        WHERE program = ? AND season = ? AND number = ?`,
		discIdent, discTitle, nullableInt(startChapter), nullableInt(endChapter),
		program, season, number)
	if err != nil {
		return fmt.Errorf("mark ripped: %w", err)
	}
	return ensureRowAffected(res, program, season, number)
}

// Unrip clears the rip state of an episode.
func (s *Store) Unrip(ctx context.Context, program string, season, number int) error {
	res, err := s.execWithRetry(ctx, `
        UPDATE episodes
        SET disc_ident = NULL, disc_title = NULL, start_chapter = NULL, end_chapter = NULL
        WHERE program = ? AND season = ? AND number = ?`,
		program, season, number)
	if err != nil {
		return fmt.Errorf("unrip: %w", err)
	}
	return ensureRowAffected(res, program, season, number)
}

// RippedFrom lists the episodes of a season previously ripped from the
// disc with the given ident.
func (s *Store) RippedFrom(ctx context.Context, program string, season int, discIdent string) ([]Episode, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT"+episodeColumns+` FROM episodes
         WHERE program = ? AND season = ? AND disc_ident = ?
         ORDER BY number`,
		program, season, discIdent)
	if err != nil {
		return nil, fmt.Errorf("query ripped episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}

func ensureRowAffected(res sql.Result, program string, season, number int) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("episode %s %dx%d: %w", program, season, number, ErrNotFound)
	}
	return nil
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
