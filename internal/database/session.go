package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tvrip/internal/disc"
	"tvrip/internal/episodemap"
)

// Session is the state carried between command invocations: the program
// and season being ripped, the last scanned disc, and the pending
// episode mapping awaiting a rip.
type Session struct {
	Program   string
	Season    int
	DiscIdent string
	Mapping   episodemap.Mapping
	disc      *disc.Disc
}

// Disc returns the last scanned disc, or nil when none is recorded.
func (s *Session) Disc() *disc.Disc {
	if s == nil {
		return nil
	}
	return s.disc
}

// SetDisc records a scanned disc on the session. nil clears it.
func (s *Session) SetDisc(d *disc.Disc) {
	s.disc = d
	if d == nil {
		s.DiscIdent = ""
		return
	}
	s.DiscIdent = d.Ident
}

// LoadSession fetches the session state, returning an empty session when
// none has been saved yet.
func (s *Store) LoadSession(ctx context.Context) (*Session, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(program, ''), COALESCE(season, 0), COALESCE(disc_ident, ''), COALESCE(disc_json, ''), COALESCE(mapping_json, '') FROM session WHERE id = 1")

	var (
		session     Session
		discJSON    string
		mappingJSON string
	)
	err := row.Scan(&session.Program, &session.Season, &session.DiscIdent, &discJSON, &mappingJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if discJSON != "" {
		var d disc.Disc
		if err := json.Unmarshal([]byte(discJSON), &d); err != nil {
			return nil, fmt.Errorf("decode session disc: %w", err)
		}
		session.disc = &d
	}
	if mappingJSON != "" {
		if err := json.Unmarshal([]byte(mappingJSON), &session.Mapping); err != nil {
			return nil, fmt.Errorf("decode session mapping: %w", err)
		}
	}
	return &session, nil
}

// SaveSession persists the session state, replacing any previous one.
func (s *Store) SaveSession(ctx context.Context, session *Session) error {
	var discJSON any
	if session.disc != nil {
		encoded, err := json.Marshal(session.disc)
		if err != nil {
			return fmt.Errorf("encode session disc: %w", err)
		}
		discJSON = string(encoded)
	}
	var mappingJSON any
	if len(session.Mapping) > 0 {
		encoded, err := json.Marshal(session.Mapping)
		if err != nil {
			return fmt.Errorf("encode session mapping: %w", err)
		}
		mappingJSON = string(encoded)
	}
	_, err := s.execWithRetry(ctx, `
        INSERT INTO session (id, program, season, disc_ident, disc_json, mapping_json, updated_at)
        VALUES (1, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            program = excluded.program,
            season = excluded.season,
            disc_ident = excluded.disc_ident,
            disc_json = excluded.disc_json,
            mapping_json = excluded.mapping_json,
            updated_at = excluded.updated_at`,
		nullableString(session.Program),
		nullableInt(session.Season),
		nullableString(session.DiscIdent),
		discJSON,
		mappingJSON,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
