package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type preferenceRow struct {
	VisitorID string    `db:"visitor_id"`
	Theme     string    `db:"theme"`
	View      string    `db:"view_mode"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PreferenceStore persists Preferences in three tables: one row per visitor,
// one per recent search and one per collapsed endpoint.
type PreferenceStore struct {
	db *sqlx.DB
}

func NewPreferenceStore(db *sqlx.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

func (s *PreferenceStore) q(query string) string { return s.db.Rebind(query) }

// Load returns the saved preferences for visitorID, or the defaults when the
// visitor has none yet.
func (s *PreferenceStore) Load(ctx context.Context, visitorID string) (*Preferences, error) {
	var row preferenceRow
	err := s.db.GetContext(ctx, &row, s.q(`
		SELECT visitor_id, theme, view_mode, updated_at FROM preferences WHERE visitor_id = ?
	`), visitorID)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return nil, err
	}

	p := &Preferences{
		Theme:     ParseTheme(row.Theme),
		View:      ParseViewMode(row.View),
		Collapsed: map[string]bool{},
	}

	if err := s.db.SelectContext(ctx, &p.RecentSearches, s.q(`
		SELECT term FROM recent_searches WHERE visitor_id = ? ORDER BY position ASC
	`), visitorID); err != nil {
		return nil, err
	}
	if len(p.RecentSearches) > MaxRecentSearches {
		p.RecentSearches = p.RecentSearches[:MaxRecentSearches]
	}

	var collapsed []string
	if err := s.db.SelectContext(ctx, &collapsed, s.q(`
		SELECT endpoint_id FROM collapsed_endpoints WHERE visitor_id = ?
	`), visitorID); err != nil {
		return nil, err
	}
	for _, id := range collapsed {
		p.Collapsed[id] = true
	}
	return p, nil
}

// Save replaces everything stored for visitorID with p in one transaction.
func (s *PreferenceStore) Save(ctx context.Context, visitorID string, p *Preferences) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteVisitor(ctx, tx, visitorID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO preferences (visitor_id, theme, view_mode, updated_at) VALUES (?, ?, ?, ?)
	`), visitorID, string(ParseTheme(string(p.Theme))), string(ParseViewMode(string(p.View))), time.Now().UTC())
	if err != nil {
		return err
	}

	for i, term := range p.RecentSearches {
		if i == MaxRecentSearches {
			break
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO recent_searches (visitor_id, position, term) VALUES (?, ?, ?)
		`), visitorID, i, term)
		if err != nil {
			return err
		}
	}

	for _, id := range p.CollapsedIDs() {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO collapsed_endpoints (visitor_id, endpoint_id) VALUES (?, ?)
		`), visitorID, id)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete forgets visitorID entirely. Deleting an unknown visitor returns
// ErrNotFound.
func (s *PreferenceStore) Delete(ctx context.Context, visitorID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(`SELECT COUNT(*) FROM preferences WHERE visitor_id = ?`), visitorID); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := deleteVisitor(ctx, tx, visitorID); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteVisitor(ctx context.Context, tx *sqlx.Tx, visitorID string) error {
	for _, table := range []string{"collapsed_endpoints", "recent_searches", "preferences"} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM `+table+` WHERE visitor_id = ?`), visitorID); err != nil {
			return err
		}
	}
	return nil
}
