package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/jvim/internal/editor"
	"github.com/zjrosen/jvim/internal/log"
)

// Kind names which history list an entry belongs to.
type Kind string

const (
	KindSearch  Kind = "search"
	KindCommand Kind = "command"
)

// Store reads and writes the editor's history lists. Entries are kept newest
// first, matching editor.History.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func (s *Store) timestamp() int64 {
	if s.now != nil {
		return s.now().Unix()
	}
	return time.Now().Unix()
}

// Load returns both lists, each truncated to limit entries (limit <= 0
// means no limit).
func (s *Store) Load(ctx context.Context, limit int) (editor.History, error) {
	search, err := s.list(ctx, KindSearch, limit)
	if err != nil {
		return editor.History{}, err
	}
	command, err := s.list(ctx, KindCommand, limit)
	if err != nil {
		return editor.History{}, err
	}
	return editor.History{Search: search, Command: command}, nil
}

func (s *Store) list(ctx context.Context, kind Kind, limit int) ([]string, error) {
	query := `SELECT entry FROM history WHERE kind = ? ORDER BY position ASC`
	args := []any{string(kind)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s history: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("failed to scan %s history: %w", kind, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s history: %w", kind, err)
	}
	return out, nil
}

// Save replaces both stored lists with h in a single transaction.
// Duplicate entries keep their first (newest) position.
func (s *Store) Save(ctx context.Context, h editor.History) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	now := s.timestamp()
	for kind, entries := range map[Kind][]string{KindSearch: h.Search, KindCommand: h.Command} {
		if err := replaceList(ctx, tx, kind, entries, now); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	log.Debug(log.CatHistory, "history saved", "search", len(h.Search), "command", len(h.Command))
	return nil
}

func replaceList(ctx context.Context, tx *sql.Tx, kind Kind, entries []string, now int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("failed to clear %s history: %w", kind, err)
	}
	for i, entry := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO history (kind, entry, position, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (kind, entry) DO NOTHING`,
			string(kind), entry, i, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s history: %w", kind, err)
		}
	}
	return nil
}

// Clear removes every stored entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
