package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const monthLayout = "2006-01"

// Store handles ai_usage persistence.
type Store struct {
	db        *pgxpool.Pool
	allowance int
	now       func() time.Time
}

// NewStore returns a Store backed by the given connection pool. A
// non-positive allowance means DefaultTokens.
func NewStore(db *pgxpool.Pool, allowance int) *Store {
	if allowance <= 0 {
		allowance = DefaultTokens
	}
	return &Store{db: db, allowance: allowance, now: time.Now}
}

// Migrate creates the ai_usage table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ai_usage (
			uid TEXT PRIMARY KEY,
			tokens_remaining INT NOT NULL,
			last_reset_month TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("usage: migrate: %w", err)
	}
	return nil
}

// UseToken atomically checks the monthly quota and deducts one token.
// It resets the counter to the allowance when last_reset_month is behind the current month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or user absent).
func (s *Store) UseToken(ctx context.Context, uid string) error {
	month := s.now().Format(monthLayout)

	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, s.allowance, uid)
	if err != nil {
		return fmt.Errorf("usage: deduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a new ai_usage row for uid with the full allowance.
// If the row already exists the insert is silently skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.allowance, s.now().Format(monthLayout))
	if err != nil {
		return fmt.Errorf("usage: ensure user: %w", err)
	}
	return nil
}

// Get returns the stored row for uid, or ok=false when there is none.
func (s *Store) Get(ctx context.Context, uid string) (Row, bool, error) {
	var r Row
	err := s.db.QueryRow(ctx,
		`SELECT uid, tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid,
	).Scan(&r.UID, &r.TokensRemaining, &r.LastResetMonth)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, fmt.Errorf("usage: get: %w", err)
	}
	return r, true, nil
}
