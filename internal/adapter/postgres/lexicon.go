// Package postgres stores the word sentiment lexicon in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const table = "word_sentiments"

const schema = `
CREATE TABLE IF NOT EXISTS word_sentiments (
	word  text PRIMARY KEY,
	score double precision NOT NULL CHECK (score >= -1 AND score <= 1)
)`

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect lexicon db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping lexicon db: %w", err)
	}
	return pool, nil
}

// LexiconStore reads and replaces the lexicon table.
type LexiconStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewLexiconStore creates a store backed by db.
func NewLexiconStore(db *pgxpool.Pool, logger *slog.Logger) *LexiconStore {
	return &LexiconStore{db: db, logger: logger}
}

// EnsureSchema creates the lexicon table if it does not exist.
func (s *LexiconStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

// Load reads every scored word. Rows are validated the same way file
// lexicons are, so an out-of-range score fails the load.
func (s *LexiconStore) Load(ctx context.Context) (domain.MapLexicon, error) {
	rows, err := s.db.Query(ctx, `SELECT word, score FROM word_sentiments`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	lex := make(domain.MapLexicon)
	for rows.Next() {
		var (
			word  string
			score float64
		)
		if err := rows.Scan(&word, &score); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		sentiment, err := domain.Known(score)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", word, err)
		}
		lex[word] = sentiment
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}

	s.logger.Debug("lexicon loaded", "words", len(lex))
	return lex, nil
}

// Replace swaps the stored lexicon for lex in a single transaction.
func (s *LexiconStore) Replace(ctx context.Context, lex domain.MapLexicon) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM word_sentiments`); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}

	scores := lex.Scores()
	rows := make([][]any, 0, len(scores))
	for word, score := range scores {
		rows = append(rows, []any{word, score})
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, []string{"word", "score"}, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("lexicon replaced", "words", n)
	return n, nil
}
