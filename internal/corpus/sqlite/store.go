// Package sqlite provides a SQLite-backed corpus store seeded from the
// embedded text corpus.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/threemachines/i-ching/internal/corpus"
	"github.com/threemachines/i-ching/internal/corpus/sqlite/migrations"
	"github.com/threemachines/i-ching/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store reads interpretive text from SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a corpus store, applies embedded migrations, and seeds the
// tables from the embedded corpus when they are empty. An empty path opens
// an in-memory store, which is the default for one-shot CLI runs.
func Open(path string) (*Store, error) {
	dsn := "file::memory:?cache=shared"
	if strings.TrimSpace(path) != "" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	store := &Store{sqlDB: sqlDB}
	if err := store.seed(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed corpus: %w", err)
	}
	return store, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Hexagram returns the corpus entry for a King Wen number, including any
// line commentary.
func (s *Store) Hexagram(ctx context.Context, number int) (corpus.Hexagram, error) {
	if err := ctx.Err(); err != nil {
		return corpus.Hexagram{}, err
	}
	if s == nil || s.sqlDB == nil {
		return corpus.Hexagram{}, fmt.Errorf("storage is not configured")
	}

	var entry corpus.Hexagram
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT number, name, chinese, pinyin, lower_trigram, upper_trigram, judgment, image
		 FROM hexagrams WHERE number = ?`,
		number,
	)
	err := row.Scan(
		&entry.Number,
		&entry.Name,
		&entry.Chinese,
		&entry.Pinyin,
		&entry.LowerTrigram,
		&entry.UpperTrigram,
		&entry.Judgment,
		&entry.Image,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return corpus.Hexagram{}, fmt.Errorf("%w: hexagram %d", corpus.ErrNotFound, number)
	}
	if err != nil {
		return corpus.Hexagram{}, fmt.Errorf("query hexagram %d: %w", number, err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT position, text FROM hexagram_lines WHERE number = ? ORDER BY position`,
		number,
	)
	if err != nil {
		return corpus.Hexagram{}, fmt.Errorf("query hexagram %d lines: %w", number, err)
	}
	defer rows.Close()
	for rows.Next() {
		var position int
		var text string
		if err := rows.Scan(&position, &text); err != nil {
			return corpus.Hexagram{}, fmt.Errorf("scan hexagram %d line: %w", number, err)
		}
		if entry.Lines == nil {
			entry.Lines = make(map[string]string)
		}
		entry.Lines[strconv.Itoa(position)] = text
	}
	if err := rows.Err(); err != nil {
		return corpus.Hexagram{}, fmt.Errorf("iterate hexagram %d lines: %w", number, err)
	}
	return entry, nil
}

// LineText returns the commentary for one line of a hexagram.
func (s *Store) LineText(ctx context.Context, number, position int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}

	var text string
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT text FROM hexagram_lines WHERE number = ? AND position = ?`,
		number,
		position,
	)
	err := row.Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: hexagram %d line %d", corpus.ErrNotFound, number, position)
	}
	if err != nil {
		return "", fmt.Errorf("query hexagram %d line %d: %w", number, position, err)
	}
	return text, nil
}

// Trigram returns a trigram entry by its corpus key.
func (s *Store) Trigram(ctx context.Context, name string) (corpus.Trigram, error) {
	if err := ctx.Err(); err != nil {
		return corpus.Trigram{}, err
	}
	if s == nil || s.sqlDB == nil {
		return corpus.Trigram{}, fmt.Errorf("storage is not configured")
	}

	var entry corpus.Trigram
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT chinese, pinyin, attribute, image, lines FROM trigrams WHERE name = ?`,
		name,
	)
	err := row.Scan(&entry.Chinese, &entry.Pinyin, &entry.Attribute, &entry.Image, &entry.Lines)
	if errors.Is(err, sql.ErrNoRows) {
		return corpus.Trigram{}, fmt.Errorf("%w: trigram %q", corpus.ErrNotFound, name)
	}
	if err != nil {
		return corpus.Trigram{}, fmt.Errorf("query trigram %q: %w", name, err)
	}
	return entry, nil
}

// seed populates empty tables from the embedded corpus.
func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM hexagrams`).Scan(&count); err != nil {
		return fmt.Errorf("count hexagrams: %w", err)
	}
	if count > 0 {
		return nil
	}

	data, err := corpus.Load()
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, hexagram := range data.Hexagrams() {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO hexagrams (number, name, chinese, pinyin, lower_trigram, upper_trigram, judgment, image)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			hexagram.Number,
			hexagram.Name,
			hexagram.Chinese,
			hexagram.Pinyin,
			hexagram.LowerTrigram,
			hexagram.UpperTrigram,
			hexagram.Judgment,
			hexagram.Image,
		); err != nil {
			return fmt.Errorf("seed hexagram %d: %w", hexagram.Number, err)
		}
		for key, text := range hexagram.Lines {
			position, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("hexagram %d has bad line key %q", hexagram.Number, key)
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO hexagram_lines (number, position, text) VALUES (?, ?, ?)`,
				hexagram.Number,
				position,
				text,
			); err != nil {
				return fmt.Errorf("seed hexagram %d line %d: %w", hexagram.Number, position, err)
			}
		}
	}
	for name, trigram := range data.Trigrams() {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO trigrams (name, chinese, pinyin, attribute, image, lines)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			name,
			trigram.Chinese,
			trigram.Pinyin,
			trigram.Attribute,
			trigram.Image,
			trigram.Lines,
		); err != nil {
			return fmt.Errorf("seed trigram %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
