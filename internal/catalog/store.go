// Package catalog implements the Book record store on top of a single-file
// SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mmartins/livraria/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS livros (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	titulo TEXT NOT NULL,
	autor TEXT NOT NULL,
	ano_publicacao INTEGER NOT NULL,
	preco REAL NOT NULL
)`

// Store persists Book records in a single-file SQLite catalog.
//
// Every method executes as a single auto-commit statement, so no call can
// leave the store half-mutated and a failure never rolls back a previous
// call's work. The store exclusively owns the backing file.
type Store struct {
	db     *sqlx.DB
	path   string
	logger *slog.Logger
}

// Compile-time interface check.
var _ domain.Catalog = (*Store)(nil)

// Open opens (creating if necessary) the catalog database at path and
// ensures the livros table exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("catalog: create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create table: %w", err)
	}

	logger.Debug("catalog opened", "path", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Create(ctx context.Context, title, author string, year int, price float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO livros (titulo, autor, ano_publicacao, preco) VALUES (?, ?, ?, ?)`,
		title, author, year, round2(price))
	if err != nil {
		return 0, fmt.Errorf("catalog: insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("catalog: insert book: %w", err)
	}

	s.logger.Info("book added", "id", id, "title", title)
	return id, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Book, error) {
	var book domain.Book
	err := s.db.GetContext(ctx, &book,
		`SELECT id, titulo, autor, ano_publicacao, preco FROM livros WHERE id = ?`, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("catalog: get book %d: %w", id, err)
	}
	return &book, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Book, error) {
	books := []domain.Book{}
	err := s.db.SelectContext(ctx, &books,
		`SELECT id, titulo, autor, ano_publicacao, preco FROM livros ORDER BY titulo ASC`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list books: %w", err)
	}
	return books, nil
}

// FindByAuthor performs an unanchored containment match on the author
// column, so "Orwell" matches "George Orwell".
func (s *Store) FindByAuthor(ctx context.Context, sub string) ([]domain.Book, error) {
	books := []domain.Book{}
	err := s.db.SelectContext(ctx, &books,
		`SELECT id, titulo, autor, ano_publicacao, preco FROM livros WHERE autor LIKE ? ORDER BY titulo ASC`,
		"%"+sub+"%")
	if err != nil {
		return nil, fmt.Errorf("catalog: find by author %q: %w", sub, err)
	}
	return books, nil
}

func (s *Store) UpdatePrice(ctx context.Context, id int64, price float64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE livros SET preco = ? WHERE id = ?`, round2(price), id)
	if err != nil {
		return false, fmt.Errorf("catalog: update price of book %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("catalog: update price of book %d: %w", id, err)
	}
	if affected == 0 {
		s.logger.Warn("no book to update", "id", id)
		return false, nil
	}

	s.logger.Info("price updated", "id", id, "price", round2(price))
	return true, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM livros WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("catalog: delete book %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("catalog: delete book %d: %w", id, err)
	}
	if affected == 0 {
		s.logger.Warn("no book to delete", "id", id)
		return false, nil
	}

	s.logger.Info("book removed", "id", id)
	return true, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM livros`); err != nil {
		return 0, fmt.Errorf("catalog: count books: %w", err)
	}
	return total, nil
}

// round2 normalizes a price to the catalog's 2-decimal precision.
func round2(p float64) float64 {
	return math.Round(p*100) / 100
}
