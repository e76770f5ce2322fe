// Package service orchestrates the catalog store, backup manager and CSV
// transfer: every mutating operation snapshots the catalog file before it
// touches the store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmartins/livraria/internal/backup"
	"github.com/mmartins/livraria/internal/domain"
	"github.com/mmartins/livraria/internal/transfer"
)

// ImportResult reports how an import went: Parsed rows came out of the
// file, Inserted rows actually made it into the catalog.
type ImportResult struct {
	Parsed   int
	Inserted int
}

// Service sequences backup-then-mutate for every catalog mutation. It owns
// no state beyond the components it holds.
type Service struct {
	catalog domain.Catalog
	backups *backup.Manager
	csv     *transfer.CSV
	logger  *slog.Logger
}

// New creates a new catalog service.
func New(catalog domain.Catalog, backups *backup.Manager, csv *transfer.CSV, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{catalog: catalog, backups: backups, csv: csv, logger: logger}
}

// backupFirst snapshots the catalog file ahead of a mutation. A failed
// snapshot aborts the mutation; a missing catalog file (fresh install, no
// data yet) does not.
func (s *Service) backupFirst(op string) error {
	path, err := s.backups.Snapshot(s.catalog.Path())
	if err != nil {
		return fmt.Errorf("pre-%s backup: %w", op, err)
	}
	if path == "" {
		s.logger.Debug("no catalog file yet, skipping backup", "op", op)
	}
	return nil
}

// AddBook snapshots the catalog, then inserts a new record.
func (s *Service) AddBook(ctx context.Context, title, author string, year int, price float64) (int64, error) {
	if err := s.backupFirst("add"); err != nil {
		return 0, err
	}
	return s.catalog.Create(ctx, title, author, year, price)
}

// Books returns the full catalog sorted by title.
func (s *Service) Books(ctx context.Context) ([]domain.Book, error) {
	return s.catalog.List(ctx)
}

// BookByID returns a single record, or domain.ErrNotFound.
func (s *Service) BookByID(ctx context.Context, id int64) (*domain.Book, error) {
	return s.catalog.Get(ctx, id)
}

// FindByAuthor returns records whose author contains sub.
func (s *Service) FindByAuthor(ctx context.Context, sub string) ([]domain.Book, error) {
	return s.catalog.FindByAuthor(ctx, sub)
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.catalog.Count(ctx)
}

// UpdatePrice snapshots the catalog, then sets a new price. Returns false
// when the id does not exist.
func (s *Service) UpdatePrice(ctx context.Context, id int64, price float64) (bool, error) {
	if err := s.backupFirst("update"); err != nil {
		return false, err
	}
	return s.catalog.UpdatePrice(ctx, id, price)
}

// RemoveBook snapshots the catalog, then hard-deletes the record. Returns
// false when the id does not exist.
func (s *Service) RemoveBook(ctx context.Context, id int64) (bool, error) {
	if err := s.backupFirst("remove"); err != nil {
		return false, err
	}
	return s.catalog.Delete(ctx, id)
}

// ExportCSV writes the full catalog to a CSV file. Reading the catalog
// mutates nothing, so no backup precedes it.
func (s *Service) ExportCSV(ctx context.Context, name string) (string, error) {
	books, err := s.catalog.List(ctx)
	if err != nil {
		return "", err
	}
	return s.csv.ExportAll(books, name)
}

// ImportCSV parses the named file, snapshots the catalog once, then inserts
// each parsed row as its own independent create. A row that fails to insert
// is logged and skipped; every row inserted before a failure stays in the
// catalog.
func (s *Service) ImportCSV(ctx context.Context, name string) (ImportResult, error) {
	rows, err := s.csv.ImportAll(name)
	if err != nil {
		return ImportResult{}, err
	}

	if err := s.backupFirst("import"); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Parsed: len(rows)}
	for _, row := range rows {
		if _, err := s.catalog.Create(ctx, row.Title, row.Author, row.Year, row.Price); err != nil {
			s.logger.Warn("failed to insert imported row", "title", row.Title, "error", err)
			continue
		}
		result.Inserted++
	}

	s.logger.Info("import finished", "parsed", result.Parsed, "inserted", result.Inserted)
	return result, nil
}

// BackupNow takes a manual snapshot. The returned path is empty when there
// is no catalog file to back up yet.
func (s *Service) BackupNow() (string, error) {
	return s.backups.Snapshot(s.catalog.Path())
}

// Snapshots lists the retained backups, newest first.
func (s *Service) Snapshots() ([]backup.Snapshot, error) {
	return s.backups.ListSnapshots()
}

// WriteSampleCSV drops an import template into the export directory.
func (s *Service) WriteSampleCSV() (string, error) {
	return s.csv.WriteSample()
}

// QuickSearch ranks catalog titles against the query with normalized
// case-folding fuzzy matching, best match first.
func (s *Service) QuickSearch(ctx context.Context, query string) ([]domain.Book, error) {
	books, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	matched := make([]domain.Book, len(ranks))
	for i, r := range ranks {
		matched[i] = books[r.OriginalIndex]
	}
	s.logger.Debug("quick search", "query", query, "matches", len(matched))
	return matched, nil
}
