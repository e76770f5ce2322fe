// Package transfer moves the catalog in and out of CSV files.
package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mmartins/livraria/internal/domain"
)

// header is the fixed export column set, in row field order.
var header = []string{"ID", "Title", "Author", "Publication Year", "Price"}

const timeLayout = "2006-01-02_15-04-05"

// CSV reads and writes catalog files under a single export directory.
type CSV struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewCSV creates the export directory if needed.
func NewCSV(dir string, logger *slog.Logger) (*CSV, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("transfer: create export directory %s: %w", dir, err)
	}
	return &CSV{dir: dir, logger: logger, now: time.Now}, nil
}

// ExportAll writes the header row followed by one row per book, in
// (id, title, author, year, price) order. An existing file at the
// destination is overwritten without warning; export is idempotent and
// safely retryable, so a failed write leaves at worst a truncated file
// that the next export replaces.
func (c *CSV) ExportAll(books []domain.Book, name string) (string, error) {
	if name == "" {
		name = "livros_" + c.now().Format(timeLayout) + ".csv"
	}
	path := filepath.Join(c.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("transfer: create export file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return "", fmt.Errorf("transfer: write header: %w", err)
	}
	for _, b := range books {
		row := []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			strconv.Itoa(b.Year),
			strconv.FormatFloat(b.Price, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return "", fmt.Errorf("transfer: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("transfer: flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("transfer: close export: %w", err)
	}

	c.logger.Info("catalog exported", "path", path, "rows", len(books))
	return path, nil
}

// ImportAll parses the named file into record tuples. The first row is
// always discarded as a header, even when it holds valid data. Rows with
// five fields are read as id+title+author+year+price (id discarded); rows
// with four as title+author+year+price. A row that fails year or price
// parsing, or has fewer than four fields, is logged and skipped: one
// malformed line must not discard an otherwise-valid file. Inserting the
// returned rows is the caller's job.
func (c *CSV) ImportAll(name string) ([]domain.BookInput, error) {
	path := filepath.Join(c.dir, name)

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("transfer: %s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("transfer: open import file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may carry 4 or 5 fields

	if _, err := r.Read(); err != nil && err != io.EOF {
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("transfer: read header: %w", err)
		}
		// A malformed header is still just the header; skip it.
	}

	var rows []domain.BookInput
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("transfer: read import file: %w", err)
			}
			c.logger.Warn("skipping unreadable row", "line", line, "error", err)
			continue
		}

		row, ok := parseRow(record)
		if !ok {
			c.logger.Warn("skipping invalid row", "line", line, "row", record)
			continue
		}
		rows = append(rows, row)
	}

	c.logger.Info("catalog imported", "path", path, "rows", len(rows))
	return rows, nil
}

// parseRow interprets one data row, tolerating the optional leading id.
func parseRow(record []string) (domain.BookInput, bool) {
	if len(record) < 4 {
		return domain.BookInput{}, false
	}

	fields := record
	if len(record) >= 5 {
		fields = record[1:5] // exported rows lead with the id; discard it
	}

	year, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return domain.BookInput{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return domain.BookInput{}, false
	}

	return domain.BookInput{
		Title:  fields[0],
		Author: fields[1],
		Year:   year,
		Price:  price,
	}, true
}

// ListExports returns the export directory's CSV files, newest first.
func (c *CSV) ListExports() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("transfer: list exports: %w", err)
	}

	type entry struct {
		path    string
		modTime time.Time
	}
	entries := make([]entry, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("transfer: stat export %s: %w", path, err)
		}
		entries = append(entries, entry{path: path, modTime: info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

// WriteSample writes an import template with a few well-known titles so a
// fresh install has something to try the import flow with.
func (c *CSV) WriteSample() (string, error) {
	path := filepath.Join(c.dir, "exemplo_importacao.csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("transfer: create sample file: %w", err)
	}

	rows := [][]string{
		{"Title", "Author", "Publication Year", "Price"},
		{"1984", "George Orwell", "1949", "29.90"},
		{"Dom Casmurro", "Machado de Assis", "1899", "25.50"},
		{"O Cortiço", "Aluísio Azevedo", "1890", "22.80"},
		{"O Alquimista", "Paulo Coelho", "1988", "32.00"},
		{"Capitães da Areia", "Jorge Amado", "1937", "28.70"},
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return "", fmt.Errorf("transfer: write sample file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("transfer: close sample file: %w", err)
	}

	c.logger.Info("sample import file created", "path", path)
	return path, nil
}
