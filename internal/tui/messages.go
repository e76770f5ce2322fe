package tui

import (
	"github.com/mmartins/livraria/internal/backup"
	"github.com/mmartins/livraria/internal/domain"
	"github.com/mmartins/livraria/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// BooksLoadedMsg signals that the catalog has been loaded
type BooksLoadedMsg struct {
	Books []domain.Book
}

// SearchResultsMsg signals that author-search results are ready
type SearchResultsMsg struct {
	Query string
	Books []domain.Book
}

// QuickSearchResultsMsg signals that ranked title matches are ready
type QuickSearchResultsMsg struct {
	Query string
	Books []domain.Book
}

// BookAddedMsg signals that a new record was created
type BookAddedMsg struct {
	ID    int64
	Title string
}

// PriceUpdatedMsg signals the outcome of a price update
type PriceUpdatedMsg struct {
	ID    int64
	Price float64
	OK    bool
}

// BookRemovedMsg signals the outcome of a delete
type BookRemovedMsg struct {
	ID int64
	OK bool
}

// ExportDoneMsg signals that the catalog was written to CSV
type ExportDoneMsg struct {
	Path string
	Rows int
}

// ImportDoneMsg signals that a CSV import finished
type ImportDoneMsg struct {
	Result service.ImportResult
}

// BackupDoneMsg signals a completed manual backup. Path is empty when
// there was no catalog file to back up.
type BackupDoneMsg struct {
	Path string
}

// SnapshotsLoadedMsg signals that the backup list has been loaded
type SnapshotsLoadedMsg struct {
	Snapshots []backup.Snapshot
}

// SampleWrittenMsg signals that the import template was written
type SampleWrittenMsg struct {
	Path string
}
