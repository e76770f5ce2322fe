package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmartins/livraria/internal/service"
)

// Command factories for service calls. Store and file I/O are local, so a
// short timeout is plenty.

const opTimeout = 10 * time.Second

// LoadBooksCmd loads the full catalog
func LoadBooksCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		books, err := svc.Books(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading catalog"}
		}
		return BooksLoadedMsg{Books: books}
	}
}

// AddBookCmd creates a new record
func AddBookCmd(svc *service.Service, title, author string, year int, price float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		id, err := svc.AddBook(ctx, title, author, year, price)
		if err != nil {
			return ErrMsg{Err: err, Context: "adding book"}
		}
		return BookAddedMsg{ID: id, Title: title}
	}
}

// UpdatePriceCmd sets a new price on an existing record
func UpdatePriceCmd(svc *service.Service, id int64, price float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		ok, err := svc.UpdatePrice(ctx, id, price)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating price"}
		}
		return PriceUpdatedMsg{ID: id, Price: price, OK: ok}
	}
}

// RemoveBookCmd hard-deletes a record
func RemoveBookCmd(svc *service.Service, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		ok, err := svc.RemoveBook(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "removing book"}
		}
		return BookRemovedMsg{ID: id, OK: ok}
	}
}

// SearchAuthorCmd finds records whose author contains the query
func SearchAuthorCmd(svc *service.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		books, err := svc.FindByAuthor(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "searching by author"}
		}
		return SearchResultsMsg{Query: query, Books: books}
	}
}

// QuickSearchCmd ranks catalog titles against the query
func QuickSearchCmd(svc *service.Service, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		books, err := svc.QuickSearch(ctx, query)
		if err != nil {
			return ErrMsg{Err: err, Context: "searching titles"}
		}
		return QuickSearchResultsMsg{Query: query, Books: books}
	}
}

// ExportCmd writes the catalog to a CSV file
func ExportCmd(svc *service.Service, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		count, err := svc.Count(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "exporting catalog"}
		}
		path, err := svc.ExportCSV(ctx, name)
		if err != nil {
			return ErrMsg{Err: err, Context: "exporting catalog"}
		}
		return ExportDoneMsg{Path: path, Rows: count}
	}
}

// ImportCmd parses a CSV file and inserts its rows
func ImportCmd(svc *service.Service, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		result, err := svc.ImportCSV(ctx, name)
		if err != nil {
			return ErrMsg{Err: err, Context: "importing catalog"}
		}
		return ImportDoneMsg{Result: result}
	}
}

// BackupNowCmd takes a manual snapshot
func BackupNowCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		path, err := svc.BackupNow()
		if err != nil {
			return ErrMsg{Err: err, Context: "backing up catalog"}
		}
		return BackupDoneMsg{Path: path}
	}
}

// LoadSnapshotsCmd lists the retained backups
func LoadSnapshotsCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		snaps, err := svc.Snapshots()
		if err != nil {
			return ErrMsg{Err: err, Context: "listing backups"}
		}
		return SnapshotsLoadedMsg{Snapshots: snaps}
	}
}

// WriteSampleCmd drops the import template into the export directory
func WriteSampleCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		path, err := svc.WriteSampleCSV()
		if err != nil {
			return ErrMsg{Err: err, Context: "writing sample file"}
		}
		return SampleWrittenMsg{Path: path}
	}
}
