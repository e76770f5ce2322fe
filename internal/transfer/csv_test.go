package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmartins/livraria/internal/domain"
	"github.com/mmartins/livraria/internal/log"
)

func newTestCSV(t *testing.T) *CSV {
	t.Helper()
	c, err := NewCSV(filepath.Join(t.TempDir(), "exports"), log.NullLogger())
	if err != nil {
		t.Fatalf("NewCSV() error = %v", err)
	}
	return c
}

func TestExportAllWritesHeaderAndRows(t *testing.T) {
	c := newTestCSV(t)

	books := []domain.Book{
		{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949, Price: 29.90},
		{ID: 2, Title: "Dom Casmurro", Author: "Machado de Assis", Year: 1899, Price: 25.50},
	}

	path, err := c.ExportAll(books, "livros.csv")
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"ID,Title,Author,Publication Year,Price",
		"1,1984,George Orwell,1949,29.90",
		"2,Dom Casmurro,Machado de Assis,1899,25.50",
	}
	if len(lines) != len(want) {
		t.Fatalf("export has %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestExportAllOverwrites(t *testing.T) {
	c := newTestCSV(t)

	if _, err := c.ExportAll([]domain.Book{{ID: 1, Title: "Old", Author: "Someone Old", Year: 1900, Price: 1.00}}, "out.csv"); err != nil {
		t.Fatalf("first ExportAll() error = %v", err)
	}
	path, err := c.ExportAll([]domain.Book{{ID: 2, Title: "New", Author: "Someone New", Year: 2000, Price: 2.00}}, "out.csv")
	if err != nil {
		t.Fatalf("second ExportAll() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if strings.Contains(string(data), "Old") {
		t.Error("second export did not overwrite the first")
	}
}

func TestExportAllDefaultName(t *testing.T) {
	c := newTestCSV(t)

	path, err := c.ExportAll(nil, "")
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "livros_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("default export name = %q, want livros_<timestamp>.csv", name)
	}
}

func TestImportAllMissingFile(t *testing.T) {
	c := newTestCSV(t)

	_, err := c.ImportAll("nowhere.csv")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ImportAll(missing) error = %v, want ErrNotFound", err)
	}
}

func TestImportAllSkipsHeaderUnconditionally(t *testing.T) {
	c := newTestCSV(t)

	// The first row parses as valid data but must still be discarded.
	content := "1984,George Orwell,1949,29.90\nDom Casmurro,Machado de Assis,1899,25.50\n"
	if err := os.WriteFile(filepath.Join(c.dir, "in.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("writing import file: %v", err)
	}

	rows, err := c.ImportAll("in.csv")
	if err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ImportAll() returned %d rows, want 1", len(rows))
	}
	if rows[0].Title != "Dom Casmurro" {
		t.Errorf("rows[0].Title = %q, want %q", rows[0].Title, "Dom Casmurro")
	}
}

func TestImportAllFiveAndFourFieldRows(t *testing.T) {
	c := newTestCSV(t)

	content := strings.Join([]string{
		"ID,Title,Author,Publication Year,Price",
		"7,1984,George Orwell,1949,29.90",
		"Dom Casmurro,Machado de Assis,1899,25.50",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(c.dir, "in.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("writing import file: %v", err)
	}

	rows, err := c.ImportAll("in.csv")
	if err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}
	want := []domain.BookInput{
		{Title: "1984", Author: "George Orwell", Year: 1949, Price: 29.90},
		{Title: "Dom Casmurro", Author: "Machado de Assis", Year: 1899, Price: 25.50},
	}
	if len(rows) != len(want) {
		t.Fatalf("ImportAll() returned %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestImportAllSkipsMalformedRows(t *testing.T) {
	c := newTestCSV(t)

	content := strings.Join([]string{
		"Title,Author,Publication Year,Price",
		"Dom Casmurro,Machado de Assis,1899,25.50",
		"Bad,Row,notayear,12.00",
		"Worse,Row,1900,notaprice",
		"TooFew,1900",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(c.dir, "in.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("writing import file: %v", err)
	}

	rows, err := c.ImportAll("in.csv")
	if err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ImportAll() returned %d rows, want 1", len(rows))
	}
	want := domain.BookInput{Title: "Dom Casmurro", Author: "Machado de Assis", Year: 1899, Price: 25.50}
	if rows[0] != want {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	c := newTestCSV(t)

	books := []domain.Book{
		{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949, Price: 29.90},
		{ID: 2, Title: "O Cortiço", Author: "Aluísio Azevedo", Year: 1890, Price: 22.80},
	}

	if _, err := c.ExportAll(books, "round.csv"); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	rows, err := c.ImportAll("round.csv")
	if err != nil {
		t.Fatalf("ImportAll() error = %v", err)
	}

	if len(rows) != len(books) {
		t.Fatalf("round trip returned %d rows, want %d", len(rows), len(books))
	}
	for i, b := range books {
		want := domain.BookInput{Title: b.Title, Author: b.Author, Year: b.Year, Price: b.Price}
		if rows[i] != want {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want)
		}
	}
}

func TestWriteSampleRoundTrips(t *testing.T) {
	c := newTestCSV(t)

	path, err := c.WriteSample()
	if err != nil {
		t.Fatalf("WriteSample() error = %v", err)
	}

	rows, err := c.ImportAll(filepath.Base(path))
	if err != nil {
		t.Fatalf("ImportAll(sample) error = %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("sample import returned %d rows, want 5", len(rows))
	}
}

func TestListExportsNewestFirst(t *testing.T) {
	c := newTestCSV(t)

	if _, err := c.ExportAll(nil, "a.csv"); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if _, err := c.ExportAll(nil, "b.csv"); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	paths, err := c.ListExports()
	if err != nil {
		t.Fatalf("ListExports() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("ListExports() returned %d files, want 2", len(paths))
	}
}
