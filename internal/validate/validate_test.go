package validate

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid", "1984", "1984", false},
		{"trims whitespace", "  Dom Casmurro  ", "Dom Casmurro", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too short", "A", "", true},
		{"at min length", "Go", "Go", false},
		{"too long", strings.Repeat("a", 201), "", true},
		{"at max length", strings.Repeat("a", 200), strings.Repeat("a", 200), false},
		{"accented characters", "O Cortiço", "O Cortiço", false},
		{"punctuation", "Hello, World: a tale!", "Hello, World: a tale!", false},
		{"invalid characters", "robots@work", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Title(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Title(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAuthor(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid", "George Orwell", "George Orwell", false},
		{"accented", "Aluísio Azevedo", "Aluísio Azevedo", false},
		{"apostrophe", "Eugene O'Neill", "Eugene O'Neill", false},
		{"empty", "", "", true},
		{"too short", "X", "", true},
		{"too long", strings.Repeat("a", 101), "", true},
		{"digits rejected", "Author 3000", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Author(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Author(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Author(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestYear(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"valid", "1949", 1949, false},
		{"at lower bound", "1450", 1450, false},
		{"below lower bound", "1449", 0, true},
		{"current year", strconv.Itoa(currentYear), currentYear, false},
		{"next year", strconv.Itoa(currentYear + 1), 0, true},
		{"not a number", "notayear", 0, true},
		{"empty", "", 0, true},
		{"trims whitespace", " 1899 ", 1899, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Year(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Year(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Year(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"valid", "29.90", 29.90, false},
		{"comma separator", "29,90", 29.90, false},
		{"currency prefix", "R$ 29,90", 29.90, false},
		{"rounded to 2 decimals", "19.999", 20.00, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"at upper bound", "9999.99", 9999.99, false},
		{"above upper bound", "10000", 0, true},
		{"not a number", "free", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Price(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Price(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"valid", "7", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "seven", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ID(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain name gets extension", "livros", "livros.csv", false},
		{"existing extension kept", "livros.csv", "livros.csv", false},
		{"uppercase extension kept", "LIVROS.CSV", "LIVROS.CSV", false},
		{"empty", "", "", true},
		{"path separator", "a/b", "", true},
		{"windows separator", `a\b`, "", true},
		{"wildcard", "a*b", "", true},
		{"too long", strings.Repeat("a", 101), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filename(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Filename(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(29.9); got != "R$ 29,90" {
		t.Errorf("FormatPrice(29.9) = %q, want %q", got, "R$ 29,90")
	}
	if got := FormatPrice(1000); got != "R$ 1000,00" {
		t.Errorf("FormatPrice(1000) = %q, want %q", got, "R$ 1000,00")
	}
}
