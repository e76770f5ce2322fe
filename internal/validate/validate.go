// Package validate checks raw operator input field by field. Every
// validator returns the parsed value together with an error describing the
// first rule the input broke; a nil error is the only "valid" signal, so
// callers never inspect anything else.
package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bounds enforced on Book fields.
const (
	TitleMinLen  = 2
	TitleMaxLen  = 200
	AuthorMinLen = 2
	AuthorMaxLen = 100
	YearMin      = 1450
	PriceMax     = 9999.99
)

var (
	titleRx    = regexp.MustCompile(`^[\p{L}0-9\s\-\.\,\:\;\!\?\'\"\(\)]+$`)
	authorRx   = regexp.MustCompile(`^[\p{L}\s\-\.\']+$`)
	priceNoise = regexp.MustCompile(`[R$\s]`)
	badFileRx  = regexp.MustCompile(`[<>:"/\\|?*]`)
)

// Title validates and trims a book title.
func Title(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", errors.New("title must not be empty")
	}
	if n := len([]rune(title)); n < TitleMinLen || n > TitleMaxLen {
		return "", fmt.Errorf("title must have between %d and %d characters", TitleMinLen, TitleMaxLen)
	}
	if !titleRx.MatchString(title) {
		return "", errors.New("title contains invalid characters")
	}
	return title, nil
}

// Author validates and trims an author name.
func Author(raw string) (string, error) {
	author := strings.TrimSpace(raw)
	if author == "" {
		return "", errors.New("author must not be empty")
	}
	if n := len([]rune(author)); n < AuthorMinLen || n > AuthorMaxLen {
		return "", fmt.Errorf("author must have between %d and %d characters", AuthorMinLen, AuthorMaxLen)
	}
	if !authorRx.MatchString(author) {
		return "", errors.New("author may only contain letters, spaces, hyphens, dots and apostrophes")
	}
	return author, nil
}

// Year parses a publication year and checks it falls between YearMin and
// the current calendar year.
func Year(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errors.New("publication year must not be empty")
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.New("publication year must be an integer")
	}
	if now := time.Now().Year(); year > now {
		return 0, fmt.Errorf("publication year must not be after %d", now)
	}
	if year < YearMin {
		return 0, fmt.Errorf("publication year must be %d or later", YearMin)
	}
	return year, nil
}

// Price parses a price, tolerating a comma decimal separator and currency
// noise such as "R$ 29,90". The result is rounded to 2 decimals.
func Price(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	s = priceNoise.ReplaceAllString(s, "")
	if s == "" {
		return 0, errors.New("price must not be empty")
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("price must be a valid number")
	}
	if price <= 0 {
		return 0, errors.New("price must be greater than zero")
	}
	if price > PriceMax {
		return 0, fmt.Errorf("price must not exceed %s", FormatPrice(PriceMax))
	}
	return math.Round(price*100) / 100, nil
}

// ID parses a positive record identifier.
func ID(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errors.New("id must not be empty")
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, errors.New("id must be an integer")
	}
	if id <= 0 {
		return 0, errors.New("id must be a positive number")
	}
	return id, nil
}

// Filename validates a CSV filename and appends the .csv extension when it
// is missing. Path separators and other filesystem-special characters are
// rejected so the name stays inside the export directory.
func Filename(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errors.New("filename must not be empty")
	}
	if len([]rune(name)) > 100 {
		return "", errors.New("filename must not exceed 100 characters")
	}
	if badFileRx.MatchString(name) {
		return "", errors.New(`filename must not contain < > : " / \ | ? *`)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name, nil
}

// FormatPrice renders a price the way the operator expects to read it,
// with a comma decimal separator: R$ 29,90.
func FormatPrice(price float64) string {
	return strings.Replace(fmt.Sprintf("R$ %.2f", price), ".", ",", 1)
}
