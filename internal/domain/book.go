package domain

// Book represents a single catalog record.
// Field constraints (title 2-200 chars, author 2-100 chars, year between
// 1450 and the current year, 0 < price <= 9999.99) are enforced by the
// validate package before a Book ever reaches the store.
type Book struct {
	ID     int64   `db:"id"`             // Assigned by the store on creation, immutable
	Title  string  `db:"titulo"`         // Display title
	Author string  `db:"autor"`          // Author name
	Year   int     `db:"ano_publicacao"` // Publication year
	Price  float64 `db:"preco"`          // Price, stored with 2-decimal precision
}

// BookInput is a parsed but not yet persisted record, as produced by a CSV
// import. The id is assigned by the store when the row is inserted.
type BookInput struct {
	Title  string
	Author string
	Year   int
	Price  float64
}
