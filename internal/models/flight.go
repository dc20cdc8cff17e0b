package models

// Flight is a row of the read-only flights table. Departure and arrival
// are kept as ISO-8601 strings: the store may hand back either native
// timestamps or pre-formatted text, and the repository normalizes both.
type Flight struct {
	ID        int64   `db:"id" json:"id"`
	Number    string  `db:"number" json:"number"`
	Departure string  `db:"departure" json:"departure"`
	Arrival   string  `db:"arrival" json:"arrival"`
	Price     float64 `db:"price" json:"price"`
}
