// Package repository implements SQL access to the flights and tickets tables.
package repository

import "errors"

// ErrNotFound is returned when a query by id matches no row. Callers map
// it to a 404 instead of treating it as a backend fault.
var ErrNotFound = errors.New("not found")
