package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/flightkit/flightd/internal/models"
)

// FlightRepository defines read access to the flights table. Flights are
// maintained outside this service; there is no write path here.
type FlightRepository interface {
	List(ctx context.Context) ([]models.Flight, error)
	GetByID(ctx context.Context, id int64) (*models.Flight, error)
}

// FlightSQLRepository reads flights from Postgres.
type FlightSQLRepository struct {
	db *sqlx.DB
}

// NewFlightRepository creates a new flight repository.
func NewFlightRepository(db *sqlx.DB) *FlightSQLRepository {
	return &FlightSQLRepository{db: db}
}

// isoTimestamp is the serialization format for flight timestamps. The
// store keeps naive timestamps, so no zone offset is rendered.
const isoTimestamp = "2006-01-02T15:04:05"

// List returns all flights ordered by ascending id.
func (r *FlightSQLRepository) List(ctx context.Context) ([]models.Flight, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, number, departure, arrival, price FROM flights ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights: %w", err)
	}
	defer rows.Close()

	flights := []models.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flights: %w", err)
	}
	return flights, nil
}

// GetByID returns a single flight or ErrNotFound.
func (r *FlightSQLRepository) GetByID(ctx context.Context, id int64) (*models.Flight, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, number, departure, arrival, price FROM flights WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query flight %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read flight %d: %w", id, err)
		}
		return nil, ErrNotFound
	}
	return scanFlight(rows)
}

// scanFlight reads one flights row, tolerating driver-dependent column
// types: timestamps may arrive as time.Time or as pre-formatted text,
// price as numeric text or a float.
func scanFlight(rows *sql.Rows) (*models.Flight, error) {
	var (
		f         models.Flight
		departure any
		arrival   any
		price     any
	)
	if err := rows.Scan(&f.ID, &f.Number, &departure, &arrival, &price); err != nil {
		return nil, fmt.Errorf("failed to scan flight: %w", err)
	}

	f.Departure = normalizeTimestamp(departure)
	f.Arrival = normalizeTimestamp(arrival)

	p, err := toFloat(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flight price: %w", err)
	}
	f.Price = p
	return &f, nil
}

func normalizeTimestamp(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(isoTimestamp)
	case []byte:
		return string(t)
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, error) {
	switch p := v.(type) {
	case float64:
		return p, nil
	case []byte:
		return strconv.ParseFloat(string(p), 64)
	case string:
		return strconv.ParseFloat(p, 64)
	case int64:
		return float64(p), nil
	default:
		return 0, errors.New("unsupported price type")
	}
}
