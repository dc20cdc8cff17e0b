package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/flightkit/flightd/internal/models"
)

// TicketRepository defines the write-and-lookup operations of a purchase.
type TicketRepository interface {
	// Create inserts a ticket row with an empty ticket_url and returns
	// the store-assigned id. The insert is durably visible as soon as
	// Create returns.
	Create(ctx context.Context, t *models.Ticket) (int64, error)
	// SetTicketURL back-fills the artifact URL onto an existing row.
	SetTicketURL(ctx context.Context, id int64, url string) error
	// GetTicketURL resolves a ticket id to its stored artifact URL.
	// The id is passed through as given; a shape the store cannot cast
	// surfaces as a store error, not a validation error.
	GetTicketURL(ctx context.Context, id string) (string, error)
}

// TicketSQLRepository handles ticket rows in Postgres.
type TicketSQLRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *sqlx.DB) *TicketSQLRepository {
	return &TicketSQLRepository{db: db}
}

func (r *TicketSQLRepository) Create(ctx context.Context, t *models.Ticket) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tickets (flight_id, passenger_name, email, ticket_url)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		t.FlightID, t.PassengerName, t.Email, t.TicketURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ticket: %w", err)
	}
	return id, nil
}

func (r *TicketSQLRepository) SetTicketURL(ctx context.Context, id int64, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET ticket_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TicketSQLRepository) GetTicketURL(ctx context.Context, id string) (string, error) {
	var url string
	err := r.db.QueryRowContext(ctx,
		`SELECT ticket_url FROM tickets WHERE id = $1`, id).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query ticket %s: %w", id, err)
	}
	return url, nil
}
