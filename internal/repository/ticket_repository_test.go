package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightkit/flightd/internal/models"
)

func TestTicketCreate(t *testing.T) {
	t.Run("ReturnsGeneratedID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets (flight_id, passenger_name, email, ticket_url)")).
			WithArgs(int64(1), "Ivan", "i@x.com", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		id, err := repo.Create(context.Background(), &models.Ticket{
			FlightID:      1,
			PassengerName: "Ivan",
			Email:         "i@x.com",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsertError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectQuery("INSERT INTO tickets").WillReturnError(assert.AnError)

		_, err := repo.Create(context.Background(), &models.Ticket{FlightID: 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert ticket")
	})
}

func TestSetTicketURL(t *testing.T) {
	t.Run("Updates", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET ticket_url = $1 WHERE id = $2")).
			WithArgs("https://s.example.com/b/ticket_42.txt", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetTicketURL(context.Background(), 42, "https://s.example.com/b/ticket_42.txt")
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingRow", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectExec("UPDATE tickets").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetTicketURL(context.Background(), 42, "url")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetTicketURL(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT ticket_url FROM tickets WHERE id = $1")).
			WithArgs("42").
			WillReturnRows(sqlmock.NewRows([]string{"ticket_url"}).AddRow("https://s.example.com/b/ticket_42.txt"))

		url, err := repo.GetTicketURL(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, "https://s.example.com/b/ticket_42.txt", url)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTicketRepository(db)

		mock.ExpectQuery("SELECT ticket_url FROM tickets").
			WithArgs("777").
			WillReturnRows(sqlmock.NewRows([]string{"ticket_url"}))

		_, err := repo.GetTicketURL(context.Background(), "777")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
