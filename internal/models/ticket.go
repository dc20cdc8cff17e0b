// Package models defines the persisted data types of the ticket store.
package models

// Ticket is a row of the tickets table. TicketURL is empty between the
// insert and the artifact upload within a single purchase; any ticket a
// later read observes is expected to carry a non-empty URL.
type Ticket struct {
	ID            int64  `db:"id" json:"id"`
	FlightID      int64  `db:"flight_id" json:"flight_id"`
	PassengerName string `db:"passenger_name" json:"passenger_name"`
	Email         string `db:"email" json:"email"`
	TicketURL     string `db:"ticket_url" json:"ticket_url"`
}
