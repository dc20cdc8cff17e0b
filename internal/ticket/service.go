// Package ticket implements the purchase flow: verify, persist, render,
// upload, back-fill.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/flightkit/flightd/internal/captcha"
	"github.com/flightkit/flightd/internal/models"
	"github.com/flightkit/flightd/internal/repository"
	"github.com/flightkit/flightd/internal/storage"
)

// Typed purchase failures. Handlers map these to their status codes
// explicitly instead of stringifying arbitrary faults.
var (
	ErrCaptchaFailed  = errors.New("captcha verification failed")
	ErrFlightNotFound = errors.New("flight not found")
)

// PurchaseRequest carries the validated purchase input.
type PurchaseRequest struct {
	FlightID      int64
	PassengerName string
	Email         string
	CaptchaToken  string
}

// PurchaseResult is the successful outcome of a purchase.
type PurchaseResult struct {
	TicketID  int64  `json:"ticket_id"`
	TicketURL string `json:"ticket_url"`
}

// PurchaseService orchestrates a ticket purchase end to end.
type PurchaseService struct {
	flights  repository.FlightRepository
	tickets  repository.TicketRepository
	store    storage.ArtifactStore
	verifier captcha.Verifier
	log      *slog.Logger

	// now is swappable for deterministic artifact timestamps in tests.
	now func() time.Time
}

// NewPurchaseService wires the purchase dependencies.
func NewPurchaseService(
	flights repository.FlightRepository,
	tickets repository.TicketRepository,
	store storage.ArtifactStore,
	verifier captcha.Verifier,
	log *slog.Logger,
) *PurchaseService {
	return &PurchaseService{
		flights:  flights,
		tickets:  tickets,
		store:    store,
		verifier: verifier,
		log:      log,
		now:      time.Now,
	}
}

// Purchase runs the purchase sequence:
//
//  1. captcha verification
//  2. flight lookup (a missing flight fails before any row is created)
//  3. ticket insert with empty URL, committed immediately
//  4. artifact render + upload under ticket_<id>.txt
//  5. URL back-fill on the ticket row
//
// There is no transaction spanning the insert and the object write. If
// the upload or back-fill fails, the row stays with an empty ticket_url;
// the artifact key is derived from the ticket id, so recomputing the
// artifact for the same ticket is safe.
func (s *PurchaseService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	ok, err := s.verifier.Verify(ctx, req.CaptchaToken)
	if err != nil {
		return nil, fmt.Errorf("captcha verification: %w", err)
	}
	if !ok {
		return nil, ErrCaptchaFailed
	}

	flight, err := s.flights.GetByID(ctx, req.FlightID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}

	id, err := s.tickets.Create(ctx, &models.Ticket{
		FlightID:      req.FlightID,
		PassengerName: req.PassengerName,
		Email:         req.Email,
		TicketURL:     "",
	})
	if err != nil {
		return nil, err
	}

	key := ArtifactKey(id)
	body := renderArtifact(id, req.PassengerName, req.Email, flight, s.now().UTC())
	if err := s.store.Put(ctx, key, body); err != nil {
		s.log.Error("artifact upload failed, ticket row left without URL",
			"ticket_id", id, "key", key, "error", err)
		return nil, err
	}

	url := s.store.ObjectURL(key)
	if err := s.tickets.SetTicketURL(ctx, id, url); err != nil {
		s.log.Error("ticket URL back-fill failed",
			"ticket_id", id, "url", url, "error", err)
		return nil, err
	}

	s.log.Info("ticket purchased", "ticket_id", id, "flight_id", req.FlightID)
	return &PurchaseResult{TicketID: id, TicketURL: url}, nil
}

// ArtifactKey derives the object-storage key for a ticket. It is a pure
// function of the ticket id so a retried purchase recomputes the same key.
func ArtifactKey(ticketID int64) string {
	return fmt.Sprintf("ticket_%d.txt", ticketID)
}

// renderArtifact produces the plain-text ticket body. Layout is part of
// the public contract: newline-separated id, passenger, email, route,
// price with currency suffix, and a UTC purchase timestamp with a
// trailing "Z".
func renderArtifact(id int64, passenger, email string, f *models.Flight, purchasedAt time.Time) []byte {
	price := strconv.FormatFloat(f.Price, 'f', -1, 64)
	text := fmt.Sprintf(
		"Ticket ID: %d\nPassenger: %s\nE-mail: %s\nFlight: %s %s → %s\nPrice: %s ₽\nPurchased: %sZ\n",
		id, passenger, email,
		f.Number, f.Departure, f.Arrival,
		price,
		purchasedAt.Format("2006-01-02T15:04:05"),
	)
	return []byte(text)
}
