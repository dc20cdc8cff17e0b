package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flightkit/flightd/internal/apierrors"
	"github.com/flightkit/flightd/internal/repository"
	"github.com/flightkit/flightd/internal/ticket"
)

// flightID accepts both JSON number and string forms of a flight id.
type flightID int64

func (f *flightID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*f = flightID(n)
	return nil
}

type purchaseRequest struct {
	FlightID      flightID `json:"flight_id"`
	PassengerName string   `json:"passenger_name"`
	Email         string   `json:"email"`
	CaptchaToken  string   `json:"captcha_token"`
}

// handleBuyTicket validates the purchase input and runs the purchase flow.
func (s *Server) handleBuyTicket(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed or absent body is treated as an empty object and
		// fails field validation below.
		req = purchaseRequest{}
	}

	if req.FlightID == 0 || req.PassengerName == "" || req.Email == "" || req.CaptchaToken == "" {
		apierrors.Error(c, apierrors.CodeMissingFields)
		return
	}

	result, err := s.purchases.Purchase(c.Request.Context(), ticket.PurchaseRequest{
		FlightID:      int64(req.FlightID),
		PassengerName: req.PassengerName,
		Email:         req.Email,
		CaptchaToken:  req.CaptchaToken,
	})
	switch {
	case errors.Is(err, ticket.ErrCaptchaFailed):
		apierrors.Error(c, apierrors.CodeCaptchaFailed)
	case errors.Is(err, ticket.ErrFlightNotFound):
		apierrors.Error(c, apierrors.CodeFlightNotFound)
	case err != nil:
		s.log.Error("purchase failed", "flight_id", int64(req.FlightID), "error", err)
		apierrors.ErrorWithMessage(c, apierrors.CodeInternalError, err.Error())
	default:
		c.JSON(http.StatusOK, result)
	}
}

// handleGetTicket resolves a ticket id to its artifact URL. The id is the
// final path segment and is passed to the store as given.
func (s *Server) handleGetTicket(c *gin.Context) {
	id := c.Param("id")

	url, err := s.tickets.GetTicketURL(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		apierrors.Error(c, apierrors.CodeTicketNotFound)
	case err != nil:
		s.log.Error("ticket lookup failed", "ticket_id", id, "error", err)
		apierrors.ErrorWithMessage(c, apierrors.CodeInternalError, err.Error())
	default:
		c.JSON(http.StatusOK, gin.H{"ticket_url": url})
	}
}
