package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flightkit/flightd/internal/apierrors"
)

// handleListFlights returns all flights ordered by ascending id.
func (s *Server) handleListFlights(c *gin.Context) {
	flights, err := s.flights.List(c.Request.Context())
	if err != nil {
		s.log.Error("flight list failed", "error", err)
		apierrors.ErrorWithMessage(c, apierrors.CodeInternalError, err.Error())
		return
	}
	c.JSON(http.StatusOK, flights)
}
