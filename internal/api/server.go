// Package api wires the HTTP surface: routing, middleware and handlers.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flightkit/flightd/internal/apierrors"
	"github.com/flightkit/flightd/internal/metrics"
	"github.com/flightkit/flightd/internal/repository"
	"github.com/flightkit/flightd/internal/ticket"
)

// Server holds the handler dependencies. Everything is injected; handlers
// never reach into globals.
type Server struct {
	flights   repository.FlightRepository
	tickets   repository.TicketRepository
	purchases *ticket.PurchaseService
	log       *slog.Logger
}

// NewServer creates the API server.
func NewServer(
	flights repository.FlightRepository,
	tickets repository.TicketRepository,
	purchases *ticket.PurchaseService,
	log *slog.Logger,
) *Server {
	return &Server{
		flights:   flights,
		tickets:   tickets,
		purchases: purchases,
		log:       log,
	}
}

// Routes builds the gin engine with middleware and all routes mounted.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS())
	r.Use(RequestLogger(s.log))
	r.Use(metrics.Middleware())

	r.GET("/flights", s.handleListFlights)
	r.POST("/buy", s.handleBuyTicket)
	r.GET("/ticket/:id", s.handleGetTicket)

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", metrics.Handler())

	r.NoRoute(func(c *gin.Context) {
		apierrors.Error(c, apierrors.CodeNotFound)
	})
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
