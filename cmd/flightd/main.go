// Command flightd serves the flight-ticket purchase API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flightkit/flightd/internal/api"
	"github.com/flightkit/flightd/internal/captcha"
	"github.com/flightkit/flightd/internal/config"
	"github.com/flightkit/flightd/internal/database"
	"github.com/flightkit/flightd/internal/repository"
	"github.com/flightkit/flightd/internal/storage"
	"github.com/flightkit/flightd/internal/ticket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	root := &cobra.Command{
		Use:          "flightd",
		Short:        "Flight ticket purchase API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// Local development keeps settings in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}

	verifier := captcha.ForConfig(cfg.Captcha)
	if !cfg.Captcha.Enforce {
		log.Warn("captcha enforcement is disabled by configuration")
	}

	flights := repository.NewFlightRepository(db)
	tickets := repository.NewTicketRepository(db)
	purchases := ticket.NewPurchaseService(flights, tickets, store, verifier, log)
	server := api.NewServer(flights, tickets, purchases, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}
