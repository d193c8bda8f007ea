// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erimkun/meeting-room-booking/internal/config"
	"github.com/erimkun/meeting-room-booking/internal/database"
	"github.com/erimkun/meeting-room-booking/internal/handler"
	"github.com/erimkun/meeting-room-booking/internal/repository"
	"github.com/erimkun/meeting-room-booking/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()
	log.Println("✓ Connected to PostgreSQL")

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	if err := roomRepo.Seed(ctx); err != nil {
		log.Fatalf("seed rooms: %v", err)
	}

	bookingSvc := service.NewBookingService(bookingRepo, roomRepo)
	bookingHandler := handler.NewBookingHandler(bookingSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(chimiddleware.Logger)    // access log
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.ListBookings)
		r.Delete("/{id}", bookingHandler.CancelBooking)
	})
	r.Get("/rooms", bookingHandler.ListRooms)
	r.Get("/slots", bookingHandler.ListSlots)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("✓ Server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
