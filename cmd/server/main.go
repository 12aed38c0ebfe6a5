package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockchat/internal/config"
	"mockchat/internal/httpserver"
	"mockchat/internal/service"
	"mockchat/internal/store/memory"
	"mockchat/internal/ws"
)

// @title           Mockchat API
// @version         1.0
// @description     In-memory mock messaging backend: users, conversations, messages with attachments, search and a websocket change feed. Nothing survives a restart.

// @host            localhost:8000
// @BasePath        /api/messaging

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The store lives and dies with the process.
	db := memory.Open()
	if cfg.SeedDemoData {
		if err := memory.Seed(context.Background(), db); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	scheduler := service.NewDeliveryScheduler(cfg.DeliveryDelay)
	defer scheduler.Stop()

	hub := ws.NewHub()

	router := httpserver.NewRouter(cfg, db, hub, scheduler)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting mockchat server on %s\n", cfg.HTTPAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
