package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devlinkr/devlinkr-be/internal/api"
	"github.com/devlinkr/devlinkr-be/internal/auth"
	"github.com/devlinkr/devlinkr-be/internal/config"
	"github.com/devlinkr/devlinkr-be/internal/logger"
	"github.com/devlinkr/devlinkr-be/internal/maintenance"
	"github.com/devlinkr/devlinkr-be/internal/services"
	"github.com/devlinkr/devlinkr-be/internal/store"
	"github.com/devlinkr/devlinkr-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	auth.SetSecret(cfg.JWTSecret)

	// Ensure the base directory for the document store exists
	if err := os.MkdirAll(cfg.DatabasePath, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create store directory")
	}

	// Set up the document store
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer db.Close()

	// Set up the websocket hub for feed events
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db)
	postService := services.NewPostService(db, db, eventService, hub)

	// Set up and run the background store GC runner
	gcRunner, err := maintenance.NewGCRunner(db, cfg.StoreGCSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.StoreGCSchedule).Msg("Invalid store GC schedule")
	}
	go gcRunner.Run()

	// Set up router
	router := api.NewRouter(hub, userService, postService, eventService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	gcRunner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
