package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/theleywin/Backend-DevConnect/src/config"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/server"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	lib.SetupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
	s, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("opening %s store: %v", cfg.Store.Driver, err)
	}

	app := server.New(cfg, s)

	go func() {
		log.Infof("Server is running on http://localhost%s (store: %s)", cfg.ListenAddr(), cfg.Store.Driver)
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			log.Fatalf("listening: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("shutting down server: %v", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.Errorf("closing store: %v", err)
	}
}
