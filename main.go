package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// debugLog gates per-packet chatter; set once from Config.Debug
var debugLog bool

func debugf(format string, args ...any) {
	if debugLog {
		log.Printf(format, args...)
	}
}

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	debugLog = cfg.Debug

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(cfg Config) error {
	arena := NewArena(uint32(cfg.Width), uint32(cfg.Height))

	var db *DB
	var analytics *Analytics
	if cfg.DBPath != "" {
		var err error
		db, err = OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		analytics = NewAnalytics(db)
		defer analytics.Stop()
		arena.SetRecorder(analytics)
		log.Printf("Recording analytics to %s", cfg.DBPath)
	}

	auth, err := NewAuth(cfg.AdminPasswordHash, cfg.JWTSecret, db)
	if err != nil {
		return err
	}
	if !auth.Enabled() {
		log.Println("Admin API disabled (no password hash configured)")
	}

	for i := 1; i <= cfg.Bots; i++ {
		arena.AddBot(botName(i))
	}

	hub := NewHub(maxConnsPerIP, maxTotalConns)
	srv := NewServer(cfg, arena, hub, auth, analytics)
	server := &http.Server{Addr: cfg.Addr, Handler: srv.Routes()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return arena.Run(ctx, cfg.TickInterval)
	})
	g.Go(func() error {
		log.Printf("Server starting on %s", cfg.Addr)
		if cfg.ClientDir != "" {
			log.Printf("Serving client files from %s", cfg.ClientDir)
		}
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		// hijacked websockets are not tracked by Shutdown
		hub.CloseAll()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
