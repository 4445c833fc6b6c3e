package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"radar/api/internal/app"
	"radar/api/internal/archive"
	"radar/api/internal/assessment"
	"radar/api/internal/config"
	"radar/api/internal/report"
	"radar/api/internal/search"
	"radar/api/internal/snapshot"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var snapshots snapshot.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis for snapshot storage")
		redisStore, err := snapshot.NewRedisStore(cfg.RedisURL, cfg.SnapshotKey)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		snapshots = redisStore
	} else if strings.TrimSpace(cfg.DatabaseURL) != "" {
		log.Printf("Using PostgreSQL for snapshot storage")
		pgStore, err := snapshot.OpenPostgresStore(ctx, cfg.DatabaseURL, cfg.SnapshotKey)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		snapshots = pgStore
	} else {
		log.Fatalf("no snapshot storage configured: set REDIS_URL or DATABASE_URL")
	}
	defer snapshots.Close()

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	searchService := search.NewService(meiliClient, search.NewScanner())

	var archiver *archive.Service
	if strings.TrimSpace(cfg.ArchiveEndpoint) != "" {
		var err error
		archiver, err = archive.New(cfg.ArchiveEndpoint, cfg.ArchiveAccessKey, cfg.ArchiveSecretKey, cfg.ArchiveBucket, cfg.ArchiveUseSSL)
		if err != nil {
			log.Fatalf("archive connection failed: %v", err)
		}
		log.Printf("Archiving report exports to bucket %q", cfg.ArchiveBucket)
	}

	reports := report.NewService(report.NewChromeCapturer(cfg.CaptureTimeout, cfg.CaptureWidth))
	store := assessment.NewStore(assessment.DefaultDocument(time.Now()))
	hub := app.NewHub(50)

	service := app.New(store, snapshots, reports, searchService, archiver, hub)
	service.Bootstrap(ctx)

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Radar API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
