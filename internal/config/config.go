package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr       string
	CORSOrigin string
	// Snapshot storage. Redis is used when REDIS_URL is set, otherwise
	// Postgres when DATABASE_URL is set.
	RedisURL    string
	DatabaseURL string
	SnapshotKey string
	// Report capture
	CaptureTimeout time.Duration
	CaptureWidth   int
	// Search - disabled if MEILI_URL empty
	MeiliURL       string
	MeiliMasterKey string
	// Archive - disabled if endpoint empty
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveBucket    string
	ArchiveUseSSL    bool
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":8788"),
		CORSOrigin:     getenv("RADAR_CORS_ORIGIN", "*"),
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		SnapshotKey:    getenv("RADAR_SNAPSHOT_KEY", "assessment:current"),
		CaptureTimeout: time.Duration(getenvInt("RADAR_CAPTURE_TIMEOUT_SECONDS", 30)) * time.Second,
		CaptureWidth:   getenvInt("RADAR_CAPTURE_WIDTH", 1240),
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		// Archive - empty by default, report archiving disabled if not configured
		ArchiveEndpoint:  getenv("RADAR_ARCHIVE_ENDPOINT", ""),
		ArchiveAccessKey: getenv("RADAR_ARCHIVE_ACCESS_KEY", ""),
		ArchiveSecretKey: getenv("RADAR_ARCHIVE_SECRET_KEY", ""),
		ArchiveBucket:    getenv("RADAR_ARCHIVE_BUCKET", "radar-exports"),
		ArchiveUseSSL:    getenvInt("RADAR_ARCHIVE_USE_SSL", 0) == 1,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
