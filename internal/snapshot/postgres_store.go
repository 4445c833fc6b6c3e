package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"radar/api/internal/assessment"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore implements Store on a one-row snapshots table, for
// deployments without Redis.
type PostgresStore struct {
	db  *sql.DB
	key string
}

// OpenPostgresStore connects to Postgres and ensures the snapshots table
// exists.
func OpenPostgresStore(ctx context.Context, databaseURL, key string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(10)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS snapshots (
			slot TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}

	return &PostgresStore{db: db, key: key}, nil
}

// NewPostgresStoreWithDB creates a store from an existing connection.
func NewPostgresStoreWithDB(db *sql.DB, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

func (s *PostgresStore) Save(ctx context.Context, doc assessment.Document) error {
	data, err := assessment.EncodeFile(doc)
	if err != nil {
		return err
	}
	const upsert = `
		INSERT INTO snapshots (slot, payload, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE SET payload = EXCLUDED.payload, saved_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, upsert, s.key, string(data)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (assessment.Document, error) {
	const query = `SELECT payload FROM snapshots WHERE slot = $1`
	var payload string
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return assessment.Document{}, ErrNoSnapshot
	}
	if err != nil {
		return assessment.Document{}, fmt.Errorf("load snapshot: %w", err)
	}
	return assessment.DecodeFile([]byte(payload))
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	const del = `DELETE FROM snapshots WHERE slot = $1`
	if _, err := s.db.ExecContext(ctx, del, s.key); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
