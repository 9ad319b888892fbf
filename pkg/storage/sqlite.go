package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteBackend keeps every key as a row of a single key/value table
type SQLiteBackend struct {
	conn *sql.DB
}

func NewSQLiteBackend(ctx context.Context, dbPath string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only has one writer, parallel shard writes queue on this connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("Connected to SQLite storage")

	return &SQLiteBackend{conn: conn}, nil
}

func (s *SQLiteBackend) Put(ctx context.Context, key string, data string) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, data,
	)

	return err
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &NotFoundError{Key: key}
	} else if err != nil {
		return "", err
	}

	return value, nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)

	return err
}

func (s *SQLiteBackend) Close() error {
	return s.conn.Close()
}
