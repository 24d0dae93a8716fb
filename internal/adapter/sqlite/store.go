package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"timetracker/internal/domain"
)

// DefaultPath is the file name the tracker has always used.
const DefaultPath = "simple_time_tracker.sqlite"

// Client implements ports.Store on a local SQLite file.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens (creating if needed) the SQLite database at path.
func NewClient(ctx context.Context, path string, log *slog.Logger) (*Client, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer; keeps pragmas on the single pooled connection.
	db.SetMaxOpenConns(1)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: busy_timeout: %w", err)
	}
	log.Debug("sqlite store opened", slog.String("path", path))
	return &Client{db: db, log: log}, nil
}

// DB exposes the handle for migrations.
func (c *Client) DB() *sql.DB { return c.db }

// LoadStates reads the key/value table.
func (c *Client) LoadStates(ctx context.Context) (domain.States, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT Key, Value FROM States")
	if err != nil {
		return nil, fmt.Errorf("load states: query: %w", err)
	}
	defer rows.Close()

	states := domain.States{}
	for rows.Next() {
		var key string
		var value int64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("load states: scan: %w", err)
		}
		states[key] = value
	}
	return states, rows.Err()
}

// SaveStates replaces the key/value table.
func (c *Client) SaveStates(ctx context.Context, states domain.States) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save states: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM States"); err != nil {
		return fmt.Errorf("save states: clear: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO States (Key, Value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("save states: prepare: %w", err)
	}
	defer stmt.Close()
	for key, value := range states {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("save states: insert %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save states: commit: %w", err)
	}
	return nil
}

// LoadTrackedTimes returns the rows in insertion order.
func (c *Client) LoadTrackedTimes(ctx context.Context) ([]domain.TrackedTime, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT Seconds, Description FROM TrackedTimes ORDER BY ID")
	if err != nil {
		return nil, fmt.Errorf("load tracked times: query: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TrackedTime, 0)
	for rows.Next() {
		var seconds int64
		var description string
		if err := rows.Scan(&seconds, &description); err != nil {
			return nil, fmt.Errorf("load tracked times: scan: %w", err)
		}
		entries = append(entries, domain.TrackedTime{
			Description: description,
			Duration:    time.Duration(seconds) * time.Second,
		})
	}
	return entries, rows.Err()
}

// SaveTrackedTimes deletes every row and reinserts entries in order.
func (c *Client) SaveTrackedTimes(ctx context.Context, entries []domain.TrackedTime) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save tracked times: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM TrackedTimes"); err != nil {
		return fmt.Errorf("save tracked times: clear: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO TrackedTimes (Seconds, Description) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("save tracked times: prepare: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, int64(e.Duration/time.Second), e.Description); err != nil {
			return fmt.Errorf("save tracked times: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save tracked times: commit: %w", err)
	}
	c.log.Debug("sqlite store saved tracked times", slog.Int("count", len(entries)))
	return nil
}

// Close closes the underlying DB.
func (c *Client) Close() error { return c.db.Close() }
