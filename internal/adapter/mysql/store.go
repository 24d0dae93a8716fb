package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"timetracker/internal/domain"
)

// Client implements ports.Store on MySQL.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// A single interactive user; a small pool is plenty.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

// DB exposes the handle for migrations.
func (c *Client) DB() *sql.DB { return c.db }

func (c *Client) LoadStates(ctx context.Context) (domain.States, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT state_key, value FROM tracker_states")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	states := domain.States{}
	for rows.Next() {
		var key string
		var value int64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		states[key] = value
	}
	return states, rows.Err()
}

// SaveStates replaces all state rows in one transaction.
func (c *Client) SaveStates(ctx context.Context, states domain.States) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tracker_states"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tracker_states (state_key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for k, v := range states {
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (c *Client) LoadTrackedTimes(ctx context.Context) ([]domain.TrackedTime, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT seconds, description FROM tracked_times ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.TrackedTime, 0)
	for rows.Next() {
		var seconds int64
		var description string
		if err := rows.Scan(&seconds, &description); err != nil {
			return nil, err
		}
		out = append(out, domain.TrackedTime{Description: description, Duration: time.Duration(seconds) * time.Second})
	}
	return out, rows.Err()
}

// SaveTrackedTimes replaces the table contents with entries, keeping order.
func (c *Client) SaveTrackedTimes(ctx context.Context, entries []domain.TrackedTime) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	// DELETE rather than TRUNCATE: TRUNCATE commits implicitly.
	if _, err := tx.ExecContext(ctx, "DELETE FROM tracked_times"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tracked_times (seconds, description) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, int64(e.Duration/time.Second), e.Description); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql store saved tracked times", slog.Int("count", len(entries)))
	return nil
}

// Close closes the underlying DB.
func (c *Client) Close() error { return c.db.Close() }
