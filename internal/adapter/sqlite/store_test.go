package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/domain"
	"timetracker/internal/migrate"
)

func openMigrated(t *testing.T, path string) *Client {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	c, err := NewClient(ctx, path, log)
	require.NoError(t, err)
	require.NoError(t, migrate.Run(ctx, c.DB(), migrate.SQLite, log))
	return c
}

func TestTrackedTimesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	ctx := context.Background()
	c := openMigrated(t, path)

	entries := []domain.TrackedTime{
		{Description: "Zeta", Duration: 90 * time.Minute},
		{Description: "Alpha", Duration: 45 * time.Second},
		{Description: "Mid", Duration: 0},
	}
	require.NoError(t, c.SaveTrackedTimes(ctx, entries))
	require.NoError(t, c.Close())

	c = openMigrated(t, path)
	defer c.Close()
	got, err := c.LoadTrackedTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestSaveTrackedTimesReplaces(t *testing.T) {
	ctx := context.Background()
	c := openMigrated(t, filepath.Join(t.TempDir(), DefaultPath))
	defer c.Close()

	require.NoError(t, c.SaveTrackedTimes(ctx, []domain.TrackedTime{{Description: "A", Duration: time.Minute}, {Description: "B", Duration: time.Minute}}))
	require.NoError(t, c.SaveTrackedTimes(ctx, []domain.TrackedTime{{Description: "C", Duration: time.Hour}}))

	got, err := c.LoadTrackedTimes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TrackedTime{{Description: "C", Duration: time.Hour}}, got)

	require.NoError(t, c.SaveTrackedTimes(ctx, nil))
	got, err = c.LoadTrackedTimes(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openMigrated(t, filepath.Join(t.TempDir(), DefaultPath))
	defer c.Close()

	empty, err := c.LoadStates(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	states := domain.States{domain.TimeKey: 1709283600, domain.DarkModeKey: 1, domain.PausedKey: 0}
	require.NoError(t, c.SaveStates(ctx, states))
	require.NoError(t, c.SaveStates(ctx, domain.States{domain.TimeKey: 42, domain.PausedKey: 1}))

	got, err := c.LoadStates(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.States{domain.TimeKey: 42, domain.PausedKey: 1}, got)
}

func TestNewClientRequiresPath(t *testing.T) {
	_, err := NewClient(context.Background(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
