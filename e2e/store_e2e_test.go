//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	msql "timetracker/internal/adapter/mysql"
	"timetracker/internal/clock"
	"timetracker/internal/domain"
	"timetracker/internal/migrate"
	"timetracker/internal/usecase"
)

func startMySQL(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      "testdb",
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_USER":          "test",
			"MYSQL_PASSWORD":      "pass",
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start mysql container")
	t.Cleanup(func() { _ = mysqlC.Terminate(context.Background()) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true", "test", "pass", host, port.Port(), "testdb")
}

func openStore(t *testing.T, ctx context.Context, dsn string, log *slog.Logger) *msql.Client {
	t.Helper()
	var (
		c   *msql.Client
		err error
	)
	// The port opens before the server accepts logins.
	require.Eventually(t, func() bool {
		c, err = msql.NewClient(ctx, dsn, log)
		return err == nil
	}, 60*time.Second, time.Second, "mysql client")
	require.NoError(t, migrate.Run(ctx, c.DB(), migrate.MySQL, log))
	return c
}

func TestTrackerSurvivesRestartOnMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()
	dsn := startMySQL(t, ctx)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	store := openStore(t, ctx, dsn, logger)
	src := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	tr, err := usecase.Open(ctx, logger, store, nil, src, usecase.Options{})
	require.NoError(t, err)
	tr.StartStop()
	src.Advance(90 * time.Minute)

	require.True(t, tr.SetTimeText("1:00"))
	require.True(t, tr.SetDescriptionText("Review"))
	o, err := tr.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, usecase.Applied, o)

	require.True(t, tr.SetTimeText("15"))
	require.True(t, tr.SetIndexText("1"))
	o, err = tr.Apply(ctx)
	require.NoError(t, err)
	require.Equal(t, usecase.Applied, o)

	require.NoError(t, tr.Shutdown(ctx))
	require.NoError(t, store.Close())

	// Restart: migrations are idempotent and the clock keeps running.
	store = openStore(t, ctx, dsn, logger)
	t.Cleanup(func() { _ = store.Close() })
	src.Advance(10 * time.Minute)

	tr, err = usecase.Open(ctx, logger, store, nil, src, usecase.Options{})
	require.NoError(t, err)
	assert.True(t, tr.Running())
	assert.Equal(t, 25*time.Minute, tr.Elapsed())
	assert.Equal(t, []domain.TrackedTime{
		{Description: "Review", Duration: 75 * time.Minute},
	}, tr.Snapshot().Entries)

	states, err := store.LoadStates(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), states[domain.PausedKey])
}
