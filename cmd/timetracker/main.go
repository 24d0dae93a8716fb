package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timetracker/cmd/timetracker/interactive"
	"timetracker/internal/app"
	"timetracker/internal/config"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "Path to a YAML config file (default: $TRACKER_CONFIG)")
	headless := flag.Bool("headless", false, "Run without the interactive shell (HTTP only)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()

	// Shell first, so log lines do not tear the prompt.
	var (
		shell *interactive.Shell
		out   io.Writer = os.Stdout
	)
	if !*headless {
		var err error
		shell, err = interactive.New()
		if err != nil {
			slog.Error("failed to start shell", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shell.Close()
		out = shell.Stdout()
	}

	// Logger
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *headless && cfg.HTTP.Addr == "" {
		logger.Error("headless mode needs TRACKER_HTTP_ADDR or http.addr")
		os.Exit(1)
	}

	// Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// App
	application, err := app.New(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to initialize app", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	if shell != nil {
		shell.Bind(application.Loop())
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- application.Run(ctx)
	}()

	var srv *http.Server
	if cfg.HTTP.Addr != "" {
		srv = application.HTTPServer(cfg.HTTP.Addr)
		go func() {
			logger.Info("http listening", slog.String("addr", cfg.HTTP.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", slog.String("error", err.Error()))
				stop()
			}
		}()
	}

	if shell != nil {
		// A signal must also unblock a pending Readline.
		go func() {
			<-ctx.Done()
			shell.Close()
		}()
		shell.Run(ctx, stop)
	} else {
		<-ctx.Done()
	}
	stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", slog.String("error", err.Error()))
		}
		cancel()
	}

	if err := <-loopErr; err != nil {
		logger.Error("failed to save state on exit", slog.String("error", err.Error()))
		application.Close()
		os.Exit(1)
	}
	logger.Info("shutting down")
}
