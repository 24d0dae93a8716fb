package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"timetracker/internal/duration"
	"timetracker/internal/usecase"
)

type entryJSON struct {
	Position    int    `json:"position"`
	Description string `json:"description"`
	Seconds     int64  `json:"seconds"`
	Duration    string `json:"duration"`
}

type stateJSON struct {
	Running        bool        `json:"running"`
	ElapsedSeconds int64       `json:"elapsed_seconds"`
	Elapsed        string      `json:"elapsed"`
	DarkMode       bool        `json:"darkmode"`
	TrackedSeconds int64       `json:"tracked_seconds"`
	Entries        []entryJSON `json:"entries"`
}

func toStateJSON(s usecase.Snapshot) stateJSON {
	out := stateJSON{
		Running:        s.Running,
		ElapsedSeconds: int64(s.Elapsed / time.Second),
		Elapsed:        duration.FormatHMS(s.Elapsed),
		DarkMode:       s.DarkMode,
		TrackedSeconds: int64(s.Tracked / time.Second),
		Entries:        make([]entryJSON, 0, len(s.Entries)),
	}
	for i, e := range s.Entries {
		out.Entries = append(out.Entries, entryJSON{
			Position:    i + 1,
			Description: e.Description,
			Seconds:     int64(e.Duration / time.Second),
			Duration:    duration.FormatHM(e.Duration),
		})
	}
	return out
}

// HTTPServer returns a configured http.Server that exposes the tracker over HTTP.
// Every request goes through the same loop as the interactive shell.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /state", a.handle(func(*http.Request) (Intent, bool) { return Refresh{}, true }))
	mux.HandleFunc("POST /toggle", a.handle(func(*http.Request) (Intent, bool) { return StartStop{}, true }))
	mux.HandleFunc("POST /clear", a.handle(func(*http.Request) (Intent, bool) { return Clear{}, true }))
	mux.HandleFunc("POST /theme", a.handle(func(*http.Request) (Intent, bool) { return ToggleTheme{}, true }))

	// /apply with form fields time, description, index.
	// time may be empty (everything); exactly one of description/index must be set.
	mux.HandleFunc("POST /apply", a.handle(func(r *http.Request) (Intent, bool) {
		if err := r.ParseForm(); err != nil {
			return nil, false
		}
		return ApplyInputs{Inputs: usecase.Inputs{
			Time:        r.PostForm.Get("time"),
			Description: r.PostForm.Get("description"),
			Index:       r.PostForm.Get("index"),
		}}, true
	}))

	mux.HandleFunc("DELETE /entries/{pos}", a.handle(func(r *http.Request) (Intent, bool) {
		pos, err := strconv.Atoi(r.PathValue("pos"))
		if err != nil {
			return nil, false
		}
		return Delete{Position: pos}, true
	}))

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.log, mux)}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

// handle submits the intent built from the request and writes the outcome
// with the resulting state.
func (a *App) handle(build func(*http.Request) (Intent, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		in, ok := build(r)
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "error": "bad request"})
			return
		}
		res, err := a.loop.Submit(r.Context(), in)
		if err == nil {
			err = res.Err
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"outcome": res.Outcome.String(),
			"state":   toStateJSON(res.Snapshot),
		})
	}
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
