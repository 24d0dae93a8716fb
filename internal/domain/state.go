package domain

import (
	"math"
	"time"
)

// Keys of the persisted key/value state table.
const (
	TimeKey     = "time"
	DarkModeKey = "darkmode"
	PausedKey   = "paused"
)

// maxSeconds is the largest whole-second count a time.Duration holds.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// States is the persisted key/value table. Values are integers; booleans are 0/1.
type States map[string]int64

// ClockState is the raw anchor pair of the timer clock.
type ClockState struct {
	Running bool
	Start   time.Time
	Pause   time.Time
}

// Elapsed reports the visible elapsed time at now.
func (c ClockState) Elapsed(now time.Time) time.Duration {
	if c.Running {
		return now.Sub(c.Start)
	}
	return c.Pause.Sub(c.Start)
}

// EncodeStates converts the clock state and theme flag into persisted form.
// A running clock stores its start anchor as Unix seconds so elapsed time keeps
// accruing while nothing is loaded; a paused clock stores the elapsed seconds.
func EncodeStates(c ClockState, darkMode bool, now time.Time) States {
	s := States{
		DarkModeKey: boolToInt(darkMode),
		PausedKey:   boolToInt(!c.Running),
	}
	if c.Running {
		s[TimeKey] = c.Start.Unix()
	} else {
		s[TimeKey] = int64(c.Elapsed(now) / time.Second)
	}
	return s
}

// DecodeStates rebuilds the clock state and theme flag. Missing keys fall back
// to a paused clock at zero and defaultDark.
func DecodeStates(s States, defaultDark bool, now time.Time) (ClockState, bool) {
	darkMode := defaultDark
	if v, ok := s[DarkModeKey]; ok {
		darkMode = v == 1
	}
	running := false
	if v, ok := s[PausedKey]; ok {
		running = v == 0
	}

	c := ClockState{Running: running, Start: now, Pause: now}
	v, ok := s[TimeKey]
	if !ok {
		c.Running = false
		return c, darkMode
	}
	if running {
		c.Start = time.Unix(v, 0)
		if c.Start.After(now) {
			c.Start = now
		}
		return c, darkMode
	}
	if v < 0 {
		v = 0
	}
	if v > maxSeconds {
		v = maxSeconds
	}
	c.Start = now.Add(-time.Duration(v) * time.Second)
	return c, darkMode
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
