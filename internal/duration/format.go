package duration

import (
	"fmt"
	"time"
)

// FormatHM renders d as "H:MM".
func FormatHM(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%d:%02d", int64(d/time.Hour), int64(d/time.Minute)%60)
}

// FormatHMS renders d as "H:MM:SS".
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%s:%02d", FormatHM(d), int64(d/time.Second)%60)
}

// Input renders hours and minutes in the text form o parses.
func (o Order) Input(hours, minutes int64) string {
	if o == MinutesHours {
		return fmt.Sprintf("%02d:%d", minutes, hours)
	}
	return fmt.Sprintf("%d:%02d", hours, minutes)
}
