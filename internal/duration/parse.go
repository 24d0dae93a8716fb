package duration

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Rejection reasons.
var (
	ErrSyntax        = errors.New("duration: malformed input")
	ErrMinutesRange  = errors.New("duration: minutes must be below 60")
	ErrExceedsBound  = errors.New("duration: exceeds elapsed time")
	ErrOverflow      = errors.New("duration: overflow")
	ErrNegativeBound = errors.New("duration: negative bound")
)

// Order selects which field of the colon form holds the hours.
type Order uint8

const (
	// HoursMinutes reads "H:M".
	HoursMinutes Order = iota
	// MinutesHours reads "M:H".
	MinutesHours
)

// String returns the grammar the order accepts.
func (o Order) String() string {
	switch o {
	case HoursMinutes:
		return "H:M"
	case MinutesHours:
		return "M:H"
	default:
		return "UNKNOWN"
	}
}

// ParseOrder maps "H:M" / "M:H" (and the lowercase names) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "h:m", "hours-minutes":
		return HoursMinutes, nil
	case "m:h", "minutes-hours":
		return MinutesHours, nil
	}
	return HoursMinutes, errors.New("duration: unknown order " + strconv.Quote(s))
}

// Parser validates amounts using a fixed field order.
type Parser struct {
	Order Order
}

// Parse parses text with the default HoursMinutes order.
func Parse(text string, bound time.Duration) (time.Duration, error) {
	return Parser{}.Parse(text, bound)
}

// Parse returns the amount described by text, never more than bound.
// Empty text yields bound itself.
func (p Parser) Parse(text string, bound time.Duration) (time.Duration, error) {
	if bound < 0 {
		return 0, ErrNegativeBound
	}
	if text == "" {
		return bound, nil
	}

	fields := strings.Split(text, ":")
	if len(fields) > 2 {
		return 0, ErrSyntax
	}

	minuteField, hourField := fields[0], ""
	hasHours := len(fields) == 2
	if hasHours {
		if p.Order == MinutesHours {
			minuteField, hourField = fields[0], fields[1]
		} else {
			minuteField, hourField = fields[1], fields[0]
		}
	}

	boundHours := int64(bound / time.Hour)

	minutes, err := parseField(minuteField)
	if err != nil {
		return 0, err
	}
	if minutes >= 60 {
		return 0, ErrMinutesRange
	}
	if boundHours == 0 && minutes > int64(bound/time.Minute) {
		return 0, ErrExceedsBound
	}

	var hours int64
	if hasHours {
		hours, err = parseField(hourField)
		if err != nil {
			return 0, err
		}
		if hours > boundHours {
			return 0, ErrExceedsBound
		}
	}

	if hours > math.MaxInt64/int64(time.Hour) {
		return 0, ErrOverflow
	}
	total := time.Duration(hours) * time.Hour
	add := time.Duration(minutes) * time.Minute
	if total > math.MaxInt64-add {
		return 0, ErrOverflow
	}
	total += add

	// "1:50" passes the per-field checks against an elapsed 1:10.
	if total > bound {
		return 0, ErrExceedsBound
	}
	return total, nil
}

func parseField(s string) (int64, error) {
	v, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrOverflow
		}
		return 0, ErrSyntax
	}
	return int64(v), nil
}
