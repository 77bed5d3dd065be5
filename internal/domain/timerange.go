package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the format CHORDS accepts in start/end query parameters
// and the format users supply in configuration.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses a user-supplied timestamp, second precision, UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// TimeRange is a bounded start/end pair, start <= end. Construct via
// NewTimeRange; values are never mutated after construction.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange validates ordering and returns the range.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.After(end) {
		return TimeRange{}, fmt.Errorf("starting time cannot be after end time: start %s, end %s",
			start.Format(TimestampLayout), end.Format(TimestampLayout))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Duration returns the total span of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// SplitBoundaries divides the range into the given number of equal
// integer-minute sub-intervals and returns the boundary timestamps.
// The interval length is the floor of total minutes over divisions. When
// flooring leaves a remainder shorter than one interval, the exact range end
// is appended as a final boundary; a remainder at least one interval long
// means the arithmetic no longer covers the range and is reported as an
// internal-consistency error.
func (r TimeRange) SplitBoundaries(divisions int) ([]time.Time, error) {
	if divisions < 1 {
		return nil, fmt.Errorf("split range: divisions must be positive, got %d", divisions)
	}

	totalMinutes := r.Duration() / time.Minute
	intervalMinutes := totalMinutes / time.Duration(divisions)
	if intervalMinutes < 1 {
		return nil, fmt.Errorf("split range: %v is too short to divide into %d integer-minute intervals",
			r.Duration(), divisions)
	}
	step := intervalMinutes * time.Minute

	boundaries := make([]time.Time, 0, divisions+2)
	boundaries = append(boundaries, r.Start)
	b := r.Start
	for i := 0; i < divisions; i++ {
		b = b.Add(step)
		boundaries = append(boundaries, b)
	}

	if !b.Equal(r.End) {
		remainder := r.End.Sub(b)
		if remainder >= step {
			return nil, fmt.Errorf("split range: remainder %v not smaller than interval %v", remainder, step)
		}
		boundaries = append(boundaries, r.End)
	}

	return boundaries, nil
}

// ClockTime is a time of day with second precision, independent of date.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

const clockTimeLayout = "15:04:05"

// ParseClockTime parses an "HH:MM:SS" clock time.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse(clockTimeLayout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// seconds returns the clock time as seconds since midnight.
func (c ClockTime) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// After reports whether c falls later in the day than other.
func (c ClockTime) After(other ClockTime) bool {
	return c.seconds() > other.seconds()
}

// DailyWindow is a recurring clock-time window applied to every calendar day
// of a request range. No wraparound past midnight is supported.
type DailyWindow struct {
	Start ClockTime
	End   ClockTime
}

// NewDailyWindow validates ordering and returns the window.
func NewDailyWindow(start, end ClockTime) (DailyWindow, error) {
	if start.After(end) {
		return DailyWindow{}, fmt.Errorf("time window start %s is after window end %s", start, end)
	}
	return DailyWindow{Start: start, End: end}, nil
}

// CombineDayClock places a clock time on the calendar day of the given
// timestamp, in UTC.
func CombineDayClock(day time.Time, c ClockTime) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, c.Second, 0, time.UTC)
}
