package schema

import (
	"fmt"
	"strings"
	"time"
)

// LocalDate is a calendar date without a time zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// LocalTime is a wall-clock time without a date or time zone.
type LocalTime struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

const dateLayout = "2006-01-02"

var timeLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
	"15:04:05.999999999Z07:00",
	"15:04:05Z07:00",
	"15:04Z07:00",
	"15:04:05.999999999-0700",
	"15:04:05-0700",
	"15:04-0700",
}

// NewDate builds a LocalDate.
func NewDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{Year: year, Month: month, Day: day}
}

// NewTime builds a LocalTime with second precision.
func NewTime(hour, minute, second int) LocalTime {
	return LocalTime{Hour: hour, Minute: minute, Second: second}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// TimeOf returns the wall-clock time of t in t's location.
func TimeOf(t time.Time) LocalTime {
	return LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (LocalDate, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return LocalDate{}, fmt.Errorf("schema: invalid date %q", s)
	}
	return DateOf(t), nil
}

// ParseTime parses an ISO 8601 wall-clock time (HH:MM, HH:MM:SS or with a
// fractional second). A trailing Z or UTC offset is accepted and dropped;
// the wall-clock reading is kept as written.
func ParseTime(s string) (LocalTime, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return TimeOf(t), nil
		}
	}
	return LocalTime{}, fmt.Errorf("schema: invalid time %q", s)
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is earlier than other.
func (d LocalDate) Before(other LocalDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d LocalDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *LocalDate) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String formats t as HH:MM:SS with six fractional digits when the time
// has microsecond precision and nine when it is finer.
func (t LocalTime) String() string {
	base := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	switch {
	case t.Nanosecond == 0:
		return base
	case t.Nanosecond%1000 == 0:
		return base + fmt.Sprintf(".%06d", t.Nanosecond/1000)
	}
	return base + fmt.Sprintf(".%09d", t.Nanosecond)
}

func (t LocalTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *LocalTime) UnmarshalText(data []byte) error {
	parsed, err := ParseTime(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
