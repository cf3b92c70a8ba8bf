package common

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

// DateLayout
const (
	DateFormatYYYYMMDD         = "2006-01-02"
	DateFormatYYYYMMDDWithTime = "2006-01-02T15:04:05"
	DateTimeFormatWithSpace    = "2006-01-02 15:04:05"
	DateFormatMMDDYYYY         = "01/02/2006"
	TimeFormatHHMMAmPm         = "03:04 PM"
)

// TIMEZONE
const (
	TimezoneLima = "America/Lima"
)

var (
	locations   = map[string]*time.Location{}
	locationsMu sync.Mutex
)

// LoadLocation caches time.LoadLocation, an empty name resolves Lima.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = TimezoneLima
	}

	locationsMu.Lock()
	defer locationsMu.Unlock()

	if loc, ok := locations[name]; ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unable to load location %s: %w", name, err)
	}
	locations[name] = loc

	return loc, nil
}

func limaLocation() *time.Location {
	loc, err := LoadLocation(TimezoneLima)
	if err != nil {
		// Lima has no DST, a fixed offset is equivalent.
		return time.FixedZone(TimezoneLima, -5*60*60)
	}
	return loc
}

// FromEpochMillis converts a stored creation/settlement timestamp.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// GetDateAsString formats an epoch millis timestamp as MM/DD/YYYY in Lima time.
func GetDateAsString(ms int64) string {
	return FormatDate(ms, limaLocation())
}

// GetHourAsString formats an epoch millis timestamp as hh:mm AM/PM in Lima time.
func GetHourAsString(ms int64) string {
	return FormatHour(ms, limaLocation())
}

func FormatDate(ms int64, loc *time.Location) string {
	return FromEpochMillis(ms).In(loc).Format(DateFormatMMDDYYYY)
}

func FormatHour(ms int64, loc *time.Location) string {
	return FromEpochMillis(ms).In(loc).Format(TimeFormatHHMMAmPm)
}

// ParseStringToDatetime parses value in the given layout using Lima time.
func ParseStringToDatetime(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, limaLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q for layout %q: %w", value, layout, err)
	}
	return t, nil
}

// ParseDateOrDatetime accepts "2006-01-02", "2006-01-02T15:04:05" or
// "2006-01-02 15:04:05". A plain date used as an end bound is moved to the
// last millisecond of that day.
func ParseDateOrDatetime(value string, endOfDay bool) (time.Time, error) {
	for _, layout := range []string{DateFormatYYYYMMDDWithTime, DateTimeFormatWithSpace} {
		if t, err := ParseStringToDatetime(layout, value); err == nil {
			return t, nil
		}
	}

	t, err := ParseStringToDatetime(DateFormatYYYYMMDD, value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t, nil
}

func Now() time.Time {
	return time.Now().In(limaLocation())
}
