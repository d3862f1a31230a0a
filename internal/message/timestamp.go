package message

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	dayLayout        = "02.01.2006"
	localLayout      = "2006-01-02T15:04:05"
	zonedLayout      = "2006-01-02T15:04:05Z07:00"
	fractionSubmatch = 1
	timezoneSubmatch = 2
	endOfDayHour     = "24"
)

// Lexical form of xs:dateTime restricted to four digit years.
var dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)

// ParseTimestamp parses an xs:dateTime value. Surrounding whitespace is
// ignored; a value without a zone designator is read as UTC. 24:00:00 is the
// first instant of the following day.
func ParseTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)

	m := dateTimePattern.FindStringSubmatch(v)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid dateTime %q", value)
	}

	layout := localLayout
	if m[timezoneSubmatch] != "" {
		layout = zonedLayout
	}

	endOfDay := v[11:13] == endOfDayHour
	if endOfDay {
		if v[14:19] != "00:00" || strings.Trim(m[fractionSubmatch], ".0") != "" {
			return time.Time{}, fmt.Errorf("invalid dateTime %q: hour 24 allows only 24:00:00", value)
		}
		v = v[:11] + "00" + v[13:]
	}

	ts, err := time.Parse(layout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dateTime %q: %w", value, err)
	}
	if endOfDay {
		ts = ts.AddDate(0, 0, 1)
	}
	return ts, nil
}

// NormalizeDay reduces ts to the calendar date written in it, discarding
// time of day and zone.
func NormalizeDay(ts time.Time) string {
	return ts.Format(dayLayout)
}
