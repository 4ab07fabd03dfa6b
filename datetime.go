// Copyright (c) 2025 The goturso authors. All right reserved.

package goturso

import (
	"time"

	"github.com/goturso/goturso/tzoffset"
)

// sqliteDatetimeFormat is SQLite's canonical datetime text layout,
// YYYY-MM-DD HH:MM:SS.
const sqliteDatetimeFormat = "2006-01-02 15:04:05"

// isDatetime reports whether s is exactly a canonical datetime string. The
// round trip through time.Parse rejects values that merely resemble one,
// such as out-of-range days or unpadded fields.
func isDatetime(s string) bool {
	if len(s) != len(sqliteDatetimeFormat) {
		return false
	}
	t, err := time.Parse(sqliteDatetimeFormat, s)
	return err == nil && t.Format(sqliteDatetimeFormat) == s
}

// localizeDatetime converts a UTC-assumed datetime string into the given
// location and returns it in the same layout.
func localizeDatetime(s string, loc *time.Location) string {
	t, err := time.ParseInLocation(sqliteDatetimeFormat, s, time.UTC)
	if err != nil {
		return s
	}
	return t.In(loc).Format(sqliteDatetimeFormat)
}

// loadLocation resolves a configured timezone name, defaulting to UTC. The
// name may be an IANA zone such as America/Los_Angeles or a fixed offset
// such as +0530.
func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == defaultTimezone {
		return time.UTC, nil
	}
	if name[0] == '+' || name[0] == '-' {
		loc, err := tzoffset.WithOffsetString(name)
		if err != nil {
			return nil, &TursoError{
				Number:      ErrCodeUnknownTimezone,
				Message:     errMsgUnknownTimezone,
				MessageArgs: []interface{}{name},
			}
		}
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &TursoError{
			Number:      ErrCodeUnknownTimezone,
			Message:     errMsgUnknownTimezone,
			MessageArgs: []interface{}{name},
		}
	}
	return loc, nil
}
