// Package tzoffset resolves fixed-offset timezone names for the goturso
// driver.
//
// Copyright (c) 2025 The goturso authors. All right reserved.
package tzoffset

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	// ErrInvalidOffsetStr is an error code for the case where an offset string
	// is invalid. The input string must consist of sHHMI where one sign
	// character '+'/'-' is followed by zero filled hours and minutes
	ErrInvalidOffsetStr = 268000

	errMsgInvalidOffsetStr = "offset must be a string consist of sHHMI where one sign character '+'/'-' followed by zero filled hours and minutes: %v"
)

// OffsetError is an error type for invalid offset strings. It is defined
// locally so this package carries no dependency on the driver package.
type OffsetError struct {
	Number      int
	Message     string
	MessageArgs []interface{}
}

func (oe *OffsetError) Error() string {
	message := oe.Message
	if len(oe.MessageArgs) > 0 {
		message = fmt.Sprintf(oe.Message, oe.MessageArgs...)
	}
	return fmt.Sprintf("%06d: %s", oe.Number, message)
}

var timezones map[int]*time.Location
var updateTimezoneMutex *sync.Mutex

// WithOffset returns an offset (minutes) based Location object.
func WithOffset(offset int) *time.Location {
	updateTimezoneMutex.Lock()
	defer updateTimezoneMutex.Unlock()
	loc := timezones[offset]
	if loc != nil {
		return loc
	}
	loc = genTimezone(offset)
	timezones[offset] = loc
	return loc
}

// WithOffsetString returns an offset based Location object. The offset string
// must consist of sHHMI where one sign character '+'/'-' is followed by zero
// filled hours and minutes
func WithOffsetString(offsets string) (loc *time.Location, err error) {
	if len(offsets) != 5 {
		return nil, &OffsetError{
			Number:      ErrInvalidOffsetStr,
			Message:     errMsgInvalidOffsetStr,
			MessageArgs: []interface{}{offsets},
		}
	}
	if offsets[0] != '-' && offsets[0] != '+' {
		return nil, &OffsetError{
			Number:      ErrInvalidOffsetStr,
			Message:     errMsgInvalidOffsetStr,
			MessageArgs: []interface{}{offsets},
		}
	}
	s := 1
	if offsets[0] == '-' {
		s = -1
	}
	var h, m int64
	h, err = strconv.ParseInt(offsets[1:3], 10, 64)
	if err != nil {
		return
	}
	m, err = strconv.ParseInt(offsets[3:], 10, 64)
	if err != nil {
		return
	}
	offset := s * (int(h)*60 + int(m))
	loc = WithOffset(offset)
	return
}

func genTimezone(offset int) *time.Location {
	var offsetSign string
	var toffset int
	if offset < 0 {
		offsetSign = "-"
		toffset = -offset
	} else {
		offsetSign = "+"
		toffset = offset
	}
	return time.FixedZone(fmt.Sprintf("%v%02d%02d", offsetSign, toffset/60, toffset%60), int(offset)*60)
}

func init() {
	updateTimezoneMutex = &sync.Mutex{}
	timezones = make(map[int]*time.Location, 48)
	// pre-generate all common timezones
	for i := -720; i <= 720; i += 30 {
		timezones[i] = genTimezone(i)
	}
}
