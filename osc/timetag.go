package osc

import (
	"encoding/binary"
	"math"
	"time"
)

// TimetagImmediate is the special time tag value, consisting of 63 zero bits
// followed by a one, meaning "immediately".
const TimetagImmediate = Timetag(1)

// Timetag represents an OSC Time Tag.
// An OSC Time Tag is defined as follows:
// Time tags are represented by a 64 bit fixed point number. The first 32 bits
// specify the number of seconds since midnight on January 1, 1900, and the
// last 32 bits specify fractional parts of a second to a precision of about
// 200 picoseconds. This is the representation used by Internet NTP timestamps.
type Timetag uint64

// NewTimetag returns a new OSC time tag for the current time.
func NewTimetag() Timetag {
	return NewTimetagFromTime(time.Now())
}

// NewImmediateTimetag returns the "immediately" time tag.
func NewImmediateTimetag() Timetag {
	return TimetagImmediate
}

// NewTimetagFromTime returns a new OSC time tag from a time.Time.
// The conversion is lossy, the fractional part has a precision of about 200
// picoseconds.
func NewTimetagFromTime(timeStamp time.Time) Timetag {
	return Timetag(timeToTimetag(timeStamp))
}

// Time returns the time.
func (t Timetag) Time() time.Time {
	return timetagToTime(t)
}

// FractionalSecond returns the last 32 bits of the OSC time tag. Specifies
// the fractional part of a second.
func (t Timetag) FractionalSecond() uint32 {
	return uint32(t)
}

// SecondsSinceEpoch returns the first 32 bits (the number of seconds since
// midnight 1900) from the OSC time tag.
func (t Timetag) SecondsSinceEpoch() uint32 {
	return uint32(t >> 32)
}

// TimeTag returns the time tag value.
func (t Timetag) TimeTag() uint64 {
	return uint64(t)
}

// MarshalBinary converts the OSC time tag to a byte array.
func (t Timetag) MarshalBinary() (b []byte, err error) {
	b = make([]byte, bit64Size)
	binary.BigEndian.PutUint64(b, uint64(t))
	return
}

// SetTime sets the value of the OSC time tag.
func (t *Timetag) SetTime(time time.Time) {
	*t = Timetag(timeToTimetag(time))
}

// ExpiresIn calculates the duration until the current time is the same as
// the value of the time tag. It returns zero if the value of the time tag is
// in the past or means "immediately".
func (t Timetag) ExpiresIn() time.Duration {
	if t <= TimetagImmediate {
		return 0
	}

	d := timetagToTime(t).Sub(time.Now())
	if d <= 0 {
		return 0
	}

	return d
}

// String implements the fmt.Stringer interface.
func (t Timetag) String() string {
	return timetagToTime(t).UTC().Format(time.RFC3339Nano)
}

// timeToTimetag converts the given time to an OSC time tag. The fractional
// part holds the sub-second remainder scaled to 1/2^32 second units.
func timeToTimetag(t time.Time) uint64 {
	seconds := uint64(secondsFrom1900To1970 + t.Unix())
	fractional := uint64(math.Round(float64(t.Nanosecond()) * (1 << 32) / 1e9))
	return seconds<<32 + fractional
}

// timetagToTime converts the given timetag to a time object.
func timetagToTime(timetag Timetag) time.Time {
	nanos := math.Round(float64(uint32(timetag)) / (1 << 32) * 1e9)
	return time.Unix(int64(timetag>>32)-secondsFrom1900To1970, int64(nanos))
}
