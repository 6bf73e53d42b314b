package format

import "time"

// Date is a day count since the Unix epoch (UTC): i32 days since epoch.
type Date int32

// DateFromTime floors t (assumed UTC) to a whole day count since epoch.
// Floor, not truncation: an instant before the epoch still belongs to the
// day it falls in, so 1969-12-31T23:00:00Z is day -1, not day 0.
func DateFromTime(t time.Time) Date {
	secs := t.UTC().Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}

	return Date(days)
}

// Time expands the day count back to a UTC midnight time.Time.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// DateTime is a microsecond count since the Unix epoch (UTC): i64
// microseconds since epoch.
//
// OMF2 bounds the valid range only as "approximately ±262,000 years CE";
// this module resolves that as the full int64 microsecond range, since
// anything outside it cannot round-trip.
type DateTime int64

// DateTimeFromTime converts t (assumed UTC) to microseconds since epoch.
func DateTimeFromTime(t time.Time) DateTime {
	return DateTime(t.UTC().UnixMicro())
}

// Time expands the microsecond count back to a UTC time.Time.
func (dt DateTime) Time() time.Time {
	return time.UnixMicro(int64(dt)).UTC()
}
