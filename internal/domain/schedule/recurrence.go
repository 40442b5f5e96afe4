// Package schedule holds the pure scheduling calculus of the PM engine:
// recurrence computation and compliance classification. Nothing here performs
// I/O, and every function is safe for unsynchronized concurrent use.
package schedule

import (
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
)

// NextDueDate computes the next due date after anchor for the given
// frequency:
//
//	daily     anchor + 1 day
//	weekly    anchor + 7 days
//	monthly   anchor's month + 1, day clamped to the target month's length
//	quarterly anchor's month + 3, same clamping
//	annual    anchor's year + 1, Feb 29 falling back to Feb 28
//
// Clamping means a month-end anchor never overflows into the following month:
// Jan 31 + monthly is Feb 28 (Feb 29 in a leap year), never Mar 3. An unknown
// frequency yields an ErrCodeInvalidFrequency error, never a silent default.
func NextDueDate(anchor time.Time, frequency template.FrequencyUnit) (time.Time, error) {
	switch frequency {
	case template.FrequencyDaily:
		return anchor.AddDate(0, 0, 1), nil
	case template.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7), nil
	case template.FrequencyMonthly:
		return addMonthsClamped(anchor, 1), nil
	case template.FrequencyQuarterly:
		return addMonthsClamped(anchor, 3), nil
	case template.FrequencyAnnual:
		return addYearsClamped(anchor, 1), nil
	default:
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidFrequency, "unknown frequency unit %q", string(frequency))
	}
}

// addMonthsClamped advances t by months, clamping the day-of-month to the
// last valid day of the target month. time.AddDate is deliberately avoided
// here because it normalizes overflow (Jan 31 + 1 month = Mar 3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())

	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addYearsClamped advances t by years with the same day clamp, which only
// ever matters for Feb 29 anchors landing in non-leap years.
func addYearsClamped(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	if last := daysIn(year+years, month, t.Location()); day > last {
		day = last
	}
	return time.Date(year+years, month, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
