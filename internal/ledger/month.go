package ledger

import (
	"fmt"
	"time"
)

// Month identifies one calendar month of one owner's ledger. The zero value
// is not a valid month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing the given calendar date.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following month, wrapping December into January.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev returns the preceding month, wrapping January into December.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// FirstDay returns the first calendar day of the month as a UTC date.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Bounds returns the half-open date interval [start, end) covering the month.
func (m Month) Bounds() (time.Time, time.Time) {
	return m.FirstDay(), m.Next().FirstDay()
}

// Contains reports whether the given date falls inside the month. Only the
// calendar date matters, never the time-of-day or zone offset.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
