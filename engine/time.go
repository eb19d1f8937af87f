package engine

import (
	"time"
)

// =============================================================================
// CALENDAR DAYS - Shift decomposition and day classification
// =============================================================================

const minutesPerDay = 24 * 60

// DaySegment is the part of a shift that falls on one calendar day.
// StartMin/EndMin are minutes-of-day in [0, 1440], half-open interval.
type DaySegment struct {
	Day      time.Time // midnight of the calendar day, shift's location
	StartMin int
	EndMin   int
}

// Minutes is the worked minutes within this day.
func (s DaySegment) Minutes() int { return s.EndMin - s.StartMin }

// SplitDays decomposes [arrival, departure) into per-calendar-day
// segments. Weekend/holiday status and the daily overtime threshold are
// evaluated per calendar day, so a midnight-spanning shift must be split
// before classification.
func SplitDays(arrival, departure time.Time) []DaySegment {
	var segs []DaySegment
	day := startOfDay(arrival)
	for day.Before(departure) {
		next := day.AddDate(0, 0, 1)

		start := 0
		if arrival.After(day) {
			start = minutesIntoDay(day, arrival)
		}
		end := minutesPerDay
		if departure.Before(next) {
			end = minutesIntoDay(day, departure)
		}
		if end > start {
			segs = append(segs, DaySegment{Day: day, StartMin: start, EndMin: end})
		}
		day = next
	}
	return segs
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minutesIntoDay measures t relative to the given midnight. Computed via
// Sub so DST transitions cannot desynchronize the clock arithmetic.
func minutesIntoDay(midnight, t time.Time) int {
	m := int(t.Sub(midnight) / time.Minute)
	if m < 0 {
		return 0
	}
	if m > minutesPerDay {
		return minutesPerDay
	}
	return m
}

// IsWeekend reports whether the day is Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// =============================================================================
// NIGHT WINDOW - Clock-hour window, possibly wrapping past midnight
// =============================================================================

// NightOverlap returns how many minutes of [startMin, endMin) fall within
// the night window [nightStart, nightEnd) expressed in clock hours.
// When nightStart > nightEnd the window wraps: 22 -> 6 covers
// 22:00-23:59 and 00:00-05:59. Equal hours mean no night window.
func NightOverlap(startMin, endMin, nightStart, nightEnd int) int {
	if nightStart == nightEnd {
		return 0
	}
	ns, ne := nightStart*60, nightEnd*60
	if nightStart < nightEnd {
		return overlap(startMin, endMin, ns, ne)
	}
	// Wrapping window, two arcs within the day.
	return overlap(startMin, endMin, ns, minutesPerDay) + overlap(startMin, endMin, 0, ne)
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

// =============================================================================
// BANK HOLIDAYS - Company-configured premium dates
// =============================================================================

// BankHoliday is a company-configured date on which the premium
// bank-holiday rate applies regardless of weekday.
type BankHoliday struct {
	ID        HolidayID
	CompanyID CompanyID
	Name      string
	Date      time.Time // calendar day, no time component
	Recurring bool      // true = same month/day every year
}

// HolidayCalendar answers day-level holiday lookups for one company.
// Payroll runs build an immutable snapshot per company (HolidaySet) and
// share it across all shifts in the run.
type HolidayCalendar interface {
	// IsHoliday checks if the calendar day is a bank holiday.
	IsHoliday(day time.Time) bool
}

// NoHolidays is a no-op calendar for companies without configured holidays.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(time.Time) bool { return false }

// HolidaySet is an in-memory HolidayCalendar built from a company's
// holiday rows. Safe for concurrent use once built.
type HolidaySet struct {
	exact     map[string]struct{} // "2006-01-02"
	recurring map[string]int      // "01-02" -> first year it applies
}

// NewHolidaySet builds a snapshot calendar from holiday rows.
func NewHolidaySet(holidays []BankHoliday) *HolidaySet {
	hs := &HolidaySet{
		exact:     make(map[string]struct{}, len(holidays)),
		recurring: make(map[string]int),
	}
	for _, h := range holidays {
		if h.Recurring {
			key := h.Date.Format("01-02")
			if year, ok := hs.recurring[key]; !ok || h.Date.Year() < year {
				hs.recurring[key] = h.Date.Year()
			}
			continue
		}
		hs.exact[h.Date.Format("2006-01-02")] = struct{}{}
	}
	return hs
}

// IsHoliday reports whether the day matches an exact holiday, or a
// recurring one in the same or a later year.
func (hs *HolidaySet) IsHoliday(day time.Time) bool {
	if _, ok := hs.exact[day.Format("2006-01-02")]; ok {
		return true
	}
	year, ok := hs.recurring[day.Format("01-02")]
	return ok && day.Year() >= year
}
