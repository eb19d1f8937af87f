/*
bucket.go - Shift minute classification

PURPOSE:
  Partitions a completed shift's worked minutes into the five mutually
  exclusive pay categories: overtime, bank-holiday, weekend, night,
  regular. Every worked minute lands in exactly one bucket.

ALGORITHM:
  1. Split the shift into per-calendar-day segments at midnight.
     Weekend/holiday status and the daily overtime threshold are
     per-day properties, so a midnight-spanning shift is decomposed
     before anything else.
  2. Per day-segment, minutes beyond the daily overtime threshold are
     overtime regardless of any other category. The overtime minutes
     are the chronological tail of the segment.
  3. The remaining (pre-threshold) minutes classify by fixed priority:
       bank holiday > weekend > night > regular
     Holiday and weekend are whole-day properties; night is the overlap
     of the segment's clock interval with the configured night window.

PRIORITY:
  The full order is overtime > bank-holiday > weekend > night > regular,
  each minute assigned to the first matching category. A Saturday minute
  inside the night window is weekend, not night.

SEE ALSO:
  - time.go: Day segmentation and night-window overlap
  - wage.go: Pricing of the resulting buckets
*/
package engine

// BucketShift classifies a completed shift's minutes against the given
// rate's night window and daily overtime threshold, and the company's
// holiday calendar. Returns InvalidShiftError for open shifts and
// shifts whose departure is not after arrival.
func BucketShift(shift Shift, rate PayRate, holidays HolidayCalendar) (MinuteBuckets, error) {
	if !shift.Completed() {
		return MinuteBuckets{}, &InvalidShiftError{ShiftID: shift.ID, Reason: "shift is still open"}
	}
	if !shift.DepartureTime.After(shift.ArrivalTime) {
		return MinuteBuckets{}, &InvalidShiftError{ShiftID: shift.ID, Reason: "departure not after arrival"}
	}
	if shift.TotalMinutes() <= 0 {
		return MinuteBuckets{}, &InvalidShiftError{ShiftID: shift.ID, Reason: "zero worked minutes"}
	}
	if holidays == nil {
		holidays = NoHolidays{}
	}

	// Same minute grid as TotalMinutes: endpoints snap down to the
	// whole minute before segmentation.
	arrival, departure := shift.MinuteBounds()

	var b MinuteBuckets
	for _, seg := range SplitDays(arrival, departure) {
		worked := seg.Minutes()

		overtime := 0
		if t := rate.DailyOvertimeThresholdMinutes; t > 0 && worked > t {
			overtime = worked - t
		}
		b.Overtime += overtime

		// Pre-threshold minutes: the chronological head of the segment.
		baseEnd := seg.EndMin - overtime
		base := baseEnd - seg.StartMin
		if base <= 0 {
			continue
		}

		switch {
		case holidays.IsHoliday(seg.Day):
			b.BankHoliday += base
		case IsWeekend(seg.Day):
			b.Weekend += base
		default:
			night := NightOverlap(seg.StartMin, baseEnd, rate.NightStartHour, rate.NightEndHour)
			b.Night += night
			b.Regular += base - night
		}
	}
	return b, nil
}
