/*
bucket_test.go - Classification tests for the minute bucketer

PURPOSE:
  These tests pin the classification rules down as executable behavior:
  every worked minute lands in exactly one bucket, overtime is the
  chronological tail of each day, and the priority order is
  bank holiday > weekend > night > regular.

READING THESE TESTS:
  Each test has:
  - A descriptive name that states the behavior
  - GIVEN/WHEN/THEN comments explaining the scenario
  - Clear assertions with explanatory messages
*/
package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetline/payroll-engine/engine"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

// standardRate: base 12, night 15, weekend 18, holiday 24, overtime
// x1.5, night window 22:00-06:00, daily overtime after 8 hours.
func standardRate() engine.PayRate {
	return engine.PayRate{
		ID:                            "rate-default",
		CompanyID:                     "acme",
		BaseRate:                      engine.MustParseDecimal("12.00"),
		NightRate:                     engine.MustParseDecimal("15.00"),
		WeekendRate:                   engine.MustParseDecimal("18.00"),
		BankHolidayRate:               engine.MustParseDecimal("24.00"),
		OvertimeMultiplier:            engine.MustParseDecimal("1.5"),
		NightStartHour:                22,
		NightEndHour:                  6,
		DailyOvertimeThresholdMinutes: 480,
		Active:                        true,
	}
}

// 2026-01-05 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2026, time.January, 5, hour, min, 0, 0, time.UTC)
}

func saturday(hour, min int) time.Time {
	return time.Date(2026, time.January, 10, hour, min, 0, 0, time.UTC)
}

func shiftBetween(arrival, departure time.Time) engine.Shift {
	return engine.Shift{
		ID:            "shift-1",
		CompanyID:     "acme",
		DriverID:      "drv-1",
		DepotID:       "depot-1",
		ArrivalTime:   arrival,
		DepartureTime: departure,
	}
}

// =============================================================================
// BASIC CLASSIFICATION
// =============================================================================

func TestBucketShift_WeekdayUnderThreshold_AllRegular(t *testing.T) {
	// GIVEN: A Monday shift 09:00-17:00 (480 minutes, at the threshold)
	// WHEN: Bucketing
	// THEN: All minutes are regular, no overtime

	sh := shiftBetween(monday(9, 0), monday(17, 0))

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 480, b.Regular)
	assert.Zero(t, b.Overtime, "no overtime at or under the threshold")
	assert.Zero(t, b.Night)
	assert.Zero(t, b.Weekend)
	assert.Zero(t, b.BankHoliday)
}

func TestBucketShift_EveryMinuteLandsInExactlyOneBucket(t *testing.T) {
	// GIVEN: Shifts of varying shape (day, overnight, weekend, long)
	// WHEN: Bucketing each
	// THEN: Bucket totals always equal the shift's worked minutes

	shifts := []engine.Shift{
		shiftBetween(monday(8, 0), monday(17, 30)),
		shiftBetween(monday(22, 0), monday(22, 0).Add(8*time.Hour)),
		shiftBetween(saturday(6, 15), saturday(19, 45)),
		shiftBetween(monday(4, 0), monday(23, 59)),
	}

	for _, sh := range shifts {
		b, err := engine.BucketShift(sh, standardRate(), nil)
		require.NoError(t, err)
		assert.Equal(t, sh.TotalMinutes(), b.Total(),
			"bucket totals must account for every worked minute")
	}
}

func TestBucketShift_SecondGranularityTimestamps_ShareMinuteGrid(t *testing.T) {
	// GIVEN: A shift whose captured timestamps carry seconds
	//        (08:00:30 - 09:00:10, 59m40s on the wall clock)
	// WHEN: Bucketing
	// THEN: Both endpoints snap down to the whole minute, so the bucket
	//       total and TotalMinutes agree at 60

	sh := shiftBetween(
		monday(8, 0).Add(30*time.Second),
		monday(9, 0).Add(10*time.Second),
	)

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 60, sh.TotalMinutes())
	assert.Equal(t, 60, b.Regular)
	assert.Equal(t, sh.TotalMinutes(), b.Total(),
		"seconds in timestamps must never desynchronize buckets from the total")
}

func TestBucketShift_SubMinuteShift_Invalid(t *testing.T) {
	// GIVEN: A shift shorter than one whole minute on the grid
	// WHEN: Bucketing
	// THEN: Rejected as invalid, not silently priced at zero

	sh := shiftBetween(
		monday(8, 0).Add(10*time.Second),
		monday(8, 0).Add(50*time.Second),
	)

	_, err := engine.BucketShift(sh, standardRate(), nil)

	var invalid *engine.InvalidShiftError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, engine.ShiftID("shift-1"), invalid.ShiftID)
}

// =============================================================================
// OVERTIME - Chronological tail per calendar day
// =============================================================================

func TestBucketShift_OvertimeIsChronologicalTail(t *testing.T) {
	// GIVEN: Monday 08:00-17:30 (570 minutes, threshold 480)
	// WHEN: Bucketing
	// THEN: 480 regular + 90 overtime; the overtime is the tail
	//       16:00-17:30, which is outside the night window

	sh := shiftBetween(monday(8, 0), monday(17, 30))

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 480, b.Regular)
	assert.Equal(t, 90, b.Overtime)
	assert.Zero(t, b.Night)
}

func TestBucketShift_ZeroThresholdDisablesOvertime(t *testing.T) {
	// GIVEN: A 12-hour Monday shift and a rate with threshold 0
	// WHEN: Bucketing
	// THEN: No overtime at all

	rate := standardRate()
	rate.DailyOvertimeThresholdMinutes = 0

	sh := shiftBetween(monday(6, 0), monday(18, 0))

	b, err := engine.BucketShift(sh, rate, nil)
	require.NoError(t, err)

	assert.Zero(t, b.Overtime, "threshold zero disables daily overtime")
	assert.Equal(t, 720, b.Regular)
}

func TestBucketShift_ThresholdResetsAtMidnight(t *testing.T) {
	// GIVEN: Monday 14:00 - Tuesday 04:00 (840 minutes total) with the
	//        night window disabled to isolate the overtime rule
	// WHEN: Bucketing
	// THEN: Each calendar day is measured against the threshold on its
	//       own: Monday's 600 minutes yield 120 overtime, Tuesday's 240
	//       minutes yield none

	rate := standardRate()
	rate.NightStartHour = 0
	rate.NightEndHour = 0

	sh := shiftBetween(monday(14, 0), monday(14, 0).Add(14*time.Hour))

	b, err := engine.BucketShift(sh, rate, nil)
	require.NoError(t, err)

	assert.Equal(t, 120, b.Overtime, "only Monday exceeds the daily threshold")
	assert.Equal(t, 720, b.Regular)
}

// =============================================================================
// NIGHT WINDOW
// =============================================================================

func TestBucketShift_OvernightShift_AllNight(t *testing.T) {
	// GIVEN: Monday 22:00 - Tuesday 06:00 (the exact night window)
	// WHEN: Bucketing
	// THEN: All 480 minutes are night; neither day-segment exceeds the
	//       daily threshold, so no overtime

	sh := shiftBetween(monday(22, 0), monday(22, 0).Add(8*time.Hour))

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 480, b.Night)
	assert.Zero(t, b.Regular)
	assert.Zero(t, b.Overtime, "midnight split keeps each day under the threshold")
}

func TestBucketShift_EveningShift_SplitsAtNightWindowStart(t *testing.T) {
	// GIVEN: Monday 20:00-23:30
	// WHEN: Bucketing
	// THEN: 120 regular (20:00-22:00) + 90 night (22:00-23:30)

	sh := shiftBetween(monday(20, 0), monday(23, 30))

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 120, b.Regular)
	assert.Equal(t, 90, b.Night)
}

func TestBucketShift_EqualNightHours_NoNightWindow(t *testing.T) {
	// GIVEN: A rate whose night window start equals its end
	// WHEN: Bucketing a 02:00-05:00 shift
	// THEN: No night minutes; an equal window means none at all, not
	//       the whole day

	rate := standardRate()
	rate.NightStartHour = 22
	rate.NightEndHour = 22

	sh := shiftBetween(monday(2, 0), monday(5, 0))

	b, err := engine.BucketShift(sh, rate, nil)
	require.NoError(t, err)

	assert.Zero(t, b.Night)
	assert.Equal(t, 180, b.Regular)
}

func TestBucketShift_NonWrappingNightWindow(t *testing.T) {
	// GIVEN: An early-morning window 00:00-06:00 (start < end)
	// WHEN: Bucketing Monday 04:00-08:00
	// THEN: 120 night (04:00-06:00) + 120 regular

	rate := standardRate()
	rate.NightStartHour = 0
	rate.NightEndHour = 6

	sh := shiftBetween(monday(4, 0), monday(8, 0))

	b, err := engine.BucketShift(sh, rate, nil)
	require.NoError(t, err)

	assert.Equal(t, 120, b.Night)
	assert.Equal(t, 120, b.Regular)
}

// =============================================================================
// PRIORITY - bank holiday > weekend > night > regular
// =============================================================================

func TestBucketShift_WeekendBeatsNight(t *testing.T) {
	// GIVEN: Saturday 20:00-23:00, partly inside the night window
	// WHEN: Bucketing
	// THEN: All 180 minutes are weekend, none night

	sh := shiftBetween(saturday(20, 0), saturday(23, 0))

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 180, b.Weekend)
	assert.Zero(t, b.Night, "weekend outranks night for the same minute")
}

func TestBucketShift_HolidayBeatsWeekend(t *testing.T) {
	// GIVEN: A Saturday that is also a configured bank holiday
	// WHEN: Bucketing a 09:00-15:00 shift
	// THEN: All 360 minutes are bank holiday, none weekend

	holidays := engine.NewHolidaySet([]engine.BankHoliday{{
		ID:        "hol-1",
		CompanyID: "acme",
		Name:      "Depot Day",
		Date:      time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
	}})

	sh := shiftBetween(saturday(9, 0), saturday(15, 0))

	b, err := engine.BucketShift(sh, standardRate(), holidays)
	require.NoError(t, err)

	assert.Equal(t, 360, b.BankHoliday)
	assert.Zero(t, b.Weekend, "bank holiday outranks weekend for the same minute")
}

func TestBucketShift_OvertimeBeatsHoliday(t *testing.T) {
	// GIVEN: A 10-hour shift on a bank holiday (threshold 8 hours)
	// WHEN: Bucketing
	// THEN: The tail 120 minutes are overtime even though the whole day
	//       is a holiday

	holidays := engine.NewHolidaySet([]engine.BankHoliday{{
		ID:        "hol-1",
		CompanyID: "acme",
		Name:      "New Year's Day",
		Date:      time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
	}})

	sh := shiftBetween(monday(8, 0), monday(18, 0))

	b, err := engine.BucketShift(sh, standardRate(), holidays)
	require.NoError(t, err)

	assert.Equal(t, 120, b.Overtime, "overtime outranks every other category")
	assert.Equal(t, 480, b.BankHoliday)
}

func TestBucketShift_OvernightFridayToSaturday_SplitsByDay(t *testing.T) {
	// GIVEN: Friday 22:00 - Saturday 06:00
	// WHEN: Bucketing
	// THEN: The Friday half (120 min) is night, the Saturday half
	//       (360 min) is weekend

	friday := time.Date(2026, time.January, 9, 22, 0, 0, 0, time.UTC)
	sh := shiftBetween(friday, friday.Add(8*time.Hour))

	b, err := engine.BucketShift(sh, standardRate(), nil)
	require.NoError(t, err)

	assert.Equal(t, 120, b.Night)
	assert.Equal(t, 360, b.Weekend)
}

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

func TestHolidaySet_RecurringHoliday_AppliesFromFirstYearOnward(t *testing.T) {
	// GIVEN: Christmas 2025 configured as recurring
	// THEN: It matches 2025 and 2026, but not 2024

	hs := engine.NewHolidaySet([]engine.BankHoliday{{
		ID:        "hol-xmas",
		CompanyID: "acme",
		Name:      "Christmas Day",
		Date:      time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC),
		Recurring: true,
	}})

	assert.True(t, hs.IsHoliday(time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)))
	assert.True(t, hs.IsHoliday(time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, hs.IsHoliday(time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)),
		"recurring holidays do not apply before their first year")
}

func TestHolidaySet_ExactHoliday_SingleDateOnly(t *testing.T) {
	// GIVEN: A one-off holiday in 2026
	// THEN: It matches that date only

	hs := engine.NewHolidaySet([]engine.BankHoliday{{
		ID:        "hol-1",
		CompanyID: "acme",
		Name:      "Depot Anniversary",
		Date:      time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
	}})

	assert.True(t, hs.IsHoliday(time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, hs.IsHoliday(time.Date(2027, time.March, 3, 0, 0, 0, 0, time.UTC)))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestBucketShift_OpenShift_Rejected(t *testing.T) {
	// GIVEN: A shift with no departure time
	// WHEN: Bucketing
	// THEN: InvalidShiftError

	sh := engine.Shift{ID: "shift-open", CompanyID: "acme", DriverID: "drv-1", ArrivalTime: monday(8, 0)}

	_, err := engine.BucketShift(sh, standardRate(), nil)

	require.Error(t, err)
	var ise *engine.InvalidShiftError
	assert.ErrorAs(t, err, &ise)
	assert.True(t, engine.IsSkippable(err), "a bad shift is skippable, not fatal")
}

func TestBucketShift_DepartureBeforeArrival_Rejected(t *testing.T) {
	// GIVEN: A shift whose departure precedes its arrival
	// WHEN: Bucketing
	// THEN: InvalidShiftError

	sh := shiftBetween(monday(17, 0), monday(9, 0))

	_, err := engine.BucketShift(sh, standardRate(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidShift)
}
