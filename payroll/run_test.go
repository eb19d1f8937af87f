/*
run_test.go - End-to-end payroll run tests over the in-memory store

PURPOSE:
  Exercises the snapshot build, the company and per-driver runs, and
  the week-period helper against the same store the handlers use.
*/
package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetline/payroll-engine/engine"
	"github.com/fleetline/payroll-engine/engine/store"
	"github.com/fleetline/payroll-engine/payroll"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// 2026-01-05 is a Monday.
var weekStart = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func testRate(id engine.RateID, driverID engine.DriverID) engine.PayRate {
	return engine.PayRate{
		ID:                            id,
		CompanyID:                     "acme",
		DriverID:                      driverID,
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

func seedShift(t *testing.T, mem *store.Memory, id string, driverID engine.DriverID, dayOffset int, hours time.Duration) {
	t.Helper()
	arrival := weekStart.AddDate(0, 0, dayOffset).Add(8 * time.Hour)
	sh := engine.Shift{
		ID:          engine.ShiftID(id),
		CompanyID:   "acme",
		DriverID:    driverID,
		DepotID:     "depot-1",
		ArrivalTime: arrival,
	}
	if hours > 0 {
		sh.DepartureTime = arrival.Add(hours)
	}
	require.NoError(t, mem.SaveShift(context.Background(), sh))
}

func newRunnerWithDefault(t *testing.T) (*payroll.Runner, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, mem.SavePayRate(context.Background(), testRate("rate-default", "")))
	return payroll.NewRunner(mem), mem
}

// =============================================================================
// COMPANY RUNS
// =============================================================================

func TestRunCompany_PricesCompletedShiftsInRange(t *testing.T) {
	// GIVEN: Three completed shifts in the week, one outside it, one open
	// WHEN: Running the company for the week
	// THEN: Exactly the three in-range completed shifts are priced

	runner, mem := newRunnerWithDefault(t)
	seedShift(t, mem, "shift-1", "drv-1", 0, 8*time.Hour)
	seedShift(t, mem, "shift-2", "drv-1", 1, 8*time.Hour)
	seedShift(t, mem, "shift-3", "drv-2", 2, 8*time.Hour)
	seedShift(t, mem, "shift-next-week", "drv-1", 8, 8*time.Hour)
	seedShift(t, mem, "shift-open", "drv-2", 3, 0)

	out, err := runner.RunCompany(context.Background(), "acme", weekStart, weekStart.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Len(t, out.Result.Breakdowns, 3)
	assert.Empty(t, out.Result.Skipped)
}

func TestRunCompany_OverrideDriverPricedDifferently(t *testing.T) {
	// GIVEN: Two drivers with identical shifts, one on a higher override
	// WHEN: Running the company
	// THEN: The override driver's total reflects the override base rate

	runner, mem := newRunnerWithDefault(t)
	override := testRate("rate-senior", "drv-senior")
	override.BaseRate = engine.MustParseDecimal("24.00")
	require.NoError(t, mem.SavePayRate(context.Background(), override))

	seedShift(t, mem, "shift-std", "drv-std", 0, 4*time.Hour)
	seedShift(t, mem, "shift-snr", "drv-senior", 0, 4*time.Hour)

	out, err := runner.RunCompany(context.Background(), "acme", weekStart, weekStart.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, out.Result.Breakdowns, 2)

	totals := make(map[engine.DriverID]string)
	for _, wb := range out.Result.Breakdowns {
		totals[wb.DriverID] = wb.TotalPay.StringFixed(2)
	}
	assert.Equal(t, "48.00", totals["drv-std"])
	assert.Equal(t, "96.00", totals["drv-senior"])
}

func TestRunCompany_HolidayFromStoreAppliesPremium(t *testing.T) {
	// GIVEN: Tuesday configured as a bank holiday
	// WHEN: Running a Tuesday shift
	// THEN: The whole shift is priced at the holiday rate

	runner, mem := newRunnerWithDefault(t)
	require.NoError(t, mem.SaveHoliday(context.Background(), engine.BankHoliday{
		ID: "hol-1", CompanyID: "acme", Name: "Depot Day",
		Date: weekStart.AddDate(0, 0, 1),
	}))
	seedShift(t, mem, "shift-hol", "drv-1", 1, 8*time.Hour)

	out, err := runner.RunCompany(context.Background(), "acme", weekStart, weekStart.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, out.Result.Breakdowns, 1)

	wb := out.Result.Breakdowns[0]
	assert.Equal(t, 480, wb.Minutes.BankHoliday)
	assert.Equal(t, "192.00", wb.TotalPay.StringFixed(2))
}

func TestRunCompany_NoDefaultRate_Fails(t *testing.T) {
	// GIVEN: A company with shifts but no rates
	// WHEN: Running payroll
	// THEN: The run fails with ErrNoDefaultRate

	mem := store.NewMemory()
	runner := payroll.NewRunner(mem)
	seedShift(t, mem, "shift-1", "drv-1", 0, 8*time.Hour)

	_, err := runner.RunCompany(context.Background(), "acme", weekStart, weekStart.AddDate(0, 0, 7))
	assert.ErrorIs(t, err, engine.ErrNoDefaultRate)
}

// =============================================================================
// PER-DRIVER RUNS
// =============================================================================

func TestRunDriver_FiltersToOneDriver(t *testing.T) {
	// GIVEN: Shifts for two drivers, including a bad one for each
	// WHEN: Running for one driver
	// THEN: Only that driver's breakdowns and skips are returned

	runner, mem := newRunnerWithDefault(t)
	seedShift(t, mem, "shift-a1", "drv-a", 0, 8*time.Hour)
	seedShift(t, mem, "shift-a2", "drv-a", 1, 8*time.Hour)
	seedShift(t, mem, "shift-b1", "drv-b", 0, 8*time.Hour)

	// drv-a's Wednesday shift is malformed.
	bad := engine.Shift{
		ID: "shift-a-bad", CompanyID: "acme", DriverID: "drv-a", DepotID: "depot-1",
		ArrivalTime:   weekStart.AddDate(0, 0, 2).Add(8 * time.Hour),
		DepartureTime: weekStart.AddDate(0, 0, 2).Add(8 * time.Hour),
	}
	require.NoError(t, mem.SaveShift(context.Background(), bad))

	out, err := runner.RunDriver(context.Background(), "acme", "drv-a", weekStart, weekStart.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Len(t, out.Result.Breakdowns, 2)
	for _, wb := range out.Result.Breakdowns {
		assert.Equal(t, engine.DriverID("drv-a"), wb.DriverID)
	}
	require.Len(t, out.Result.Skipped, 1)
	assert.Equal(t, engine.ShiftID("shift-a-bad"), out.Result.Skipped[0].ShiftID)
}

// =============================================================================
// PERIOD HELPERS
// =============================================================================

func TestPreviousWeek_MondayToMondayHalfOpen(t *testing.T) {
	// GIVEN: Various days of the week
	// WHEN: Computing the previous week
	// THEN: Always the most recent complete Monday-to-Monday range

	cases := []struct {
		name string
		now  time.Time
		from time.Time
	}{
		{"a wednesday", time.Date(2026, time.January, 14, 15, 30, 0, 0, time.UTC), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"a monday", time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"a sunday", time.Date(2026, time.January, 11, 23, 59, 0, 0, time.UTC), time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			from, to := payroll.PreviousWeek(tc.now)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.from.AddDate(0, 0, 7), to)
		})
	}
}
