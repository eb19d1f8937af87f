/*
sqlite_test.go - Persistence tests over an in-memory database

PURPOSE:
  Pins the store-level invariants the schema enforces: one active
  default per company, one active override per driver, protected
  defaults, and the completed-shift range query.
*/
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetline/payroll-engine/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

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

// =============================================================================
// PAY RATE INVARIANTS
// =============================================================================

func TestSavePayRate_RoundTripsDecimals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePayRate(ctx, testRate("rate-1", "")))

	got, err := store.GetPayRate(ctx, "rate-1")
	require.NoError(t, err)
	assert.True(t, got.BaseRate.Equal(engine.MustParseDecimal("12.00")))
	assert.True(t, got.OvertimeMultiplier.Equal(engine.MustParseDecimal("1.5")))
	assert.True(t, got.IsDefault())
}

func TestSavePayRate_SecondActiveDefault_UniqueIndexRejects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePayRate(ctx, testRate("rate-1", "")))

	err := store.SavePayRate(ctx, testRate("rate-2", ""))
	assert.ErrorIs(t, err, engine.ErrDuplicateActiveRate)
}

func TestSavePayRate_SecondActiveOverrideSameDriver_Rejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePayRate(ctx, testRate("rate-1", "drv-1")))

	err := store.SavePayRate(ctx, testRate("rate-2", "drv-1"))
	assert.ErrorIs(t, err, engine.ErrDuplicateActiveRate)

	// A different driver's override is fine.
	assert.NoError(t, store.SavePayRate(ctx, testRate("rate-3", "drv-2")))
}

func TestSavePayRate_EditInPlace_Allowed(t *testing.T) {
	// GIVEN: An existing active default
	// WHEN: Saving the same ID with a new base rate
	// THEN: The row updates; the unique index does not fire against itself

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePayRate(ctx, testRate("rate-1", "")))

	edited := testRate("rate-1", "")
	edited.BaseRate = engine.MustParseDecimal("13.50")
	require.NoError(t, store.SavePayRate(ctx, edited))

	got, err := store.GetPayRate(ctx, "rate-1")
	require.NoError(t, err)
	assert.Equal(t, "13.50", got.BaseRate.StringFixed(2))
}

func TestDeletePayRate_DefaultProtected_OverrideAllowed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePayRate(ctx, testRate("rate-default", "")))
	require.NoError(t, store.SavePayRate(ctx, testRate("rate-override", "drv-1")))

	assert.ErrorIs(t, store.DeletePayRate(ctx, "rate-default"), engine.ErrDefaultRateProtected)
	assert.NoError(t, store.DeletePayRate(ctx, "rate-override"))

	_, err := store.GetPayRate(ctx, "rate-override")
	assert.ErrorIs(t, err, engine.ErrRateNotFound)
}

func TestListPayRates_DefaultFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePayRate(ctx, testRate("rate-override", "drv-1")))
	require.NoError(t, store.SavePayRate(ctx, testRate("rate-default", "")))

	rates, err := store.ListPayRates(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates[0].IsDefault(), "default sorts first")
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestCompletedShifts_HalfOpenRangeExcludesOpenShifts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	monday := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	save := func(id string, arrival time.Time, closed bool) {
		sh := engine.Shift{
			ID: engine.ShiftID(id), CompanyID: "acme", DriverID: "drv-1",
			DepotID: "depot-1", ArrivalTime: arrival,
		}
		if closed {
			sh.DepartureTime = arrival.Add(8 * time.Hour)
		}
		require.NoError(t, store.SaveShift(ctx, sh))
	}

	save("in-range-1", monday.Add(8*time.Hour), true)
	save("in-range-2", monday.AddDate(0, 0, 6).Add(8*time.Hour), true)
	save("open", monday.Add(9*time.Hour), false)
	save("before", monday.AddDate(0, 0, -1), true)
	save("at-end", monday.AddDate(0, 0, 7), true)

	shifts, err := store.CompletedShifts(ctx, "acme", monday, monday.AddDate(0, 0, 7))
	require.NoError(t, err)

	require.Len(t, shifts, 2)
	assert.Equal(t, engine.ShiftID("in-range-1"), shifts[0].ID, "sorted by arrival")
	assert.Equal(t, engine.ShiftID("in-range-2"), shifts[1].ID)
}

func TestCompletedShifts_MixedOffsets_CompareByInstant(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Range [Mon 00:00Z, Tue 00:00Z). Depot zones east of UTC produce
	// wall clocks on the wrong side of both boundaries; the range must
	// still be decided by instant, like the in-memory store does.
	monday := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	save := func(id string, arrival time.Time) {
		sh := engine.Shift{
			ID: engine.ShiftID(id), CompanyID: "acme", DriverID: "drv-1",
			DepotID: "depot-1", ArrivalTime: arrival,
			DepartureTime: arrival.Add(4 * time.Hour),
		}
		require.NoError(t, store.SaveShift(ctx, sh))
	}

	// 2026-01-06T01:30+02:00 = Mon 23:30Z: in range despite the Tuesday wall clock.
	save("late-wall", time.Date(2026, time.January, 6, 1, 30, 0, 0, time.FixedZone("EET", 2*60*60)))
	// 2026-01-05T01:00+03:00 = Sun 22:00Z: out of range despite the Monday wall clock.
	save("early-wall", time.Date(2026, time.January, 5, 1, 0, 0, 0, time.FixedZone("MSK", 3*60*60)))
	save("utc-morning", monday.Add(8*time.Hour))

	shifts, err := store.CompletedShifts(ctx, "acme", monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, shifts, 2)
	assert.Equal(t, engine.ShiftID("utc-morning"), shifts[0].ID, "ordered by instant, not wall clock")
	assert.Equal(t, engine.ShiftID("late-wall"), shifts[1].ID)
}

func TestSaveShift_ClosingAnOpenShift(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	arrival := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	sh := engine.Shift{ID: "shift-1", CompanyID: "acme", DriverID: "drv-1", DepotID: "depot-1", ArrivalTime: arrival}
	require.NoError(t, store.SaveShift(ctx, sh))

	got, err := store.GetShift(ctx, "shift-1")
	require.NoError(t, err)
	assert.False(t, got.Completed())

	sh.DepartureTime = arrival.Add(8 * time.Hour)
	require.NoError(t, store.SaveShift(ctx, sh))

	got, err = store.GetShift(ctx, "shift-1")
	require.NoError(t, err)
	assert.True(t, got.Completed())
	assert.Equal(t, 480, got.TotalMinutes())
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestHolidaysForCompany_ScopedAndSorted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dec := time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveHoliday(ctx, engine.BankHoliday{ID: "hol-xmas", CompanyID: "acme", Name: "Christmas Day", Date: dec, Recurring: true}))
	require.NoError(t, store.SaveHoliday(ctx, engine.BankHoliday{ID: "hol-ny", CompanyID: "acme", Name: "New Year's Day", Date: jan, Recurring: true}))
	require.NoError(t, store.SaveHoliday(ctx, engine.BankHoliday{ID: "hol-other", CompanyID: "other-co", Name: "Other", Date: jan}))

	holidays, err := store.HolidaysForCompany(ctx, "acme")
	require.NoError(t, err)

	require.Len(t, holidays, 2, "other company's holidays excluded")
	assert.Equal(t, "New Year's Day", holidays[0].Name, "sorted by date")
	assert.True(t, holidays[0].Recurring)
}
