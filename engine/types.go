/*
Package engine provides the core wage computation engine.

PURPOSE:
  This package contains the pure types and algorithms for turning a
  driver's completed shift into a priced wage breakdown. It knows how to
  resolve the applicable pay rate (driver override or company default),
  partition worked minutes into pay categories, and price each category.

KEY CONCEPTS IN THIS FILE (types.go):
  - PayRate: The per-hour rates and thresholds that govern pricing
  - Shift: A driver's worked interval (arrival to departure)
  - MinuteBuckets: Worked minutes partitioned into pay categories
  - WageBreakdown: The priced result, one per shift

DESIGN PRINCIPLES:
  1. Purity: No I/O, no ambient state. Company and driver identifiers
     are always passed explicitly, never read from globals.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors.
     Rounding happens once, at the final total.
  3. Exactness: Every worked minute lands in exactly one bucket.
  4. Type Safety: Strong typing for IDs prevents mixing company/driver IDs.

USAGE:
  rate, err := resolver.Resolve(ctx, companyID, driverID)
  breakdown, err := engine.ComputeWage(shift, rate, holidays)

SEE ALSO:
  - bucket.go: Minute classification algorithm
  - wage.go: Pricing of bucketed minutes
  - rate.go: Rate resolution (override vs. default)
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CompanyID string
type DriverID string
type DepotID string
type RateID string
type ShiftID string
type HolidayID string

// =============================================================================
// PAY RATE - Per-hour rates and thresholds for one company or one driver
// =============================================================================

// PayRate holds the hourly rates and classification thresholds used to
// price a shift. A rate with an empty DriverID is the company default;
// a rate with a DriverID set is a driver-specific override.
//
// INVARIANTS (enforced by the stores, relied on here):
//   - At most one active default rate per company.
//   - At most one active override per (company, driver) pair.
type PayRate struct {
	ID        RateID
	CompanyID CompanyID
	DriverID  DriverID // empty = company default

	// Hourly rates per category.
	BaseRate        decimal.Decimal
	NightRate       decimal.Decimal
	WeekendRate     decimal.Decimal
	BankHolidayRate decimal.Decimal

	// Overtime is always priced off BaseRate * OvertimeMultiplier,
	// never off the night/weekend/holiday rates.
	OvertimeMultiplier decimal.Decimal

	// Night window in local clock hours, [NightStartHour, NightEndHour).
	// When NightStartHour > NightEndHour the window wraps past midnight.
	NightStartHour int // 0-23
	NightEndHour   int // 0-23

	// Daily minutes beyond this threshold are overtime. Zero disables
	// daily overtime. Applied per calendar day the shift touches.
	DailyOvertimeThresholdMinutes int

	// Carried for configuration compatibility with the weekly view;
	// not applied by the bucketer. See WeeklyOvertime note in rate.go.
	WeeklyOvertimeThresholdMinutes int

	Active bool
}

// IsDefault reports whether this is a company-wide default rate.
func (r PayRate) IsDefault() bool { return r.DriverID == "" }

// Validate checks the rate's structural invariants.
func (r PayRate) Validate() error {
	if r.CompanyID == "" {
		return &RateValidationError{Field: "company_id", Reason: "required"}
	}
	if r.NightStartHour < 0 || r.NightStartHour > 23 {
		return &RateValidationError{Field: "night_start_hour", Reason: "must be 0-23"}
	}
	if r.NightEndHour < 0 || r.NightEndHour > 23 {
		return &RateValidationError{Field: "night_end_hour", Reason: "must be 0-23"}
	}
	if r.DailyOvertimeThresholdMinutes < 0 {
		return &RateValidationError{Field: "daily_overtime_threshold_minutes", Reason: "must not be negative"}
	}
	if r.WeeklyOvertimeThresholdMinutes < 0 {
		return &RateValidationError{Field: "weekly_overtime_threshold_minutes", Reason: "must not be negative"}
	}
	for field, d := range map[string]decimal.Decimal{
		"base_rate":         r.BaseRate,
		"night_rate":        r.NightRate,
		"weekend_rate":      r.WeekendRate,
		"bank_holiday_rate": r.BankHolidayRate,
	} {
		if d.IsNegative() {
			return &RateValidationError{Field: field, Reason: "must not be negative"}
		}
	}
	if r.OvertimeMultiplier.IsNegative() {
		return &RateValidationError{Field: "overtime_multiplier", Reason: "must not be negative"}
	}
	return nil
}

// MustParseDecimal parses s or returns zero. For literals in seeds/tests.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// SHIFT - One worked interval for one driver
// =============================================================================

// Shift is a driver's worked interval. Shifts arrive from the timesheet
// capture layer; the engine treats them as read-only input. A shift with
// a zero DepartureTime is still open and never feeds wage computation.
type Shift struct {
	ID        ShiftID
	CompanyID CompanyID
	DriverID  DriverID
	DepotID   DepotID

	// Arrival and departure in the depot's local time zone. Day
	// boundaries and the night window are evaluated in that zone.
	ArrivalTime   time.Time
	DepartureTime time.Time // zero = still open
}

// Completed reports whether the shift has a departure recorded.
func (s Shift) Completed() bool { return !s.DepartureTime.IsZero() }

// MinuteBounds returns arrival and departure snapped down to the whole
// minute. Wage computation runs entirely on this grid: seconds in
// captured timestamps never pay and never move a bucket boundary, so
// TotalMinutes always equals the sum of the shift's bucketed minutes.
func (s Shift) MinuteBounds() (arrival, departure time.Time) {
	return s.ArrivalTime.Truncate(time.Minute), s.DepartureTime.Truncate(time.Minute)
}

// TotalMinutes is the worked duration in whole minutes, measured on the
// minute grid. Zero for open or malformed shifts.
func (s Shift) TotalMinutes() int {
	if !s.Completed() || !s.DepartureTime.After(s.ArrivalTime) {
		return 0
	}
	arrival, departure := s.MinuteBounds()
	return int(departure.Sub(arrival) / time.Minute)
}

// =============================================================================
// MINUTE BUCKETS - Worked minutes partitioned into pay categories
// =============================================================================

// MinuteBuckets holds a shift's worked minutes split into the five
// mutually exclusive pay categories. Every worked minute belongs to
// exactly one bucket: Total() always equals the shift's TotalMinutes.
type MinuteBuckets struct {
	Regular     int
	Night       int
	Weekend     int
	BankHoliday int
	Overtime    int
}

// Total is the sum across all buckets.
func (b MinuteBuckets) Total() int {
	return b.Regular + b.Night + b.Weekend + b.BankHoliday + b.Overtime
}

// Add accumulates another bucket set into this one.
func (b MinuteBuckets) Add(o MinuteBuckets) MinuteBuckets {
	return MinuteBuckets{
		Regular:     b.Regular + o.Regular,
		Night:       b.Night + o.Night,
		Weekend:     b.Weekend + o.Weekend,
		BankHoliday: b.BankHoliday + o.BankHoliday,
		Overtime:    b.Overtime + o.Overtime,
	}
}

// =============================================================================
// WAGE BREAKDOWN - Priced result for one shift
// =============================================================================

// WageBreakdown is the priced output for one shift. It is not persisted
// by the engine; the export layer owns downstream persistence.
//
// Pay components are kept at full decimal precision; only TotalPay is
// rounded (2 decimal places, currency minor unit), so intermediate
// rounding error never compounds.
type WageBreakdown struct {
	DriverID DriverID
	ShiftID  ShiftID

	Minutes MinuteBuckets

	RegularPay     decimal.Decimal
	NightPay       decimal.Decimal
	WeekendPay     decimal.Decimal
	BankHolidayPay decimal.Decimal
	OvertimePay    decimal.Decimal

	TotalPay decimal.Decimal
}
