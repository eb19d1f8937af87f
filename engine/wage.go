/*
wage.go - Pricing of bucketed minutes

PURPOSE:
  Turns a shift's MinuteBuckets and a resolved PayRate into a priced
  WageBreakdown. Pure function of its inputs; no I/O, no retries.

PRICING:
  regularPay     = regularMinutes/60     * baseRate
  nightPay       = nightMinutes/60       * nightRate
  weekendPay     = weekendMinutes/60     * weekendRate
  bankHolidayPay = bankHolidayMinutes/60 * bankHolidayRate
  overtimePay    = overtimeMinutes/60    * baseRate * overtimeMultiplier

  Overtime is always priced off the base rate times the multiplier,
  never off the night/weekend/holiday rates.

ROUNDING POLICY:
  Components keep full decimal precision. Only TotalPay is rounded, to
  2 decimal places (currency minor unit), so intermediate rounding
  error never compounds.

SEE ALSO:
  - bucket.go: Produces the MinuteBuckets consumed here
*/
package engine

import "github.com/shopspring/decimal"

var sixty = decimal.NewFromInt(60)

// CalculateWage prices each bucket with the given rate and sums to a
// total rounded to 2 decimal places.
func CalculateWage(shift Shift, buckets MinuteBuckets, rate PayRate) WageBreakdown {
	hours := func(minutes int) decimal.Decimal {
		return decimal.NewFromInt(int64(minutes)).Div(sixty)
	}

	wb := WageBreakdown{
		DriverID: shift.DriverID,
		ShiftID:  shift.ID,
		Minutes:  buckets,

		RegularPay:     hours(buckets.Regular).Mul(rate.BaseRate),
		NightPay:       hours(buckets.Night).Mul(rate.NightRate),
		WeekendPay:     hours(buckets.Weekend).Mul(rate.WeekendRate),
		BankHolidayPay: hours(buckets.BankHoliday).Mul(rate.BankHolidayRate),
		OvertimePay:    hours(buckets.Overtime).Mul(rate.BaseRate).Mul(rate.OvertimeMultiplier),
	}

	wb.TotalPay = wb.RegularPay.
		Add(wb.NightPay).
		Add(wb.WeekendPay).
		Add(wb.BankHolidayPay).
		Add(wb.OvertimePay).
		Round(2)
	return wb
}

// ComputeWage buckets and prices a shift in one step. This is the
// entry point the batch layer uses per shift.
func ComputeWage(shift Shift, rate PayRate, holidays HolidayCalendar) (WageBreakdown, error) {
	buckets, err := BucketShift(shift, rate, holidays)
	if err != nil {
		return WageBreakdown{}, err
	}
	return CalculateWage(shift, buckets, rate), nil
}
