/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.
  External data is validated here, at the boundary, and rejected before
  it can reach a calculation - handlers never pass a raw payload into
  the engine.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY FIELDS:
  Rates and pay amounts travel as JSON strings ("12.00"), parsed with
  shopspring/decimal. Floats are never used for money on the wire.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetline/payroll-engine/engine"
)

// =============================================================================
// PAY RATES
// =============================================================================

// PayRateDTO represents a pay rate in API responses.
type PayRateDTO struct {
	ID                 string `json:"id"`
	CompanyID          string `json:"company_id"`
	DriverID           string `json:"driver_id,omitempty"` // empty = company default
	BaseRate           string `json:"base_rate"`
	NightRate          string `json:"night_rate"`
	WeekendRate        string `json:"weekend_rate"`
	BankHolidayRate    string `json:"bank_holiday_rate"`
	OvertimeMultiplier string `json:"overtime_multiplier"`
	NightStartHour     int    `json:"night_start_hour"`
	NightEndHour       int    `json:"night_end_hour"`
	DailyOTMinutes     int    `json:"daily_overtime_threshold_minutes"`
	WeeklyOTMinutes    int    `json:"weekly_overtime_threshold_minutes"`
	Active             bool   `json:"active"`
	IsDefault          bool   `json:"is_default"`
}

func toPayRateDTO(r engine.PayRate) PayRateDTO {
	return PayRateDTO{
		ID:                 string(r.ID),
		CompanyID:          string(r.CompanyID),
		DriverID:           string(r.DriverID),
		BaseRate:           r.BaseRate.StringFixed(2),
		NightRate:          r.NightRate.StringFixed(2),
		WeekendRate:        r.WeekendRate.StringFixed(2),
		BankHolidayRate:    r.BankHolidayRate.StringFixed(2),
		OvertimeMultiplier: r.OvertimeMultiplier.String(),
		NightStartHour:     r.NightStartHour,
		NightEndHour:       r.NightEndHour,
		DailyOTMinutes:     r.DailyOvertimeThresholdMinutes,
		WeeklyOTMinutes:    r.WeeklyOvertimeThresholdMinutes,
		Active:             r.Active,
		IsDefault:          r.IsDefault(),
	}
}

// SavePayRateRequest creates or edits a rate. An empty driver_id makes
// it the company default.
type SavePayRateRequest struct {
	ID                 string `json:"id"`
	CompanyID          string `json:"company_id"`
	DriverID           string `json:"driver_id"`
	BaseRate           string `json:"base_rate"`
	NightRate          string `json:"night_rate"`
	WeekendRate        string `json:"weekend_rate"`
	BankHolidayRate    string `json:"bank_holiday_rate"`
	OvertimeMultiplier string `json:"overtime_multiplier"`
	NightStartHour     int    `json:"night_start_hour"`
	NightEndHour       int    `json:"night_end_hour"`
	DailyOTMinutes     int    `json:"daily_overtime_threshold_minutes"`
	WeeklyOTMinutes    int    `json:"weekly_overtime_threshold_minutes"`
	Active             *bool  `json:"active,omitempty"` // nil = true
}

// ToPayRate validates and converts the request. Malformed money fields
// are rejected here, at the edge.
func (req SavePayRateRequest) ToPayRate() (engine.PayRate, error) {
	parse := func(field, s string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid %s: %q", field, s)
		}
		return d, nil
	}

	base, err := parse("base_rate", req.BaseRate)
	if err != nil {
		return engine.PayRate{}, err
	}
	night, err := parse("night_rate", req.NightRate)
	if err != nil {
		return engine.PayRate{}, err
	}
	weekend, err := parse("weekend_rate", req.WeekendRate)
	if err != nil {
		return engine.PayRate{}, err
	}
	holiday, err := parse("bank_holiday_rate", req.BankHolidayRate)
	if err != nil {
		return engine.PayRate{}, err
	}
	multiplier, err := parse("overtime_multiplier", req.OvertimeMultiplier)
	if err != nil {
		return engine.PayRate{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rate := engine.PayRate{
		ID:                             engine.RateID(req.ID),
		CompanyID:                      engine.CompanyID(req.CompanyID),
		DriverID:                       engine.DriverID(req.DriverID),
		BaseRate:                       base,
		NightRate:                      night,
		WeekendRate:                    weekend,
		BankHolidayRate:                holiday,
		OvertimeMultiplier:             multiplier,
		NightStartHour:                 req.NightStartHour,
		NightEndHour:                   req.NightEndHour,
		DailyOvertimeThresholdMinutes:  req.DailyOTMinutes,
		WeeklyOvertimeThresholdMinutes: req.WeeklyOTMinutes,
		Active:                         active,
	}
	return rate, rate.Validate()
}

// =============================================================================
// BANK HOLIDAYS
// =============================================================================

type HolidayDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Date      string `json:"date"` // YYYY-MM-DD
	Recurring bool   `json:"recurring"`
}

type CreateHolidayRequest struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Date      string `json:"date"` // YYYY-MM-DD
	Recurring bool   `json:"recurring"`
}

// =============================================================================
// SHIFTS
// =============================================================================

type ShiftDTO struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	DriverID      string `json:"driver_id"`
	DepotID       string `json:"depot_id,omitempty"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time,omitempty"` // absent = still open
	TotalMinutes  int    `json:"total_minutes"`
}

func toShiftDTO(sh engine.Shift) ShiftDTO {
	dto := ShiftDTO{
		ID:           string(sh.ID),
		CompanyID:    string(sh.CompanyID),
		DriverID:     string(sh.DriverID),
		DepotID:      string(sh.DepotID),
		ArrivalTime:  sh.ArrivalTime.Format(time.RFC3339),
		TotalMinutes: sh.TotalMinutes(),
	}
	if sh.Completed() {
		dto.DepartureTime = sh.DepartureTime.Format(time.RFC3339)
	}
	return dto
}

type SaveShiftRequest struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	DriverID      string `json:"driver_id"`
	DepotID       string `json:"depot_id"`
	ArrivalTime   string `json:"arrival_time"`             // RFC3339
	DepartureTime string `json:"departure_time,omitempty"` // RFC3339, omit while open
}

// =============================================================================
// WAGE BREAKDOWNS
// =============================================================================

// WageBreakdownDTO mirrors the CSV preview columns: additive minute
// columns plus per-category pay and the rounded total.
type WageBreakdownDTO struct {
	DriverID string `json:"driver_id"`
	ShiftID  string `json:"shift_id"`

	RegularMinutes     int `json:"regular_minutes"`
	NightMinutes       int `json:"night_minutes"`
	WeekendMinutes     int `json:"weekend_minutes"`
	BankHolidayMinutes int `json:"bank_holiday_minutes"`
	OvertimeMinutes    int `json:"overtime_minutes"`

	RegularPay     string `json:"regular_pay"`
	NightPay       string `json:"night_pay"`
	WeekendPay     string `json:"weekend_pay"`
	BankHolidayPay string `json:"bank_holiday_pay"`
	OvertimePay    string `json:"overtime_pay"`
	TotalPay       string `json:"total_pay"`
}

func toWageBreakdownDTO(wb engine.WageBreakdown) WageBreakdownDTO {
	return WageBreakdownDTO{
		DriverID:           string(wb.DriverID),
		ShiftID:            string(wb.ShiftID),
		RegularMinutes:     wb.Minutes.Regular,
		NightMinutes:       wb.Minutes.Night,
		WeekendMinutes:     wb.Minutes.Weekend,
		BankHolidayMinutes: wb.Minutes.BankHoliday,
		OvertimeMinutes:    wb.Minutes.Overtime,
		RegularPay:         wb.RegularPay.StringFixed(2),
		NightPay:           wb.NightPay.StringFixed(2),
		WeekendPay:         wb.WeekendPay.StringFixed(2),
		BankHolidayPay:     wb.BankHolidayPay.StringFixed(2),
		OvertimePay:        wb.OvertimePay.StringFixed(2),
		TotalPay:           wb.TotalPay.StringFixed(2),
	}
}

// SkippedShiftDTO reports a shift a payroll run could not price.
type SkippedShiftDTO struct {
	ShiftID string `json:"shift_id"`
	Reason  string `json:"reason"`
}

// PreviewResponse is the payroll preview payload.
type PreviewResponse struct {
	CompanyID  string             `json:"company_id"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Breakdowns []WageBreakdownDTO `json:"breakdowns"`
	Skipped    []SkippedShiftDTO  `json:"skipped,omitempty"`
	TotalPay   string             `json:"total_pay"`
}

// =============================================================================
// COMPANIES / DRIVERS / RUNS
// =============================================================================

type CompanyDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DriverDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

type PayrollRunDTO struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	Status        string `json:"status"`
	ShiftsPriced  int    `json:"shifts_priced"`
	ShiftsSkipped int    `json:"shifts_skipped"`
	TotalPay      string `json:"total_pay"`
	Error         string `json:"error,omitempty"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
