/*
Package sqlite provides the SQLite-backed implementation of the
storage interfaces.

PURPOSE:
  Persists companies, drivers, pay rates, bank holidays, shifts and
  payroll run records. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  engine.RateSource: Active default/override rate lookups
  payroll.Store:     Rates, holidays and completed shifts for a run

INVARIANT ENFORCEMENT:
  Partial unique indexes enforce the rate invariants at the database
  level, not just in handler code:
  - idx_unique_active_default:  one active default rate per company
  - idx_unique_active_override: one active override per (company, driver)

  Default rates are never deleted, only edited; DeletePayRate refuses
  them. Deleting an override reverts the driver to the default.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better
  concurrency: multiple readers don't block, single writer at a time.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  runner := payroll.NewRunner(store)

SEE ALSO:
  - engine/rate.go: Resolver consuming RateSource
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/fleetline/payroll-engine/engine"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Companies (tenants)
	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Drivers
	CREATE TABLE IF NOT EXISTS drivers (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_drivers_company
		ON drivers(company_id);

	-- Pay rates. driver_id = '' means company default.
	CREATE TABLE IF NOT EXISTS pay_rates (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		driver_id TEXT NOT NULL DEFAULT '',
		base_rate TEXT NOT NULL,
		night_rate TEXT NOT NULL,
		weekend_rate TEXT NOT NULL,
		bank_holiday_rate TEXT NOT NULL,
		overtime_multiplier TEXT NOT NULL,
		night_start_hour INTEGER NOT NULL,
		night_end_hour INTEGER NOT NULL,
		daily_overtime_threshold_minutes INTEGER NOT NULL,
		weekly_overtime_threshold_minutes INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- CRITICAL: at most one active default rate per company.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_active_default
		ON pay_rates(company_id)
		WHERE driver_id = '' AND active = TRUE;

	-- CRITICAL: at most one active override per (company, driver).
	CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_active_override
		ON pay_rates(company_id, driver_id)
		WHERE driver_id != '' AND active = TRUE;

	CREATE INDEX IF NOT EXISTS idx_pay_rates_company
		ON pay_rates(company_id);

	-- Bank holidays (company-scoped premium dates)
	CREATE TABLE IF NOT EXISTS bank_holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_company_date
		ON bank_holidays(company_id, date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_unique
		ON bank_holidays(company_id, date, name);

	-- Shifts. departure_time IS NULL while the shift is still open.
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		driver_id TEXT NOT NULL,
		depot_id TEXT NOT NULL DEFAULT '',
		arrival_time TEXT NOT NULL,
		departure_time TEXT,
		created_at TEXT NOT NULL
	);

	-- Hot path: completed shifts for a company in a date range.
	CREATE INDEX IF NOT EXISTS idx_shifts_company_arrival
		ON shifts(company_id, arrival_time);
	CREATE INDEX IF NOT EXISTS idx_shifts_driver
		ON shifts(driver_id, arrival_time);

	-- Payroll runs (scheduled weekly exports, for audit and UI display)
	CREATE TABLE IF NOT EXISTS payroll_runs (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		status TEXT NOT NULL,
		shifts_priced INTEGER NOT NULL DEFAULT 0,
		shifts_skipped INTEGER NOT NULL DEFAULT 0,
		total_pay TEXT NOT NULL DEFAULT '0',
		error TEXT,
		created_at TEXT NOT NULL,
		UNIQUE(company_id, period_start, period_end)
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_runs_company
		ON payroll_runs(company_id, period_start);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// COMPANIES
// =============================================================================

// Company is a tenant record.
type Company struct {
	ID        engine.CompanyID
	Name      string
	CreatedAt time.Time
}

func (s *Store) SaveCompany(ctx context.Context, c Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		c.ID, c.Name, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) ListCompanies(ctx context.Context) ([]Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// =============================================================================
// DRIVERS
// =============================================================================

// Driver is a driver record.
type Driver struct {
	ID        engine.DriverID
	CompanyID engine.CompanyID
	Name      string
	Email     string
	CreatedAt time.Time
}

func (s *Store) SaveDriver(ctx context.Context, d Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drivers (id, company_id, name, email, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		d.ID, d.CompanyID, d.Name, nullString(d.Email), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) ListDrivers(ctx context.Context, companyID engine.CompanyID) ([]Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, name, COALESCE(email, ''), created_at
		FROM drivers WHERE company_id = ? ORDER BY name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		var d Driver
		var createdAt string
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Email, &createdAt); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// DriverNames returns the id -> name map the export layer joins on.
func (s *Store) DriverNames(ctx context.Context, companyID engine.CompanyID) (map[engine.DriverID]string, error) {
	drivers, err := s.ListDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[engine.DriverID]string, len(drivers))
	for _, d := range drivers {
		names[d.ID] = d.Name
	}
	return names, nil
}

// =============================================================================
// PAY RATES
// =============================================================================

// SavePayRate upserts a rate by ID. The partial unique indexes reject a
// second active default for a company or a second active override for a
// driver; that surfaces as engine.ErrDuplicateActiveRate.
func (s *Store) SavePayRate(ctx context.Context, r engine.PayRate) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pay_rates (
			id, company_id, driver_id,
			base_rate, night_rate, weekend_rate, bank_holiday_rate, overtime_multiplier,
			night_start_hour, night_end_hour,
			daily_overtime_threshold_minutes, weekly_overtime_threshold_minutes,
			active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_rate = excluded.base_rate,
			night_rate = excluded.night_rate,
			weekend_rate = excluded.weekend_rate,
			bank_holiday_rate = excluded.bank_holiday_rate,
			overtime_multiplier = excluded.overtime_multiplier,
			night_start_hour = excluded.night_start_hour,
			night_end_hour = excluded.night_end_hour,
			daily_overtime_threshold_minutes = excluded.daily_overtime_threshold_minutes,
			weekly_overtime_threshold_minutes = excluded.weekly_overtime_threshold_minutes,
			active = excluded.active,
			updated_at = excluded.updated_at`,
		r.ID, r.CompanyID, r.DriverID,
		r.BaseRate.String(), r.NightRate.String(), r.WeekendRate.String(),
		r.BankHolidayRate.String(), r.OvertimeMultiplier.String(),
		r.NightStartHour, r.NightEndHour,
		r.DailyOvertimeThresholdMinutes, r.WeeklyOvertimeThresholdMinutes,
		r.Active, now, now)
	if isUniqueConstraintError(err) {
		return engine.ErrDuplicateActiveRate
	}
	return err
}

// GetPayRate returns a rate by ID.
func (s *Store) GetPayRate(ctx context.Context, id engine.RateID) (*engine.PayRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rates, err := s.queryRates(ctx, ratesSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, engine.ErrRateNotFound
	}
	return &rates[0], nil
}

// DeletePayRate removes a driver override, reverting that driver to the
// company default on the next resolution. Default rates are protected.
func (s *Store) DeletePayRate(ctx context.Context, id engine.RateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var driverID string
	err := s.db.QueryRowContext(ctx, `SELECT driver_id FROM pay_rates WHERE id = ?`, id).Scan(&driverID)
	if err == sql.ErrNoRows {
		return engine.ErrRateNotFound
	}
	if err != nil {
		return err
	}
	if driverID == "" {
		return engine.ErrDefaultRateProtected
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM pay_rates WHERE id = ?`, id)
	return err
}

// ListPayRates returns all rates for a company, defaults first.
func (s *Store) ListPayRates(ctx context.Context, companyID engine.CompanyID) ([]engine.PayRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRates(ctx, ratesSelect+`
		WHERE company_id = ?
		ORDER BY driver_id = '' DESC, driver_id`, companyID)
}

// ActiveDefaultRate implements engine.RateSource.
func (s *Store) ActiveDefaultRate(ctx context.Context, companyID engine.CompanyID) (*engine.PayRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rates, err := s.queryRates(ctx, ratesSelect+`
		WHERE company_id = ? AND driver_id = '' AND active = TRUE`, companyID)
	if err != nil || len(rates) == 0 {
		return nil, err
	}
	return &rates[0], nil
}

// ActiveOverrideRate implements engine.RateSource.
func (s *Store) ActiveOverrideRate(ctx context.Context, companyID engine.CompanyID, driverID engine.DriverID) (*engine.PayRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rates, err := s.queryRates(ctx, ratesSelect+`
		WHERE company_id = ? AND driver_id = ? AND active = TRUE`, companyID, driverID)
	if err != nil || len(rates) == 0 {
		return nil, err
	}
	return &rates[0], nil
}

const ratesSelect = `
	SELECT id, company_id, driver_id,
	       base_rate, night_rate, weekend_rate, bank_holiday_rate, overtime_multiplier,
	       night_start_hour, night_end_hour,
	       daily_overtime_threshold_minutes, weekly_overtime_threshold_minutes,
	       active
	FROM pay_rates`

func (s *Store) queryRates(ctx context.Context, query string, args ...any) ([]engine.PayRate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []engine.PayRate
	for rows.Next() {
		var r engine.PayRate
		var base, night, weekend, holiday, multiplier string
		if err := rows.Scan(
			&r.ID, &r.CompanyID, &r.DriverID,
			&base, &night, &weekend, &holiday, &multiplier,
			&r.NightStartHour, &r.NightEndHour,
			&r.DailyOvertimeThresholdMinutes, &r.WeeklyOvertimeThresholdMinutes,
			&r.Active,
		); err != nil {
			return nil, err
		}
		r.BaseRate = parseDecimal(base)
		r.NightRate = parseDecimal(night)
		r.WeekendRate = parseDecimal(weekend)
		r.BankHolidayRate = parseDecimal(holiday)
		r.OvertimeMultiplier = parseDecimal(multiplier)
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// =============================================================================
// BANK HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h engine.BankHoliday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bank_holidays (id, company_id, name, date, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id, date, name) DO UPDATE SET
			recurring = excluded.recurring`,
		h.ID, h.CompanyID, h.Name, h.Date.Format("2006-01-02"), h.Recurring,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, id engine.HolidayID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM bank_holidays WHERE id = ?`, id)
	return err
}

// HolidaysForCompany returns the company's holiday rows, date ascending.
func (s *Store) HolidaysForCompany(ctx context.Context, companyID engine.CompanyID) ([]engine.BankHoliday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, name, date, recurring
		FROM bank_holidays WHERE company_id = ? ORDER BY date`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.BankHoliday
	for rows.Next() {
		var h engine.BankHoliday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Name, &dateStr, &h.Recurring); err != nil {
			return nil, err
		}
		h.Date, _ = time.Parse("2006-01-02", dateStr)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) SaveShift(ctx context.Context, sh engine.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var departure sql.NullString
	if sh.Completed() {
		departure = sql.NullString{String: sh.DepartureTime.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, company_id, driver_id, depot_id, arrival_time, departure_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			departure_time = excluded.departure_time`,
		sh.ID, sh.CompanyID, sh.DriverID, sh.DepotID,
		sh.ArrivalTime.Format(time.RFC3339), departure,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetShift returns a shift by ID.
func (s *Store) GetShift(ctx context.Context, id engine.ShiftID) (*engine.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shifts, err := s.queryShifts(ctx, shiftsSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, engine.ErrShiftNotFound
	}
	return &shifts[0], nil
}

// CompletedShifts returns completed shifts for a company whose arrival
// falls in [from, to), ordered by arrival time. Open shifts never feed
// payroll, so they are filtered here, not downstream.
//
// Timestamps are stored with their original offsets so the engine keeps
// evaluating day boundaries in the depot's zone. Range filtering and
// ordering go through datetime(), which normalizes to UTC: boundaries
// compare by instant, the same semantic the in-memory store uses.
func (s *Store) CompletedShifts(ctx context.Context, companyID engine.CompanyID, from, to time.Time) ([]engine.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryShifts(ctx, shiftsSelect+`
		WHERE company_id = ? AND departure_time IS NOT NULL
		  AND datetime(arrival_time) >= datetime(?) AND datetime(arrival_time) < datetime(?)
		ORDER BY datetime(arrival_time)`,
		companyID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

// ListShifts returns all shifts for a driver, newest first.
func (s *Store) ListShifts(ctx context.Context, companyID engine.CompanyID, driverID engine.DriverID) ([]engine.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryShifts(ctx, shiftsSelect+`
		WHERE company_id = ? AND driver_id = ?
		ORDER BY datetime(arrival_time) DESC`, companyID, driverID)
}

const shiftsSelect = `
	SELECT id, company_id, driver_id, depot_id, arrival_time, departure_time
	FROM shifts`

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]engine.Shift, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []engine.Shift
	for rows.Next() {
		var sh engine.Shift
		var arrival string
		var departure sql.NullString
		if err := rows.Scan(&sh.ID, &sh.CompanyID, &sh.DriverID, &sh.DepotID, &arrival, &departure); err != nil {
			return nil, err
		}
		sh.ArrivalTime, _ = time.Parse(time.RFC3339, arrival)
		if departure.Valid {
			sh.DepartureTime, _ = time.Parse(time.RFC3339, departure.String)
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// =============================================================================
// PAYROLL RUNS (scheduled weekly exports)
// =============================================================================

// PayrollRun records one scheduled run for audit and UI display.
type PayrollRun struct {
	ID            string
	CompanyID     engine.CompanyID
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Status        string // "completed", "failed"
	ShiftsPriced  int
	ShiftsSkipped int
	TotalPay      decimal.Decimal
	Error         string
	CreatedAt     time.Time
}

func (s *Store) SavePayrollRun(ctx context.Context, r PayrollRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payroll_runs (
			id, company_id, period_start, period_end, status,
			shifts_priced, shifts_skipped, total_pay, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_id, period_start, period_end) DO UPDATE SET
			status = excluded.status,
			shifts_priced = excluded.shifts_priced,
			shifts_skipped = excluded.shifts_skipped,
			total_pay = excluded.total_pay,
			error = excluded.error`,
		r.ID, r.CompanyID,
		r.PeriodStart.Format("2006-01-02"), r.PeriodEnd.Format("2006-01-02"),
		r.Status, r.ShiftsPriced, r.ShiftsSkipped, r.TotalPay.String(),
		nullString(r.Error), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) ListPayrollRuns(ctx context.Context, companyID engine.CompanyID) ([]PayrollRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, period_start, period_end, status,
		       shifts_priced, shifts_skipped, total_pay, COALESCE(error, ''), created_at
		FROM payroll_runs WHERE company_id = ?
		ORDER BY period_start DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []PayrollRun
	for rows.Next() {
		var r PayrollRun
		var start, end, total, createdAt string
		if err := rows.Scan(&r.ID, &r.CompanyID, &start, &end, &r.Status,
			&r.ShiftsPriced, &r.ShiftsSkipped, &total, &r.Error, &createdAt); err != nil {
			return nil, err
		}
		r.PeriodStart, _ = time.Parse("2006-01-02", start)
		r.PeriodEnd, _ = time.Parse("2006-01-02", end)
		r.TotalPay = parseDecimal(total)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// HasPayrollRun reports whether a completed run already covers the period.
func (s *Store) HasPayrollRun(ctx context.Context, companyID engine.CompanyID, periodStart time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM payroll_runs
		WHERE company_id = ? AND period_start = ? AND status = 'completed'`,
		companyID, periodStart.Format("2006-01-02")).Scan(&count)
	return count > 0, err
}

// Reset clears all data. Dev/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"payroll_runs", "shifts", "bank_holidays", "pay_rates", "drivers", "companies"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
