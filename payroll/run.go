/*
Package payroll drives wage computation runs and owns the export
formats (CSV, XLSX) the manager dashboard downloads.

PURPOSE:
  The engine package is pure: it prices one shift against one rate and
  one holiday calendar. This package is the batch driver around it -
  it fetches a company's rates and holidays ONCE, freezes them in a
  snapshot, prices every completed shift in the date range against
  that snapshot, and renders the results.

RUN FLOW:
  1. Load active rates for the company -> default + per-driver overrides
  2. Load the company's bank holidays -> immutable HolidaySet
  3. Load completed shifts in [from, to)
  4. engine.RunBatch over the snapshot (parallel, lock-free)
  5. Render rows (CSV/XLSX) or return breakdowns (JSON preview)

ERROR MODEL (mirrors the engine):
  - No default rate: the whole company run fails, no partial output.
  - One bad shift: recorded as skipped, the run continues.

SEE ALSO:
  - engine/batch.go: The snapshot and worker pool
  - csv.go, xlsx.go: Renderers over RunOutput
*/
package payroll

import (
	"context"
	"time"

	"github.com/fleetline/payroll-engine/engine"
)

// =============================================================================
// STORE - What a run needs from persistence
// =============================================================================

// Store is the persistence surface a payroll run reads. Both the
// sqlite store and the in-memory store satisfy it.
type Store interface {
	ListPayRates(ctx context.Context, companyID engine.CompanyID) ([]engine.PayRate, error)
	HolidaysForCompany(ctx context.Context, companyID engine.CompanyID) ([]engine.BankHoliday, error)
	CompletedShifts(ctx context.Context, companyID engine.CompanyID, from, to time.Time) ([]engine.Shift, error)
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes company payroll runs.
type Runner struct {
	Store   Store
	Workers int // 0 = engine.DefaultWorkers
}

func NewRunner(store Store) *Runner {
	return &Runner{Store: store}
}

// RunOutput bundles a run's inputs and results for rendering.
type RunOutput struct {
	CompanyID engine.CompanyID
	From, To  time.Time
	Shifts    []engine.Shift
	Result    *engine.BatchResult
}

// Snapshot loads and freezes a company's pay configuration. Rates and
// holidays are fetched once and shared by every shift in the run.
func (r *Runner) Snapshot(ctx context.Context, companyID engine.CompanyID) (*engine.CompanySnapshot, error) {
	rates, err := r.Store.ListPayRates(ctx, companyID)
	if err != nil {
		return nil, err
	}

	snap := &engine.CompanySnapshot{
		CompanyID: companyID,
		Overrides: make(map[engine.DriverID]engine.PayRate),
	}
	for _, rate := range rates {
		if !rate.Active {
			continue
		}
		if rate.IsDefault() {
			def := rate
			snap.DefaultRate = &def
			continue
		}
		snap.Overrides[rate.DriverID] = rate
	}

	holidays, err := r.Store.HolidaysForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	snap.Holidays = engine.NewHolidaySet(holidays)
	return snap, nil
}

// RunCompany prices all completed shifts for a company in [from, to).
func (r *Runner) RunCompany(ctx context.Context, companyID engine.CompanyID, from, to time.Time) (*RunOutput, error) {
	snap, err := r.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}

	shifts, err := r.Store.CompletedShifts(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	result, err := engine.RunBatch(ctx, snap, shifts, r.Workers)
	if err != nil {
		return nil, err
	}

	return &RunOutput{
		CompanyID: companyID,
		From:      from,
		To:        to,
		Shifts:    shifts,
		Result:    result,
	}, nil
}

// RunDriver prices one driver's completed shifts in [from, to). Used by
// the per-driver preview endpoint; shares the company snapshot logic.
func (r *Runner) RunDriver(ctx context.Context, companyID engine.CompanyID, driverID engine.DriverID, from, to time.Time) (*RunOutput, error) {
	out, err := r.RunCompany(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	filtered := &RunOutput{CompanyID: companyID, From: from, To: to, Result: &engine.BatchResult{}}
	for _, sh := range out.Shifts {
		if sh.DriverID == driverID {
			filtered.Shifts = append(filtered.Shifts, sh)
		}
	}
	for _, wb := range out.Result.Breakdowns {
		if wb.DriverID == driverID {
			filtered.Result.Breakdowns = append(filtered.Result.Breakdowns, wb)
		}
	}
	shiftOwner := make(map[engine.ShiftID]engine.DriverID, len(out.Shifts))
	for _, sh := range out.Shifts {
		shiftOwner[sh.ID] = sh.DriverID
	}
	for _, sk := range out.Result.Skipped {
		if shiftOwner[sk.ShiftID] == driverID {
			filtered.Result.Skipped = append(filtered.Result.Skipped, sk)
		}
	}
	return filtered, nil
}

// =============================================================================
// PERIOD HELPERS
// =============================================================================

// PreviousWeek returns the Monday-to-Monday half-open range covering
// the full week before t. Used by the scheduled weekly run.
func PreviousWeek(t time.Time) (from, to time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	thisMonday := day.AddDate(0, 0, -offset)
	return thisMonday.AddDate(0, 0, -7), thisMonday
}
