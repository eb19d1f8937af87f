/*
batch.go - Parallel wage computation over a company's shifts

PURPOSE:
  Runs the wage engine over many shifts at once. Each invocation of the
  engine reads only its own Shift plus the company's rate and holiday
  snapshot, so shifts are processed concurrently with no locking.

SNAPSHOT MODEL:
  The caller fetches rates and holidays ONCE per company and freezes
  them in a CompanySnapshot. Every shift in the run resolves against
  that snapshot - no redundant lookups, and a rate edit mid-run cannot
  produce a half-old half-new export.

ERROR MODEL:
  - Missing company default rate: ConfigurationError, fatal. The whole
    run for that company fails with no partial results.
  - Malformed single shift: recorded in Skipped, run continues. One bad
    record never aborts the export.
  - Open shifts (no departure) are excluded up front; they are not
    failures, they just don't feed payroll yet.

SEE ALSO:
  - rate.go: Per-driver resolution the snapshot mirrors
  - payroll/run.go: Fetches store data and builds snapshots
*/
package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// =============================================================================
// COMPANY SNAPSHOT - Immutable per-run view of rates and holidays
// =============================================================================

// CompanySnapshot is an immutable view of one company's pay
// configuration for the duration of a run.
type CompanySnapshot struct {
	CompanyID   CompanyID
	DefaultRate *PayRate
	Overrides   map[DriverID]PayRate
	Holidays    HolidayCalendar
}

// RateFor mirrors RateResolver semantics against the snapshot.
func (s *CompanySnapshot) RateFor(driverID DriverID) (PayRate, error) {
	if r, ok := s.Overrides[driverID]; ok {
		return r, nil
	}
	if s.DefaultRate == nil {
		return PayRate{}, &ConfigurationError{CompanyID: s.CompanyID}
	}
	return *s.DefaultRate, nil
}

// =============================================================================
// BATCH RUN
// =============================================================================

// SkippedShift records a shift the run could not price.
type SkippedShift struct {
	ShiftID ShiftID
	Err     error
}

// BatchResult is the outcome of one company run. Breakdowns preserve
// the input shift order.
type BatchResult struct {
	Breakdowns []WageBreakdown
	Skipped    []SkippedShift
}

// DefaultWorkers is the fan-out used when RunBatch is given zero workers.
const DefaultWorkers = 4

// RunBatch prices all completed shifts against the snapshot using a
// worker pool. Returns ConfigurationError without processing anything
// when the company has no default rate and any shift would need it.
func RunBatch(ctx context.Context, snap *CompanySnapshot, shifts []Shift, workers int) (*BatchResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	// Only completed shifts feed the wage engine.
	var completed []Shift
	for _, sh := range shifts {
		if sh.Completed() {
			completed = append(completed, sh)
		}
	}

	// Fail the company up front: a missing default is fatal whenever any
	// shift's driver lacks an override, and partial results are not
	// allowed either way.
	if snap.DefaultRate == nil {
		for _, sh := range completed {
			if _, ok := snap.Overrides[sh.DriverID]; !ok {
				return nil, &ConfigurationError{CompanyID: snap.CompanyID}
			}
		}
	}

	type outcome struct {
		index     int
		breakdown WageBreakdown
		err       error
		shiftID   ShiftID
	}

	jobs := make(chan int)
	outcomes := make([]outcome, len(completed))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sh := completed[i]
				out := outcome{index: i, shiftID: sh.ID}

				rate, err := snap.RateFor(sh.DriverID)
				if err != nil {
					out.err = err
				} else {
					out.breakdown, out.err = ComputeWage(sh, rate, snap.Holidays)
				}
				outcomes[i] = out
			}
		}()
	}

feed:
	for i := range completed {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, out := range outcomes {
		switch {
		case out.err == nil:
			result.Breakdowns = append(result.Breakdowns, out.breakdown)
		case IsFatalForCompany(out.err):
			return nil, out.err
		default:
			result.Skipped = append(result.Skipped, SkippedShift{ShiftID: out.shiftID, Err: out.err})
		}
	}
	sort.SliceStable(result.Skipped, func(i, j int) bool {
		return result.Skipped[i].ShiftID < result.Skipped[j].ShiftID
	})
	return result, nil
}

// IsSkippable reports whether err is the kind of per-shift failure a
// batch run records and moves past.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrInvalidShift)
}
