/*
scheduler.go - Automated weekly payroll scheduler

PURPOSE:
  Periodically checks whether the previous pay week (Monday to Sunday)
  has been priced for each company and automatically runs payroll for
  any company that is missing a run.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Targets the most recent completed Monday-to-Monday week
  - Skips companies that already have a run recorded for that week
  - Records runs for audit and UI display, including failures

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewPayrollScheduler(store, runner)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: ListPayrollRuns endpoint (run history)
  - payroll/run.go: Runner and PreviousWeek
*/
package api

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetline/payroll-engine/engine"
	"github.com/fleetline/payroll-engine/payroll"
	"github.com/fleetline/payroll-engine/store/sqlite"
)

// PayrollScheduler prices the previous week for every company once.
type PayrollScheduler struct {
	Store         *sqlite.Store
	Runner        *payroll.Runner
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(store *sqlite.Store, runner *payroll.Runner) *PayrollScheduler {
	return &PayrollScheduler{
		Store:         store,
		Runner:        runner,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	log.Printf("[Scheduler] Started with check interval: %v", ps.CheckInterval)
}

// Stop stops the scheduler.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.checkAndProcess()

	for {
		select {
		case <-ps.ticker.C:
			ps.checkAndProcess()
		case <-ps.stop:
			return
		}
	}
}

func (ps *PayrollScheduler) checkAndProcess() {
	ctx := context.Background()
	from, to := payroll.PreviousWeek(time.Now().UTC())

	log.Printf("[Scheduler] Checking payroll runs for week %s", from.Format("2006-01-02"))

	companies, err := ps.Store.ListCompanies(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing companies: %v", err)
		return
	}

	processedCount := 0
	skippedCount := 0

	for _, c := range companies {
		done, err := ps.Store.HasPayrollRun(ctx, c.ID, from)
		if err != nil {
			log.Printf("[Scheduler] Error checking run status for %s: %v", c.ID, err)
			continue
		}
		if done {
			skippedCount++
			continue
		}

		if err := ps.processCompany(ctx, c.ID, from, to); err != nil {
			log.Printf("[Scheduler] Error processing %s: %v", c.ID, err)
		} else {
			processedCount++
		}
	}

	if processedCount > 0 || skippedCount > 0 {
		log.Printf("[Scheduler] Completed: %d processed, %d skipped (already done)", processedCount, skippedCount)
	}
}

// processCompany prices one company's week and records the run. A
// configuration error (missing default rate) is recorded as a failed
// run so the dashboard surfaces it; failed runs are retried on the
// next cycle, and the unique index on (company, period) makes the
// retry overwrite the failed row rather than duplicate it.
func (ps *PayrollScheduler) processCompany(ctx context.Context, companyID engine.CompanyID, from, to time.Time) error {
	run := sqlite.PayrollRun{
		ID:          fmt.Sprintf("run-%s-%d", companyID, time.Now().UnixNano()),
		CompanyID:   companyID,
		PeriodStart: from,
		PeriodEnd:   to,
		TotalPay:    decimal.Zero,
	}

	out, err := ps.Runner.RunCompany(ctx, companyID, from, to)
	if err != nil {
		run.Status = "failed"
		run.Error = err.Error()
		if saveErr := ps.Store.SavePayrollRun(ctx, run); saveErr != nil {
			return saveErr
		}
		return err
	}

	total := decimal.Zero
	for _, wb := range out.Result.Breakdowns {
		total = total.Add(wb.TotalPay)
	}

	run.Status = "completed"
	run.ShiftsPriced = len(out.Result.Breakdowns)
	run.ShiftsSkipped = len(out.Result.Skipped)
	run.TotalPay = total

	if err := ps.Store.SavePayrollRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	log.Printf("[Scheduler] Processed %s: %d shifts, %d skipped, total=%s",
		companyID, run.ShiftsPriced, run.ShiftsSkipped, total.StringFixed(2))

	return nil
}

// RunNow triggers an immediate check (for testing/admin).
func (ps *PayrollScheduler) RunNow() {
	ps.checkAndProcess()
}
