// Package store provides in-memory implementations of the engine's
// storage interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fleetline/payroll-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory rates, holidays and shifts (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	rates    map[engine.RateID]engine.PayRate
	holidays map[engine.HolidayID]engine.BankHoliday
	shifts   map[engine.ShiftID]engine.Shift
}

func NewMemory() *Memory {
	return &Memory{
		rates:    make(map[engine.RateID]engine.PayRate),
		holidays: make(map[engine.HolidayID]engine.BankHoliday),
		shifts:   make(map[engine.ShiftID]engine.Shift),
	}
}

// Compile-time check that Memory satisfies the resolver's source.
var _ engine.RateSource = (*Memory)(nil)

// =============================================================================
// PAY RATES
// =============================================================================

// SavePayRate upserts a rate by ID. Saving an active rate whose scope
// (company default, or company+driver override) already has a different
// active row fails with ErrDuplicateActiveRate - edits go through the
// existing row's ID.
func (m *Memory) SavePayRate(_ context.Context, rate engine.PayRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if rate.Active {
		for _, existing := range m.rates {
			if existing.ID == rate.ID || !existing.Active {
				continue
			}
			if existing.CompanyID == rate.CompanyID && existing.DriverID == rate.DriverID {
				return engine.ErrDuplicateActiveRate
			}
		}
	}
	m.rates[rate.ID] = rate
	return nil
}

// GetPayRate returns a rate by ID.
func (m *Memory) GetPayRate(_ context.Context, id engine.RateID) (*engine.PayRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rates[id]
	if !ok {
		return nil, engine.ErrRateNotFound
	}
	return &r, nil
}

// DeletePayRate removes a driver override, reverting that driver to the
// company default. Default rates are protected: they are only edited.
func (m *Memory) DeletePayRate(_ context.Context, id engine.RateID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rates[id]
	if !ok {
		return engine.ErrRateNotFound
	}
	if r.IsDefault() {
		return engine.ErrDefaultRateProtected
	}
	delete(m.rates, id)
	return nil
}

// ListPayRates returns all rates for a company, defaults first.
func (m *Memory) ListPayRates(_ context.Context, companyID engine.CompanyID) ([]engine.PayRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rates []engine.PayRate
	for _, r := range m.rates {
		if r.CompanyID == companyID {
			rates = append(rates, r)
		}
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].IsDefault() != rates[j].IsDefault() {
			return rates[i].IsDefault()
		}
		return rates[i].DriverID < rates[j].DriverID
	})
	return rates, nil
}

func (m *Memory) ActiveDefaultRate(_ context.Context, companyID engine.CompanyID) (*engine.PayRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.rates {
		if r.Active && r.CompanyID == companyID && r.IsDefault() {
			rate := r
			return &rate, nil
		}
	}
	return nil, nil
}

func (m *Memory) ActiveOverrideRate(_ context.Context, companyID engine.CompanyID, driverID engine.DriverID) (*engine.PayRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.rates {
		if r.Active && r.CompanyID == companyID && r.DriverID == driverID {
			rate := r
			return &rate, nil
		}
	}
	return nil, nil
}

// =============================================================================
// BANK HOLIDAYS
// =============================================================================

func (m *Memory) SaveHoliday(_ context.Context, h engine.BankHoliday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id engine.HolidayID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holidays, id)
	return nil
}

// HolidaysForCompany returns the company's holiday rows, date ascending.
func (m *Memory) HolidaysForCompany(_ context.Context, companyID engine.CompanyID) ([]engine.BankHoliday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hs []engine.BankHoliday
	for _, h := range m.holidays {
		if h.CompanyID == companyID {
			hs = append(hs, h)
		}
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })
	return hs, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Memory) SaveShift(_ context.Context, s engine.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

// CompletedShifts returns completed shifts for a company whose arrival
// falls in [from, to), ordered by arrival time.
func (m *Memory) CompletedShifts(_ context.Context, companyID engine.CompanyID, from, to time.Time) ([]engine.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var shifts []engine.Shift
	for _, s := range m.shifts {
		if s.CompanyID != companyID || !s.Completed() {
			continue
		}
		if s.ArrivalTime.Before(from) || !s.ArrivalTime.Before(to) {
			continue
		}
		shifts = append(shifts, s)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].ArrivalTime.Before(shifts[j].ArrivalTime) })
	return shifts, nil
}
