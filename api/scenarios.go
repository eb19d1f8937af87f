/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates companies, drivers,
	pay rates, holidays, and shifts that demonstrate specific features.

AVAILABLE SCENARIOS:

	single-driver:  One company, one driver, a week of standard shifts
	night-fleet:    Drivers on overnight routes crossing midnight
	holiday-week:   Shifts landing on seeded bank holidays
	mixed-rates:    Default rate plus driver overrides side by side

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create a company and its default pay rate
 3. Create drivers, optionally with override rates
 4. Seed bank holidays
 5. Record a week of completed shifts

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "night-fleet"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared handler context and response helpers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fleetline/payroll-engine/engine"
	"github.com/fleetline/payroll-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "single-driver",
		Name:        "Single Driver",
		Description: "One company, one driver, a week of daytime shifts with overtime",
		Category:    "basics",
	},
	{
		ID:          "night-fleet",
		Name:        "Night Fleet",
		Description: "Overnight routes crossing midnight, night rate and weekend mix",
		Category:    "rates",
	},
	{
		ID:          "holiday-week",
		Name:        "Holiday Week",
		Description: "Shifts landing on bank holidays, including a recurring one",
		Category:    "rates",
	},
	{
		ID:          "mixed-rates",
		Name:        "Mixed Rates",
		Description: "Company default rate plus per-driver overrides side by side",
		Category:    "rates",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "single-driver":
		err = h.loadSingleDriverScenario(ctx)
	case "night-fleet":
		err = h.loadNightFleetScenario(ctx)
	case "holiday-week":
		err = h.loadHolidayWeekScenario(ctx)
	case "mixed-rates":
		err = h.loadMixedRatesScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// standardRate is the baseline rate used across scenarios:
// base 12, night 15, weekend 18, holiday 24, overtime x1.5, night
// window 22:00-06:00, daily overtime after 8 hours.
func standardRate(id engine.RateID, companyID engine.CompanyID, driverID engine.DriverID) engine.PayRate {
	return engine.PayRate{
		ID:                            id,
		CompanyID:                     companyID,
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

// seedCompany creates a company, its default rate, and the given drivers.
func (h *Handler) seedCompany(ctx context.Context, companyID engine.CompanyID, name string, drivers []sqlite.Driver) error {
	if err := h.Store.SaveCompany(ctx, sqlite.Company{ID: companyID, Name: name}); err != nil {
		return err
	}
	rate := standardRate(engine.RateID(string(companyID)+"-default"), companyID, "")
	if err := h.Store.SavePayRate(ctx, rate); err != nil {
		return err
	}
	for _, d := range drivers {
		if err := h.Store.SaveDriver(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// lastMondayBefore returns the Monday on or before the given day, used
// so scenario shifts always land in the most recent full week.
func lastMondayBefore(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset-7)
}

func (h *Handler) loadSingleDriverScenario(ctx context.Context) error {
	companyID := engine.CompanyID("acme-logistics")
	driver := sqlite.Driver{ID: "drv-alice", CompanyID: companyID, Name: "Alice Johnson", Email: "alice@example.com"}
	if err := h.seedCompany(ctx, companyID, "Acme Logistics", []sqlite.Driver{driver}); err != nil {
		return err
	}

	// Monday through Friday, 08:00 starts. Thursday runs long to show
	// daily overtime; Friday is left open to show open-shift filtering.
	monday := lastMondayBefore(time.Now().UTC())
	durations := []time.Duration{
		8 * time.Hour,
		8*time.Hour + 30*time.Minute,
		8 * time.Hour,
		9*time.Hour + 30*time.Minute,
		0, // open
	}
	for i, d := range durations {
		arrival := monday.AddDate(0, 0, i).Add(8 * time.Hour)
		shift := engine.Shift{
			ID:          engine.ShiftID(fmt.Sprintf("shift-alice-%d", i+1)),
			CompanyID:   companyID,
			DriverID:    driver.ID,
			DepotID:     "depot-north",
			ArrivalTime: arrival,
		}
		if d > 0 {
			shift.DepartureTime = arrival.Add(d)
		}
		if err := h.Store.SaveShift(ctx, shift); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadNightFleetScenario(ctx context.Context) error {
	companyID := engine.CompanyID("nocturne-haulage")
	drivers := []sqlite.Driver{
		{ID: "drv-bruno", CompanyID: companyID, Name: "Bruno Keller", Email: "bruno@example.com"},
		{ID: "drv-carla", CompanyID: companyID, Name: "Carla Mendes", Email: "carla@example.com"},
	}
	if err := h.seedCompany(ctx, companyID, "Nocturne Haulage", drivers); err != nil {
		return err
	}

	monday := lastMondayBefore(time.Now().UTC())

	// Bruno runs 22:00-06:00 overnight routes Monday to Thursday: each
	// shift splits at midnight, both halves inside the night window.
	for i := 0; i < 4; i++ {
		arrival := monday.AddDate(0, 0, i).Add(22 * time.Hour)
		shift := engine.Shift{
			ID:            engine.ShiftID(fmt.Sprintf("shift-bruno-%d", i+1)),
			CompanyID:     companyID,
			DriverID:      drivers[0].ID,
			DepotID:       "depot-central",
			ArrivalTime:   arrival,
			DepartureTime: arrival.Add(8 * time.Hour),
		}
		if err := h.Store.SaveShift(ctx, shift); err != nil {
			return err
		}
	}

	// Carla works the Saturday evening run: weekend minutes with a
	// night tail after 22:00.
	saturday := monday.AddDate(0, 0, 5)
	carlaShift := engine.Shift{
		ID:            "shift-carla-sat",
		CompanyID:     companyID,
		DriverID:      drivers[1].ID,
		DepotID:       "depot-central",
		ArrivalTime:   saturday.Add(18 * time.Hour),
		DepartureTime: saturday.Add(23*time.Hour + 30*time.Minute),
	}
	return h.Store.SaveShift(ctx, carlaShift)
}

func (h *Handler) loadHolidayWeekScenario(ctx context.Context) error {
	companyID := engine.CompanyID("festive-freight")
	driver := sqlite.Driver{ID: "drv-dora", CompanyID: companyID, Name: "Dora Lang", Email: "dora@example.com"}
	if err := h.seedCompany(ctx, companyID, "Festive Freight", []sqlite.Driver{driver}); err != nil {
		return err
	}

	monday := lastMondayBefore(time.Now().UTC())

	// Wednesday is a one-off holiday; Thursday recurs every year.
	holidays := []engine.BankHoliday{
		{
			ID:        "hol-depot-anniversary",
			CompanyID: companyID,
			Name:      "Depot Anniversary",
			Date:      monday.AddDate(0, 0, 2),
			Recurring: false,
		},
		{
			ID:        "hol-founders-day",
			CompanyID: companyID,
			Name:      "Founders' Day",
			Date:      monday.AddDate(0, 0, 3),
			Recurring: true,
		},
	}
	for _, hol := range holidays {
		if err := h.Store.SaveHoliday(ctx, hol); err != nil {
			return err
		}
	}

	for i := 0; i < 5; i++ {
		arrival := monday.AddDate(0, 0, i).Add(9 * time.Hour)
		shift := engine.Shift{
			ID:            engine.ShiftID(fmt.Sprintf("shift-dora-%d", i+1)),
			CompanyID:     companyID,
			DriverID:      driver.ID,
			DepotID:       "depot-east",
			ArrivalTime:   arrival,
			DepartureTime: arrival.Add(8 * time.Hour),
		}
		if err := h.Store.SaveShift(ctx, shift); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadMixedRatesScenario(ctx context.Context) error {
	companyID := engine.CompanyID("mixed-motors")
	drivers := []sqlite.Driver{
		{ID: "drv-standard", CompanyID: companyID, Name: "Stan Field", Email: "stan@example.com"},
		{ID: "drv-senior", CompanyID: companyID, Name: "Sonia Reyes", Email: "sonia@example.com"},
	}
	if err := h.seedCompany(ctx, companyID, "Mixed Motors", drivers); err != nil {
		return err
	}

	// Sonia negotiated a senior override: higher base, no daily overtime.
	override := standardRate("rate-sonia-senior", companyID, drivers[1].ID)
	override.BaseRate = engine.MustParseDecimal("16.50")
	override.NightRate = engine.MustParseDecimal("20.00")
	override.DailyOvertimeThresholdMinutes = 0
	if err := h.Store.SavePayRate(ctx, override); err != nil {
		return err
	}

	// Identical shifts so the preview shows the rate difference directly.
	monday := lastMondayBefore(time.Now().UTC())
	for i, d := range drivers {
		for day := 0; day < 3; day++ {
			arrival := monday.AddDate(0, 0, day).Add(7 * time.Hour)
			shift := engine.Shift{
				ID:            engine.ShiftID(fmt.Sprintf("shift-mixed-%d-%d", i+1, day+1)),
				CompanyID:     companyID,
				DriverID:      d.ID,
				DepotID:       "depot-west",
				ArrivalTime:   arrival,
				DepartureTime: arrival.Add(9 * time.Hour),
			}
			if err := h.Store.SaveShift(ctx, shift); err != nil {
				return err
			}
		}
	}
	return nil
}
