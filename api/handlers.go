/*
handlers.go - HTTP API handlers for the fleet payroll service

PURPOSE:
  Exposes pay rate management, bank holiday management, shift ingestion
  and payroll preview/export via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and payroll packages.

ENDPOINTS:
  Companies:
    GET    /api/companies                 List companies
    POST   /api/companies                 Create company
    GET    /api/companies/{id}/drivers    List drivers
    POST   /api/companies/{id}/drivers    Create driver

  Pay rates:
    GET    /api/rates?company_id=...      List rates (default first)
    POST   /api/rates                     Create/edit rate
    GET    /api/rates/{id}                Get rate
    DELETE /api/rates/{id}                Delete driver override
    GET    /api/rates/resolve             Resolve rate for a driver

  Bank holidays:
    GET    /api/holidays?company_id=...   List holidays
    POST   /api/holidays                  Create holiday
    POST   /api/holidays/defaults         Seed England & Wales set
    DELETE /api/holidays/{id}             Delete holiday

  Shifts:
    POST   /api/shifts                    Record/close a shift
    GET    /api/shifts/{id}               Get shift

  Payroll:
    GET    /api/payroll/preview           JSON breakdown for range
    GET    /api/payroll/export.csv        CSV download
    GET    /api/payroll/export.xlsx       XLSX download
    GET    /api/payroll/runs              Scheduled run history

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Invariant conflicts (duplicate active rate, protected default,
         company missing its default rate)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fleetline/payroll-engine/engine"
	"github.com/fleetline/payroll-engine/payroll"
	"github.com/fleetline/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Runner   *payroll.Runner
	Resolver *engine.RateResolver

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		Runner:   payroll.NewRunner(store),
		Resolver: engine.NewRateResolver(store),
	}
}

// =============================================================================
// COMPANY HANDLERS
// =============================================================================

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Store.ListCompanies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list companies", err)
		return
	}

	dtos := make([]CompanyDTO, len(companies))
	for i, c := range companies {
		dtos[i] = CompanyDTO{ID: string(c.ID), Name: c.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	c := sqlite.Company{ID: engine.CompanyID(req.ID), Name: req.Name}
	if err := h.Store.SaveCompany(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create company", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(chi.URLParam(r, "id"))

	drivers, err := h.Store.ListDrivers(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list drivers", err)
		return
	}

	dtos := make([]DriverDTO, len(drivers))
	for i, d := range drivers {
		dtos[i] = DriverDTO{ID: string(d.ID), CompanyID: string(d.CompanyID), Name: d.Name, Email: d.Email}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(chi.URLParam(r, "id"))

	var req DriverDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	d := sqlite.Driver{
		ID:        engine.DriverID(req.ID),
		CompanyID: companyID,
		Name:      req.Name,
		Email:     req.Email,
	}
	if err := h.Store.SaveDriver(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create driver", err)
		return
	}
	req.CompanyID = string(companyID)
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// PAY RATE HANDLERS
// =============================================================================

func (h *Handler) ListPayRates(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(r.URL.Query().Get("company_id"))
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", nil)
		return
	}

	rates, err := h.Store.ListPayRates(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pay rates", err)
		return
	}

	dtos := make([]PayRateDTO, len(rates))
	for i, rate := range rates {
		dtos[i] = toPayRateDTO(rate)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SavePayRate creates a rate or edits one in place. Managers edit the
// company default rather than replacing it; overrides are created per
// driver and removed via DELETE.
func (h *Handler) SavePayRate(w http.ResponseWriter, r *http.Request) {
	var req SavePayRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", nil)
		return
	}

	rate, err := req.ToPayRate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay rate", err)
		return
	}

	if err := h.Store.SavePayRate(r.Context(), rate); err != nil {
		writeEngineError(w, "Failed to save pay rate", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayRateDTO(rate))
}

func (h *Handler) GetPayRate(w http.ResponseWriter, r *http.Request) {
	id := engine.RateID(chi.URLParam(r, "id"))

	rate, err := h.Store.GetPayRate(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get pay rate", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayRateDTO(*rate))
}

// DeletePayRate removes a driver override so the driver reverts to the
// company default. Defaults are protected and answer 409.
func (h *Handler) DeletePayRate(w http.ResponseWriter, r *http.Request) {
	id := engine.RateID(chi.URLParam(r, "id"))

	if err := h.Store.DeletePayRate(r.Context(), id); err != nil {
		writeEngineError(w, "Failed to delete pay rate", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// ResolvePayRate answers which rate currently applies to a driver.
func (h *Handler) ResolvePayRate(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(r.URL.Query().Get("company_id"))
	driverID := engine.DriverID(r.URL.Query().Get("driver_id"))
	if companyID == "" || driverID == "" {
		writeError(w, http.StatusBadRequest, "company_id and driver_id are required", nil)
		return
	}

	rate, err := h.Resolver.Resolve(r.Context(), companyID, driverID)
	if err != nil {
		writeEngineError(w, "Failed to resolve pay rate", err)
		return
	}
	writeJSON(w, http.StatusOK, toPayRateDTO(rate))
}

// =============================================================================
// BANK HOLIDAY HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(r.URL.Query().Get("company_id"))
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", nil)
		return
	}

	holidays, err := h.Store.HolidaysForCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{
			ID:        string(hol.ID),
			CompanyID: string(hol.CompanyID),
			Name:      hol.Name,
			Date:      hol.Date.Format("2006-01-02"),
			Recurring: hol.Recurring,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := engine.BankHoliday{
		ID:        engine.HolidayID(req.ID),
		CompanyID: engine.CompanyID(req.CompanyID),
		Name:      req.Name,
		Date:      date,
		Recurring: req.Recurring,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := engine.HolidayID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// AddDefaultHolidays seeds the standard England & Wales bank holiday
// set for a company. Fixed-date holidays are recurring; the moveable
// feasts are seeded for the current year only.
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyID string `json:"company_id"`
		Year      int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CompanyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", nil)
		return
	}
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	holidays := defaultBankHolidays(engine.CompanyID(req.CompanyID), year)
	for _, hol := range holidays {
		if err := h.Store.SaveHoliday(r.Context(), hol); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed holidays", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, map[string]any{"added": len(holidays)})
}

// defaultBankHolidays is the England & Wales set. Easter-derived
// holidays move every year, so they are seeded as exact dates.
func defaultBankHolidays(companyID engine.CompanyID, year int) []engine.BankHoliday {
	fixed := []struct {
		name  string
		month time.Month
		day   int
	}{
		{"New Year's Day", time.January, 1},
		{"Christmas Day", time.December, 25},
		{"Boxing Day", time.December, 26},
	}

	var holidays []engine.BankHoliday
	for _, f := range fixed {
		holidays = append(holidays, engine.BankHoliday{
			ID:        engine.HolidayID(fmt.Sprintf("%s-%s-%d", companyID, slug(f.name), year)),
			CompanyID: companyID,
			Name:      f.name,
			Date:      time.Date(year, f.month, f.day, 0, 0, 0, 0, time.UTC),
			Recurring: true,
		})
	}

	easter := easterSunday(year)
	moveable := []struct {
		name string
		date time.Time
	}{
		{"Good Friday", easter.AddDate(0, 0, -2)},
		{"Easter Monday", easter.AddDate(0, 0, 1)},
		{"Early May Bank Holiday", firstMonday(year, time.May)},
		{"Spring Bank Holiday", lastMonday(year, time.May)},
		{"Summer Bank Holiday", lastMonday(year, time.August)},
	}
	for _, m := range moveable {
		holidays = append(holidays, engine.BankHoliday{
			ID:        engine.HolidayID(fmt.Sprintf("%s-%s-%d", companyID, slug(m.name), year)),
			CompanyID: companyID,
			Name:      m.name,
			Date:      m.date,
			Recurring: false,
		})
	}
	return holidays
}

// easterSunday computes Easter via the anonymous Gregorian algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	hh := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - hh - k) % 7
	m := (a + 11*hh + 22*l) / 451
	month := (hh + l - 7*m + 114) / 31
	day := (hh+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func firstMonday(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func lastMonday(year int, month time.Month) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// SaveShift records a shift. Posting the same ID with a departure time
// closes a previously open shift.
func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.CompanyID == "" || req.DriverID == "" {
		writeError(w, http.StatusBadRequest, "id, company_id and driver_id are required", nil)
		return
	}

	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid arrival_time (use RFC3339)", err)
		return
	}

	shift := engine.Shift{
		ID:          engine.ShiftID(req.ID),
		CompanyID:   engine.CompanyID(req.CompanyID),
		DriverID:    engine.DriverID(req.DriverID),
		DepotID:     engine.DepotID(req.DepotID),
		ArrivalTime: arrival,
	}
	if req.DepartureTime != "" {
		departure, err := time.Parse(time.RFC3339, req.DepartureTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid departure_time (use RFC3339)", err)
			return
		}
		if !departure.After(arrival) {
			writeError(w, http.StatusBadRequest, "departure_time must be after arrival_time", nil)
			return
		}
		shift.DepartureTime = departure
	}

	if err := h.Store.SaveShift(r.Context(), shift); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id := engine.ShiftID(chi.URLParam(r, "id"))

	shift, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get shift", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*shift))
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(r.URL.Query().Get("company_id"))
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", nil)
		return
	}
	driverID := engine.DriverID(r.URL.Query().Get("driver_id"))

	shifts, err := h.Store.ListShifts(r.Context(), companyID, driverID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, sh := range shifts {
		dtos[i] = toShiftDTO(sh)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// parseRange reads company_id, optional driver_id, and the inclusive
// from/to dates from query params. The returned range is half-open:
// [from 00:00, day-after-to 00:00).
func parseRange(r *http.Request) (engine.CompanyID, engine.DriverID, time.Time, time.Time, error) {
	q := r.URL.Query()
	companyID := engine.CompanyID(q.Get("company_id"))
	if companyID == "" {
		return "", "", time.Time{}, time.Time{}, fmt.Errorf("company_id is required")
	}

	from, err := time.Parse("2006-01-02", q.Get("from"))
	if err != nil {
		return "", "", time.Time{}, time.Time{}, fmt.Errorf("invalid from date (use YYYY-MM-DD)")
	}
	to, err := time.Parse("2006-01-02", q.Get("to"))
	if err != nil {
		return "", "", time.Time{}, time.Time{}, fmt.Errorf("invalid to date (use YYYY-MM-DD)")
	}
	return companyID, engine.DriverID(q.Get("driver_id")), from, to.AddDate(0, 0, 1), nil
}

func (h *Handler) runForRequest(w http.ResponseWriter, r *http.Request) (*payroll.RunOutput, bool) {
	companyID, driverID, from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payroll range", err)
		return nil, false
	}

	var out *payroll.RunOutput
	if driverID != "" {
		out, err = h.Runner.RunDriver(r.Context(), companyID, driverID, from, to)
	} else {
		out, err = h.Runner.RunCompany(r.Context(), companyID, from, to)
	}
	if err != nil {
		writeEngineError(w, "Failed to compute payroll", err)
		return nil, false
	}
	return out, true
}

// PreviewPayroll returns the JSON breakdown the dashboard's CSV export
// preview renders.
func (h *Handler) PreviewPayroll(w http.ResponseWriter, r *http.Request) {
	out, ok := h.runForRequest(w, r)
	if !ok {
		return
	}

	resp := PreviewResponse{
		CompanyID: string(out.CompanyID),
		From:      out.From.Format("2006-01-02"),
		To:        out.To.AddDate(0, 0, -1).Format("2006-01-02"),
	}
	total := decimal.Zero
	for _, wb := range out.Result.Breakdowns {
		resp.Breakdowns = append(resp.Breakdowns, toWageBreakdownDTO(wb))
		total = total.Add(wb.TotalPay)
	}
	for _, sk := range out.Result.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedShiftDTO{ShiftID: string(sk.ShiftID), Reason: sk.Err.Error()})
	}
	resp.TotalPay = total.StringFixed(2)
	writeJSON(w, http.StatusOK, resp)
}

// ExportCSV streams the payroll CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	out, ok := h.runForRequest(w, r)
	if !ok {
		return
	}

	names, err := h.Store.DriverNames(r.Context(), out.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load driver names", err)
		return
	}

	rows := payroll.BuildRows(out, names)
	filename := fmt.Sprintf("payroll-%s-%s.csv", out.CompanyID, out.From.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := payroll.WriteCSV(w, rows); err != nil {
		// Headers already sent; log-only would lose the signal in tests.
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ExportXLSX streams the payroll workbook download.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	out, ok := h.runForRequest(w, r)
	if !ok {
		return
	}

	names, err := h.Store.DriverNames(r.Context(), out.CompanyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load driver names", err)
		return
	}

	rows := payroll.BuildRows(out, names)
	filename := fmt.Sprintf("payroll-%s-%s.xlsx", out.CompanyID, out.From.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := payroll.WriteXLSX(w, rows); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListPayrollRuns returns the scheduled run history for a company.
func (h *Handler) ListPayrollRuns(w http.ResponseWriter, r *http.Request) {
	companyID := engine.CompanyID(r.URL.Query().Get("company_id"))
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", nil)
		return
	}

	runs, err := h.Store.ListPayrollRuns(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payroll runs", err)
		return
	}

	dtos := make([]PayrollRunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = PayrollRunDTO{
			ID:            run.ID,
			CompanyID:     string(run.CompanyID),
			PeriodStart:   run.PeriodStart.Format("2006-01-02"),
			PeriodEnd:     run.PeriodEnd.Format("2006-01-02"),
			Status:        run.Status,
			ShiftsPriced:  run.ShiftsPriced,
			ShiftsSkipped: run.ShiftsSkipped,
			TotalPay:      run.TotalPay.StringFixed(2),
			Error:         run.Error,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": dtos})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors to HTTP status codes. Invariant
// conflicts (duplicate active rate, protected default, missing company
// default) are 409; other client errors are 400.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsFatalForCompany(err),
		errors.Is(err, engine.ErrDuplicateActiveRate),
		errors.Is(err, engine.ErrDefaultRateProtected):
		writeError(w, http.StatusConflict, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
