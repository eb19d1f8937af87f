package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetline/payroll-engine/engine"
)

// =============================================================================
// EXPORT ROWS - One row per priced shift
// =============================================================================

// ExportRow is the flat per-shift record the CSV and XLSX exports
// render: five additive minute columns, five pay columns, and a total.
type ExportRow struct {
	ShiftID    engine.ShiftID
	DriverID   engine.DriverID
	DriverName string
	DepotID    engine.DepotID
	Date       time.Time // shift arrival day
	Start      time.Time
	End        time.Time

	Minutes engine.MinuteBuckets

	RegularPay     decimal.Decimal
	NightPay       decimal.Decimal
	WeekendPay     decimal.Decimal
	BankHolidayPay decimal.Decimal
	OvertimePay    decimal.Decimal
	TotalPay       decimal.Decimal
}

// BuildRows joins a run's breakdowns back to their shifts. Driver names
// come from the optional names map; missing entries fall back to the ID.
func BuildRows(out *RunOutput, names map[engine.DriverID]string) []ExportRow {
	byID := make(map[engine.ShiftID]engine.Shift, len(out.Shifts))
	for _, sh := range out.Shifts {
		byID[sh.ID] = sh
	}

	rows := make([]ExportRow, 0, len(out.Result.Breakdowns))
	for _, wb := range out.Result.Breakdowns {
		sh := byID[wb.ShiftID]
		name := names[wb.DriverID]
		if name == "" {
			name = string(wb.DriverID)
		}
		rows = append(rows, ExportRow{
			ShiftID:        wb.ShiftID,
			DriverID:       wb.DriverID,
			DriverName:     name,
			DepotID:        sh.DepotID,
			Date:           sh.ArrivalTime,
			Start:          sh.ArrivalTime,
			End:            sh.DepartureTime,
			Minutes:        wb.Minutes,
			RegularPay:     wb.RegularPay,
			NightPay:       wb.NightPay,
			WeekendPay:     wb.WeekendPay,
			BankHolidayPay: wb.BankHolidayPay,
			OvertimePay:    wb.OvertimePay,
			TotalPay:       wb.TotalPay,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DriverName != rows[j].DriverName {
			return rows[i].DriverName < rows[j].DriverName
		}
		return rows[i].Start.Before(rows[j].Start)
	})
	return rows
}

// =============================================================================
// DRIVER SUMMARIES - Per-driver totals across a run
// =============================================================================

// DriverSummary aggregates a driver's rows for the summary sheet.
type DriverSummary struct {
	DriverID   engine.DriverID
	DriverName string
	Shifts     int
	Minutes    engine.MinuteBuckets
	TotalPay   decimal.Decimal
}

// Summarize folds rows into per-driver totals, ordered by driver name.
func Summarize(rows []ExportRow) []DriverSummary {
	byDriver := make(map[engine.DriverID]*DriverSummary)
	for _, row := range rows {
		s, ok := byDriver[row.DriverID]
		if !ok {
			s = &DriverSummary{DriverID: row.DriverID, DriverName: row.DriverName, TotalPay: decimal.Zero}
			byDriver[row.DriverID] = s
		}
		s.Shifts++
		s.Minutes = s.Minutes.Add(row.Minutes)
		s.TotalPay = s.TotalPay.Add(row.TotalPay)
	}

	summaries := make([]DriverSummary, 0, len(byDriver))
	for _, s := range byDriver {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].DriverName < summaries[j].DriverName })
	return summaries
}
