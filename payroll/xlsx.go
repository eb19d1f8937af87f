package payroll

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders a workbook with a per-shift sheet and a per-driver
// summary sheet. Pay cells are written as floats so spreadsheet sums
// work; display rounding matches the CSV export.
func WriteXLSX(w io.Writer, rows []ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const shiftSheet = "Shifts"
	if err := f.SetSheetName("Sheet1", shiftSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(shiftSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			string(r.ShiftID),
			r.DriverName,
			r.Date.Format("2006-01-02"),
			string(r.DepotID),
			r.Start.Format("15:04"),
			r.End.Format("2006-01-02 15:04"),
			r.Minutes.Regular,
			r.Minutes.Night,
			r.Minutes.Weekend,
			r.Minutes.BankHoliday,
			r.Minutes.Overtime,
			r.RegularPay.Round(2).InexactFloat64(),
			r.NightPay.Round(2).InexactFloat64(),
			r.WeekendPay.Round(2).InexactFloat64(),
			r.BankHolidayPay.Round(2).InexactFloat64(),
			r.OvertimePay.Round(2).InexactFloat64(),
			r.TotalPay.InexactFloat64(),
		}
		if err := f.SetSheetRow(shiftSheet, cell, &row); err != nil {
			return err
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summaryHeader := []interface{}{
		"Driver", "Shifts",
		"Regular Minutes", "Night Minutes", "Weekend Minutes", "Bank Holiday Minutes", "Overtime Minutes",
		"Total Pay",
	}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return err
	}
	for i, s := range Summarize(rows) {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			s.DriverName,
			s.Shifts,
			s.Minutes.Regular,
			s.Minutes.Night,
			s.Minutes.Weekend,
			s.Minutes.BankHoliday,
			s.Minutes.Overtime,
			s.TotalPay.InexactFloat64(),
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
