package payroll

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader matches the manager dashboard's export preview: additive,
// non-overlapping minute columns followed by the pay columns.
var csvHeader = []string{
	"Shift ID", "Driver", "Date", "Depot", "Start", "End",
	"Regular Minutes", "Night Minutes", "Weekend Minutes", "Bank Holiday Minutes", "Overtime Minutes",
	"Regular Pay", "Night Pay", "Weekend Pay", "Bank Holiday Pay", "Overtime Pay", "Total Pay",
}

// WriteCSV renders rows as CSV. Pay components are formatted to 2
// decimal places for display; the underlying computation rounds only
// the total.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			string(r.ShiftID),
			r.DriverName,
			r.Date.Format("2006-01-02"),
			string(r.DepotID),
			r.Start.Format("15:04"),
			r.End.Format("2006-01-02 15:04"),
			strconv.Itoa(r.Minutes.Regular),
			strconv.Itoa(r.Minutes.Night),
			strconv.Itoa(r.Minutes.Weekend),
			strconv.Itoa(r.Minutes.BankHoliday),
			strconv.Itoa(r.Minutes.Overtime),
			r.RegularPay.StringFixed(2),
			r.NightPay.StringFixed(2),
			r.WeekendPay.StringFixed(2),
			r.BankHolidayPay.StringFixed(2),
			r.OvertimePay.StringFixed(2),
			r.TotalPay.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
