// Package payrollexport renders a confirmed payroll run as an xlsx workbook
// for the back office.
package payrollexport

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

const sheet = "Payroll"

// Row is one officer's line in the export.
type Row struct {
	EmployeeID      string
	OfficerName     string
	RegularHours    float64
	OvertimeHours   float64
	GrossPay        float64
	DeductionsTotal float64
	NetPay          float64
}

var headers = []string{
	"Employee ID",
	"Officer",
	"Regular Hours",
	"Overtime Hours",
	"Gross Pay",
	"Deductions",
	"Net Pay",
}

// Excel builds the workbook in memory. Officer names are NFC-normalized so
// composed and decomposed spellings sort and filter the same way in the
// resulting sheet.
func Excel(periodStart, periodEnd time.Time, rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Payroll %s - %s",
		periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")))

	for i, header := range headers {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 3
	var totalGross, totalNet float64
	for _, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.EmployeeID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), norm.NFC.String(row.OfficerName))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.RegularHours)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.OvertimeHours)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), row.GrossPay)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), row.DeductionsTotal)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), row.NetPay)
		totalGross += row.GrossPay
		totalNet += row.NetPay
		rowNum++
	}

	f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), totalGross)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), totalNet)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing payroll workbook")
	}

	return buf.Bytes(), nil
}
