package payrollexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestExcel(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	rows := []Row{
		{EmployeeID: "GP-001", OfficerName: "Dana Cole", RegularHours: 40, OvertimeHours: 2, GrossPay: 890, DeductionsTotal: 25, NetPay: 865},
		{EmployeeID: "GP-002", OfficerName: "Riley Park", RegularHours: 36, GrossPay: 720, NetPay: 720},
	}

	raw, err := Excel(start, end, rows)
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if title != "Payroll 2025-03-01 - 2025-03-15" {
		t.Errorf("title = %q", title)
	}

	name, _ := f.GetCellValue(sheet, "B3")
	if name != "Dana Cole" {
		t.Errorf("first officer = %q, want Dana Cole", name)
	}

	// Totals land on the row after the last officer.
	gross, _ := f.GetCellValue(sheet, "E5")
	if gross != "1610" {
		t.Errorf("total gross = %q, want 1610", gross)
	}
	net, _ := f.GetCellValue(sheet, "G5")
	if net != "1585" {
		t.Errorf("total net = %q, want 1585", net)
	}
}

func TestExcelEmptyRun(t *testing.T) {
	raw, err := Excel(time.Now(), time.Now(), nil)
	if err != nil {
		t.Fatalf("Excel: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected a workbook even for an empty run")
	}
}
