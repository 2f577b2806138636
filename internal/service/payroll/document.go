package payroll

import (
	"bytes"
	"fmt"

	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/greenpasture/payroll-backend-go/internal/domain/timesheet"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

func peso(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// RenderPayslipPDF writes a single-page payslip listing every earnings bucket.
func RenderPayslipPDF(p payroll.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", p.Employee.FullName))
	pdf.Ln(6)
	if pos := p.Employee.PositionName(); pos != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Position: %s", pos))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", p.PeriodStart.Format(timesheet.DateLayout), p.PeriodEnd.Format(timesheet.DateLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Rate per day: %s", peso(p.Employee.DailyRate())))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(10, 7, "No", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 7, "Earnings", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Hours", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, line := range p.Earnings.OrderedLines() {
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 6, line.Component.Label(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", line.Hours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, peso(line.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(130, 7, "Total Gross Pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, peso(p.Earnings.TotalGrossPay), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	deductions := []payroll.DeductionLine{
		{Name: "SSS", Amount: p.Deductions.SSS},
		{Name: "PhilHealth", Amount: p.Deductions.PhilHealth},
		{Name: "Pag-IBIG", Amount: p.Deductions.PagIBIG},
		{Name: "Withholding Tax", Amount: p.Deductions.WithholdingTax},
	}
	deductions = append(deductions, p.Deductions.Other...)

	pdf.CellFormat(130, 7, "Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, d := range deductions {
		pdf.CellFormat(130, 6, d.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, peso(d.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(130, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, peso(p.Deductions.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Days worked: %d    Absences: %d", p.Earnings.DaysWorked, p.AbsentDays))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Adjustment: %s", peso(p.Adjustment)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Net Pay: %s", peso(p.NetPay)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrPayslipDocumentFailed, err)
	}
	return buf.Bytes(), nil
}

// RenderRegisterXLSX writes one row per payslip with every earnings bucket,
// statutory deductions and net pay.
func RenderRegisterXLSX(period timesheet.Period, payslips []payroll.Payslip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}

	header := []interface{}{"Employee Code", "Employee", "Position", "Days Worked"}
	for _, c := range payroll.Components {
		header = append(header, c.Label())
	}
	header = append(header, "Gross Pay", "SSS", "PhilHealth", "Pag-IBIG", "Withholding Tax", "Other Deductions", "Total Deductions", "Adjustment", "Net Pay")

	title := fmt.Sprintf("Payroll register %s to %s", period.Start.Format(timesheet.DateLayout), period.End.Format(timesheet.DateLayout))
	if err := f.SetCellValue(registerSheet, "A1", title); err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}
	if err := f.SetSheetRow(registerSheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}
	if err := f.SetCellStyle(registerSheet, "A3", lastCol+"3", bold); err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}
	_ = f.SetColWidth(registerSheet, "A", "C", 24)

	for i, p := range payslips {
		other := decimal.Zero
		for _, d := range p.Deductions.Other {
			other = other.Add(d.Amount)
		}

		row := []interface{}{p.Employee.EmployeeCode, p.Employee.FullName, p.Employee.PositionName(), p.Earnings.DaysWorked}
		for _, line := range p.Earnings.OrderedLines() {
			row = append(row, line.Amount.Round(2).InexactFloat64())
		}
		for _, d := range []decimal.Decimal{
			p.Earnings.TotalGrossPay, p.Deductions.SSS, p.Deductions.PhilHealth, p.Deductions.PagIBIG,
			p.Deductions.WithholdingTax, other, p.Deductions.Total, p.Adjustment, p.NetPay,
		} {
			row = append(row, d.Round(2).InexactFloat64())
		}

		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrRegisterExportFailed, err)
	}
	return buf.Bytes(), nil
}
