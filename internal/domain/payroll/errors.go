package payroll

import "errors"

var (
	ErrInvalidWithholdingMode = errors.New("invalid withholding mode")
	ErrRegisterExportFailed   = errors.New("failed to build payroll register")
	ErrPayslipDocumentFailed  = errors.New("failed to build payslip document")
	ErrUnsupportedPayPeriod   = errors.New("pay period is not a half month")
)
