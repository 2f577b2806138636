package payroll

import (
	"testing"

	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertPeso(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

func TestSalaryCredit(t *testing.T) {
	cases := []struct {
		salary string
		want   string
	}{
		{"0", "5000.00"},
		{"4999.99", "5000.00"},
		{"5249.99", "5000.00"},
		{"5250.00", "5500.00"},
		{"5249.994", "5000.00"},
		{"5249.995", "5500.00"},
		{"17600", "17500.00"},
		{"30000", "30000.00"},
		{"30000.01", "30500.00"},
		{"34999.99", "33500.00"},
		{"35000", "33500.00"},
		{"35000.01", "35000.00"},
		{"120000", "35000.00"},
	}

	for _, tc := range cases {
		t.Run(tc.salary, func(t *testing.T) {
			assertPeso(t, tc.want, SalaryCredit(d(tc.salary)))
		})
	}
}

func TestSSS(t *testing.T) {
	got := SSS(d("5250"))
	assertPeso(t, "5500.00", got.MonthlySalaryCredit)
	assertPeso(t, "275.00", got.EmployeeShare)
	assertPeso(t, "550.00", got.EmployerShare)
	assertPeso(t, "825.00", got.Total)

	capped := SSS(d("90000"))
	assertPeso(t, "1750.00", capped.EmployeeShare)
	assertPeso(t, "5250.00", capped.Total)
}

func TestPhilHealthAndPagIBIG(t *testing.T) {
	ph := PhilHealth(d("22000"))
	assertPeso(t, "550.00", ph.EmployeeShare)
	assertPeso(t, "550.00", ph.EmployerShare)
	assertPeso(t, "1100.00", ph.Total)

	assertPeso(t, "0.00", PhilHealth(d("-100")).Total)

	pi := PagIBIG()
	assertPeso(t, "100.00", pi.EmployeeShare)
	assertPeso(t, "100.00", pi.EmployerShare)
	assertPeso(t, "200.00", pi.Total)
}

func TestWithholdingTax(t *testing.T) {
	cases := []struct {
		income string
		want   string
	}{
		{"-5", "0.00"},
		{"0", "0.00"},
		{"20833.00", "0.00"},
		{"20833.01", "0.00"},
		{"33333.00", "1875.00"},
		{"33333.01", "1875.00"},
		{"50000", "5208.40"},
		{"100000", "16875.05"},
		{"1000000", "300208.35"},
	}

	for _, tc := range cases {
		t.Run(tc.income, func(t *testing.T) {
			assertPeso(t, tc.want, WithholdingTax(d(tc.income)))
		})
	}
}

func TestContributionsFor(t *testing.T) {
	c := ContributionsFor(d("1000"), 22)

	assertPeso(t, "22000.00", c.MonthlySalary)
	assertPeso(t, "22000.00", c.SSS.MonthlySalaryCredit)
	assertPeso(t, "550.00", c.BiMonthly.SSS)
	assertPeso(t, "275.00", c.BiMonthly.PhilHealth)
	assertPeso(t, "50.00", c.BiMonthly.PagIBIG)
	assertPeso(t, "875.00", c.BiMonthly.Total)

	t.Run("non-positive working days falls back to 22", func(t *testing.T) {
		assertPeso(t, "22000.00", ContributionsFor(d("1000"), 0).MonthlySalary)
	})
}

func TestSanitizeAmount(t *testing.T) {
	assert.True(t, SanitizeAmount(-1).IsZero())
	assertPeso(t, "12.50", SanitizeAmount(12.5))
}

func TestDeductionCalculator(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := NewDeductionCalculator(0, "")
		assert.Equal(t, DefaultWorkingDaysPerMonth, c.WorkingDaysPerMonth())
		assertPeso(t, "0.00", c.PeriodWithholdingTax(d("20000")))
	})

	t.Run("monthly equivalent", func(t *testing.T) {
		c := NewDeductionCalculator(22, payroll.WithholdingMonthlyEquivalent)
		assertPeso(t, "1604.20", c.PeriodWithholdingTax(d("20000")))
	})

	t.Run("custom month length", func(t *testing.T) {
		c := NewDeductionCalculator(26, payroll.WithholdingDirect)
		assertPeso(t, "26000.00", c.Contributions(d("1000")).MonthlySalary)
	})
}
