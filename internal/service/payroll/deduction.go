package payroll

import (
	"math"

	"github.com/greenpasture/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DefaultWorkingDaysPerMonth converts a daily rate into a monthly salary.
const DefaultWorkingDaysPerMonth = 22

var (
	sssMinimumCredit = decimal.NewFromInt(5000)
	sssMaximumCredit = decimal.NewFromInt(35000)
	sssEmployeeRate  = decimal.RequireFromString("0.05")
	sssEmployerRate  = decimal.RequireFromString("0.10")
	sssTotalRate     = decimal.RequireFromString("0.15")

	pagIBIGMonthly = decimal.NewFromInt(200)

	philHealthEmployeeRate = decimal.RequireFromString("0.025")
	philHealthEmployerRate = decimal.RequireFromString("0.025")
	philHealthTotalRate    = decimal.RequireFromString("0.05")

	two = decimal.NewFromInt(2)
)

type sssBracket struct {
	min, max string
	msc      int64
}

// SSS monthly salary credit table, 2025 schedule.
var sssBracketTable = []sssBracket{
	{"5000", "5249.99", 5000},
	{"5250", "5749.99", 5500},
	{"5750", "6249.99", 6000},
	{"6250", "6749.99", 6500},
	{"6750", "7249.99", 7000},
	{"7250", "7749.99", 7500},
	{"7750", "8249.99", 8000},
	{"8250", "8749.99", 8500},
	{"8750", "9249.99", 9000},
	{"9250", "9749.99", 9500},
	{"9750", "10249.99", 10000},
	{"10250", "10749.99", 10500},
	{"10750", "11249.99", 11000},
	{"11250", "11749.99", 11500},
	{"11750", "12249.99", 12000},
	{"12250", "12749.99", 12500},
	{"12750", "13249.99", 13000},
	{"13250", "13749.99", 13500},
	{"13750", "14249.99", 14000},
	{"14250", "14749.99", 14500},
	{"14750", "15249.99", 15000},
	{"15250", "15749.99", 15500},
	{"15750", "16249.99", 16000},
	{"16250", "16749.99", 16500},
	{"16750", "17249.99", 17000},
	{"17250", "17749.99", 17500},
	{"17750", "18249.99", 18000},
	{"18250", "18749.99", 18500},
	{"18750", "19249.99", 19000},
	{"19250", "19749.99", 19500},
	{"19750", "20249.99", 20000},
	{"20250", "20749.99", 20500},
	{"20750", "21249.99", 21000},
	{"21250", "21749.99", 21500},
	{"21750", "22249.99", 22000},
	{"22250", "22749.99", 22500},
	{"22750", "23249.99", 23000},
	{"23250", "23749.99", 23500},
	{"23750", "24249.99", 24000},
	{"24250", "24749.99", 24500},
	{"24750", "25249.99", 25000},
	{"25250", "25749.99", 25500},
	{"25750", "26249.99", 26000},
	{"26250", "26749.99", 26500},
	{"26750", "27249.99", 27000},
	{"27250", "27749.99", 27500},
	{"27750", "28249.99", 28000},
	{"28250", "28749.99", 28500},
	{"28750", "29249.99", 29000},
	{"29250", "29749.99", 29500},
	{"29750", "30000", 30000},
	{"30000.01", "30749.99", 30500},
	{"30750", "31499.99", 31000},
	{"31500", "32249.99", 31500},
	{"32250", "32999.99", 32000},
	{"33000", "33749.99", 32500},
	{"33750", "34499.99", 33000},
	{"34500", "35249.99", 33500},
	{"35250", "999999", 35000},
}

type salaryCredit struct {
	min, max, msc decimal.Decimal
}

var sssCredits = func() []salaryCredit {
	credits := make([]salaryCredit, 0, len(sssBracketTable))
	for _, b := range sssBracketTable {
		credits = append(credits, salaryCredit{
			min: decimal.RequireFromString(b.min),
			max: decimal.RequireFromString(b.max),
			msc: decimal.NewFromInt(b.msc),
		})
	}
	return credits
}()

type taxBracket struct {
	ceiling decimal.Decimal // inclusive; zero on the open top bracket
	base    decimal.Decimal
	rate    decimal.Decimal
	over    decimal.Decimal
}

// Monthly withholding tax table (TRAIN law).
var taxBrackets = []taxBracket{
	{ceiling: decimal.NewFromInt(20833), base: decimal.Zero, rate: decimal.Zero, over: decimal.Zero},
	{ceiling: decimal.NewFromInt(33333), base: decimal.Zero, rate: decimal.RequireFromString("0.15"), over: decimal.NewFromInt(20833)},
	{ceiling: decimal.NewFromInt(66667), base: decimal.NewFromInt(1875), rate: decimal.RequireFromString("0.20"), over: decimal.NewFromInt(33333)},
	{ceiling: decimal.NewFromInt(166667), base: decimal.RequireFromString("8541.80"), rate: decimal.RequireFromString("0.25"), over: decimal.NewFromInt(66667)},
	{ceiling: decimal.NewFromInt(666667), base: decimal.RequireFromString("33541.80"), rate: decimal.RequireFromString("0.30"), over: decimal.NewFromInt(166667)},
	{ceiling: decimal.Zero, base: decimal.RequireFromString("183541.80"), rate: decimal.RequireFromString("0.35"), over: decimal.NewFromInt(666667)},
}

// roundMoney rounds to centavos, halves away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SanitizeAmount converts a float input, mapping NaN, infinities and negatives to zero.
func SanitizeAmount(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// MonthlySalary is dailyRate x workingDaysPerMonth. A non-positive day count uses 22.
func MonthlySalary(dailyRate decimal.Decimal, workingDaysPerMonth int) decimal.Decimal {
	if workingDaysPerMonth <= 0 {
		workingDaysPerMonth = DefaultWorkingDaysPerMonth
	}
	return nonNegative(dailyRate).Mul(decimal.NewFromInt(int64(workingDaysPerMonth)))
}

// SalaryCredit returns the SSS monthly salary credit for a monthly salary.
func SalaryCredit(monthlySalary decimal.Decimal) decimal.Decimal {
	s := roundMoney(monthlySalary)
	if s.GreaterThan(sssMaximumCredit) {
		return sssMaximumCredit
	}
	if s.LessThan(sssMinimumCredit) {
		return sssMinimumCredit
	}
	for _, c := range sssCredits {
		if s.GreaterThanOrEqual(c.min) && s.LessThanOrEqual(c.max) {
			return c.msc
		}
	}
	return sssCredits[0].msc
}

func SSS(monthlySalary decimal.Decimal) payroll.SSSContribution {
	msc := SalaryCredit(monthlySalary)
	return payroll.SSSContribution{
		Contribution: payroll.Contribution{
			EmployeeShare: roundMoney(msc.Mul(sssEmployeeRate)),
			EmployerShare: roundMoney(msc.Mul(sssEmployerRate)),
			Total:         roundMoney(msc.Mul(sssTotalRate)),
		},
		MonthlySalaryCredit: msc,
	}
}

// PagIBIG is a flat monthly amount split evenly.
func PagIBIG() payroll.Contribution {
	half := roundMoney(pagIBIGMonthly.Div(two))
	return payroll.Contribution{
		EmployeeShare: half,
		EmployerShare: half,
		Total:         roundMoney(pagIBIGMonthly),
	}
}

func PhilHealth(monthlySalary decimal.Decimal) payroll.Contribution {
	s := nonNegative(monthlySalary)
	return payroll.Contribution{
		EmployeeShare: roundMoney(s.Mul(philHealthEmployeeRate)),
		EmployerShare: roundMoney(s.Mul(philHealthEmployerRate)),
		Total:         roundMoney(s.Mul(philHealthTotalRate)),
	}
}

// WithholdingTax applies the monthly table to taxableIncome.
func WithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal {
	income := nonNegative(taxableIncome)
	for _, b := range taxBrackets {
		if b.ceiling.IsZero() || income.LessThanOrEqual(b.ceiling) {
			if b.rate.IsZero() {
				return roundMoney(b.base)
			}
			return roundMoney(b.base.Add(income.Sub(b.over).Mul(b.rate)))
		}
	}
	return decimal.Zero
}

// ContributionsFor computes monthly contributions and the semi-monthly employee shares.
func ContributionsFor(dailyRate decimal.Decimal, workingDaysPerMonth int) payroll.Contributions {
	monthly := MonthlySalary(dailyRate, workingDaysPerMonth)
	sss := SSS(monthly)
	pagIBIG := PagIBIG()
	philHealth := PhilHealth(monthly)

	biMonthly := payroll.BiMonthlyShares{
		SSS:        roundMoney(sss.EmployeeShare.Div(two)),
		PhilHealth: roundMoney(philHealth.EmployeeShare.Div(two)),
		PagIBIG:    roundMoney(pagIBIG.EmployeeShare.Div(two)),
	}
	biMonthly.Total = biMonthly.SSS.Add(biMonthly.PhilHealth).Add(biMonthly.PagIBIG)

	return payroll.Contributions{
		MonthlySalary: monthly,
		SSS:           sss,
		PhilHealth:    philHealth,
		PagIBIG:       pagIBIG,
		BiMonthly:     biMonthly,
	}
}

// DeductionCalculator applies the configured month length and withholding mode.
type DeductionCalculator struct {
	workingDaysPerMonth int
	mode                payroll.WithholdingMode
}

func NewDeductionCalculator(workingDaysPerMonth int, mode payroll.WithholdingMode) *DeductionCalculator {
	if workingDaysPerMonth <= 0 {
		workingDaysPerMonth = DefaultWorkingDaysPerMonth
	}
	if !mode.IsValid() {
		mode = payroll.WithholdingDirect
	}
	return &DeductionCalculator{workingDaysPerMonth: workingDaysPerMonth, mode: mode}
}

func (c *DeductionCalculator) WorkingDaysPerMonth() int {
	return c.workingDaysPerMonth
}

func (c *DeductionCalculator) Contributions(dailyRate decimal.Decimal) payroll.Contributions {
	return ContributionsFor(dailyRate, c.workingDaysPerMonth)
}

// PeriodWithholdingTax returns the tax on one payroll period's taxable income.
func (c *DeductionCalculator) PeriodWithholdingTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if c.mode == payroll.WithholdingMonthlyEquivalent {
		return roundMoney(WithholdingTax(nonNegative(taxableIncome).Mul(two)).Div(two))
	}
	return WithholdingTax(taxableIncome)
}
