// Package salary derives monthly pay components from a gross salary and attendance inputs.
package salary

import "github.com/shopspring/decimal"

const (
	StandardMonthDays = 30
	MaxPaidDays       = 31
)

var (
	basicRate        = decimal.RequireFromString("0.40")
	hraRate          = decimal.RequireFromString("0.50")
	pfRate           = decimal.RequireFromString("0.12")
	esicRate         = decimal.RequireFromString("0.0075")
	FixedConveyance  = decimal.NewFromInt(1600)
	PFCeiling        = decimal.NewFromInt(1800)
	ESICGrossCeiling = decimal.NewFromInt(21000)

	half      = decimal.RequireFromString("0.5")
	monthDays = decimal.NewFromInt(StandardMonthDays)
)

type Input struct {
	Gross         decimal.Decimal
	PaidDays      int
	DeductPF      bool
	DeductESIC    bool
	Reimbursement decimal.Decimal
}

type Breakdown struct {
	Basic            decimal.Decimal
	HRA              decimal.Decimal
	Conveyance       decimal.Decimal
	OtherAllowance   decimal.Decimal
	PF               decimal.Decimal
	ESIC             decimal.Decimal
	DayWiseDeduction decimal.Decimal
	NetSalary        decimal.Decimal
}

// Earnings is the sum of the four earning components before deductions.
func (b Breakdown) Earnings() decimal.Decimal {
	return b.Basic.Add(b.HRA).Add(b.Conveyance).Add(b.OtherAllowance)
}

// Deductions is pf + esic + day-wise deduction.
func (b Breakdown) Deductions() decimal.Decimal {
	return b.PF.Add(b.ESIC).Add(b.DayWiseDeduction)
}

// Calculate is pure: identical inputs always give identical outputs.
func Calculate(in Input) Breakdown {
	gross := in.Gross
	paidDays := ClampPaidDays(in.PaidDays)

	basic := Round(gross.Mul(basicRate))
	hra := Round(basic.Mul(hraRate))
	other := Round(gross.Sub(basic.Add(hra).Add(FixedConveyance)))

	pf := decimal.Zero
	if in.DeductPF {
		pf = decimal.Min(Round(basic.Mul(pfRate)), PFCeiling)
	}

	esic := decimal.Zero
	if in.DeductESIC && gross.LessThanOrEqual(ESICGrossCeiling) {
		esic = Round(gross.Mul(esicRate))
	}

	missing := decimal.NewFromInt(int64(StandardMonthDays - paidDays))
	dayWise := Round(gross.Mul(missing).Div(monthDays))

	b := Breakdown{
		Basic:            basic,
		HRA:              hra,
		Conveyance:       FixedConveyance,
		OtherAllowance:   other,
		PF:               pf,
		ESIC:             esic,
		DayWiseDeduction: dayWise,
	}
	b.NetSalary = Round(b.Earnings().Sub(b.Deductions()).Add(in.Reimbursement))
	return b
}

// Round rounds half up toward positive infinity, so -2.5 becomes -2.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

func ClampPaidDays(days int) int {
	if days < 0 {
		return 0
	}
	if days > MaxPaidDays {
		return MaxPaidDays
	}
	return days
}
