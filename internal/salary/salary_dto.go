package salary

import "github.com/shopspring/decimal"

type BreakdownResponse struct {
	Basic            float64 `json:"basic"`
	HRA              float64 `json:"hra"`
	Conveyance       float64 `json:"conveyance"`
	OtherAllowance   float64 `json:"other_allowance"`
	PF               float64 `json:"pf"`
	ESIC             float64 `json:"esic"`
	DayWiseDeduction float64 `json:"day_wise_deduction"`
	NetSalary        float64 `json:"net_salary"`
	TotalEarnings    float64 `json:"total_earnings"`
	TotalDeductions  float64 `json:"total_deductions"`
}

func NewBreakdownResponse(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Basic:            b.Basic.InexactFloat64(),
		HRA:              b.HRA.InexactFloat64(),
		Conveyance:       b.Conveyance.InexactFloat64(),
		OtherAllowance:   b.OtherAllowance.InexactFloat64(),
		PF:               b.PF.InexactFloat64(),
		ESIC:             b.ESIC.InexactFloat64(),
		DayWiseDeduction: b.DayWiseDeduction.InexactFloat64(),
		NetSalary:        b.NetSalary.InexactFloat64(),
		TotalEarnings:    b.Earnings().InexactFloat64(),
		TotalDeductions:  b.Deductions().InexactFloat64(),
	}
}

// Amount converts a request amount to a two-place decimal.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
