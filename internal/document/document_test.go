package document

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderer_RenderPayslip(t *testing.T) {
	r := NewPDFRenderer("Acme Payroll")

	out, err := r.RenderPayslip(context.Background(), PayslipData{
		EmployeeCode:   "EMP001",
		EmployeeName:   "Asha Rao",
		Month:          3,
		Year:           2025,
		PaidDays:       30,
		Salary:         decimal.NewFromInt(50000),
		Basic:          decimal.NewFromInt(20000),
		HRA:            decimal.NewFromInt(10000),
		Conveyance:     decimal.NewFromInt(1600),
		OtherAllowance: decimal.NewFromInt(18400),
		PF:             decimal.NewFromInt(1800),
		NetSalary:      decimal.NewFromInt(48200),
		GeneratedAt:    time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFRenderer_RenderReport(t *testing.T) {
	r := NewPDFRenderer("Acme Payroll")

	t.Run("with rows and details", func(t *testing.T) {
		out, err := r.RenderReport(context.Background(), ReportData{
			Title:          "Monthly Payroll Report",
			Period:         "March 2025",
			Count:          1,
			Total:          decimal.NewFromInt(48200),
			Pending:        decimal.NewFromInt(48200),
			IncludeDetails: true,
			Rows: []ReportRow{
				{EmployeeCode: "EMP001", EmployeeName: "Asha Rao", Month: 3, Year: 2025, NetSalary: decimal.NewFromInt(48200), PaidDays: 30},
			},
		})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("empty period", func(t *testing.T) {
		out, err := r.RenderReport(context.Background(), ReportData{Title: "Yearly Payroll Report", Period: "2025"})
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.RenderReport(ctx, ReportData{Title: "Yearly Payroll Report", Period: "2025"})
		if err != nil {
			assert.True(t, errors.Is(err, ErrRenderTimeout))
		}
	})
}

func TestMoneyAndMonthName(t *testing.T) {
	r := NewPDFRenderer("Acme")

	assert.Equal(t, "Rs. 48,200.00", r.Money(decimal.NewFromInt(48200)))
	assert.Equal(t, "Rs. 1,250.50", FormatMoney(decimal.RequireFromString("1250.50")))
	assert.Equal(t, "March", MonthName(3))
	assert.Equal(t, "13", MonthName(13))
}
