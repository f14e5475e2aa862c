// Package document renders payslips and payroll reports to PDF.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrRenderTimeout = errors.New("document rendering timed out")

var moneyPrinter = message.NewPrinter(language.English)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English month name, or the number itself when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", month)
	}
	return monthNames[month-1]
}

type PayslipData struct {
	EmployeeCode     string
	EmployeeName     string
	Department       string
	Designation      string
	Month            int
	Year             int
	PaidDays         int
	Leaves           int
	Salary           decimal.Decimal
	Basic            decimal.Decimal
	HRA              decimal.Decimal
	Conveyance       decimal.Decimal
	OtherAllowance   decimal.Decimal
	PF               decimal.Decimal
	ESIC             decimal.Decimal
	DayWiseDeduction decimal.Decimal
	NetSalary        decimal.Decimal
	IsPaid           bool
	GeneratedAt      time.Time
}

type ReportRow struct {
	EmployeeCode string
	EmployeeName string
	Department   string
	Month        int
	Year         int
	NetSalary    decimal.Decimal
	IsPaid       bool
	PaidDays     int
	Leaves       int
}

type ReportData struct {
	Title          string
	Period         string
	Count          int
	Total          decimal.Decimal
	Paid           decimal.Decimal
	Pending        decimal.Decimal
	IncludeDetails bool
	Rows           []ReportRow
	GeneratedAt    time.Time
}

type PDFRenderer struct {
	companyName string
	printer     *message.Printer
}

func NewPDFRenderer(companyName string) *PDFRenderer {
	return &PDFRenderer{
		companyName: companyName,
		printer:     message.NewPrinter(language.English),
	}
}

// FormatMoney formats an amount with thousands separators, e.g. "Rs. 48,200.00".
func FormatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("Rs. %.2f", d.InexactFloat64())
}

func (r *PDFRenderer) Money(d decimal.Decimal) string {
	return r.printer.Sprintf("Rs. %.2f", d.InexactFloat64())
}

func (r *PDFRenderer) RenderPayslip(ctx context.Context, p PayslipData) ([]byte, error) {
	return render(ctx, func(pdf *gofpdf.Fpdf) {
		r.header(pdf, fmt.Sprintf("Payslip for %s %d", MonthName(p.Month), p.Year))

		pdf.SetFont("Helvetica", "", 11)
		info := [][2]string{
			{"Employee Code", p.EmployeeCode},
			{"Employee Name", p.EmployeeName},
			{"Department", orNA(p.Department)},
			{"Designation", orNA(p.Designation)},
			{"Paid Days", fmt.Sprintf("%d", p.PaidDays)},
			{"Leaves", fmt.Sprintf("%d", p.Leaves)},
		}
		for _, kv := range info {
			pdf.CellFormat(50, 7, kv[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, kv[1], "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)

		earnings := [][2]string{
			{"Basic", r.Money(p.Basic)},
			{"HRA", r.Money(p.HRA)},
			{"Conveyance", r.Money(p.Conveyance)},
			{"Other Allowance", r.Money(p.OtherAllowance)},
		}
		deductions := [][2]string{
			{"PF", r.Money(p.PF)},
			{"ESIC", r.Money(p.ESIC)},
			{"Day-wise Deduction", r.Money(p.DayWiseDeduction)},
			{"", ""},
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(46, 125, 50)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(95, 8, "Earnings", "1", 0, "C", true, 0, "")
		pdf.CellFormat(95, 8, "Deductions", "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
		for i := range earnings {
			pdf.CellFormat(55, 7, earnings[i][0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, earnings[i][1], "1", 0, "R", false, 0, "")
			pdf.CellFormat(55, 7, deductions[i][0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, deductions[i][1], "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(150, 9, "Net Salary", "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 9, r.Money(p.NetSalary), "1", 1, "R", false, 0, "")

		status := "Pending"
		if p.IsPaid {
			status = "Paid"
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, "Payment status: "+status, "", 1, "L", false, 0, "")

		r.footer(pdf, p.GeneratedAt)
	})
}

func (r *PDFRenderer) RenderReport(ctx context.Context, rep ReportData) ([]byte, error) {
	return render(ctx, func(pdf *gofpdf.Fpdf) {
		r.header(pdf, rep.Title+" - "+rep.Period)

		pdf.SetFont("Helvetica", "B", 11)
		summary := [][2]string{
			{"Total Payslips", fmt.Sprintf("%d", rep.Count)},
			{"Total Salary", r.Money(rep.Total)},
			{"Paid Amount", r.Money(rep.Paid)},
			{"Pending Amount", r.Money(rep.Pending)},
		}
		for _, kv := range summary {
			pdf.CellFormat(47.5, 7, kv[0], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 11)
		for _, kv := range summary {
			pdf.CellFormat(47.5, 7, kv[1], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(10)

		if len(rep.Rows) == 0 {
			pdf.SetFont("Helvetica", "I", 11)
			pdf.CellFormat(0, 10, "No payslips found for the selected period.", "", 1, "C", false, 0, "")
			r.footer(pdf, rep.GeneratedAt)
			return
		}

		cols := []struct {
			title string
			width float64
		}{
			{"Code", 22}, {"Name", 40}, {"Department", 30}, {"Period", 30}, {"Net Salary", 35}, {"Status", 18},
		}
		if rep.IncludeDetails {
			cols[1].width = 34
			cols[2].width = 24
			cols = append(cols, struct {
				title string
				width float64
			}{"Paid", 12}, struct {
				title string
				width float64
			}{"Leaves", 12})
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(46, 125, 50)
		pdf.SetTextColor(255, 255, 255)
		for _, c := range cols {
			pdf.CellFormat(c.width, 7, c.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		for _, row := range rep.Rows {
			status := "Pending"
			if row.IsPaid {
				status = "Paid"
			}
			values := []string{
				row.EmployeeCode,
				row.EmployeeName,
				orNA(row.Department),
				fmt.Sprintf("%s %d", MonthName(row.Month), row.Year),
				r.Money(row.NetSalary),
				status,
			}
			if rep.IncludeDetails {
				values = append(values, fmt.Sprintf("%d", row.PaidDays), fmt.Sprintf("%d", row.Leaves))
			}
			for i, c := range cols {
				pdf.CellFormat(c.width, 6, values[i], "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}

		r.footer(pdf, rep.GeneratedAt)
	})
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(46, 125, 50)
	pdf.CellFormat(0, 10, r.companyName, "", 1, "C", false, 0, "")
	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)
}

func (r *PDFRenderer) footer(pdf *gofpdf.Fpdf, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, "Generated on "+at.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "This is a computer generated document.", "", 1, "C", false, 0, "")
}

// render runs draw off the caller's goroutine so ctx can bound it.
func render(ctx context.Context, draw func(pdf *gofpdf.Fpdf)) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.SetMargins(10, 10, 10)
		pdf.AddPage()
		draw(pdf)

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			done <- result{err: fmt.Errorf("write pdf: %w", err)}
			return
		}
		done <- result{data: buf.Bytes()}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrRenderTimeout, ctx.Err())
	case res := <-done:
		return res.data, res.err
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
