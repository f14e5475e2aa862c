package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   columns
	}{
		{
			name:   "display headers",
			header: []string{"Emp Code", "Name", "Salary", "Paid Days"},
			want:   columns{fieldCode: 0, fieldSalary: 2, fieldPaidDays: 3},
		},
		{
			name:   "camel case",
			header: []string{"employeeCode", "presentDays", "reimbursement"},
			want:   columns{fieldCode: 0, fieldPaidDays: 1, fieldReimbursement: 2},
		},
		{
			name:   "snake case with padding",
			header: []string{" employee_code ", "gross_salary", "total_working_days", "remarks"},
			want:   columns{fieldCode: 0, fieldSalary: 1, fieldWorkingDays: 2, fieldNote: 3},
		},
		{
			name:   "earlier synonym wins",
			header: []string{"Code", "Emp Code", "Present Days", "Paid Days"},
			want:   columns{fieldCode: 1, fieldPaidDays: 3},
		},
		{
			name:   "no known columns",
			header: []string{"foo", "bar"},
			want:   columns{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveColumns(tt.header))
		})
	}
}

func TestColumnsValue(t *testing.T) {
	cols := columns{fieldCode: 0, fieldSalary: 3}
	rec := []string{" EMP001 ", "x", ""}

	v, ok := cols.value(rec, fieldCode)
	assert.True(t, ok)
	assert.Equal(t, "EMP001", v)

	_, ok = cols.value(rec, fieldSalary)
	assert.False(t, ok)

	_, ok = cols.value(rec, fieldNote)
	assert.False(t, ok)
}
