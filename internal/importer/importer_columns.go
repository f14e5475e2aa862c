package importer

import "strings"

type field int

const (
	fieldCode field = iota
	fieldSalary
	fieldPaidDays
	fieldWorkingDays
	fieldReimbursement
	fieldNote
)

// synonyms lists accepted header names per field in priority order.
// Headers are compared after lower-casing and dropping spaces, underscores and hyphens.
var synonyms = map[field][]string{
	fieldCode:          {"Emp Code", "Employee Code", "EmployeeCode", "Code"},
	fieldSalary:        {"Salary", "Gross Salary", "Gross"},
	fieldPaidDays:      {"Paid Days", "Present Days"},
	fieldWorkingDays:   {"Total Working Days", "Working Days"},
	fieldReimbursement: {"Reimbursement"},
	fieldNote:          {"Note", "Remarks"},
}

type columns map[field]int

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// resolveColumns maps each field to the index of the first matching synonym in the header.
func resolveColumns(header []string) columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	cols := columns{}
	for f, names := range synonyms {
		for _, name := range names {
			if i, ok := index[normalizeHeader(name)]; ok {
				cols[f] = i
				break
			}
		}
	}
	return cols
}

func (c columns) value(rec []string, f field) (string, bool) {
	i, ok := c[f]
	if !ok || i >= len(rec) {
		return "", false
	}
	v := strings.TrimSpace(rec[i])
	return v, v != ""
}
