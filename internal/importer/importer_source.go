package importer

import (
	"encoding/csv"
	"io"
	"strings"

	importererrors "go-payroll/internal/importer/errors"
)

// RowSource yields a header once, then one record per call until io.EOF.
type RowSource interface {
	Header() ([]string, error)
	Next() ([]string, error)
}

type csvSource struct {
	r      *csv.Reader
	header []string
	read   bool
}

func NewCSVSource(r io.Reader) RowSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	return &csvSource{r: cr}
}

func (s *csvSource) Header() ([]string, error) {
	if s.read {
		return s.header, nil
	}
	s.read = true
	h, err := s.r.Read()
	if err != nil {
		return nil, importererrors.ErrUnreadableFile
	}
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], "\ufeff")
	}
	s.header = h
	return h, nil
}

func (s *csvSource) Next() ([]string, error) {
	if !s.read {
		if _, err := s.Header(); err != nil {
			return nil, err
		}
	}
	for {
		rec, err := s.r.Read()
		if err != nil {
			return nil, err
		}
		if blank(rec) {
			continue
		}
		return rec, nil
	}
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// SliceSource serves rows already held in memory, keyed by header name.
type SliceSource struct {
	Columns []string
	Rows    []map[string]string
	pos     int
}

func (s *SliceSource) Header() ([]string, error) {
	return s.Columns, nil
}

func (s *SliceSource) Next() ([]string, error) {
	if s.pos >= len(s.Rows) {
		return nil, io.EOF
	}
	row := s.Rows[s.pos]
	s.pos++
	rec := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		rec[i] = row[c]
	}
	return rec, nil
}
