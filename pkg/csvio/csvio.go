// Package csvio reads staff and shift definitions from CSV and writes rosters back out.
//
// List-valued columns (days, staff_categories) separate values with "|".
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

// ErrNotFinite is returned for NaN and infinite numbers.
var ErrNotFinite = errors.New("not a finite number")

// RowError locates a malformed value.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// table is a CSV file indexed by header name.
type table struct {
	cols    map[string]int
	records [][]string
}

func readTable(r io.Reader, required ...string) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return &table{cols: cols, records: records}, nil
}

// get returns the trimmed value of column name in record, or "" when absent.
func (t *table) get(record []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ReadStaff parses name,category,fte rows. A blank fte means full time.
func ReadStaff(r io.Reader) ([]models.Staff, error) {
	t, err := readTable(r, "name", "category")
	if err != nil {
		return nil, err
	}

	staff := make([]models.Staff, 0, len(t.records))
	for i, record := range t.records {
		name := t.get(record, "name")
		if name == "" {
			continue
		}
		fte := 1.0
		if v := t.get(record, "fte"); v != "" {
			if fte, err = parseFinite(v); err != nil {
				return nil, &RowError{Line: i + 2, Column: "fte", Err: err}
			}
		}
		staff = append(staff, models.Staff{
			Name:     name,
			Category: t.get(record, "category"),
			FTE:      fte,
		})
	}
	return staff, nil
}

func parseFinite(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return f, nil
}

// ReadShifts parses
// name,category,order,days,start_time,end_time,duration,staff_categories rows.
func ReadShifts(r io.Reader) ([]models.ShiftDefinition, error) {
	t, err := readTable(r, "name", "days", "duration", "staff_categories")
	if err != nil {
		return nil, err
	}

	shifts := make([]models.ShiftDefinition, 0, len(t.records))
	for i, record := range t.records {
		name := t.get(record, "name")
		if name == "" {
			continue
		}
		line := i + 2

		order := 0
		if v := t.get(record, "order"); v != "" {
			if order, err = strconv.Atoi(v); err != nil {
				return nil, &RowError{Line: line, Column: "order", Err: err}
			}
		}
		duration, err := parseFinite(t.get(record, "duration"))
		if err != nil {
			return nil, &RowError{Line: line, Column: "duration", Err: err}
		}

		shifts = append(shifts, models.ShiftDefinition{
			Name:            name,
			Category:        t.get(record, "category"),
			Order:           order,
			Days:            splitList(t.get(record, "days")),
			StartTime:       t.get(record, "start_time"),
			EndTime:         t.get(record, "end_time"),
			Duration:        duration,
			StaffCategories: splitList(t.get(record, "staff_categories")),
		})
	}
	return shifts, nil
}

// WriteRoster writes one row per staff member per shift entry. Vacant shifts
// get a single row with an empty staff column.
func WriteRoster(w io.Writer, r *models.Roster) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "weekday", "holiday", "shift", "staff", "source", "duration_hours"}); err != nil {
		return err
	}

	for _, d := range r.Days {
		holiday := ""
		if d.Holiday {
			holiday = d.HolidayName
			if holiday == "" {
				holiday = models.LabelPH
			}
		}
		for _, a := range d.Shifts {
			staff := a.Staff
			if len(staff) == 0 {
				staff = []string{""}
			}
			for _, name := range staff {
				if err := writer.Write([]string{
					d.Date.String(),
					d.Weekday,
					holiday,
					a.Shift,
					name,
					string(a.Source),
					fmt.Sprintf("%.2f", a.Duration),
				}); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
