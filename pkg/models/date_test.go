package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDate_Calendar(t *testing.T) {
	d := MustParseDate("2024-02-28")

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -1, d.DaysUntil(d.AddDays(-1)))
	assert.Equal(t, LabelWed, d.WeekdayLabel())
	assert.Equal(t, LabelSun, NewDate(2025, time.January, 12).WeekdayLabel())
	assert.True(t, d.Equal(DateOf(time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC))))
}

func TestDate_DaysUntilAcrossYears(t *testing.T) {
	start := MustParseDate("2024-01-01")
	assert.Equal(t, 366, start.DaysUntil(MustParseDate("2025-01-01")))

	first, last := MustParseDate("0001-01-02"), MustParseDate("9999-12-31")
	assert.Equal(t, 3652057, first.DaysUntil(last))
	assert.Equal(t, -3652057, last.DaysUntil(first))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2025-13-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"2025-13-01"`)
}

func TestDate_JSON(t *testing.T) {
	var req RosterRequest
	err := json.Unmarshal([]byte(`{"start_date":"2025-01-06","end_date":null,"config":{"staff":[],"shifts":[]}}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-06", req.StartDate.String())
	assert.True(t, req.EndDate.IsZero())

	b, err := json.Marshal(PublicHoliday{Date: req.StartDate, Name: "Test"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-01-06","name":"Test"}`, string(b))

	b, err = json.Marshal(LeaveInterval{Staff: "A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"staff":"A","from":null,"to":null}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"start_date":"06/01/2025"}`), &req))
}

func TestDate_YAML(t *testing.T) {
	src := `
staff:
  - name: Alice
    category: AT-1
    fte: 1
shifts:
  - name: Night
    order: 3
    days: [Mon, Tue, PH]
    duration: 11
    staff_categories: [AT-1]
rules:
  - type: Shift
    shifts: [Night]
    consecutive_days: 3
    gap_days: 3
leaves:
  - staff: Alice
    from: 2025-02-03
    to: 2025-02-07
public_holidays:
  - date: 2025-01-27
    name: Australia Day
`
	var cfg RosterConfig
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	require.Len(t, cfg.Leaves, 1)
	assert.True(t, cfg.Leaves[0].Covers(MustParseDate("2025-02-07")))
	assert.False(t, cfg.Leaves[0].Covers(MustParseDate("2025-02-08")))
	assert.Equal(t, RuleShiftGroup, cfg.Rules[0].Kind)
	assert.True(t, cfg.Rules[0].Governs("Night"))
	assert.True(t, cfg.Shifts[0].OccursOn(LabelPH))
	assert.Equal(t, "2025-01-27", cfg.PublicHolidays[0].Date.String())

	out, err := yaml.Marshal(cfg.PublicHolidays[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), "2025-01-27")

	var back PublicHoliday
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.True(t, back.Date.Equal(cfg.PublicHolidays[0].Date))
}
