package models

// Weekday and holiday labels used in shift day sets.
const (
	LabelMon = "Mon"
	LabelTue = "Tue"
	LabelWed = "Wed"
	LabelThu = "Thu"
	LabelFri = "Fri"
	LabelSat = "Sat"
	LabelSun = "Sun"
	// LabelPH replaces the weekday label on public holidays when deciding which shifts occur.
	LabelPH = "PH"
)

// Staff represents a person who can be rostered
type Staff struct {
	Name     string  `json:"name" yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	FTE      float64 `json:"fte" yaml:"fte"`
}

// ShiftDefinition describes a recurring duty shift
type ShiftDefinition struct {
	Name            string   `json:"name" yaml:"name"`
	Category        string   `json:"category,omitempty" yaml:"category,omitempty"`
	Order           int      `json:"order" yaml:"order"`
	Days            []string `json:"days" yaml:"days"`
	StartTime       string   `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime         string   `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Duration        float64  `json:"duration" yaml:"duration"`
	StaffCategories []string `json:"staff_categories" yaml:"staff_categories"`
}

// OccursOn reports whether the shift's day set contains label
func (s ShiftDefinition) OccursOn(label string) bool {
	return contains(s.Days, label)
}

// Accepts reports whether a staff category is eligible for the shift
func (s ShiftDefinition) Accepts(category string) bool {
	return contains(s.StaffCategories, category)
}

// FixedAssignment pins a staff member to a shift on the given weekdays
type FixedAssignment struct {
	Staff string   `json:"staff" yaml:"staff"`
	Shift string   `json:"shift" yaml:"shift"`
	Days  []string `json:"days" yaml:"days"`
}

// ShiftException keeps a staff member off a shift on the given weekdays
type ShiftException struct {
	Staff string   `json:"staff" yaml:"staff"`
	Shift string   `json:"shift" yaml:"shift"`
	Days  []string `json:"days" yaml:"days"`
}

// RuleKind selects what a continuity rule is keyed by
type RuleKind string

const (
	RuleShiftGroup RuleKind = "Shift"
	RuleStaffGroup RuleKind = "Staff"
)

// ContinuityRule keeps a staff member on a group of shifts for a number of
// consecutive days, then rests them for GapDays calendar days.
type ContinuityRule struct {
	Kind            RuleKind `json:"type" yaml:"type"`
	Shifts          []string `json:"shifts,omitempty" yaml:"shifts,omitempty"`
	StaffMembers    []string `json:"staff_members,omitempty" yaml:"staff_members,omitempty"`
	ConsecutiveDays int      `json:"consecutive_days" yaml:"consecutive_days"`
	GapDays         int      `json:"gap_days" yaml:"gap_days"`
}

// Governs reports whether the rule lists the shift by name
func (r ContinuityRule) Governs(shift string) bool {
	return contains(r.Shifts, shift)
}

// LeaveInterval is approved leave, inclusive on both ends
type LeaveInterval struct {
	Staff string `json:"staff" yaml:"staff"`
	From  Date   `json:"from" yaml:"from"`
	To    Date   `json:"to" yaml:"to"`
}

// Covers reports whether d falls inside the interval
func (l LeaveInterval) Covers(d Date) bool {
	return !d.Before(l.From) && !d.After(l.To)
}

// PublicHoliday marks a calendar date as a holiday
type PublicHoliday struct {
	Date Date   `json:"date" yaml:"date"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RosterConfig is the configuration snapshot a roster is generated from
type RosterConfig struct {
	Staff            []Staff           `json:"staff" yaml:"staff"`
	Shifts           []ShiftDefinition `json:"shifts" yaml:"shifts"`
	FixedAssignments []FixedAssignment `json:"fixed_assignments,omitempty" yaml:"fixed_assignments,omitempty"`
	ShiftExceptions  []ShiftException  `json:"shift_exceptions,omitempty" yaml:"shift_exceptions,omitempty"`
	Rules            []ContinuityRule  `json:"rules,omitempty" yaml:"rules,omitempty"`
	Leaves           []LeaveInterval   `json:"leaves,omitempty" yaml:"leaves,omitempty"`
	PublicHolidays   []PublicHoliday   `json:"public_holidays,omitempty" yaml:"public_holidays,omitempty"`
}

// RosterRequest is the data structure for a generation run
type RosterRequest struct {
	StartDate Date         `json:"start_date" yaml:"start_date"`
	EndDate   Date         `json:"end_date" yaml:"end_date"`
	Seed      *int64       `json:"seed,omitempty" yaml:"seed,omitempty"`
	Config    RosterConfig `json:"config" yaml:"config"`
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
