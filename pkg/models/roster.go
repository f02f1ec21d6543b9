package models

// AssignmentSource names the resolver that filled a shift
type AssignmentSource string

const (
	SourceLeave    AssignmentSource = "leave"
	SourceFixed    AssignmentSource = "fixed"
	SourceRule     AssignmentSource = "rule"
	SourceFallback AssignmentSource = "fallback"
	SourceUnfilled AssignmentSource = "unfilled"
)

// ShiftAssignment is one shift entry in a day's roster
type ShiftAssignment struct {
	Shift     string           `json:"shift"`
	Order     int              `json:"order"`
	StartTime string           `json:"start_time,omitempty"`
	EndTime   string           `json:"end_time,omitempty"`
	Duration  float64          `json:"duration"`
	Staff     []string         `json:"staff"`
	Source    AssignmentSource `json:"source"`
	RuleIndex *int             `json:"rule_index,omitempty"`
}

// Vacant reports whether nobody was assigned
func (a ShiftAssignment) Vacant() bool {
	return len(a.Staff) == 0
}

// DayRoster holds every shift entry resolved for one date
type DayRoster struct {
	Date        Date              `json:"date"`
	Weekday     string            `json:"weekday"`
	Holiday     bool              `json:"holiday"`
	HolidayName string            `json:"holiday_name,omitempty"`
	Shifts      []ShiftAssignment `json:"shifts"`
}

// StaffOn returns the staff assigned to the named shift, if it occurs that day
func (d DayRoster) StaffOn(shift string) ([]string, bool) {
	for _, a := range d.Shifts {
		if a.Shift == shift {
			return a.Staff, true
		}
	}
	return nil, false
}

// Vacancy is an applicable shift nobody could fill
type Vacancy struct {
	Date  Date   `json:"date"`
	Shift string `json:"shift"`
}

// Conflict explains why a vacancy could not be filled
type Conflict struct {
	Date    Date     `json:"date"`
	Shift   string   `json:"shift"`
	Reasons []string `json:"reasons"`
}

// WarningKind classifies a non-fatal configuration problem
type WarningKind string

const (
	WarningDanglingReference WarningKind = "dangling_reference"
)

// Warning is a recoverable configuration problem found during a run
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Roster is the output calendar of a generation run
type Roster struct {
	ID            string                    `json:"id"`
	StartDate     Date                      `json:"start_date"`
	EndDate       Date                      `json:"end_date"`
	Seed          int64                     `json:"seed"`
	Days          []DayRoster               `json:"days"`
	Hours         map[string]float64        `json:"hours"`
	ShiftCounts   map[string]map[string]int `json:"shift_counts"`
	Vacancies     []Vacancy                 `json:"vacancies"`
	Conflicts     []Conflict                `json:"conflicts,omitempty"`
	Warnings      []Warning                 `json:"warnings,omitempty"`
	FairnessScore float64                   `json:"fairness_score"`
}
