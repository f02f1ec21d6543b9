package roster

import (
	"fmt"
	"math"
	"strings"

	"github.com/arnavshah/duty-roster-go/pkg/models"
)

type fixedKey struct {
	shift   string
	weekday string
}

type exceptionKey struct {
	staff   string
	shift   string
	weekday string
}

// index is the per-run lookup view of a RosterConfig. Dangling references are
// dropped while building it and reported as warnings.
type index struct {
	staff       []models.Staff
	staffByName map[string]int
	shifts      []models.ShiftDefinition
	shiftByName map[string]int
	leaveShift  *models.ShiftDefinition

	fixed      map[fixedKey]string
	exceptions map[exceptionKey]struct{}
	leaves     map[string][]models.LeaveInterval
	holidays   map[string]string
	rules      []models.ContinuityRule
	governed   map[string]bool

	warnings []models.Warning
	danglers []*DanglingReferenceError
}

func buildIndex(cfg models.RosterConfig, leaveShiftName string) (*index, error) {
	ix := &index{
		staff:       cfg.Staff,
		staffByName: make(map[string]int, len(cfg.Staff)),
		shifts:      cfg.Shifts,
		shiftByName: make(map[string]int, len(cfg.Shifts)),
		fixed:       make(map[fixedKey]string),
		exceptions:  make(map[exceptionKey]struct{}),
		leaves:      make(map[string][]models.LeaveInterval),
		holidays:    make(map[string]string, len(cfg.PublicHolidays)),
		governed:    make(map[string]bool),
	}

	for i, s := range cfg.Staff {
		if s.Name == "" {
			return nil, &ConfigError{Field: fmt.Sprintf("staff[%d].name", i), Reason: "is required"}
		}
		if _, dup := ix.staffByName[s.Name]; dup {
			return nil, &ConfigError{Field: fmt.Sprintf("staff[%d].name", i), Reason: fmt.Sprintf("duplicate staff %q", s.Name)}
		}
		if !(s.FTE > 0) || math.IsInf(s.FTE, 0) {
			return nil, &ConfigError{Field: fmt.Sprintf("staff[%d].fte", i), Reason: fmt.Sprintf("must be positive, got %v", s.FTE)}
		}
		ix.staffByName[s.Name] = i
	}

	for i, sh := range cfg.Shifts {
		if sh.Name == "" {
			return nil, &ConfigError{Field: fmt.Sprintf("shifts[%d].name", i), Reason: "is required"}
		}
		if _, dup := ix.shiftByName[sh.Name]; dup {
			return nil, &ConfigError{Field: fmt.Sprintf("shifts[%d].name", i), Reason: fmt.Sprintf("duplicate shift %q", sh.Name)}
		}
		if math.IsNaN(sh.Duration) || math.IsInf(sh.Duration, 0) {
			return nil, &ConfigError{Field: fmt.Sprintf("shifts[%d].duration", i), Reason: fmt.Sprintf("must be a finite number, got %v", sh.Duration)}
		}
		if sh.Duration < 0 {
			return nil, &ConfigError{Field: fmt.Sprintf("shifts[%d].duration", i), Reason: "must not be negative"}
		}
		ix.shiftByName[sh.Name] = i
		if ix.leaveShift == nil && isLeaveShift(sh, leaveShiftName) {
			ix.leaveShift = &ix.shifts[i]
		}
	}

	for i, r := range cfg.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if r.Kind != models.RuleShiftGroup && r.Kind != models.RuleStaffGroup {
			return nil, &ConfigError{Field: field + ".type", Reason: fmt.Sprintf("unknown rule type %q", r.Kind)}
		}
		if r.ConsecutiveDays < 1 {
			return nil, &ConfigError{Field: field + ".consecutive_days", Reason: "must be at least 1"}
		}
		if r.GapDays < 1 {
			return nil, &ConfigError{Field: field + ".gap_days", Reason: "must be at least 1"}
		}
	}

	for i, l := range cfg.Leaves {
		if l.From.IsZero() || l.To.IsZero() {
			return nil, &ConfigError{Field: fmt.Sprintf("leaves[%d]", i), Reason: "from and to dates are required"}
		}
		if l.To.Before(l.From) {
			return nil, &ConfigError{Field: fmt.Sprintf("leaves[%d]", i), Reason: fmt.Sprintf("to %s precedes from %s", l.To, l.From)}
		}
	}

	ix.indexOverrides(cfg)
	ix.indexRules(cfg.Rules)

	for i, l := range cfg.Leaves {
		if !ix.hasStaff(l.Staff) {
			ix.dangling(fmt.Sprintf("leave %d", i), "staff", l.Staff)
			continue
		}
		ix.leaves[l.Staff] = append(ix.leaves[l.Staff], l)
	}

	for _, h := range cfg.PublicHolidays {
		if h.Date.IsZero() {
			continue
		}
		ix.holidays[h.Date.String()] = h.Name
	}

	return ix, nil
}

// indexOverrides builds the (shift, weekday) fixed-assignment table and the
// exception set. The first fixed assignment declared for a slot wins.
func (ix *index) indexOverrides(cfg models.RosterConfig) {
	for i, fa := range cfg.FixedAssignments {
		owner := fmt.Sprintf("fixed assignment %d", i)
		if !ix.checkRefs(owner, fa.Staff, fa.Shift) {
			continue
		}
		for _, day := range fa.Days {
			key := fixedKey{shift: fa.Shift, weekday: day}
			if _, taken := ix.fixed[key]; !taken {
				ix.fixed[key] = fa.Staff
			}
		}
	}

	for i, ex := range cfg.ShiftExceptions {
		owner := fmt.Sprintf("shift exception %d", i)
		if !ix.checkRefs(owner, ex.Staff, ex.Shift) {
			continue
		}
		for _, day := range ex.Days {
			ix.exceptions[exceptionKey{staff: ex.Staff, shift: ex.Shift, weekday: day}] = struct{}{}
		}
	}
}

// indexRules copies the rules with unknown members removed. Rule positions are
// kept so rule indexes in the output match the configuration.
func (ix *index) indexRules(rules []models.ContinuityRule) {
	ix.rules = make([]models.ContinuityRule, len(rules))
	for i, r := range rules {
		owner := fmt.Sprintf("rule %d", i)
		clean := r
		clean.Shifts = nil
		clean.StaffMembers = nil
		for _, name := range r.Shifts {
			if !ix.hasShift(name) {
				ix.dangling(owner, "shift", name)
				continue
			}
			clean.Shifts = append(clean.Shifts, name)
			ix.governed[name] = true
		}
		for _, name := range r.StaffMembers {
			if !ix.hasStaff(name) {
				ix.dangling(owner, "staff", name)
				continue
			}
			clean.StaffMembers = append(clean.StaffMembers, name)
		}
		ix.rules[i] = clean
	}
}

func (ix *index) checkRefs(owner, staff, shift string) bool {
	ok := true
	if !ix.hasStaff(staff) {
		ix.dangling(owner, "staff", staff)
		ok = false
	}
	if !ix.hasShift(shift) {
		ix.dangling(owner, "shift", shift)
		ok = false
	}
	return ok
}

func (ix *index) dangling(owner, kind, name string) {
	err := &DanglingReferenceError{Owner: owner, Kind: kind, Name: name}
	ix.danglers = append(ix.danglers, err)
	ix.warnings = append(ix.warnings, models.Warning{
		Kind:    models.WarningDanglingReference,
		Message: err.Error(),
	})
}

func (ix *index) hasStaff(name string) bool {
	_, ok := ix.staffByName[name]
	return ok
}

func (ix *index) hasShift(name string) bool {
	_, ok := ix.shiftByName[name]
	return ok
}

func (ix *index) staffNamed(name string) *models.Staff {
	i, ok := ix.staffByName[name]
	if !ok {
		return nil
	}
	return &ix.staff[i]
}

func (ix *index) excepted(staff, shift, weekday string) bool {
	_, ok := ix.exceptions[exceptionKey{staff: staff, shift: shift, weekday: weekday}]
	return ok
}

func (ix *index) onLeave(staff string, d models.Date) bool {
	for _, l := range ix.leaves[staff] {
		if l.Covers(d) {
			return true
		}
	}
	return false
}

func isLeaveShift(sh models.ShiftDefinition, leaveShiftName string) bool {
	return sh.Name == leaveShiftName || strings.EqualFold(sh.Category, leaveCategory)
}

// Validate checks cfg without generating. A non-nil error means Generate would
// refuse the configuration; warnings list references Generate would skip.
func Validate(cfg models.RosterConfig, leaveShiftName string) ([]models.Warning, error) {
	if leaveShiftName == "" {
		leaveShiftName = DefaultLeaveShiftName
	}
	ix, err := buildIndex(cfg, leaveShiftName)
	if err != nil {
		return nil, err
	}
	return ix.warnings, nil
}
