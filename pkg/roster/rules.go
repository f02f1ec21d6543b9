package roster

import (
	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// eligible is the common availability check: category match, not assigned
// today, and not excepted on the actual weekday.
func (r *run) eligible(d *day, s *models.Staff, sh *models.ShiftDefinition) bool {
	return sh.Accepts(s.Category) &&
		!d.assigned[s.Name] &&
		!r.ix.excepted(s.Name, sh.Name, d.weekday)
}

// resting reports whether staff is in the gap of any rule listing shift.
func (r *run) resting(staff, shift string) bool {
	for i, rule := range r.ix.rules {
		if rule.Governs(shift) && r.rules[i].InGap(staff) {
			return true
		}
	}
	return false
}

// matchRule returns the first rule, in declaration order, governing sh today.
// Staff-group rules only match while one of their staff could take the shift.
func (r *run) matchRule(d *day, sh *models.ShiftDefinition) int {
	for i, rule := range r.ix.rules {
		switch rule.Kind {
		case models.RuleShiftGroup:
			if rule.Governs(sh.Name) {
				return i
			}
		case models.RuleStaffGroup:
			for _, name := range rule.StaffMembers {
				if s := r.ix.staffNamed(name); s != nil && r.eligible(d, s, sh) {
					return i
				}
			}
		}
	}
	return -1
}

// resolveRule runs the continuity state machine for sh. It returns nil when no
// rule governs the shift or no candidate is available, leaving the shift to
// the fallback resolver.
func (r *run) resolveRule(d *day, sh *models.ShiftDefinition) *models.ShiftAssignment {
	i := r.matchRule(d, sh)
	if i < 0 {
		return nil
	}

	var picked string
	switch r.ix.rules[i].Kind {
	case models.RuleShiftGroup:
		picked = r.continueShiftGroup(d, sh, i)
	case models.RuleStaffGroup:
		picked = r.continueStaffGroup(d, sh, i)
	}

	r.logger.Debug("continuity rule",
		"date", d.date.String(), "shift", sh.Name, "rule", i, "staff", picked)
	if picked == "" {
		return nil
	}

	d.assign(picked)
	a := entry(sh, models.SourceRule, picked)
	a.RuleIndex = &i
	return &a
}

// continueShiftGroup keeps the current holder on the shift while they are
// available. An unavailable holder does not force a handoff; a new streak is
// started for the best rested candidate instead.
func (r *run) continueShiftGroup(d *day, sh *models.ShiftDefinition, i int) string {
	rule, st := r.ix.rules[i], r.rules[i]

	if holder, _ := st.Holder(); holder != "" {
		if s := r.ix.staffNamed(holder); s != nil && r.eligible(d, s, sh) {
			st.advance(rule.GapDays)
			return holder
		}
	}

	var candidates []*models.Staff
	for k := range r.ix.staff {
		s := &r.ix.staff[k]
		if r.eligible(d, s, sh) && !st.InGap(s.Name) {
			candidates = append(candidates, s)
		}
	}
	winner := r.fewestOf(r.fairness, sh.Name, candidates)
	if winner == nil {
		return ""
	}
	st.begin(winner.Name, rule.ConsecutiveDays-1, rule.GapDays)
	return winner.Name
}

// continueStaffGroup tracks a streak per named staff member. Staff already on
// a streak are kept on; otherwise a streak starts for the best candidate.
func (r *run) continueStaffGroup(d *day, sh *models.ShiftDefinition, i int) string {
	rule, st := r.ix.rules[i], r.rules[i]

	var candidates []*models.Staff
	for k := range r.ix.staff {
		s := &r.ix.staff[k]
		if !contains(rule.StaffMembers, s.Name) {
			continue
		}
		if r.eligible(d, s, sh) && !st.InGap(s.Name) {
			candidates = append(candidates, s)
		}
	}

	for _, s := range candidates {
		if st.Streak(s.Name) > 0 {
			st.advanceStaff(s.Name, rule.GapDays)
			return s.Name
		}
	}

	winner := r.fewestOf(r.fairness, sh.Name, candidates)
	if winner == nil {
		return ""
	}
	st.beginStaff(winner.Name, rule.ConsecutiveDays-1, rule.GapDays)
	return winner.Name
}

// fewestOf picks uniformly at random among the candidates with the fewest
// past assignments of shift.
func (r *run) fewestOf(view FairnessView, shift string, candidates []*models.Staff) *models.Staff {
	if len(candidates) == 0 {
		return nil
	}
	best := -1
	var ties []*models.Staff
	for _, s := range candidates {
		n := view.Count(s.Name, shift)
		switch {
		case best < 0 || n < best:
			best = n
			ties = append(ties[:0], s)
		case n == best:
			ties = append(ties, s)
		}
	}
	return ties[r.rng.Intn(len(ties))]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
