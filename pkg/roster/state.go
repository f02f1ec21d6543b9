package roster

import (
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/shopspring/decimal"
)

// FairnessView is the read-only side of the fairness trackers.
type FairnessView interface {
	Hours(staff string) decimal.Decimal
	Count(staff, shift string) int
}

// FairnessState accumulates FTE-normalised hours and per-shift counts for one run.
// Both maps only ever grow.
type FairnessState struct {
	hours  map[string]decimal.Decimal
	counts map[string]map[string]int
}

var _ FairnessView = (*FairnessState)(nil)

// NewFairnessState starts every known staff member at zero.
func NewFairnessState(staff []models.Staff) *FairnessState {
	f := &FairnessState{
		hours:  make(map[string]decimal.Decimal, len(staff)),
		counts: make(map[string]map[string]int, len(staff)),
	}
	for _, s := range staff {
		f.hours[s.Name] = decimal.Zero
		f.counts[s.Name] = make(map[string]int)
	}
	return f
}

func (f *FairnessState) Hours(staff string) decimal.Decimal {
	return f.hours[staff]
}

func (f *FairnessState) Count(staff, shift string) int {
	return f.counts[staff][shift]
}

// Record credits one assignment of shift to s.
func (f *FairnessState) Record(s models.Staff, shift string, duration float64) {
	h := decimal.NewFromFloat(duration).Div(decimal.NewFromFloat(s.FTE))
	f.hours[s.Name] = f.hours[s.Name].Add(h)
	if f.counts[s.Name] == nil {
		f.counts[s.Name] = make(map[string]int)
	}
	f.counts[s.Name][shift]++
}

// HoursSnapshot returns hours per staff rounded to two places.
func (f *FairnessState) HoursSnapshot() map[string]float64 {
	out := make(map[string]float64, len(f.hours))
	for name, h := range f.hours {
		out[name] = h.Round(2).InexactFloat64()
	}
	return out
}

// CountsSnapshot returns a copy of the per-shift counters.
func (f *FairnessState) CountsSnapshot() map[string]map[string]int {
	out := make(map[string]map[string]int, len(f.counts))
	for name, byShift := range f.counts {
		c := make(map[string]int, len(byShift))
		for shift, n := range byShift {
			c[shift] = n
		}
		out[name] = c
	}
	return out
}

// RuleState tracks one continuity rule's streaks and rest gaps.
//
// Shift-group rules have a single holder; staff-group rules keep a streak per
// named staff member. A staff member is never both on a streak and in gap.
type RuleState struct {
	holder    string
	remaining int
	streaks   map[string]int
	gap       map[string]int
}

func newRuleState() *RuleState {
	return &RuleState{
		streaks: make(map[string]int),
		gap:     make(map[string]int),
	}
}

// Holder returns the shift-group streak holder and the days left after today.
func (r *RuleState) Holder() (string, int) {
	return r.holder, r.remaining
}

// InGap reports whether staff is resting under this rule.
func (r *RuleState) InGap(staff string) bool {
	return r.gap[staff] > 0
}

// tick consumes one calendar day of every rest gap. Runs before the day's assignments.
func (r *RuleState) tick() {
	for name := range r.gap {
		r.gap[name]--
		if r.gap[name] <= 0 {
			delete(r.gap, name)
		}
	}
}

// rest starts a gap of gapDays calendar days beginning tomorrow. The extra day
// is consumed by tomorrow's tick before anything is assigned.
func (r *RuleState) rest(staff string, gapDays int) {
	delete(r.streaks, staff)
	if r.holder == staff {
		r.holder, r.remaining = "", 0
	}
	r.gap[staff] = gapDays + 1
}

// begin makes staff the shift-group holder with remaining days still to work.
func (r *RuleState) begin(staff string, remaining, gapDays int) {
	r.holder, r.remaining = staff, remaining
	if remaining <= 0 {
		r.rest(staff, gapDays)
	}
}

// advance records another day worked by the shift-group holder.
func (r *RuleState) advance(gapDays int) {
	r.remaining--
	if r.remaining <= 0 {
		r.rest(r.holder, gapDays)
	}
}

// Streak returns the staff-group days left for staff, zero when not on a streak.
func (r *RuleState) Streak(staff string) int {
	return r.streaks[staff]
}

func (r *RuleState) beginStaff(staff string, remaining, gapDays int) {
	if remaining <= 0 {
		r.rest(staff, gapDays)
		return
	}
	r.streaks[staff] = remaining
}

func (r *RuleState) advanceStaff(staff string, gapDays int) {
	r.streaks[staff]--
	if r.streaks[staff] <= 0 {
		r.rest(staff, gapDays)
	}
}
