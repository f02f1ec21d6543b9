package roster

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/arnavshah/duty-roster-go/pkg/metrics"
	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/google/uuid"
)

// Generator builds duty rosters. It holds only options; every call to
// Generate builds fresh trackers and rule state.
type Generator struct {
	rng            *rand.Rand
	seed           int64
	seeded         bool
	logger         Logger
	metrics        metrics.Recorder
	leaveShiftName string
	maxDays        int
}

// NewGenerator creates a generator with the given options
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger:         nopLogger{},
		metrics:        metrics.Nop{},
		leaveShiftName: DefaultLeaveShiftName,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// run is the mutable state of one Generate call.
type run struct {
	ix        *index
	rng       *rand.Rand
	fairness  *FairnessState
	rules     []*RuleState
	conflicts []models.Conflict
	logger    Logger
}

// Generate walks the requested dates and resolves each day in order:
// leave, fixed assignments, continuity rules, then the fallback batch.
//
// Fairness trackers are updated after each day is assembled. If ctx is
// cancelled between dates, the roster built so far is returned with ctx's error.
func (g *Generator) Generate(ctx context.Context, req models.RosterRequest) (*models.Roster, error) {
	if err := checkRange(req.StartDate, req.EndDate, g.maxDays); err != nil {
		return nil, err
	}
	ix, err := buildIndex(req.Config, g.leaveShiftName)
	if err != nil {
		return nil, err
	}

	rng, seed := g.source(req.Seed)
	r := &run{
		ix:       ix,
		rng:      rng,
		fairness: NewFairnessState(ix.staff),
		rules:    make([]*RuleState, len(ix.rules)),
		logger:   g.logger,
	}
	for i := range r.rules {
		r.rules[i] = newRuleState()
	}

	for _, d := range ix.danglers {
		g.logger.Warn("skipping dangling reference", "owner", d.Owner, "kind", d.Kind, "name", d.Name)
		g.metrics.IncWarning(string(models.WarningDanglingReference))
	}

	cal := calendar{start: req.StartDate, end: req.EndDate, holidays: ix.holidays}
	out := &models.Roster{
		ID:        uuid.NewString(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Seed:      seed,
		Days:      make([]models.DayRoster, 0, cal.days()),
		Vacancies: []models.Vacancy{},
		Warnings:  ix.warnings,
	}

	started := time.Now()
	err = cal.each(func(d *day) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		dr := r.resolveDay(d)
		r.record(dr)
		out.Days = append(out.Days, dr)

		for _, a := range dr.Shifts {
			if a.Vacant() {
				out.Vacancies = append(out.Vacancies, models.Vacancy{Date: dr.Date, Shift: a.Shift})
				g.metrics.IncVacancy()
				continue
			}
			g.metrics.IncAssignment(string(a.Source))
		}
		return nil
	})

	out.Hours = r.fairness.HoursSnapshot()
	out.ShiftCounts = r.fairness.CountsSnapshot()
	out.Conflicts = r.conflicts
	out.FairnessScore = FairnessScore(out.Hours)

	if err != nil {
		g.logger.Warn("roster generation stopped early", "days", len(out.Days), "error", err)
		return out, err
	}

	elapsed := time.Since(started)
	g.metrics.ObserveRun(len(out.Days), elapsed.Seconds())
	g.logger.Info("roster generated",
		"id", out.ID, "days", len(out.Days), "vacancies", len(out.Vacancies), "duration", elapsed)
	return out, nil
}

// source picks the tie-break generator for one run. A request seed wins over
// the generator's options; without either the run is seeded from the clock.
func (g *Generator) source(reqSeed *int64) (*rand.Rand, int64) {
	switch {
	case reqSeed != nil:
		return rand.New(rand.NewSource(*reqSeed)), *reqSeed
	case g.rng != nil:
		return g.rng, g.seed
	case g.seeded:
		return rand.New(rand.NewSource(g.seed)), g.seed
	default:
		seed := time.Now().UnixNano()
		return rand.New(rand.NewSource(seed)), seed
	}
}

// resolveDay runs the resolvers in priority order against a fresh
// assigned-today set and assembles the day's roster.
func (r *run) resolveDay(d *day) models.DayRoster {
	for _, st := range r.rules {
		st.tick()
	}

	var resolved []models.ShiftAssignment
	if a := r.resolveLeave(d); a != nil {
		resolved = append(resolved, *a)
	}

	var remaining []*models.ShiftDefinition
	for _, sh := range r.applicable(d) {
		if a := r.resolveFixed(d, sh); a != nil {
			resolved = append(resolved, *a)
			continue
		}
		if a := r.resolveRule(d, sh); a != nil {
			resolved = append(resolved, *a)
			continue
		}
		remaining = append(remaining, sh)
	}
	resolved = append(resolved, r.resolveFallback(d, r.fairness, remaining)...)

	return assemble(d, resolved)
}

// applicable lists the shifts occurring under today's label, leave excluded,
// with rule-governed shifts first so streaks claim their staff before the
// fallback batch runs.
func (r *run) applicable(d *day) []*models.ShiftDefinition {
	var out []*models.ShiftDefinition
	for i := range r.ix.shifts {
		sh := &r.ix.shifts[i]
		if sh == r.ix.leaveShift || !sh.OccursOn(d.label) {
			continue
		}
		out = append(out, sh)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return r.ix.governed[out[i].Name] && !r.ix.governed[out[j].Name]
	})
	return out
}

// assemble orders a day's entries for display: leave first, then by shift rank.
func assemble(d *day, resolved []models.ShiftAssignment) models.DayRoster {
	sort.SliceStable(resolved, func(i, j int) bool {
		li, lj := resolved[i].Source == models.SourceLeave, resolved[j].Source == models.SourceLeave
		if li != lj {
			return li
		}
		return resolved[i].Order < resolved[j].Order
	})
	if resolved == nil {
		resolved = []models.ShiftAssignment{}
	}
	return models.DayRoster{
		Date:        d.date,
		Weekday:     d.weekday,
		Holiday:     d.holiday,
		HolidayName: d.holidayName,
		Shifts:      resolved,
	}
}

// record is the only place fairness state changes. Entries with exactly one
// staff member count; shared leave entries and vacancies do not.
func (r *run) record(dr models.DayRoster) {
	for _, a := range dr.Shifts {
		if len(a.Staff) != 1 {
			continue
		}
		s := r.ix.staffNamed(a.Staff[0])
		if s == nil {
			continue
		}
		r.fairness.Record(*s, a.Shift, a.Duration)
	}
}
