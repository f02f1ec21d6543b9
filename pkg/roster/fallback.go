package roster

import (
	"fmt"
	"sort"

	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// resolveFallback fills the shifts no earlier resolver claimed, as one batch.
//
// The N least-loaded unassigned staff (N = len(remaining)) form a preferred
// pool; each shift first draws from the pool by fewest past assignments of
// that shift, then from all staff by lowest hours. A shift nobody can take is
// returned with an empty staff list. view is read, never written.
func (r *run) resolveFallback(d *day, view FairnessView, remaining []*models.ShiftDefinition) []models.ShiftAssignment {
	if len(remaining) == 0 {
		return nil
	}

	pool := r.preferredPool(d, view, len(remaining))
	out := make([]models.ShiftAssignment, 0, len(remaining))

	for _, sh := range remaining {
		var candidates []*models.Staff
		for _, s := range pool {
			if r.available(d, s, sh) {
				candidates = append(candidates, s)
			}
		}
		winner := r.fewestOf(view, sh.Name, candidates)

		if winner == nil {
			candidates = candidates[:0]
			for k := range r.ix.staff {
				s := &r.ix.staff[k]
				if r.available(d, s, sh) {
					candidates = append(candidates, s)
				}
			}
			winner = r.lowestHoursOf(view, candidates)
		}

		if winner == nil {
			r.conflicts = append(r.conflicts, r.explainVacancy(d, sh))
			out = append(out, entry(sh, models.SourceUnfilled))
			continue
		}
		d.assign(winner.Name)
		out = append(out, entry(sh, models.SourceFallback, winner.Name))
	}
	return out
}

// available extends eligible with the rest gaps of rules listing the shift.
func (r *run) available(d *day, s *models.Staff, sh *models.ShiftDefinition) bool {
	return r.eligible(d, s, sh) && !r.resting(s.Name, sh.Name)
}

// preferredPool returns up to n unassigned staff with the lowest hours.
// Equal hours keep declaration order; ties are broken later.
func (r *run) preferredPool(d *day, view FairnessView, n int) []*models.Staff {
	var free []*models.Staff
	for k := range r.ix.staff {
		s := &r.ix.staff[k]
		if !d.assigned[s.Name] {
			free = append(free, s)
		}
	}
	sort.SliceStable(free, func(i, j int) bool {
		return view.Hours(free[i].Name).LessThan(view.Hours(free[j].Name))
	})
	if len(free) > n {
		free = free[:n]
	}
	return free
}

// lowestHoursOf picks uniformly at random among the candidates with the
// lowest accumulated hours.
func (r *run) lowestHoursOf(view FairnessView, candidates []*models.Staff) *models.Staff {
	if len(candidates) == 0 {
		return nil
	}
	ties := []*models.Staff{candidates[0]}
	best := view.Hours(candidates[0].Name)
	for _, s := range candidates[1:] {
		h := view.Hours(s.Name)
		switch {
		case h.LessThan(best):
			best = h
			ties = append(ties[:0], s)
		case h.Equal(best):
			ties = append(ties, s)
		}
	}
	return ties[r.rng.Intn(len(ties))]
}

// explainVacancy counts why each staff member could not take sh.
func (r *run) explainVacancy(d *day, sh *models.ShiftDefinition) models.Conflict {
	var assigned, category, excepted, resting int
	for _, s := range r.ix.staff {
		switch {
		case !sh.Accepts(s.Category):
			category++
		case d.assigned[s.Name]:
			assigned++
		case r.ix.excepted(s.Name, sh.Name, d.weekday):
			excepted++
		case r.resting(s.Name, sh.Name):
			resting++
		}
	}

	var reasons []string
	if category > 0 {
		reasons = append(reasons, fmt.Sprintf("%d staff not in an eligible category", category))
	}
	if assigned > 0 {
		reasons = append(reasons, fmt.Sprintf("%d staff already assigned today", assigned))
	}
	if excepted > 0 {
		reasons = append(reasons, fmt.Sprintf("%d staff excepted from this shift on %s", excepted, d.weekday))
	}
	if resting > 0 {
		reasons = append(reasons, fmt.Sprintf("%d staff resting after a streak", resting))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "no staff configured")
	}

	return models.Conflict{Date: d.date, Shift: sh.Name, Reasons: reasons}
}
