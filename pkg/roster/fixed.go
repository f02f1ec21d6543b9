package roster

import (
	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// resolveFixed applies a standing (shift, weekday) override. The named staff
// member is not checked against categories or exceptions; they are only
// skipped when already assigned today.
func (r *run) resolveFixed(d *day, sh *models.ShiftDefinition) *models.ShiftAssignment {
	name, ok := r.ix.fixed[fixedKey{shift: sh.Name, weekday: d.weekday}]
	if !ok || d.assigned[name] {
		return nil
	}
	d.assign(name)
	a := entry(sh, models.SourceFixed, name)
	return &a
}
