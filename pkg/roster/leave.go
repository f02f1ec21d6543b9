package roster

import (
	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// resolveLeave puts everybody on approved leave into the leave shift. It runs
// first each day and its picks are final. No entry is produced when nobody is
// on leave or the leave shift does not occur on this weekday.
func (r *run) resolveLeave(d *day) *models.ShiftAssignment {
	ls := r.ix.leaveShift
	if ls == nil || !ls.OccursOn(d.weekday) {
		return nil
	}

	var away []string
	for _, s := range r.ix.staff {
		if r.ix.onLeave(s.Name, d.date) {
			away = append(away, s.Name)
		}
	}
	if len(away) == 0 {
		return nil
	}

	for _, name := range away {
		d.assign(name)
	}
	a := entry(ls, models.SourceLeave, away...)
	return &a
}

func entry(sh *models.ShiftDefinition, source models.AssignmentSource, staff ...string) models.ShiftAssignment {
	if staff == nil {
		staff = []string{}
	}
	return models.ShiftAssignment{
		Shift:     sh.Name,
		Order:     sh.Order,
		StartTime: sh.StartTime,
		EndTime:   sh.EndTime,
		Duration:  sh.Duration,
		Staff:     staff,
		Source:    source,
	}
}
