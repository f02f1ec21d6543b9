package roster

import (
	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// day is the state of one calendar date while it is being resolved.
type day struct {
	date        models.Date
	weekday     string // actual weekday; exceptions and fixed assignments use this
	label       string // weekday, or PH on public holidays; shift visibility uses this
	holiday     bool
	holidayName string
	assigned    map[string]bool
}

func (d *day) assign(staff string) {
	d.assigned[staff] = true
}

// calendar walks an inclusive date range.
type calendar struct {
	start    models.Date
	end      models.Date
	holidays map[string]string
}

func checkRange(start, end models.Date, maxDays int) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return &RangeError{Start: start, End: end}
	}
	if maxDays > 0 && start.DaysUntil(end)+1 > maxDays {
		return &RangeError{Start: start, End: end, MaxDays: maxDays}
	}
	return nil
}

func (c calendar) days() int {
	return c.start.DaysUntil(c.end) + 1
}

// each calls fn for every date from start to end. It stops early when fn
// returns an error.
func (c calendar) each(fn func(*day) error) error {
	for date := c.start; !date.After(c.end); date = date.AddDays(1) {
		if err := fn(c.classify(date)); err != nil {
			return err
		}
	}
	return nil
}

func (c calendar) classify(date models.Date) *day {
	d := &day{
		date:     date,
		weekday:  date.WeekdayLabel(),
		assigned: make(map[string]bool),
	}
	d.label = d.weekday
	if name, ok := c.holidays[date.String()]; ok {
		d.holiday = true
		d.holidayName = name
		d.label = models.LabelPH
	}
	return d
}
