package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arnavshah/duty-roster-go/pkg/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable prints the roster grid (one row per date, one column per shift)
// followed by the hours summary.
func renderTable(w io.Writer, cfg models.RosterConfig, out *models.Roster) {
	shifts := make([]models.ShiftDefinition, len(cfg.Shifts))
	copy(shifts, cfg.Shifts)
	sort.SliceStable(shifts, func(i, j int) bool { return shifts[i].Order < shifts[j].Order })

	header := table.Row{"Date", "Day"}
	for _, sh := range shifts {
		header = append(header, sh.Name)
	}

	grid := table.NewWriter()
	grid.SetOutputMirror(w)
	grid.SetStyle(table.StyleLight)
	grid.Style().Format.Header = text.FormatDefault
	grid.AppendHeader(header)
	for _, d := range out.Days {
		day := d.Weekday
		if d.Holiday {
			day += " (PH)"
		}
		row := table.Row{d.Date.String(), day}
		for _, sh := range shifts {
			row = append(row, cell(d, sh.Name))
		}
		grid.AppendRow(row)
	}
	grid.Render()

	fmt.Fprintln(w)
	renderHours(w, cfg, out)

	if len(out.Vacancies) > 0 {
		fmt.Fprintf(w, "\n%d vacant shift(s)\n", len(out.Vacancies))
		for _, c := range out.Conflicts {
			fmt.Fprintf(w, "  %s %s: %s\n", c.Date, c.Shift, strings.Join(c.Reasons, "; "))
		}
	}
	for _, warn := range out.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.Message)
	}
}

func cell(d models.DayRoster, shift string) string {
	staff, ok := d.StaffOn(shift)
	switch {
	case !ok:
		return ""
	case len(staff) == 0:
		return text.FgRed.Sprint("VACANT")
	default:
		return strings.Join(staff, ", ")
	}
}

func renderHours(w io.Writer, cfg models.RosterConfig, out *models.Roster) {
	hours := table.NewWriter()
	hours.SetOutputMirror(w)
	hours.SetStyle(table.StyleLight)
	hours.Style().Format.Header = text.FormatDefault
	hours.Style().Format.Footer = text.FormatDefault
	hours.AppendHeader(table.Row{"Staff", "Category", "FTE", "Hours (FTE-adjusted)"})
	hours.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, s := range cfg.Staff {
		hours.AppendRow(table.Row{s.Name, s.Category, fmt.Sprintf("%.2f", s.FTE), fmt.Sprintf("%.2f", out.Hours[s.Name])})
	}
	hours.AppendFooter(table.Row{"", "", "Fairness", fmt.Sprintf("%.2f%%", out.FairnessScore)})
	hours.Render()
}
