/*
Package roster generates duty rosters over a date range.

A run is a single forward pass, one calendar day at a time. Within a day the
resolvers run in a fixed priority order, each respecting the staff already
claimed that day:

	leave        everybody on approved leave goes to the leave shift
	fixed        standing (staff, shift, weekday) overrides
	continuity   streak / rest-gap rules per shift group or staff group
	fallback     least-loaded staff, fewest past assignments of the shift

Only after a day is assembled are the fairness trackers (FTE-normalised hours
and per-shift counts) updated. There is no backtracking and no global
objective: shifts nobody can take are emitted with an empty staff list.

Tie-breaks are random. Pass a seed in the request, or WithSeed, to make runs
reproducible:

	g := roster.NewGenerator(roster.WithLogger(logger))
	out, err := g.Generate(ctx, req)
*/
package roster
