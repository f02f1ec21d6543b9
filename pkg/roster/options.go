package roster

import (
	"math/rand"

	"github.com/arnavshah/duty-roster-go/pkg/metrics"
)

// DefaultLeaveShiftName identifies the leave-kind shift when no other name is configured.
const DefaultLeaveShiftName = "Annual Leave"

// leaveCategory also marks a shift as leave-kind, compared case-insensitively.
const leaveCategory = "Leave"

// Logger is the structured logger the generator writes to.
// Compatible with *slog.Logger wrappers and zap.SugaredLogger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Generator.
type Option func(*Generator)

// WithRand makes every run draw tie-breaks from r. A *rand.Rand is not safe for
// concurrent use, so a Generator built with WithRand must not run concurrently.
// The seed behind r is unknown: Roster.Seed reports 0 (or the WithSeed value)
// unless the request supplies its own seed, which replaces r for that run.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a fresh random source per run, making runs reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithLogger sends generator logs to l. A nil l keeps the no-op logger.
func WithLogger(l Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics reports run, assignment and vacancy counts to m. A nil m keeps metrics.Nop.
func WithMetrics(m metrics.Recorder) Option {
	return func(g *Generator) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithLeaveShiftName changes which shift name is treated as leave.
func WithLeaveShiftName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.leaveShiftName = name
		}
	}
}

// WithMaxDays rejects ranges longer than n days; zero disables the limit.
func WithMaxDays(n int) Option {
	return func(g *Generator) { g.maxDays = n }
}
