package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg, "")
	require.NoError(t, err)

	p.ObserveRun(28, 0.004)
	p.ObserveRun(7, 0.001)
	p.IncAssignment("rule")
	p.IncAssignment("rule")
	p.IncAssignment("fallback")
	p.IncVacancy()
	p.IncVacancy()
	p.IncWarning("dangling_reference")

	require.Equal(t, 2.0, testutil.ToFloat64(p.runs))
	require.Equal(t, 2.0, testutil.ToFloat64(p.assignments.WithLabelValues("rule")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.assignments.WithLabelValues("fallback")))
	require.Equal(t, 2.0, testutil.ToFloat64(p.vacancies))
	require.Equal(t, 1.0, testutil.ToFloat64(p.warnings.WithLabelValues("dangling_reference")))
}

func TestPrometheus_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg, "roster")
	require.NoError(t, err)

	_, err = NewPrometheus(reg, "roster")
	require.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	var r Recorder = Nop{}
	require.NotPanics(t, func() {
		r.ObserveRun(0, 0)
		r.IncAssignment("")
		r.IncVacancy()
		r.IncWarning("")
	})
}
