package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Recorder backed by Prometheus collectors.
type Prometheus struct {
	runs        prometheus.Counter
	runDays     prometheus.Histogram
	runSeconds  prometheus.Histogram
	assignments *prometheus.CounterVec
	vacancies   prometheus.Counter
	warnings    *prometheus.CounterVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the roster collectors on reg.
//
// reg defaults to prometheus.DefaultRegisterer and namespace to "roster".
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "roster"
	}

	p := &Prometheus{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "runs_total",
			Help:      "Total completed roster generation runs.",
		}),
		runDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "run_days",
			Help:      "Number of calendar days covered per run.",
			Buckets:   []float64{7, 14, 28, 31, 62, 92, 183, 366, 732},
		}),
		runSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "run_duration_seconds",
			Help:      "Wall time of roster generation runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms .. ~1s
		}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "assignments_total",
			Help:      "Filled shift occurrences by resolver (leave, fixed, rule, fallback).",
		}, []string{"source"}),
		vacancies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "vacancies_total",
			Help:      "Applicable shift occurrences left unfilled.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "warnings_total",
			Help:      "Recoverable configuration problems by kind.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{p.runs, p.runDays, p.runSeconds, p.assignments, p.vacancies, p.warnings} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) ObserveRun(days int, seconds float64) {
	p.runs.Inc()
	p.runDays.Observe(float64(days))
	p.runSeconds.Observe(seconds)
}

func (p *Prometheus) IncAssignment(source string) {
	p.assignments.WithLabelValues(source).Inc()
}

// IncVacancy counts without a shift label; shift names come from callers and are unbounded.
func (p *Prometheus) IncVacancy() {
	p.vacancies.Inc()
}

func (p *Prometheus) IncWarning(kind string) {
	p.warnings.WithLabelValues(kind).Inc()
}
