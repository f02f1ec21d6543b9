package metrics

// Recorder receives roster generation metrics
type Recorder interface {
	// ObserveRun records a completed run over days dates taking seconds.
	ObserveRun(days int, seconds float64)

	// IncAssignment counts one filled shift by the resolver that filled it.
	IncAssignment(source string)

	// IncVacancy counts one unfilled shift occurrence.
	IncVacancy()

	// IncWarning counts one recoverable configuration problem.
	IncWarning(kind string)
}

// Nop discards everything
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) ObserveRun(int, float64) {}
func (Nop) IncAssignment(string)    {}
func (Nop) IncVacancy()             {}
func (Nop) IncWarning(string)       {}
