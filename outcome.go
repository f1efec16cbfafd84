package basil

// OutcomeKind classifies the result of executing (or skipping) one step.
type OutcomeKind int

const (
	// Passed means the handler completed normally.
	Passed OutcomeKind = iota
	// Failed means the handler returned an error or aborted unexpectedly.
	Failed
	// Unimplemented means no handler matched the step, or the matched
	// handler declared itself a stub.
	Unimplemented
	// Skipped means an earlier step in the scenario already failed, so
	// the handler was never invoked.
	Skipped
	// Corrupted means the shared capture state was left inconsistent by
	// a prior invocation; the handler was not executed because outcome
	// attribution could no longer be trusted.
	Corrupted
)

func (k OutcomeKind) String() string {
	switch k {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Unimplemented:
		return "unimplemented"
	case Skipped:
		return "skipped"
	case Corrupted:
		return "corrupted"
	default:
		return "unknown"
	}
}

// Outcome is the classified result of one step.
type Outcome struct {
	Kind OutcomeKind

	// Message carries the failure detail: the diagnostic output the
	// handler produced, or a rendering of the error/abort payload.
	// Empty unless Kind is Failed.
	Message string

	// Origin is the source location ("file:line") of the abort point
	// when one was recorded, or "unknown".
	Origin string
}
