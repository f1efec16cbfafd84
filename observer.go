package basil

import "github.com/tomatool/basil/feature"

// Observer receives the ordered lifecycle event stream of a run.
//
// For a single run the calls arrive in exactly this order: Start; then
// for each feature: Feature, then for each scenario: Scenario, then for
// each step: Step immediately followed by StepResult, ScenarioSkipped
// exactly once if and when skipping begins, then ScenarioEnd; after all
// scenarios FeatureEnd; after all features Finish with the final tally.
// The suite guarantees this interleaving; implementations only consume.
type Observer interface {
	Start()
	Feature(f *feature.Feature)
	FeatureEnd(f *feature.Feature)
	Scenario(s *feature.Scenario)
	ScenarioSkipped(s *feature.Scenario)
	ScenarioEnd(s *feature.Scenario)
	Step(s *feature.Step)
	StepResult(s *feature.Step, o Outcome)
	Finish(t Tally)
}

// Tally holds the monotonically incremented counters of a run. It is
// owned by the suite and handed to the observer at finish.
type Tally struct {
	Scenarios        int `json:"scenarios"`
	ScenariosSkipped int `json:"scenarios_skipped"`
	ScenariosFailed  int `json:"scenarios_failed"`
	Steps            int `json:"steps"`
	StepsSkipped     int `json:"steps_skipped"`
	StepsFailed      int `json:"steps_failed"`
}

// StepsPassed derives the passed-step count; the counters always satisfy
// passed = total - skipped - failed.
func (t Tally) StepsPassed() int {
	return t.Steps - t.StepsSkipped - t.StepsFailed
}

// ScenariosPassed derives the passed-scenario count.
func (t Tally) ScenariosPassed() int {
	return t.Scenarios - t.ScenariosSkipped - t.ScenariosFailed
}

// Failed reports whether any step failed during the run.
func (t Tally) Failed() bool {
	return t.StepsFailed > 0
}
