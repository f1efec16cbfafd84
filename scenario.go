package basil

import (
	"github.com/rs/zerolog/log"
	"github.com/tomatool/basil/feature"
)

// scenarioRunner drives a single scenario through the state machine
// NotStarted -> Running -> (Skipping) -> Finished.
type scenarioRunner[W any] struct {
	registry *Registry[W]
	observer Observer
	newWorld func() (*W, error)
	tally    *Tally
}

func (r *scenarioRunner[W]) run(f *feature.Feature, sc *feature.Scenario) {
	r.observer.Scenario(sc)
	r.tally.Scenarios++

	steps := f.StepsFor(sc)

	skipping := false
	failed := false

	world, out := r.buildWorld()
	if out.Kind != Passed {
		// World construction failure is scoped to this scenario: its
		// steps are reported skipped and the scenario counts as failed,
		// but the rest of the run proceeds.
		log.Error().Str("scenario", sc.Name).Str("origin", out.Origin).
			Str("reason", out.Message).Msg("world construction failed")
		skipping = true
		failed = true
		r.observer.ScenarioSkipped(sc)
	}

	for _, step := range steps {
		r.observer.Step(step)
		r.tally.Steps++

		if skipping {
			r.observer.StepResult(step, Outcome{Kind: Skipped})
			r.tally.StepsSkipped++
			continue
		}

		match, ok := r.registry.Resolve(step.Kind, step.Text)
		if !ok {
			r.observer.StepResult(step, Outcome{Kind: Unimplemented})
			r.tally.StepsSkipped++
			skipping = true
			r.observer.ScenarioSkipped(sc)
			continue
		}

		out := invoke(func() error {
			return match.Handler(world, match.Captures, step)
		})
		r.observer.StepResult(step, out)

		switch out.Kind {
		case Passed:
			continue
		case Failed, Corrupted:
			r.tally.StepsFailed++
			failed = true
		case Unimplemented:
			r.tally.StepsSkipped++
		}
		skipping = true
		r.observer.ScenarioSkipped(sc)
	}

	r.observer.ScenarioEnd(sc)

	// Scenario counters move exactly once per scenario: failed if any
	// step failed, skipped if skipping began without a failure.
	switch {
	case failed:
		r.tally.ScenariosFailed++
	case skipping:
		r.tally.ScenariosSkipped++
	}
}

// buildWorld constructs the fresh per-scenario world under the capture
// boundary so a panicking constructor is classified, not propagated.
func (r *scenarioRunner[W]) buildWorld() (*W, Outcome) {
	var world *W
	out := invoke(func() error {
		if r.newWorld != nil {
			var err error
			world, err = r.newWorld()
			return err
		}
		world = new(W)
		return nil
	})
	return world, out
}
