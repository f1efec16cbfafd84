// Package basil is the execution core of a behavior-driven test runner:
// it matches parsed steps to registered handlers, executes them under a
// failure-capturing protocol, classifies outcomes, and enforces
// skip-on-failure semantics across each scenario.
//
// Execution is strictly sequential: one step at a time, one scenario at
// a time, one feature at a time. The capture mechanism's diagnostic sink
// is a shared resource, which is precisely what rules out concurrent
// handler invocations. A handler that never returns blocks the run; no
// timeout or cancellation mechanism exists.
package basil

import (
	"github.com/rs/zerolog/log"
	"github.com/tomatool/basil/feature"
)

// Suite runs an ordered collection of features against one registry,
// reporting lifecycle events to an observer and accumulating the tally.
// W is the world type: a fresh value is constructed at every scenario
// start, mutated by handlers in sequence, and discarded at scenario end.
type Suite[W any] struct {
	registry *Registry[W]
	observer Observer
	newWorld func() (*W, error)
}

// SuiteOption configures a suite.
type SuiteOption[W any] func(*Suite[W])

// WithWorld sets the world factory. Without it the zero value of W is
// used. A factory error or panic fails the scenario being set up; it
// does not abort the run.
func WithWorld[W any](fn func() (*W, error)) SuiteOption[W] {
	return func(s *Suite[W]) { s.newWorld = fn }
}

// NewSuite creates a suite over a populated registry.
func NewSuite[W any](registry *Registry[W], observer Observer, opts ...SuiteOption[W]) *Suite[W] {
	s := &Suite[W]{
		registry: registry,
		observer: observer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes every scenario of every feature in order and returns the
// final tally. The observer receives the full lifecycle event stream,
// starting with Start and ending with Finish.
func (s *Suite[W]) Run(features []*feature.Feature) Tally {
	s.observer.Start()

	var tally Tally
	runner := &scenarioRunner[W]{
		registry: s.registry,
		observer: s.observer,
		newWorld: s.newWorld,
		tally:    &tally,
	}

	for _, f := range features {
		log.Debug().Str("feature", f.Name).Int("scenarios", len(f.Scenarios)).Msg("running feature")
		s.observer.Feature(f)
		for _, sc := range f.Scenarios {
			runner.run(f, sc)
		}
		s.observer.FeatureEnd(f)
	}

	s.observer.Finish(tally)
	return tally
}

// Run loads every feature under path and executes it. A missing or
// unparsable feature source is a configuration error returned before any
// event is emitted; it is never reported as a step outcome.
func Run[W any](path string, registry *Registry[W], observer Observer, opts ...SuiteOption[W]) (Tally, error) {
	features, err := feature.LoadDir(path)
	if err != nil {
		return Tally{}, err
	}
	return NewSuite(registry, observer, opts...).Run(features), nil
}
