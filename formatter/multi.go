package formatter

import (
	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

type multi []basil.Observer

func (m multi) Start() {
	for _, o := range m {
		o.Start()
	}
}

func (m multi) Feature(f *feature.Feature) {
	for _, o := range m {
		o.Feature(f)
	}
}

func (m multi) FeatureEnd(f *feature.Feature) {
	for _, o := range m {
		o.FeatureEnd(f)
	}
}

func (m multi) Scenario(s *feature.Scenario) {
	for _, o := range m {
		o.Scenario(s)
	}
}

func (m multi) ScenarioSkipped(s *feature.Scenario) {
	for _, o := range m {
		o.ScenarioSkipped(s)
	}
}

func (m multi) ScenarioEnd(s *feature.Scenario) {
	for _, o := range m {
		o.ScenarioEnd(s)
	}
}

func (m multi) Step(s *feature.Step) {
	for _, o := range m {
		o.Step(s)
	}
}

func (m multi) StepResult(s *feature.Step, out basil.Outcome) {
	for _, o := range m {
		o.StepResult(s, out)
	}
}

func (m multi) Finish(t basil.Tally) {
	for _, o := range m {
		o.Finish(t)
	}
}
