package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

// Event types for structured output.
const (
	EventRunStart        = "run_start"
	EventFeatureStart    = "feature_start"
	EventFeatureEnd      = "feature_end"
	EventScenarioStart   = "scenario_start"
	EventScenarioSkipped = "scenario_skipped"
	EventScenarioEnd     = "scenario_end"
	EventStepStart       = "step_start"
	EventStepEnd         = "step_end"
	EventSummary         = "summary"
)

// Event is one structured lifecycle event, emitted as a single JSON line
// for UI or tooling consumption.
type Event struct {
	Type     string `json:"type"`
	Feature  string `json:"feature,omitempty"`
	Scenario string `json:"scenario,omitempty"`
	Step     string `json:"step,omitempty"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
	Origin   string `json:"origin,omitempty"`
	File     string `json:"file,omitempty"`

	Tally *basil.Tally `json:"tally,omitempty"`
}

// Events renders the lifecycle stream as prefixed JSON lines.
type Events struct {
	out io.Writer

	currentFeature     string
	currentFeatureFile string
	currentScenario    string
}

// NewEvents creates a structured event observer writing to out.
func NewEvents(out io.Writer) *Events {
	return &Events{out: out}
}

func (e *Events) emit(event Event) {
	data, _ := json.Marshal(event)
	fmt.Fprintf(e.out, "BASIL_EVENT:%s\n", data)
}

func (e *Events) Start() {
	e.emit(Event{Type: EventRunStart})
}

func (e *Events) Feature(f *feature.Feature) {
	e.currentFeature = f.Name
	e.currentFeatureFile = f.Path
	e.emit(Event{Type: EventFeatureStart, Feature: f.Name, File: f.Path})
}

func (e *Events) FeatureEnd(f *feature.Feature) {
	e.emit(Event{Type: EventFeatureEnd, Feature: f.Name})
}

func (e *Events) Scenario(s *feature.Scenario) {
	e.currentScenario = s.Name
	e.emit(Event{
		Type:     EventScenarioStart,
		Feature:  e.currentFeature,
		Scenario: s.Name,
		File:     e.currentFeatureFile,
	})
}

func (e *Events) ScenarioSkipped(s *feature.Scenario) {
	e.emit(Event{Type: EventScenarioSkipped, Feature: e.currentFeature, Scenario: s.Name})
}

func (e *Events) ScenarioEnd(s *feature.Scenario) {
	e.emit(Event{Type: EventScenarioEnd, Feature: e.currentFeature, Scenario: s.Name})
}

func (e *Events) Step(s *feature.Step) {
	e.emit(Event{
		Type:     EventStepStart,
		Feature:  e.currentFeature,
		Scenario: e.currentScenario,
		Step:     s.String(),
	})
}

func (e *Events) StepResult(s *feature.Step, out basil.Outcome) {
	e.emit(Event{
		Type:     EventStepEnd,
		Feature:  e.currentFeature,
		Scenario: e.currentScenario,
		Step:     s.String(),
		Status:   out.Kind.String(),
		Error:    out.Message,
		Origin:   out.Origin,
	})
}

func (e *Events) Finish(t basil.Tally) {
	e.emit(Event{Type: EventSummary, Tally: &t})
}
