// Package feature holds the parsed feature tree consumed by the runner.
// The runner only reads this tree; building it from Gherkin text is the
// loader's job and happens before any test event is emitted.
package feature

import "fmt"

// StepKind classifies a step line.
type StepKind int

const (
	Given StepKind = iota
	When
	Then
)

func (k StepKind) String() string {
	switch k {
	case Given:
		return "Given"
	case When:
		return "When"
	case Then:
		return "Then"
	default:
		return "Unknown"
	}
}

// Position is a location within a feature file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Step is a single Given/When/Then line. "And"/"But" lines inherit the
// kind of the step above them during loading.
type Step struct {
	Kind      StepKind `json:"kind"`
	Text      string   `json:"text"`
	DocString string   `json:"doc_string,omitempty"`
	Pos       Position `json:"pos"`
}

func (s *Step) String() string {
	return s.Kind.String() + " " + s.Text
}

// Scenario is an ordered list of steps executed against one fresh world.
type Scenario struct {
	Name  string   `json:"name"`
	Steps []*Step  `json:"steps"`
	Pos   Position `json:"pos"`
}

// Feature is a named group of scenarios, optionally sharing background steps.
type Feature struct {
	Name       string      `json:"name"`
	Path       string      `json:"path,omitempty"`
	Background []*Step     `json:"background,omitempty"`
	Scenarios  []*Scenario `json:"scenarios"`
	Pos        Position    `json:"pos"`
}

// StepsFor returns the ordered step list for a scenario: background steps
// first, then the scenario's own steps.
func (f *Feature) StepsFor(s *Scenario) []*Step {
	if len(f.Background) == 0 {
		return s.Steps
	}
	steps := make([]*Step, 0, len(f.Background)+len(s.Steps))
	steps = append(steps, f.Background...)
	steps = append(steps, s.Steps...)
	return steps
}
