package feature

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LoadDir parses every .feature file under path, in lexical order. A
// missing or unreadable path is a configuration error; it aborts before
// any test event is emitted.
func LoadDir(path string) ([]*Feature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("feature path %q: %w", path, err)
	}
	if !info.IsDir() {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []*Feature{f}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature directory %q: %w", path, err)
	}

	var features []*Feature
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".feature" {
			continue
		}
		f, err := LoadFile(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}

	log.Debug().Str("path", path).Int("features", len(features)).Msg("loaded features")
	return features, nil
}

// LoadFile parses a single feature file.
func LoadFile(path string) (*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature file %q: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse builds a feature tree from Gherkin source. The path is recorded
// on the feature for location comments in reports.
func Parse(path, source string) (*Feature, error) {
	doc, err := gherkin.ParseGherkinDocument(strings.NewReader(source), uuid.NewString)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	if doc.Feature == nil {
		return nil, fmt.Errorf("parsing %q: no feature found", path)
	}

	f := &Feature{
		Name: doc.Feature.Name,
		Path: path,
		Pos:  position(doc.Feature.Location),
	}

	collectChildren(f, doc.Feature.Children)
	return f, nil
}

func collectChildren(f *Feature, children []*messages.FeatureChild) {
	for _, child := range children {
		switch {
		case child.Background != nil:
			f.Background = append(f.Background, convertSteps(child.Background.Steps)...)
		case child.Scenario != nil:
			f.Scenarios = append(f.Scenarios, &Scenario{
				Name:  child.Scenario.Name,
				Steps: convertSteps(child.Scenario.Steps),
				Pos:   position(child.Scenario.Location),
			})
		case child.Rule != nil:
			for _, rc := range child.Rule.Children {
				switch {
				case rc.Background != nil:
					f.Background = append(f.Background, convertSteps(rc.Background.Steps)...)
				case rc.Scenario != nil:
					f.Scenarios = append(f.Scenarios, &Scenario{
						Name:  rc.Scenario.Name,
						Steps: convertSteps(rc.Scenario.Steps),
						Pos:   position(rc.Scenario.Location),
					})
				}
			}
		}
	}
}

func convertSteps(in []*messages.Step) []*Step {
	steps := make([]*Step, 0, len(in))
	kind := Given
	for _, s := range in {
		kind = stepKind(s, kind)
		step := &Step{
			Kind: kind,
			Text: s.Text,
			Pos:  position(s.Location),
		}
		if s.DocString != nil {
			step.DocString = s.DocString.Content
		}
		steps = append(steps, step)
	}
	return steps
}

// stepKind maps a Gherkin keyword to a step kind. Conjunctions
// ("And", "But", "*") inherit the previous step's kind.
func stepKind(s *messages.Step, prev StepKind) StepKind {
	switch s.KeywordType {
	case messages.StepKeywordType_CONTEXT:
		return Given
	case messages.StepKeywordType_ACTION:
		return When
	case messages.StepKeywordType_OUTCOME:
		return Then
	case messages.StepKeywordType_CONJUNCTION:
		return prev
	}

	switch strings.TrimSpace(s.Keyword) {
	case "Given":
		return Given
	case "When":
		return When
	case "Then":
		return Then
	default:
		return prev
	}
}

func position(loc *messages.Location) Position {
	if loc == nil {
		return Position{}
	}
	return Position{Line: int(loc.Line), Column: int(loc.Column)}
}
