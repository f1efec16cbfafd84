package formatter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
)

func runSample(t *testing.T, obs basil.Observer) basil.Tally {
	t.Helper()

	reg := basil.NewRegistry[struct{}]()
	reg.Given("it works", func(_ *struct{}, _ []string, _ *feature.Step) error { return nil })
	reg.When("it breaks", func(_ *struct{}, _ []string, _ *feature.Step) error {
		return errors.New("broken")
	})

	features := []*feature.Feature{{
		Name: "Sample",
		Path: "sample.feature",
		Scenarios: []*feature.Scenario{{
			Name: "one",
			Steps: []*feature.Step{
				{Kind: feature.Given, Text: "it works"},
				{Kind: feature.When, Text: "it breaks"},
				{Kind: feature.Then, Text: "unreached"},
			},
		}},
	}}

	return basil.NewSuite(reg, obs).Run(features)
}

func TestEventsStream(t *testing.T) {
	var buf bytes.Buffer
	runSample(t, NewEvents(&buf))

	var events []Event
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		line := scanner.Text()
		require.True(t, strings.HasPrefix(line, "BASIL_EVENT:"), "line %q", line)
		var e Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "BASIL_EVENT:")), &e))
		events = append(events, e)
	}

	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	assert.Equal(t, []string{
		EventRunStart,
		EventFeatureStart,
		EventScenarioStart,
		EventStepStart, EventStepEnd,
		EventStepStart, EventStepEnd,
		EventScenarioSkipped,
		EventStepStart, EventStepEnd,
		EventScenarioEnd,
		EventFeatureEnd,
		EventSummary,
	}, types)

	failed := events[6]
	assert.Equal(t, "failed", failed.Status)
	assert.Equal(t, "broken", failed.Error)
	assert.Equal(t, "When it breaks", failed.Step)

	summary := events[len(events)-1]
	require.NotNil(t, summary.Tally)
	assert.Equal(t, 1, summary.Tally.Scenarios)
	assert.Equal(t, 3, summary.Tally.Steps)
	assert.Equal(t, 1, summary.Tally.StepsFailed)
	assert.Equal(t, 1, summary.Tally.StepsSkipped)
	assert.Equal(t, 1, summary.Tally.StepsPassed())
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	runSample(t, NewPretty(&buf))

	out := buf.String()
	assert.Contains(t, out, "Feature: Sample")
	assert.Contains(t, out, "Scenario: one")
	assert.Contains(t, out, "Given it works")
	assert.Contains(t, out, "Step failed:")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "1 scenarios (1 failed)")
	assert.Contains(t, out, "3 steps (1 failed, 1 skipped, 1 passed)")
}

func TestMultiFansOut(t *testing.T) {
	var a, b bytes.Buffer
	runSample(t, Multi(NewEvents(&a), NewEvents(&b)))

	assert.Equal(t, a.String(), b.String())
	assert.NotEmpty(t, a.String())
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("csv", &bytes.Buffer{})
	require.Error(t, err)

	obs, err := New("pretty", &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, obs)
}
