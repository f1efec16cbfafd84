package feature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeature = `Feature: Basket checkout

  Background:
    Given an empty basket

  Scenario: Add one item
    Given a product "tea" priced "2.50"
    When I add "tea" to the basket
    And I add "tea" to the basket
    Then the total should be "5.00"
    But the basket should not be empty

  Scenario: Receipt body
    When I print the receipt:
      """
      tea x2 ... 5.00
      """
    Then it matches the template
`

func TestParse(t *testing.T) {
	f, err := Parse("basket.feature", sampleFeature)
	require.NoError(t, err)

	assert.Equal(t, "Basket checkout", f.Name)
	assert.Equal(t, "basket.feature", f.Path)
	require.Len(t, f.Background, 1)
	assert.Equal(t, Given, f.Background[0].Kind)
	assert.Equal(t, "an empty basket", f.Background[0].Text)
	require.Len(t, f.Scenarios, 2)
}

func TestParseConjunctionsInheritKind(t *testing.T) {
	f, err := Parse("basket.feature", sampleFeature)
	require.NoError(t, err)

	steps := f.Scenarios[0].Steps
	require.Len(t, steps, 5)

	kinds := make([]StepKind, len(steps))
	for i, s := range steps {
		kinds[i] = s.Kind
	}
	// "And" follows When, "But" follows Then.
	assert.Equal(t, []StepKind{Given, When, When, Then, Then}, kinds)
}

func TestParseDocString(t *testing.T) {
	f, err := Parse("basket.feature", sampleFeature)
	require.NoError(t, err)

	steps := f.Scenarios[1].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "tea x2 ... 5.00", steps[0].DocString)
	assert.Empty(t, steps[1].DocString)
}

func TestParsePositions(t *testing.T) {
	f, err := Parse("basket.feature", sampleFeature)
	require.NoError(t, err)

	assert.Equal(t, 1, f.Pos.Line)
	assert.Equal(t, 6, f.Scenarios[0].Pos.Line)
	assert.Equal(t, 7, f.Scenarios[0].Steps[0].Pos.Line)
}

func TestParseEmptySource(t *testing.T) {
	_, err := Parse("empty.feature", "")
	require.Error(t, err)
}

func TestStepsForPrependsBackground(t *testing.T) {
	f, err := Parse("basket.feature", sampleFeature)
	require.NoError(t, err)

	steps := f.StepsFor(f.Scenarios[0])
	require.Len(t, steps, 6)
	assert.Equal(t, "an empty basket", steps[0].Text)
	assert.Equal(t, f.Scenarios[0].Steps[0].Text, steps[1].Text)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.feature"), []byte(sampleFeature), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	features, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "Basket checkout", features[0].Name)
}

func TestLoadDirMissingPath(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}
