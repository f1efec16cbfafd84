package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomatool/basil"
	"github.com/tomatool/basil/feature"
	"github.com/tomatool/basil/internal/version"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	failedHead  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	commentSty  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summarySty  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// Pretty is the reference terminal renderer.
type Pretty struct {
	out     io.Writer
	curPath string
}

// NewPretty creates a colorized terminal observer writing to out.
func NewPretty(out io.Writer) *Pretty {
	return &Pretty{out: out}
}

func (p *Pretty) comment(pos feature.Position) string {
	return commentSty.Render(fmt.Sprintf("# %s:%s", p.curPath, pos))
}

func (p *Pretty) Start() {
	fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("[basil v%s]", version.Version)))
	fmt.Fprintln(p.out)
}

func (p *Pretty) Feature(f *feature.Feature) {
	p.curPath = f.Path
	fmt.Fprintf(p.out, "%s %s\n\n",
		headerStyle.Render("Feature: "+f.Name), p.comment(f.Pos))
}

func (p *Pretty) FeatureEnd(f *feature.Feature) {}

func (p *Pretty) Scenario(s *feature.Scenario) {
	fmt.Fprintf(p.out, "  %s %s\n",
		headerStyle.Render("Scenario: "+s.Name), p.comment(s.Pos))
}

func (p *Pretty) ScenarioSkipped(s *feature.Scenario) {}

func (p *Pretty) ScenarioEnd(s *feature.Scenario) {
	fmt.Fprintln(p.out)
}

func (p *Pretty) Step(s *feature.Step) {}

func (p *Pretty) StepResult(s *feature.Step, out basil.Outcome) {
	switch out.Kind {
	case basil.Passed:
		p.stepLine(passStyle, "✔", s)
	case basil.Failed:
		p.stepLine(failStyle, "✘", s)
		fmt.Fprintf(p.out, "    %s %s\n", failedHead.Render("Step failed:"), commentSty.Render(out.Origin))
		for _, line := range strings.Split(strings.TrimRight(out.Message, "\n"), "\n") {
			fmt.Fprintf(p.out, "      %s\n", failStyle.Render(line))
		}
	case basil.Unimplemented:
		p.stepLine(skipStyle, "-", s)
		fmt.Fprintf(p.out, "      %s\n", skipStyle.Render("⚡ not yet implemented (skipped)"))
	case basil.Corrupted:
		p.stepLine(skipStyle, "-", s)
		fmt.Fprintf(p.out, "      %s\n", failStyle.Render("⚡ capture state corrupted by a previous failure"))
	case basil.Skipped:
		p.stepLine(skipStyle, "-", s)
	}
}

func (p *Pretty) stepLine(style lipgloss.Style, mark string, s *feature.Step) {
	fmt.Fprintf(p.out, "    %s %s\n",
		style.Render(mark+" "+s.String()), p.comment(s.Pos))
	if s.DocString != "" {
		fmt.Fprintf(p.out, "      \"\"\"\n")
		for _, line := range strings.Split(strings.TrimRight(s.DocString, "\n"), "\n") {
			fmt.Fprintf(p.out, "      %s\n", line)
		}
		fmt.Fprintf(p.out, "      \"\"\"\n")
	}
}

func (p *Pretty) Finish(t basil.Tally) {
	var parts []string
	if t.ScenariosFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", t.ScenariosFailed))
	}
	if t.ScenariosSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", t.ScenariosSkipped))
	}
	line := fmt.Sprintf("%d scenarios", t.Scenarios)
	if len(parts) > 0 {
		line += fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintln(p.out, summarySty.Render(line))

	parts = parts[:0]
	if t.StepsFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", t.StepsFailed))
	}
	if t.StepsSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", t.StepsSkipped))
	}
	parts = append(parts, fmt.Sprintf("%d passed", t.StepsPassed()))
	fmt.Fprintln(p.out, summarySty.Render(
		fmt.Sprintf("%d steps (%s)", t.Steps, strings.Join(parts, ", "))))
}
