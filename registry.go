package basil

import (
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/tomatool/basil/feature"
)

// Handler implements a single step against the scenario's world. It
// receives the captured pattern groups ([whole match, group1, ...], nil
// for exact-text matches) and the step being executed.
//
// A handler signals its outcome by its return value: nil passes,
// ErrPending marks the step unimplemented, any other error fails the
// step. A panic is reserved for unexpected aborts (assertion helpers and
// the like) and is captured at the invocation boundary.
type Handler[W any] func(w *W, captures []string, step *feature.Step) error

// StepInfo describes one registered definition, for listings.
type StepInfo struct {
	Kind    feature.StepKind `json:"kind"`
	Expr    string           `json:"expr"`
	Pattern bool             `json:"pattern"`
}

type patternDef[W any] struct {
	re      *regexp.Regexp
	handler Handler[W]
}

// Registry resolves step descriptions to handlers. Exact-text lookups
// take priority over patterns; pattern matching scans in registration
// order so that resolution is reproducible run to run.
type Registry[W any] struct {
	exact    map[feature.StepKind]map[string]Handler[W]
	patterns map[feature.StepKind][]patternDef[W]
	infos    []StepInfo
}

// NewRegistry returns an empty registry.
func NewRegistry[W any]() *Registry[W] {
	return &Registry[W]{
		exact:    make(map[feature.StepKind]map[string]Handler[W]),
		patterns: make(map[feature.StepKind][]patternDef[W]),
	}
}

// Register adds an exact-text definition. A later registration for the
// same kind and text replaces the earlier one, with a warning.
func (r *Registry[W]) Register(kind feature.StepKind, text string, h Handler[W]) {
	bag, ok := r.exact[kind]
	if !ok {
		bag = make(map[string]Handler[W])
		r.exact[kind] = bag
	}
	if _, dup := bag[text]; dup {
		log.Warn().Stringer("kind", kind).Str("step", text).
			Msg("duplicate exact step definition, later registration wins")
	}
	bag[text] = h
	r.infos = append(r.infos, StepInfo{Kind: kind, Expr: text})
}

// RegisterPattern adds a pattern definition. An invalid pattern is a
// configuration error reported to the caller at registration time.
func (r *Registry[W]) RegisterPattern(kind feature.StepKind, expr string, h Handler[W]) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("invalid step pattern %q: %w", expr, err)
	}
	r.patterns[kind] = append(r.patterns[kind], patternDef[W]{re: re, handler: h})
	r.infos = append(r.infos, StepInfo{Kind: kind, Expr: expr, Pattern: true})
	return nil
}

// Given registers an exact-text Given step.
func (r *Registry[W]) Given(text string, h Handler[W]) { r.Register(feature.Given, text, h) }

// When registers an exact-text When step.
func (r *Registry[W]) When(text string, h Handler[W]) { r.Register(feature.When, text, h) }

// Then registers an exact-text Then step.
func (r *Registry[W]) Then(text string, h Handler[W]) { r.Register(feature.Then, text, h) }

// GivenPattern registers a pattern Given step. It panics on an invalid
// pattern; use RegisterPattern to handle the error instead.
func (r *Registry[W]) GivenPattern(expr string, h Handler[W]) { r.mustPattern(feature.Given, expr, h) }

// WhenPattern registers a pattern When step, panicking on an invalid pattern.
func (r *Registry[W]) WhenPattern(expr string, h Handler[W]) { r.mustPattern(feature.When, expr, h) }

// ThenPattern registers a pattern Then step, panicking on an invalid pattern.
func (r *Registry[W]) ThenPattern(expr string, h Handler[W]) { r.mustPattern(feature.Then, expr, h) }

func (r *Registry[W]) mustPattern(kind feature.StepKind, expr string, h Handler[W]) {
	if err := r.RegisterPattern(kind, expr, h); err != nil {
		panic(err)
	}
}

// Merge folds another registry into this one: exact maps are unioned
// with the merged registry winning on collision (warned, never silent),
// and pattern lists are concatenated preserving each source's order.
func (r *Registry[W]) Merge(other *Registry[W]) {
	for kind, bag := range other.exact {
		for text, h := range bag {
			r.Register(kind, text, h)
		}
	}
	for kind, defs := range other.patterns {
		r.patterns[kind] = append(r.patterns[kind], defs...)
	}
	for _, info := range other.infos {
		if info.Pattern {
			r.infos = append(r.infos, info)
		}
	}
}

// Match is a resolved step: a handler plus the pattern captures to pass it.
type Match[W any] struct {
	Handler  Handler[W]
	Captures []string
}

// Resolve finds the handler for a step description. Exact text wins over
// any pattern; otherwise the first matching pattern in registration
// order is selected, with captures [whole match, group1, group2, ...].
func (r *Registry[W]) Resolve(kind feature.StepKind, text string) (Match[W], bool) {
	if h, ok := r.exact[kind][text]; ok {
		return Match[W]{Handler: h}, true
	}
	for _, def := range r.patterns[kind] {
		if captures := def.re.FindStringSubmatch(text); captures != nil {
			return Match[W]{Handler: def.handler, Captures: captures}, true
		}
	}
	return Match[W]{}, false
}

// Steps lists every registered definition in registration order.
func (r *Registry[W]) Steps() []StepInfo {
	infos := make([]StepInfo, len(r.infos))
	copy(infos, r.infos)
	return infos
}
