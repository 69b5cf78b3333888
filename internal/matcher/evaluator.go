// Package matcher grades regex puzzle answers: it runs a learner's pattern
// against a puzzle text and decides whether it extracts the same matches as
// the reference solution.
package matcher

import (
	"fmt"
	"strings"
)

// Messages shown to the learner.
const (
	InvalidPatternMessage = "Invalid pattern. Please check your syntax."
	CheckFailedMessage    = "Error checking your answer."
	EmptyPatternMessage   = "Please enter a regex pattern first."
)


// PatternError reports a pattern that failed to compile, timed out, or
// crashed the engine. It never carries a verdict.
type PatternError struct {
	Message string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s (pattern %q: %v)", e.Message, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// LiveResult is the preview shown while the learner types.
type LiveResult struct {
	Rendered   string  `json:"rendered"`
	MatchCount int     `json:"matchCount"`
	HasMatches bool    `json:"hasMatches"`
	Valid      bool    `json:"valid"`
	Error      string  `json:"error,omitempty"`
	Matches    []Match `json:"matches"`
}

// SubmissionResult is the verdict for a submitted pattern.
type SubmissionResult struct {
	IsCorrect     bool     `json:"isCorrect"`
	MatchCount    int      `json:"matchCount"`
	ExpectedCount int      `json:"expectedCount"`
	Matches       []string `json:"matches"`
}

// Evaluator is safe for concurrent use; it holds no mutable state.
type Evaluator struct {
	engine      Engine
	highlighter Highlighter
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEngine selects the regex engine.
func WithEngine(engine Engine) Option {
	return func(e *Evaluator) {
		e.engine = engine
	}
}

// WithHighlighter sets the markers used by EvaluateLive.
func WithHighlighter(h Highlighter) Option {
	return func(e *Evaluator) {
		e.highlighter = h
	}
}

// New creates an Evaluator. Defaults to the ECMAScript engine and
// DefaultHighlighter.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		engine:      NewECMAScriptEngine(DefaultMatchTimeout),
		highlighter: DefaultHighlighter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the configured engine.
func (e *Evaluator) Engine() Engine {
	return e.engine
}

// FindAll compiles pattern and returns its matches over text. Engine panics
// are converted to errors.
func (e *Evaluator) FindAll(text, pattern string) (matches []Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches = nil
			err = fmt.Errorf("regex engine panic: %v", r)
		}
	}()
	re, err := e.engine.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re.FindAll(text)
}

// EvaluateLive renders a preview of candidate over text. A blank candidate
// leaves the text untouched and is not an error. On failure the returned
// error is a *PatternError and the result carries only the message.
func (e *Evaluator) EvaluateLive(text, candidate string) (LiveResult, error) {
	if IsBlank(candidate) {
		return LiveResult{Rendered: text, Valid: true, Matches: []Match{}}, nil
	}

	matches, err := e.FindAll(text, candidate)
	if err != nil {
		return LiveResult{Valid: false, Error: InvalidPatternMessage},
			&PatternError{Message: InvalidPatternMessage, Pattern: candidate, Err: err}
	}

	if matches == nil {
		matches = []Match{}
	}
	return LiveResult{
		Rendered:   e.highlighter.Render(text, matches),
		MatchCount: len(matches),
		HasMatches: len(matches) > 0,
		Valid:      true,
		Matches:    matches,
	}, nil
}

// EvaluateSubmission grades candidate against reference over text. It is a
// pure function of its inputs. Whitespace-only patterns are graded like any
// other; rejecting blank input is up to the caller.
func (e *Evaluator) EvaluateSubmission(text, candidate, reference string) (SubmissionResult, error) {
	got, err := e.FindAll(text, candidate)
	if err != nil {
		return SubmissionResult{}, &PatternError{Message: CheckFailedMessage, Pattern: candidate, Err: err}
	}
	want, err := e.FindAll(text, reference)
	if err != nil {
		return SubmissionResult{}, &PatternError{Message: CheckFailedMessage, Pattern: reference, Err: err}
	}

	gotValues, wantValues := values(got), values(want)
	return SubmissionResult{
		IsCorrect:     Equivalent(gotValues, wantValues),
		MatchCount:    len(gotValues),
		ExpectedCount: len(wantValues),
		Matches:       gotValues,
	}, nil
}

// Equivalent compares two match lists by value: same length, and every value
// of each list occurs somewhere in the other. Order is ignored.
func Equivalent(candidate, reference []string) bool {
	if len(candidate) != len(reference) {
		return false
	}
	return containsAll(reference, candidate) && containsAll(candidate, reference)
}

func containsAll(haystack, needles []string) bool {
	set := make(map[string]struct{}, len(haystack))
	for _, v := range haystack {
		set[v] = struct{}{}
	}
	for _, v := range needles {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func values(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

// IsBlank reports whether pattern is empty or whitespace only.
func IsBlank(pattern string) bool {
	return strings.TrimSpace(pattern) == ""
}
