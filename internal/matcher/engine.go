package matcher

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Engine names accepted by NewEngine.
const (
	EngineECMAScript = "ecmascript"
	EngineRE2        = "re2"
)

// DefaultMatchTimeout bounds a single find-all scan on the backtracking engine.
const DefaultMatchTimeout = 250 * time.Millisecond

// Match is one non-overlapping hit. Index and Length count runes, not bytes.
type Match struct {
	Value  string `json:"value"`
	Index  int    `json:"index"`
	Length int    `json:"length"`
}

// Regexp is a compiled, case-sensitive pattern.
type Regexp interface {
	// FindAll scans text left to right and returns every non-overlapping match.
	FindAll(text string) ([]Match, error)
}

// Engine compiles untrusted patterns.
type Engine interface {
	Name() string
	Compile(pattern string) (Regexp, error)
}

// NewEngine returns the engine registered under name.
func NewEngine(name string, timeout time.Duration) (Engine, error) {
	switch name {
	case EngineECMAScript, "":
		return NewECMAScriptEngine(timeout), nil
	case EngineRE2:
		return NewRE2Engine(), nil
	default:
		return nil, fmt.Errorf("unknown regex engine %q", name)
	}
}

type ecmaScriptEngine struct {
	timeout time.Duration
}

// NewECMAScriptEngine follows browser RegExp syntax (backreferences, lookarounds)
// with a per-scan timeout against catastrophic backtracking.
func NewECMAScriptEngine(timeout time.Duration) Engine {
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	return &ecmaScriptEngine{timeout: timeout}
}

func (e *ecmaScriptEngine) Name() string { return EngineECMAScript }

func (e *ecmaScriptEngine) Compile(pattern string) (Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = e.timeout
	return &ecmaScriptRegexp{re: re}, nil
}

type ecmaScriptRegexp struct {
	re *regexp2.Regexp
}

func (r *ecmaScriptRegexp) FindAll(text string) ([]Match, error) {
	var matches []Match
	m, err := r.re.FindStringMatch(text)
	for {
		if err != nil {
			return nil, err
		}
		if m == nil {
			return matches, nil
		}
		matches = append(matches, Match{Value: m.String(), Index: m.Index, Length: m.Length})
		// FindNextMatch steps past empty matches itself.
		m, err = r.re.FindNextMatch(m)
	}
}

type re2Engine struct{}

// NewRE2Engine uses the linear-time RE2 engine. Lookarounds and
// backreferences fail to compile.
//
// Empty matches follow Go's find-all rule rather than the ECMAScript one: an
// empty match directly after a previous match is dropped, so `a*` over "abc"
// yields 3 matches here and 4 on the ECMAScript engine. Match counts for
// patterns that can match empty may therefore differ between engines.
func NewRE2Engine() Engine {
	return re2Engine{}
}

func (re2Engine) Name() string { return EngineRE2 }

func (re2Engine) Compile(pattern string) (Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re2Regexp{re: re}, nil
}

type re2Regexp struct {
	re *regexp.Regexp
}

func (r re2Regexp) FindAll(text string) ([]Match, error) {
	locs := r.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil, nil
	}
	matches := make([]Match, 0, len(locs))
	runeIdx, byteIdx := 0, 0
	for _, loc := range locs {
		runeIdx += utf8.RuneCountInString(text[byteIdx:loc[0]])
		value := text[loc[0]:loc[1]]
		length := utf8.RuneCountInString(value)
		matches = append(matches, Match{Value: value, Index: runeIdx, Length: length})
		runeIdx += length
		byteIdx = loc[1]
	}
	return matches, nil
}
