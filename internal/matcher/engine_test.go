package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/regexplorer/internal/matcher"
)

func TestNewEngine(t *testing.T) {
	ecma, err := matcher.NewEngine("", 0)
	require.NoError(t, err)
	assert.Equal(t, matcher.EngineECMAScript, ecma.Name())

	re2, err := matcher.NewEngine(matcher.EngineRE2, 0)
	require.NoError(t, err)
	assert.Equal(t, matcher.EngineRE2, re2.Name())

	_, err = matcher.NewEngine("pcre", 0)
	assert.Error(t, err)
}

func TestRE2Engine_RuneOffsets(t *testing.T) {
	re, err := matcher.NewRE2Engine().Compile("llo")
	require.NoError(t, err)

	matches, err := re.FindAll("héllo héllo")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, matcher.Match{Value: "llo", Index: 2, Length: 3}, matches[0])
	assert.Equal(t, matcher.Match{Value: "llo", Index: 8, Length: 3}, matches[1])
}

func TestRE2Engine_RejectsBacktrackingConstructs(t *testing.T) {
	_, err := matcher.NewRE2Engine().Compile(`(\w)\1`)
	assert.Error(t, err)

	ev := matcher.New(matcher.WithEngine(matcher.NewRE2Engine()))
	_, err = ev.EvaluateLive("aa", `a(?=a)`)
	var patternErr *matcher.PatternError
	assert.ErrorAs(t, err, &patternErr)
}

func TestECMAScriptEngine_MatchesAgreeWithRE2OnPlainPatterns(t *testing.T) {
	text := "Dates: 12/25/2023, 01/01/2024 and 2023-12-25."
	pattern := `\d{2}/\d{2}/\d{4}`

	ecma, err := matcher.NewECMAScriptEngine(0).Compile(pattern)
	require.NoError(t, err)
	re2, err := matcher.NewRE2Engine().Compile(pattern)
	require.NoError(t, err)

	a, err := ecma.FindAll(text)
	require.NoError(t, err)
	b, err := re2.FindAll(text)
	require.NoError(t, err)
	assert.Equal(t, b, a)
	assert.Len(t, a, 2)
}

func TestEngines_EmptyMatchAfterMatch(t *testing.T) {
	ecma, err := matcher.NewECMAScriptEngine(0).Compile("a*")
	require.NoError(t, err)
	re2, err := matcher.NewRE2Engine().Compile("a*")
	require.NoError(t, err)

	a, err := ecma.FindAll("abc")
	require.NoError(t, err)
	b, err := re2.FindAll("abc")
	require.NoError(t, err)

	// ECMAScript keeps the empty match at index 1, right after "a".
	assert.Equal(t, []matcher.Match{
		{Value: "a", Index: 0, Length: 1},
		{Value: "", Index: 1, Length: 0},
		{Value: "", Index: 2, Length: 0},
		{Value: "", Index: 3, Length: 0},
	}, a)
	assert.Equal(t, []matcher.Match{
		{Value: "a", Index: 0, Length: 1},
		{Value: "", Index: 2, Length: 0},
		{Value: "", Index: 3, Length: 0},
	}, b)
}

func TestHighlighter_Render(t *testing.T) {
	h := matcher.DefaultHighlighter()
	out := h.Render("a <b> c", []matcher.Match{{Value: "<b>", Index: 2, Length: 3}})
	assert.Equal(t, `a <mark class="match-highlight"><b></mark> c`, out)

	assert.Equal(t, "untouched", h.Render("untouched", nil))
}
