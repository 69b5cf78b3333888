package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogList_FiltersByTier(t *testing.T) {
	out, err := runCLI(t, "catalog", "list", "--difficulty", "medium", "--log-level", "ERROR")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 21)
	assert.True(t, strings.HasPrefix(lines[0], "TIER"))
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "medium"), line)
	}
}

func TestCatalogValidate_ReportsBrokenCatalog(t *testing.T) {
	path := t.TempDir() + "/broken.yaml"
	writeFile(t, path, `version: 1
tiers:
  easy:
    - order: 1
      instructions: Find digits.
      text: "no numbers here"
      solution: '\d+'
      hint: Digits.
`)

	out, err := runCLI(t, "catalog", "validate", "--catalog", path, "--log-level", "ERROR")
	require.Error(t, err)
	assert.Contains(t, out, "easy #1")
	assert.Contains(t, err.Error(), "1 of 1 puzzles failed")
}

func TestRoot_RejectsUnknownEngine(t *testing.T) {
	_, err := runCLI(t, "catalog", "list", "--engine", "perl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REGEX_ENGINE")
}
