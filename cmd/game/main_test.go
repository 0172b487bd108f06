package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/miu-game/internal/models"
	"github.com/tatianab/miu-game/internal/rules"
)

// resetFlags clears the package-level flag values and environment the
// commands read.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("MIU_RULESET", "")
	t.Setenv("MIU_SAVE_DIR", "")
	t.Setenv("MIU_LOG_LEVEL", "error")
	t.Setenv("MIU_LOG_FILE", "")
	t.Setenv("GEMINI_API_KEY", "")

	rootFlags.set, rootFlags.config, rootFlags.saveDir = "", "", ""
	checkFlags.level, checkFlags.forward, checkFlags.reverse = 1, "", ""
	playFlags.level, playFlags.load = 1, ""
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd, &out
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps("rule2, rule1@0 ,rule3@2", rules.Forward)
	require.NoError(t, err)
	assert.Equal(t, []models.Step{
		{Rule: "rule2", Position: 0, Direction: "forward"},
		{Rule: "rule1", Position: 0, Direction: "forward"},
		{Rule: "rule3", Position: 2, Direction: "forward"},
	}, steps)

	steps, err = parseSteps("", rules.Backward)
	require.NoError(t, err)
	assert.Empty(t, steps)

	for _, bad := range []string{"rule1@x", "rule1@-1", "@2"} {
		_, err := parseSteps(bad, rules.Forward)
		assert.Error(t, err, bad)
	}
}

func TestRunCheck_Solved(t *testing.T) {
	resetFlags(t)
	checkFlags.level = 2
	checkFlags.forward = "rule2,rule2"
	checkFlags.reverse = "rule3"

	cmd, out := testCmd()
	require.NoError(t, runCheck(cmd, nil))
	assert.Contains(t, out.String(), "MI -> MUI")
	assert.Contains(t, out.String(), "rule3@0")
	assert.Contains(t, out.String(), "meet at MIIII")
}

func TestRunCheck_Unsolved(t *testing.T) {
	resetFlags(t)
	checkFlags.forward = "rule2"

	cmd, out := testCmd()
	err := runCheck(cmd, nil)
	assert.ErrorIs(t, err, errUnsolved)
	assert.Contains(t, out.String(), "MII")
	assert.Contains(t, out.String(), "Not solved.")
}

func TestRunCheck_InvalidStep(t *testing.T) {
	resetFlags(t)
	checkFlags.forward = "rule3,rule1"

	cmd, out := testCmd()
	assert.ErrorIs(t, runCheck(cmd, nil), errUnsolved)
	assert.Contains(t, out.String(), "partially-invalid")
	assert.Contains(t, out.String(), "invalid")
}

func TestRunCheck_Classic(t *testing.T) {
	resetFlags(t)
	rootFlags.set = "miu-classic"
	checkFlags.level = 2
	checkFlags.forward = "rule2,rule1"

	cmd, out := testCmd()
	require.NoError(t, runCheck(cmd, nil))
	assert.Contains(t, out.String(), "Solved.")
	assert.NotContains(t, out.String(), "Backward")

	checkFlags.reverse = "rule1"
	assert.Error(t, runCheck(cmd, nil))
}

func TestRunCheck_Errors(t *testing.T) {
	resetFlags(t)
	cmd, _ := testCmd()

	checkFlags.level = 99
	assert.Error(t, runCheck(cmd, nil))

	checkFlags.level = 1
	checkFlags.forward = "rule9"
	assert.Error(t, runCheck(cmd, nil))

	checkFlags.forward = ""
	rootFlags.set = "miu"
	rootFlags.config = "x.yaml"
	assert.Error(t, runCheck(cmd, nil))
}

func TestRunLevels(t *testing.T) {
	resetFlags(t)

	cmd, out := testCmd()
	require.NoError(t, runLevels(cmd, nil))
	assert.Contains(t, out.String(), "bidirectional")
	assert.Contains(t, out.String(), "level4")
	assert.Contains(t, out.String(), "MIII")
	assert.Contains(t, out.String(), "Built-in sets: [miu miu-classic]")
}

func TestRunLevels_ConfigFile(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: tiny
title: Tiny
rules: [{id: r, name: R, forward: {kind: append-after-suffix, name: add-u, pattern: I, replacement: U}}]
levels: [{id: only, start: MI, target: MIU}]
`), 0644))
	rootFlags.config = path

	cmd, out := testCmd()
	require.NoError(t, runLevels(cmd, nil))
	assert.Contains(t, out.String(), "Tiny (tiny, forward only)")
	assert.Contains(t, out.String(), "add-u")
	assert.NotContains(t, out.String(), "Built-in sets")
}

func TestRunSaves(t *testing.T) {
	resetFlags(t)
	rootFlags.saveDir = t.TempDir()

	cmd, out := testCmd()
	require.NoError(t, runSaves(cmd, nil))
	assert.Contains(t, out.String(), "No saved sessions")

	store := models.NewStore(rootFlags.saveDir)
	require.NoError(t, store.Save(&models.GameSession{
		Name:    "halfway",
		RuleSet: "miu",
		LevelID: "level2",
		Forward: []models.Step{{Rule: "rule2", Direction: "forward"}},
	}))

	cmd, out = testCmd()
	require.NoError(t, runSaves(cmd, nil))
	assert.Contains(t, out.String(), "halfway")
	assert.Contains(t, out.String(), "level2")
	assert.Contains(t, out.String(), "1+0")
}

func TestRootCommand(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"play", "levels", "check", "saves"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("level"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("save-dir"))
}
