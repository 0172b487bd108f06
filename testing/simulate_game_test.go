package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/miu-game/internal/content"
	"github.com/tatianab/miu-game/internal/engine"
	"github.com/tatianab/miu-game/internal/logging"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  move
	}{
		{"plain", "rule: rule2\nsite: 0\ndirection: forward", move{"rule2", 0, "forward"}},
		{"fenced", "```yaml\nrule: rule3\nsite: 1\ndirection: backward\n```", move{"rule3", 1, "backward"}},
		{"bare fence", "```\nrule: rule1\n```", move{Rule: "rule1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMove(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseMove("I think you should apply rule two")
	assert.Error(t, err)
	_, err = parseMove("site: 1")
	assert.Error(t, err)
}

func TestApplyMove(t *testing.T) {
	cfg, err := content.Load("miu")
	require.NoError(t, err)
	s := engine.NewSession(cfg, logging.Discard())
	require.NoError(t, s.SelectLevel(1))

	require.NoError(t, applyMove(s, move{Rule: "rule2", Direction: "forward"}))
	require.NoError(t, applyMove(s, move{Rule: "rule2"}))
	assert.False(t, s.Solved())
	require.NoError(t, applyMove(s, move{Rule: "rule3", Direction: "backward"}))
	assert.True(t, s.Solved())

	assert.ErrorIs(t, applyMove(s, move{Rule: "rule9"}), engine.ErrUnknownRule)
	assert.Error(t, applyMove(s, move{Rule: "rule1", Direction: "up"}))
}

func TestMovePrompt(t *testing.T) {
	cfg, err := content.Load("miu")
	require.NoError(t, err)
	s := engine.NewSession(cfg, logging.Discard())

	prompt := movePrompt(s, "")
	assert.Contains(t, prompt, "forward chain: MI")
	assert.Contains(t, prompt, "backward chain: MIU")
	assert.Contains(t, prompt, "site 0 -> MIU")
	assert.NotContains(t, prompt, "rejected")

	prompt = movePrompt(s, "Your last move was rejected: nope")
	assert.Contains(t, prompt, "rejected: nope")
}
