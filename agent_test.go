package knightingale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightingale/game"
)

func testAgentConfig() AgentConfig {
	conf := DefaultAgentConfig()
	conf.Workers = 2
	return conf
}

func TestDifficultyDepths(t *testing.T) {
	for _, tc := range []struct {
		d                 Difficulty
		depth, quiescence int
	}{
		{Easy, 4, 1},
		{Medium, 4, 3},
		{Hard, 5, 3},
		{VeryHard, 5, 5},
		{14, 4, 1},
		{17, 7, 1},
		{19, 9, 1},
	} {
		depth, quiescence, err := tc.d.Depths()
		require.NoError(t, err, tc.d.String())
		assert.Equal(t, tc.depth, depth, tc.d.String())
		assert.Equal(t, tc.quiescence, quiescence, tc.d.String())
	}
	for _, d := range []Difficulty{0, 3, 8, 13, 20, -5} {
		_, _, err := d.Depths()
		assert.ErrorIs(t, err, ErrUnknownDifficulty, "%d", int(d))
	}
}

func TestParseDifficulty(t *testing.T) {
	for s, want := range map[string]Difficulty{
		"easy":     Easy,
		"Medium":   Medium,
		"hard":     Hard,
		"veryhard": VeryHard,
		"6":        Hard,
		"15":       15,
	} {
		d, err := ParseDifficulty(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, d, s)
	}
	for _, s := range []string{"impossible", "12", ""} {
		_, err := ParseDifficulty(s)
		assert.ErrorIs(t, err, ErrUnknownDifficulty, s)
	}
}

func TestNewAgentRejectsBadConfig(t *testing.T) {
	_, err := NewAgent("a", game.White, 9, testAgentConfig())
	assert.ErrorIs(t, err, ErrUnknownDifficulty)

	conf := testAgentConfig()
	conf.Workers = 0
	_, err = NewAgent("a", game.White, Easy, conf)
	assert.Error(t, err)
}

func TestAgentSearch(t *testing.T) {
	a, err := NewAgent("a", game.White, Easy, testAgentConfig())
	require.NoError(t, err)
	defer a.Close()

	g, err := game.FromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)
	m, err := a.Search(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, "a1a8", m.String())

	o, err := g.Apply(m)
	require.NoError(t, err)
	assert.Equal(t, game.WhiteWins, o)
	_, err = a.Search(context.Background(), g)
	assert.ErrorIs(t, err, game.ErrGameOver)
}

func TestAgentSetDifficulty(t *testing.T) {
	a, err := NewAgent("a", game.Black, Easy, testAgentConfig())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.SetDifficulty(Hard))
	depth, quiescence := a.Engine.Depths()
	assert.Equal(t, 5, depth)
	assert.Equal(t, 3, quiescence)
	assert.Equal(t, Hard, a.Difficulty())

	assert.ErrorIs(t, a.SetDifficulty(10), ErrUnknownDifficulty)
	assert.Equal(t, Hard, a.Difficulty())
}

func TestAgentRecord(t *testing.T) {
	a, err := NewAgent("a", game.Black, Easy, testAgentConfig())
	require.NoError(t, err)
	defer a.Close()

	for _, o := range []game.Outcome{game.BlackWins, game.WhiteWins, game.Stalemate, game.RepetitionDraw, game.InProgress} {
		a.record(o)
	}
	assert.Equal(t, float32(1), a.Wins)
	assert.Equal(t, float32(1), a.Loss)
	assert.Equal(t, float32(2), a.Draw)

	a.resetStats()
	assert.Zero(t, a.Wins+a.Loss+a.Draw)
}
