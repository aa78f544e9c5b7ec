package knightingale

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knightingale/game"
)

func newSession(t *testing.T, mode Mode, human game.Color) *Session {
	t.Helper()
	conf := DefaultSessionConfig()
	conf.Mode = mode
	conf.Human = human
	conf.Agent = testAgentConfig()
	s, err := NewSession(conf)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func play(t *testing.T, s *Session, moves ...string) {
	t.Helper()
	for _, m := range moves {
		_, err := s.Play(game.MustParse(m[:2]), game.MustParse(m[2:]))
		require.NoError(t, err, m)
	}
}

func assertSameBoard(t *testing.T, want, got *game.Board) {
	t.Helper()
	assert.True(t, want.SamePlacement(got), "want\n%v\ngot\n%v", want, got)
	for r := 0; r < game.RowNum; r++ {
		for c := 0; c < game.ColNum; c++ {
			assert.Equal(t, want.MoveCount(game.Pos(r, c)), got.MoveCount(game.Pos(r, c)), "%v", game.Pos(r, c))
		}
	}
}

func TestSessionSaveFormat(t *testing.T) {
	s := newSession(t, Multiplayer, game.White)
	play(t, s, "e2e4", "e7e5")

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+64+1+1)
	assert.Equal(t, game.SaveHeader, lines[0])
	assert.Equal(t, "5 0 b", lines[1]) // black rook on a8
	assert.Equal(t, "3 1 w", lines[1+4*8+4])
	assert.Equal(t, "7 4 0 4", lines[65])
	assert.Equal(t, "1 b n n 5", lines[66])
}

func TestSessionSaveLoad(t *testing.T) {
	s := newSession(t, Multiplayer, game.White)
	play(t, s, "e2e4", "e7e5", "g1f3")

	path := filepath.Join(t.TempDir(), "game.sav")
	require.NoError(t, s.SaveFile(path))

	loaded := newSession(t, SinglePlayer, game.White)
	require.NoError(t, loaded.Game().SetUpgrade(game.Black, game.Rook))
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, game.Rook, loaded.Game().Upgrades().For(game.Black))
	assert.Equal(t, Multiplayer, loaded.Mode())
	assert.Nil(t, loaded.Computer())
	assert.Equal(t, game.Black, loaded.Game().Turn())
	assert.Equal(t, game.InProgress, loaded.Game().Outcome())
	assertSameBoard(t, s.Game().Board(), loaded.Game().Board())

	// the loaded game goes on
	play(t, loaded, "b8c6")
}

func TestSessionLoadSinglePlayer(t *testing.T) {
	s := newSession(t, SinglePlayer, game.Black)
	require.NoError(t, s.SetDifficulty(Hard))
	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "0 b n w 6\n"))

	loaded := newSession(t, Multiplayer, game.White)
	require.NoError(t, loaded.Load(&buf))
	require.NotNil(t, loaded.Computer())
	assert.Equal(t, game.White, loaded.Computer().Player)
	assert.Equal(t, Hard, loaded.Computer().Difficulty())
	assert.Equal(t, SinglePlayer, loaded.Mode())

	// a human move on the computer's turn is refused
	_, err := loaded.Play(game.MustParse("e2"), game.MustParse("e4"))
	assert.ErrorIs(t, err, game.ErrWrongTurn)
}

func TestSessionLoadRejectsCorruptFiles(t *testing.T) {
	s := newSession(t, Multiplayer, game.White)
	play(t, s, "d2d4", "d7d5")
	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	good := buf.String()
	body := good[:strings.LastIndex(strings.TrimSuffix(good, "\n"), "\n")+1]

	for name, text := range map[string]string{
		"garbage":          "hello\n",
		"empty":            "",
		"no session line":  body,
		"bad outcome":      body + "1 b zz n 5\n",
		"bad mode":         body + "2 b n n 5\n",
		"bad last mover":   body + "1 n n n 5\n",
		"cpu in multi":     body + "1 b n b 5\n",
		"no cpu in single": body + "0 b n n 5\n",
		"bad difficulty":   body + "0 b n b 8\n",
		"short line":       body + "1 b n n\n",
		"bad piece":        strings.Replace(good, "5 0 b", "9 0 b", 1),
	} {
		before := s.Game().Board()
		err := s.Load(strings.NewReader(text))
		assert.ErrorIs(t, err, game.ErrCorrupt, name)

		assert.Equal(t, Multiplayer, s.Mode(), name)
		assert.Nil(t, s.Computer(), name)
		assert.Equal(t, 2, s.Game().Plies(), name)
		assertSameBoard(t, before, s.Game().Board())
	}
	require.NoError(t, s.Load(strings.NewReader(good)))
	assert.Equal(t, 0, s.Game().Plies())
}

func TestSessionSinglePlayer(t *testing.T) {
	s := newSession(t, SinglePlayer, game.White)
	ctx := context.Background()

	_, _, err := s.ComputerMove(ctx)
	assert.ErrorIs(t, err, ErrNotComputerTurn)

	play(t, s, "e2e4")
	_, err = s.Play(game.MustParse("d2"), game.MustParse("d4"))
	assert.ErrorIs(t, err, game.ErrWrongTurn)

	m, o, err := s.ComputerMove(ctx)
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, o)
	p, ok := s.Game().Occupant(m.Target)
	require.True(t, ok)
	assert.Equal(t, game.Black, p.Color)
	assert.Equal(t, game.White, s.Game().Turn())
	assert.Equal(t, 2, s.Game().Plies())

	// the computer reply and the human move go together
	require.NoError(t, s.Undo())
	assert.Equal(t, 0, s.Game().Plies())
	assert.Equal(t, game.White, s.Game().Turn())
	assertSameBoard(t, game.NewBoard(), s.Game().Board())
	assert.ErrorIs(t, s.Undo(), game.ErrCannotUndo)

	// a lone human move is undone alone
	play(t, s, "e2e4")
	require.NoError(t, s.Undo())
	assert.Equal(t, game.White, s.Game().Turn())
}

func TestSessionSwitchSides(t *testing.T) {
	s := newSession(t, SinglePlayer, game.White)
	ctx := context.Background()
	require.NoError(t, s.Game().SetUpgrade(game.White, game.Knight))
	play(t, s, "e2e4")

	// the computer was black and about to move; now the human plays black
	require.NoError(t, s.SwitchSides())
	assert.Equal(t, game.White, s.Computer().Player)
	assert.Equal(t, game.Queen, s.Game().Upgrades().For(game.White))
	assert.ErrorIs(t, s.Undo(), game.ErrCannotUndo)
	assert.Equal(t, 0, s.Game().Plies())

	_, _, err := s.ComputerMove(ctx)
	assert.ErrorIs(t, err, ErrNotComputerTurn)
	play(t, s, "e7e5")
	_, err = s.Play(game.MustParse("d2"), game.MustParse("d4"))
	assert.ErrorIs(t, err, game.ErrWrongTurn)

	m, _, err := s.ComputerMove(ctx)
	require.NoError(t, err)
	p, ok := s.Game().Occupant(m.Target)
	require.True(t, ok)
	assert.Equal(t, game.White, p.Color)
	assert.Equal(t, game.Black, s.Game().Turn())

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "0 w n w 5\n"))

	multi := newSession(t, Multiplayer, game.White)
	assert.ErrorIs(t, multi.SwitchSides(), ErrNotSinglePlayer)
}

func TestSessionMultiplayer(t *testing.T) {
	s := newSession(t, Multiplayer, game.White)
	_, _, err := s.ComputerMove(context.Background())
	assert.ErrorIs(t, err, ErrNotComputerTurn)

	play(t, s, "f2f3", "e7e5", "g2g4")
	m, err := s.Hint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "d8h4", m.String())
	o, err := s.Play(m.Source, m.Target)
	require.NoError(t, err)
	assert.Equal(t, game.BlackWins, o)

	_, err = s.Play(game.MustParse("a2"), game.MustParse("a3"))
	assert.ErrorIs(t, err, game.ErrGameOver)
	assert.ErrorIs(t, s.Undo(), game.ErrCannotUndo)
	_, err = s.Hint(context.Background())
	assert.ErrorIs(t, err, game.ErrGameOver)

	// no computer to configure, but the choice is kept for saves
	require.NoError(t, s.SetDifficulty(VeryHard))
	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "1 b b n 7\n"))
}

func TestSessionSetDifficulty(t *testing.T) {
	s := newSession(t, SinglePlayer, game.White)
	assert.ErrorIs(t, s.SetDifficulty(2), ErrUnknownDifficulty)
	assert.Equal(t, Medium, s.Computer().Difficulty())
	require.NoError(t, s.SetDifficulty(16))
	assert.Equal(t, Difficulty(16), s.Computer().Difficulty())
	depth, quiescence := s.Computer().Engine.Depths()
	assert.Equal(t, 6, depth)
	assert.Equal(t, 1, quiescence)
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	conf := DefaultSessionConfig()
	conf.Difficulty = 3
	_, err := NewSession(conf)
	assert.Error(t, err)

	conf = DefaultSessionConfig()
	conf.Mode = 7
	_, err = NewSession(conf)
	assert.Error(t, err)
}
