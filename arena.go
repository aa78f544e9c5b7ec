package knightingale

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/knightingale/game"
)

// Arena represents a game between two computer players
type Arena struct {
	game         *game.Game
	white, black *Agent

	// state
	currentPlayer *Agent
	conf          ArenaConfig
	buf           bytes.Buffer
	logger        zerolog.Logger

	thinking   []float64 // seconds per move
	gameNumber int       // games played so far
}

// MakeArena makes an arena where white and black play each other. It sets the agents' colors.
func MakeArena(white, black *Agent, conf ArenaConfig) Arena {
	white.Player = game.White
	black.Player = game.Black
	if conf.Name == "" {
		conf.Name = "UNKNOWN GAME"
	}
	return Arena{
		game:   game.NewGame(),
		white:  white,
		black:  black,
		conf:   conf,
		logger: conf.Logger.With().Str("arena", conf.Name).Logger(),
	}
}

// Play plays a game, and records who is the winner. A game stopped at MaxPlies is reported
// as InProgress and is not recorded.
func (a *Arena) Play(ctx context.Context) (game.Outcome, error) {
	if !a.conf.IsValid() {
		return game.InProgress, errors.Errorf("invalid arena config: max plies %d", a.conf.MaxPlies)
	}
	if err := a.reset(); err != nil {
		return game.InProgress, err
	}
	a.gameNumber++
	fmt.Fprintf(&a.buf, "Game %d (%s)\n", a.gameNumber, a.conf.Name)

	var outcome game.Outcome
	var plies int
	for outcome = a.game.Outcome(); !outcome.Ended(); outcome = a.game.Outcome() {
		if a.conf.MaxPlies > 0 && plies >= a.conf.MaxPlies {
			a.logger.Info().Int("plies", plies).Msg("ply limit reached")
			break
		}
		start := time.Now()
		best, err := a.currentPlayer.Search(ctx, a.game)
		if err != nil {
			return outcome, err
		}
		a.thinking = append(a.thinking, time.Since(start).Seconds())
		if _, err = a.game.Apply(best); err != nil {
			return outcome, errors.WithMessagef(err, "%s played %v", a.currentPlayer.Name(), best)
		}
		a.logger.Debug().Str("player", a.currentPlayer.Name()).Str("move", best.String()).Int("ply", plies).Msg("move")
		fmt.Fprintf(&a.buf, "%v ", best)
		plies++
		a.switchPlayer()
	}
	fmt.Fprintf(&a.buf, "\n%v after %d plies\n", outcome, plies)

	a.white.record(outcome)
	a.black.record(outcome)
	a.logger.Info().Stringer("outcome", outcome).Int("plies", plies).Int("game", a.gameNumber).Msg("game over")
	return outcome, nil
}

// reset sets up the starting position, white to move.
func (a *Arena) reset() error {
	a.currentPlayer = a.white
	if a.conf.FEN == "" {
		a.game = game.NewGame()
		return nil
	}
	g, err := game.FromFEN(a.conf.FEN)
	if err != nil {
		return err
	}
	a.game = g
	if g.Turn() == game.Black {
		a.currentPlayer = a.black
	}
	return nil
}

// ResetStats clears the tallies of both agents and the think time samples.
func (a *Arena) ResetStats() {
	a.white.resetStats()
	a.black.resetStats()
	a.thinking = a.thinking[:0]
	a.gameNumber = 0
}

// ThinkTime returns the mean and standard deviation of the time spent searching a move.
func (a *Arena) ThinkTime() (mean, std time.Duration) {
	switch len(a.thinking) {
	case 0:
		return 0, 0
	case 1:
		return seconds(a.thinking[0]), 0
	}
	m, s := stat.MeanStdDev(a.thinking, nil)
	return seconds(m), seconds(s)
}

func seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// GameNumber returns the number of games played.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the arena
func (a *Arena) Name() string { return a.conf.Name }

// State of the game
func (a *Arena) State() *game.Game { return a.game }

// Log the moves of every game played, and the tallies of both players, into w
func (a *Arena) Log(w io.Writer) {
	fmt.Fprint(w, a.buf.String())
	mean, std := a.ThinkTime()
	fmt.Fprintf(w, "\nWhite %s: wins %v, loss %v, draw %v\n", a.white.Name(), a.white.Wins, a.white.Loss, a.white.Draw)
	fmt.Fprintf(w, "Black %s: wins %v, loss %v, draw %v\n", a.black.Name(), a.black.Wins, a.black.Loss, a.black.Draw)
	fmt.Fprintf(w, "Think time %v ± %v\n", mean, std)
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.white:
		a.currentPlayer = a.black
	case a.black:
		a.currentPlayer = a.white
	}
}
