package knightingale

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/knightingale/game"
)

// ErrNotSinglePlayer is returned for operations that need a computer opponent.
var ErrNotSinglePlayer = errors.New("not a single player session")

// ErrNotComputerTurn is returned when the computer is asked to move while it is not its turn,
// or when there is no computer player at all.
var ErrNotComputerTurn = errors.New("not the computer's turn")

// Session is the top level structure and the entry point of the API. It holds a game, the
// computer opponent of a single player game, and an assistant that gives hints.
type Session struct {
	conf      SessionConfig
	game      *game.Game
	cpu       *Agent // nil in multiplayer
	assistant *Agent
	log       zerolog.Logger
}

// NewSession starts a new game from the standard position.
func NewSession(conf SessionConfig) (*Session, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid session config %+v", conf)
	}
	assistant, err := NewAgent("assistant", conf.Human, conf.Assistant, conf.Agent)
	if err != nil {
		return nil, err
	}
	s := &Session{
		conf:      conf,
		game:      game.NewGame(),
		assistant: assistant,
		log:       conf.Agent.Logger,
	}
	if conf.Mode == SinglePlayer {
		if s.cpu, err = NewAgent("computer", conf.Human.Opponent(), conf.Difficulty, conf.Agent); err != nil {
			assistant.Close()
			return nil, err
		}
	}
	return s, nil
}

// Game returns the game being played.
func (s *Session) Game() *game.Game { return s.game }

// Adopt replaces the game being played with g, e.g. one played out in an Arena.
func (s *Session) Adopt(g *game.Game) { s.game = g }

// Mode returns who plays the session.
func (s *Session) Mode() Mode { return s.conf.Mode }

// Computer returns the computer opponent, or nil in multiplayer.
func (s *Session) Computer() *Agent { return s.cpu }

// Play makes a human move from src to tgt.
func (s *Session) Play(src, tgt game.Position) (game.Outcome, error) {
	if s.cpu != nil && s.game.Turn() == s.cpu.Player && !s.game.Outcome().Ended() {
		return s.game.Outcome(), game.ErrWrongTurn
	}
	m, err := s.game.Validate(src, tgt)
	if err != nil {
		return s.game.Outcome(), err
	}
	return s.game.Apply(m)
}

// ComputerMove lets the computer opponent search and play its move.
func (s *Session) ComputerMove(ctx context.Context) (game.Move, game.Outcome, error) {
	if s.cpu == nil || s.game.Turn() != s.cpu.Player {
		return game.Move{}, s.game.Outcome(), ErrNotComputerTurn
	}
	m, err := s.cpu.Search(ctx, s.game)
	if err != nil {
		return game.Move{}, s.game.Outcome(), err
	}
	o, err := s.game.Apply(m)
	if err != nil {
		return game.Move{}, o, errors.WithMessagef(err, "computer played %v", m)
	}
	s.log.Info().Str("move", m.String()).Stringer("outcome", o).Msg("computer moved")
	return m, o, nil
}

// Hint suggests a move for the side to move.
func (s *Session) Hint(ctx context.Context) (game.Move, error) {
	return s.assistant.Search(ctx, s.game)
}

// Undo takes back the last move. In single player, a computer reply is taken back together
// with the human move before it.
func (s *Session) Undo() error {
	if err := s.game.Undo(); err != nil {
		return err
	}
	if s.cpu != nil && s.game.Turn() == s.cpu.Player && s.game.Plies() > 0 {
		return s.game.Undo()
	}
	return nil
}

// SwitchSides hands the human's pieces to the computer and the computer's to the human. The
// computer's new side promotes to queens, and moves played before the switch cannot be undone.
func (s *Session) SwitchSides() error {
	if s.cpu == nil {
		return ErrNotSinglePlayer
	}
	human := s.conf.Human.Opponent()
	if err := s.game.SetUpgrade(human.Opponent(), game.Queen); err != nil {
		return err
	}
	s.cpu.Lock()
	s.cpu.Player = human.Opponent()
	s.cpu.Unlock()
	s.assistant.Lock()
	s.assistant.Player = human
	s.assistant.Unlock()
	s.conf.Human = human
	s.game.ForgetHistory()
	s.log.Info().Stringer("human", human).Msg("sides switched")
	return nil
}

// SetDifficulty changes the strength of the computer opponent.
func (s *Session) SetDifficulty(d Difficulty) error {
	if _, _, err := d.Depths(); err != nil {
		return err
	}
	if s.cpu != nil {
		if err := s.cpu.SetDifficulty(d); err != nil {
			return err
		}
	}
	s.conf.Difficulty = d
	return nil
}

// Save writes the board records followed by the session line
// "<mode> <lastMoved> <outcome> <cpuColor|n> <difficulty>".
func (s *Session) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := game.WriteBoard(bw, s.game.Board()); err != nil {
		return err
	}
	cpuColor := "n"
	if s.cpu != nil {
		cpuColor = s.cpu.Player.Letter()
	}
	fmt.Fprintf(bw, "%d %s %s %s %d\n",
		int(s.conf.Mode), s.game.LastMoved().Letter(), s.game.Outcome().Letter(), cpuColor, int(s.conf.Difficulty))
	return errors.WithStack(bw.Flush())
}

// SaveFile saves the session into filename.
func (s *Session) SaveFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	if err = s.Save(f); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

// Load replaces the session with a saved one. The session is left as it was on error.
func (s *Session) Load(r io.Reader) error {
	rr := game.NewRecordReader(r)
	b, err := game.ReadBoard(rr)
	if err != nil {
		return err
	}
	f, err := rr.Next(5)
	if err != nil {
		return err
	}
	mode, err := rr.Int(f[0])
	if err != nil {
		return err
	}
	if Mode(mode) != SinglePlayer && Mode(mode) != Multiplayer {
		return rr.Corrupt("unknown game mode %d", mode)
	}
	lastMoved, ok := game.ParseColorLetter(f[1])
	if !ok {
		return rr.Corrupt("unknown color %q", f[1])
	}
	outcome, ok := game.ParseOutcomeLetter(f[2])
	if !ok {
		return rr.Corrupt("unknown outcome %q", f[2])
	}
	cpuColor, hasCPU := game.ParseColorLetter(f[3])
	if hasCPU != (Mode(mode) == SinglePlayer) || (!hasCPU && f[3] != "n") {
		return rr.Corrupt("computer color %q does not fit game mode %d", f[3], mode)
	}
	d, err := rr.Int(f[4])
	if err != nil {
		return err
	}
	if _, _, err = Difficulty(d).Depths(); err != nil {
		return rr.Corrupt("%v", err)
	}

	g := game.Restore(b, lastMoved, outcome)
	up := s.game.Upgrades()
	for _, c := range []game.Color{game.White, game.Black} {
		if err = g.SetUpgrade(c, up.For(c)); err != nil {
			return err
		}
	}

	conf := s.conf
	conf.Mode = Mode(mode)
	conf.Difficulty = Difficulty(d)
	if hasCPU {
		conf.Human = cpuColor.Opponent()
	}
	if err = s.reconfigure(conf); err != nil {
		return err
	}

	s.game = g
	s.log.Info().Int("mode", mode).Stringer("turn", s.game.Turn()).Stringer("outcome", outcome).Msg("session loaded")
	return nil
}

// LoadFile loads a session saved into filename.
func (s *Session) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return errors.WithMessage(s.Load(f), filename)
}

// reconfigure sets up the computer opponent for conf.
func (s *Session) reconfigure(conf SessionConfig) error {
	switch {
	case conf.Mode == Multiplayer && s.cpu != nil:
		if err := s.cpu.Close(); err != nil {
			return err
		}
		s.cpu = nil
	case conf.Mode == SinglePlayer && s.cpu == nil:
		cpu, err := NewAgent("computer", conf.Human.Opponent(), conf.Difficulty, conf.Agent)
		if err != nil {
			return err
		}
		s.cpu = cpu
	case conf.Mode == SinglePlayer:
		if err := s.cpu.SetDifficulty(conf.Difficulty); err != nil {
			return err
		}
		s.cpu.Lock()
		s.cpu.Player = conf.Human.Opponent()
		s.cpu.Unlock()
	}
	s.assistant.Lock()
	s.assistant.Player = conf.Human
	s.assistant.Unlock()
	s.conf = conf
	return nil
}

// Close stops the search workers of both agents.
func (s *Session) Close() error {
	var errs error
	for _, a := range []*Agent{s.cpu, s.assistant} {
		if a == nil {
			continue
		}
		if err := a.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
