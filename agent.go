package knightingale

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/knightingale/game"
	"github.com/knightingale/search"
)

// An Agent is a computer player
type Agent struct {
	Engine *search.Engine
	Player game.Color

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name       string
	difficulty Difficulty
	log        zerolog.Logger
}

// NewAgent creates a computer player for color and starts its search workers.
func NewAgent(name string, color game.Color, d Difficulty, conf AgentConfig) (*Agent, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid agent config: %d workers", conf.Workers)
	}
	depth, quiescence, err := d.Depths()
	if err != nil {
		return nil, err
	}
	log := conf.Logger.With().Str("agent", name).Logger()

	sconf := search.DefaultConfig()
	sconf.Depth = depth
	sconf.QuiescenceDepth = quiescence
	sconf.Workers = conf.Workers
	sconf.Logger = log
	e, err := search.New(sconf)
	if err != nil {
		return nil, err
	}
	return &Agent{
		Engine:     e,
		Player:     color,
		name:       name,
		difficulty: d,
		log:        log,
	}, nil
}

// Name of the agent
func (a *Agent) Name() string { return a.name }

// Difficulty returns the current difficulty.
func (a *Agent) Difficulty() Difficulty {
	a.Lock()
	defer a.Unlock()
	return a.difficulty
}

// SetDifficulty changes the search depths. It waits for a running search to finish.
func (a *Agent) SetDifficulty(d Difficulty) error {
	depth, quiescence, err := d.Depths()
	if err != nil {
		return err
	}
	a.Lock()
	defer a.Unlock()
	if err = a.Engine.SetDepth(depth, quiescence); err != nil {
		return err
	}
	a.difficulty = d
	a.log.Debug().Stringer("difficulty", d).Int("depth", depth).Int("quiescence", quiescence).Msg("difficulty changed")
	return nil
}

// Analyze searches the position of g for the side to move and returns the full result.
func (a *Agent) Analyze(ctx context.Context, g *game.Game) (search.Result, error) {
	a.Lock()
	defer a.Unlock()
	if g.Outcome().Ended() {
		return search.Result{}, game.ErrGameOver
	}
	a.Engine.SetUpgrades(g.Upgrades())
	res, err := a.Engine.SelectMove(ctx, g.Board(), g.Turn())
	if err != nil {
		return res, errors.WithMessagef(err, "%s searching for %v", a.name, g.Turn())
	}
	return res, nil
}

// Search searches the game state and returns the best move for the side to move.
func (a *Agent) Search(ctx context.Context, g *game.Game) (game.Move, error) {
	res, err := a.Analyze(ctx, g)
	if err != nil {
		return game.Move{}, err
	}
	return res.Move, nil
}

func (a *Agent) Close() error {
	return errors.WithMessagef(a.Engine.Close(), "closing %s", a.name)
}

// record books the result of a finished game from the agent's point of view.
func (a *Agent) record(o game.Outcome) {
	a.Lock()
	defer a.Unlock()
	winner, ok := o.Winner()
	switch {
	case !o.Ended():
	case !ok:
		a.Draw++
	case winner == a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
