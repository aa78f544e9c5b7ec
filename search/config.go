package search

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/knightingale/game"
)

// Evaluator scores a board from side's point of view.
type Evaluator func(b *game.Board, side game.Color) int

// Config is the structure to configure an Engine.
type Config struct {
	Depth           int `json:"depth"`            // plies searched in full, the root move included
	QuiescenceDepth int `json:"quiescence_depth"` // bound of the capture-only extension run once Depth is spent
	Workers         int `json:"workers"`          // size of the worker pool, and number of root chunks

	Upgrades game.Upgrades  `json:"-"`
	Evaluate Evaluator      `json:"-"` // nil means (*game.Board).Score
	Logger   zerolog.Logger `json:"-"`
}

func DefaultConfig() Config {
	return Config{
		Depth:           4,
		QuiescenceDepth: 1,
		Workers:         runtime.NumCPU(),
		Upgrades:        game.DefaultUpgrades,
		Logger:          zerolog.Nop(),
	}
}

func (c Config) IsValid() bool {
	return c.Depth >= 1 && c.QuiescenceDepth >= 1 && c.Workers >= 1
}
