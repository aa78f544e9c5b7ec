package search

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/knightingale/game"
)

// Engine owns a worker pool and the search settings of one computer player.
//
// Searches on the same Engine are serialized; settings change only between searches.
type Engine struct {
	sync.Mutex
	Config

	pool *Pool
	log  zerolog.Logger
}

// New creates an Engine and starts its worker pool.
func New(conf Config) (*Engine, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid search config: depth %d, quiescence %d, workers %d",
			conf.Depth, conf.QuiescenceDepth, conf.Workers)
	}
	if conf.Evaluate == nil {
		conf.Evaluate = (*game.Board).Score
	}
	return &Engine{
		Config: conf,
		pool:   NewPool(conf.Workers, conf.Logger),
		log:    conf.Logger,
	}, nil
}

// SetDepth changes the search depth and the quiescence depth. It waits for a running
// search to finish.
func (e *Engine) SetDepth(depth, quiescence int) error {
	if depth < 1 || quiescence < 1 {
		return errors.Errorf("invalid depth %d/%d", depth, quiescence)
	}
	e.Lock()
	e.Depth = depth
	e.QuiescenceDepth = quiescence
	e.Unlock()
	return nil
}

// SetUpgrades changes the promotion choices used when applying hypothetical moves.
func (e *Engine) SetUpgrades(up game.Upgrades) {
	e.Lock()
	e.Upgrades = up
	e.Unlock()
}

// Depths returns the current depth and quiescence depth.
func (e *Engine) Depths() (depth, quiescence int) {
	e.Lock()
	defer e.Unlock()
	return e.Depth, e.QuiescenceDepth
}

// Close stops the worker pool.
func (e *Engine) Close() error {
	return e.pool.Close()
}
