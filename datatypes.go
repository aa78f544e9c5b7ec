package knightingale

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/knightingale/game"
)

// ErrUnknownDifficulty is returned for a difficulty that is neither a preset nor in the custom range.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects the search depths of a computer player.
type Difficulty int

const (
	Easy     Difficulty = 4
	Medium   Difficulty = 5
	Hard     Difficulty = 6
	VeryHard Difficulty = 7

	// custom difficulties search n%10 plies with a single quiescence ply
	minCustom Difficulty = 14
	maxCustom Difficulty = 19
)

// Depths returns the search depth and quiescence depth of d.
func (d Difficulty) Depths() (depth, quiescence int, err error) {
	switch {
	case d == Easy:
		return 4, 1, nil
	case d == Medium:
		return 4, 3, nil
	case d == Hard:
		return 5, 3, nil
	case d == VeryHard:
		return 5, 5, nil
	case d >= minCustom && d <= maxCustom:
		return int(d) % 10, 1, nil
	}
	return 0, 0, errors.Wrapf(ErrUnknownDifficulty, "%d", int(d))
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case VeryHard:
		return "very hard"
	}
	return fmt.Sprintf("custom(%d)", int(d))
}

// ParseDifficulty accepts a preset name ("easy", "medium", "hard", "veryhard") or a number.
func ParseDifficulty(s string) (Difficulty, error) {
	var d Difficulty
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		d = Easy
	case "medium":
		d = Medium
	case "hard":
		d = Hard
	case "veryhard", "very hard":
		d = VeryHard
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.Wrapf(ErrUnknownDifficulty, "%q", s)
		}
		d = Difficulty(n)
	}
	if _, _, err := d.Depths(); err != nil {
		return 0, err
	}
	return d, nil
}

// Mode says who plays the two sides of a session.
type Mode int

const (
	SinglePlayer Mode = iota // a human against the computer
	Multiplayer              // two humans on one board
)

// AgentConfig configures the search resources of a computer player.
type AgentConfig struct {
	Workers int            `json:"workers"` // size of the search worker pool
	Logger  zerolog.Logger `json:"-"`
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Workers: runtime.NumCPU(),
		Logger:  zerolog.Nop(),
	}
}

func (c AgentConfig) IsValid() bool { return c.Workers >= 1 }

// SessionConfig for a Session.
type SessionConfig struct {
	Mode  Mode       `json:"mode"`
	Human game.Color `json:"human"` // the human side in single player

	Difficulty Difficulty `json:"difficulty"` // the computer opponent
	Assistant  Difficulty `json:"assistant"`  // used for hints

	Agent AgentConfig `json:"agent"`
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Mode:       SinglePlayer,
		Human:      game.White,
		Difficulty: Medium,
		Assistant:  Easy,
		Agent:      DefaultAgentConfig(),
	}
}

func (c SessionConfig) IsValid() bool {
	if c.Mode != SinglePlayer && c.Mode != Multiplayer {
		return false
	}
	if c.Human != game.White && c.Human != game.Black {
		return false
	}
	if _, _, err := c.Difficulty.Depths(); err != nil {
		return false
	}
	if _, _, err := c.Assistant.Depths(); err != nil {
		return false
	}
	return c.Agent.IsValid()
}

// ArenaConfig for an Arena.
type ArenaConfig struct {
	Name string `json:"name"`
	// FEN is the starting position. Empty means the standard one.
	FEN string `json:"fen"`
	// MaxPlies stops a game that runs too long. Zero means no limit.
	MaxPlies int `json:"max_plies"`

	Logger zerolog.Logger `json:"-"`
}

func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Name:     "UNKNOWN GAME",
		MaxPlies: 300,
		Logger:   zerolog.Nop(),
	}
}

func (c ArenaConfig) IsValid() bool { return c.MaxPlies >= 0 }
