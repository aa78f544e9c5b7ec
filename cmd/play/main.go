// Command play lets two computer players play each other and prints the games.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/rs/zerolog"

	knightingale "github.com/knightingale"
	"github.com/knightingale/game"
)

var (
	whiteFlag   = flag.String("white", "medium", "difficulty of white: easy, medium, hard, veryhard or 14-19")
	blackFlag   = flag.String("black", "easy", "difficulty of black")
	gamesFlag   = flag.Int("games", 1, "number of games to play")
	fenFlag     = flag.String("fen", "", "starting position, standard if empty")
	pliesFlag   = flag.Int("max_plies", 300, "stop a game after this many plies")
	workersFlag = flag.Int("workers", runtime.NumCPU(), "search workers per player")
	saveFlag    = flag.String("save", "", "save the last game into this file")
	verboseFlag = flag.Bool("v", false, "log every move")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verboseFlag {
		logger = logger.Level(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	aconf := knightingale.DefaultAgentConfig()
	aconf.Workers = *workersFlag
	aconf.Logger = logger

	white, err := newAgent("white", game.White, *whiteFlag, aconf)
	if err != nil {
		log.Fatal(err)
	}
	defer white.Close()
	black, err := newAgent("black", game.Black, *blackFlag, aconf)
	if err != nil {
		log.Fatal(err)
	}
	defer black.Close()

	conf := knightingale.DefaultArenaConfig()
	conf.Name = *whiteFlag + " vs " + *blackFlag
	conf.FEN = *fenFlag
	conf.MaxPlies = *pliesFlag
	conf.Logger = logger
	arena := knightingale.MakeArena(white, black, conf)

	for i := 0; i < *gamesFlag; i++ {
		if _, err := arena.Play(ctx); err != nil {
			log.Fatalf("game %d: %+v", i, err)
		}
	}
	arena.Log(os.Stdout)

	if *saveFlag != "" {
		if err := save(arena.State(), *saveFlag); err != nil {
			log.Fatal(err)
		}
	}
}

func newAgent(name string, color game.Color, difficulty string, conf knightingale.AgentConfig) (*knightingale.Agent, error) {
	d, err := knightingale.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	return knightingale.NewAgent(name, color, d, conf)
}

// save stores g as a two player session, so it can be resumed or analysed with hint.
func save(g *game.Game, filename string) error {
	conf := knightingale.DefaultSessionConfig()
	conf.Mode = knightingale.Multiplayer
	conf.Agent.Workers = 1
	s, err := knightingale.NewSession(conf)
	if err != nil {
		return err
	}
	defer s.Close()
	s.Adopt(g)
	return s.SaveFile(filename)
}
