// Command hint loads a saved game or a FEN position and prints the best move for the side
// to move.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	knightingale "github.com/knightingale"
	"github.com/knightingale/game"
	"github.com/knightingale/search"
)

var (
	loadFlag       = flag.String("load", "", "saved game to analyse")
	fenFlag        = flag.String("fen", "", "position to analyse, used when -load is empty")
	difficultyFlag = flag.String("difficulty", "medium", "easy, medium, hard, veryhard or 14-19")
	workersFlag    = flag.Int("workers", runtime.NumCPU(), "search workers")
	timeoutFlag    = flag.Duration("timeout", time.Minute, "give up after this long")
	dotFlag        = flag.String("dot", "", "write the scored root moves as a Graphviz file")
	verboseFlag    = flag.Bool("v", false, "log search statistics")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verboseFlag {
		logger = logger.Level(zerolog.DebugLevel)
	}

	d, err := knightingale.ParseDifficulty(*difficultyFlag)
	if err != nil {
		log.Fatal(err)
	}
	g, err := position(logger)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	conf := knightingale.DefaultAgentConfig()
	conf.Workers = *workersFlag
	conf.Logger = logger
	a, err := knightingale.NewAgent("hint", g.Turn(), d, conf)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()
	res, err := a.Analyze(ctx, g)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	fmt.Printf("%v to move: %v\n", g.Turn(), res.Move)
	fmt.Print(res)

	if *dotFlag != "" {
		if err := writeDOT(*dotFlag, res); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

func position(logger zerolog.Logger) (*game.Game, error) {
	if *loadFlag == "" {
		if *fenFlag == "" {
			return game.NewGame(), nil
		}
		return game.FromFEN(*fenFlag)
	}
	conf := knightingale.DefaultSessionConfig()
	conf.Mode = knightingale.Multiplayer
	conf.Agent.Workers = 1
	conf.Agent.Logger = logger
	s, err := knightingale.NewSession(conf)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	if err = s.LoadFile(*loadFlag); err != nil {
		return nil, err
	}
	return s.Game(), nil
}

func writeDOT(filename string, res search.Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = search.WriteDOT(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
