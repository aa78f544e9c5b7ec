// This program plays random games with the knightingale move generator, checks every position
// against notnil/chess and writes every distinct move it saw into a file.

package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/knightingale/game"
)

var (
	numGameFlag   = flag.Int("num_game", 10, "number of game to play")
	maxPliesFlag  = flag.Int("max_plies", 400, "stop a game after this many plies")
	seedFlag      = flag.Int64("seed", 1, "random seed")
	chessMovePath = flag.String("path", "chess_moves.txt", "chess possible moves path to generate to")
	verboseFlag   = flag.Bool("v", false, "log every game")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verboseFlag {
		logger = logger.Level(zerolog.DebugLevel)
	}

	// If the file doesn't exist, create it, or append to the file
	f, err := os.OpenFile(*chessMovePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	r := rand.New(rand.NewSource(*seedFlag))
	movesMap := make(map[string]struct{}, 0)
	var positions, mismatches int
	for i := 0; i < *numGameFlag; i++ {
		g := game.NewGame()
		// generate moves until game is over
		for ply := 0; !g.Outcome().Ended() && ply < *maxPliesFlag; ply++ {
			b := g.Board()
			moves := b.LegalMoves(g.Turn())
			positions++
			if fen := b.FEN(g.Turn()); !matchesReference(fen, moves) {
				mismatches++
				logger.Error().Str("fen", fen).Int("game", i).Int("ply", ply).Msg("move generator disagrees with notnil/chess")
			}
			for _, m := range moves {
				mStr := m.String()
				if _, ok := movesMap[mStr]; !ok {
					movesMap[mStr] = struct{}{}
					if _, err := f.Write([]byte(mStr + "\n")); err != nil {
						log.Fatal(err)
					}
				}
			}
			// select a random move
			if _, err := g.Apply(moves[r.Intn(len(moves))]); err != nil {
				log.Fatal(err)
			}
		}
		logger.Debug().Int("game", i).Int("plies", g.Plies()).Stringer("outcome", g.Outcome()).Msg("game done")
	}
	logger.Info().Int("positions", positions).Int("mismatches", mismatches).Int("moves", len(movesMap)).Msg("done")
	if mismatches > 0 {
		os.Exit(1)
	}
}

// matchesReference compares moves with the moves notnil/chess finds in fen. Promotions are
// compared by squares only.
func matchesReference(fen string, moves []game.Move) bool {
	opt, err := chess.FEN(fen)
	if err != nil {
		return false
	}
	ref := make(map[string]struct{})
	for _, m := range chess.NewGame(opt).ValidMoves() {
		ref[m.S1().String()+m.S2().String()] = struct{}{}
	}
	got := make([]string, 0, len(moves))
	for _, m := range moves {
		got = append(got, m.String())
	}
	if len(got) != len(ref) {
		return false
	}
	for _, s := range got {
		if _, ok := ref[s]; !ok {
			return false
		}
	}
	return true
}
