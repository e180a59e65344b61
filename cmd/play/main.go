// Command play runs an interactive terminal match against the engine: the
// engine searches and moves, then waits on stdin for the human's reply in
// UCI notation.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/corvidchess/corvid/board/chessboard"
	"github.com/corvidchess/corvid/eval/uniform"
	"github.com/corvidchess/corvid/search"
)

var (
	maxIters  = flag.Uint64("max_iters", 4000, "MCTS iterations per engine move")
	maxTimeMs = flag.Uint64("max_time_ms", 0, "time budget per engine move in milliseconds, 0 for unbounded")
	threads   = flag.Int("threads", 4, "search worker goroutines")
	fen       = flag.String("fen", "", "starting position in FEN, defaults to the initial position")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	position, err := startingPosition(*fen)
	if err != nil {
		log.Fatalf("play: %v", err)
	}

	opts := search.DefaultOptions().WithThreads(*threads)
	limits := search.NewSearchLimits().WithMaxIters(*maxIters)
	if *maxTimeMs > 0 {
		limits = limits.WithMaxTimeMs(*maxTimeMs)
	}
	network := uniform.New()
	tree := search.NewTree(opts)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		state := search.PositionState(position)
		if state.Kind() != search.Unresolved {
			fmt.Printf("game over: %s\n", state)
			return
		}

		tree.Clear()
		move, stats, err := search.BestMove(tree, position, network, network, limits)
		if err != nil {
			log.Fatalf("play: %v", err)
		}
		position.MakeMove(move)
		fmt.Printf("engine plays %s (%d iterations)\n", move.UCI, stats.Iters())
		fmt.Printf("%s\n", position.FEN())

		state = search.PositionState(position)
		if state.Kind() != search.Unresolved {
			fmt.Printf("game over: %s\n", state)
			return
		}

		fmt.Printf("legal moves: %v\n", position.Moves())
		fmt.Print("your move (uci): ")
		if !scanner.Scan() {
			return
		}
		if err := position.ApplyUCI(scanner.Text()); err != nil {
			fmt.Printf("rejected: %v\n", err)
		}
	}
}

func startingPosition(fen string) (*chessboard.Position, error) {
	if fen == "" {
		return chessboard.New(), nil
	}
	return chessboard.FromFEN(fen)
}
