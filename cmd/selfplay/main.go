// Command selfplay runs games of self-play against the uniform reference
// evaluator, writing packed training samples to a file.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/corvidchess/corvid/board"
	"github.com/corvidchess/corvid/board/chessboard"
	"github.com/corvidchess/corvid/eval/uniform"
	"github.com/corvidchess/corvid/search"
	"github.com/corvidchess/corvid/selfplay"
)

var (
	threads       = flag.Int("threads", 2, "search worker goroutines per game")
	parallelGames = flag.Int("parallel_games", 4, "number of games to run concurrently, each with its own tree")
	games         = flag.Int("games", 100, "total number of self-play games to run, split evenly across parallel_games")
	maxIters      = flag.Uint64("max_iters", 800, "MCTS iterations per move")
	hashBytes     = flag.Int("hash_bytes", 1<<24, "transposition table size in bytes")
	treeBytes     = flag.Int("tree_bytes", 1<<26, "search tree arena size in bytes")
	outPath       = flag.String("out", "samples.bin", "path to write packed training samples to")
	sinkBuffer    = flag.Int("sink_buffer", 64, "number of in-flight game sample blobs the sink buffers")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime)

	opts := search.DefaultOptions().
		WithThreads(*threads).
		WithHashBytes(*hashBytes).
		WithTreeBytes(*treeBytes)
	limits := search.NewSearchLimits().WithMaxIters(*maxIters)

	network := uniform.New()
	openings := []selfplay.Opening{
		func() board.Position { return chessboard.New() },
	}

	sink := selfplay.NewSink(*sinkBuffer)

	f, err := os.OpenFile(*outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		log.Fatalf("selfplay: opening output file: %v", err)
	}
	defer f.Close()

	done := make(chan error, 1)
	go func() {
		done <- sink.Drain(func(blob []byte) error {
			_, werr := f.Write(blob)
			return werr
		})
	}()

	drivers := make([]*selfplay.Driver, *parallelGames)
	for i := range drivers {
		drivers[i] = selfplay.NewDriver(opts, network, network, limits, openings, time.Now().UnixNano()+int64(i), sink, log.Default())
	}

	gamesPerDriver := *games / *parallelGames
	if gamesPerDriver < 1 {
		gamesPerDriver = 1
	}
	if err := selfplay.RunPool(drivers, gamesPerDriver); err != nil {
		log.Printf("selfplay: some games failed to marshal: %v", err)
	}

	sink.Close()
	if err := <-done; err != nil {
		log.Fatalf("selfplay: writing samples: %v", err)
	}
	log.Printf("selfplay: wrote samples to %s", *outPath)
}
