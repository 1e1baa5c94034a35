package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsionyx/nonogrid"
	"github.com/tsionyx/nonogrid/internal/color"
	"github.com/tsionyx/nonogrid/internal/gridtext"
	"github.com/tsionyx/nonogrid/internal/gridview"
	"github.com/tsionyx/nonogrid/internal/puzzlefile"
)

var (
	puzzlePath   = flag.String("puzzle", "", "Path to a TOML puzzle file to solve.")
	maxSolutions = flag.Int("max-solutions", 1, "Stop after finding this many distinct solutions (0 means unbounded).")
	maxDepth     = flag.Int("max-depth", 0, "Cap backtracking search depth (0 means unbounded).")
	timeout      = flag.Duration("timeout", 0, "Wall-clock budget for backtracking search (0 means unbounded).")
	strategy     = flag.String("impact-strategy", "min", "Backtracking impact-score strategy: min, sum, max, product, sqrt, log.")
	view         = flag.Bool("view", false, "Open a window showing the solved grid instead of printing it.")
	verbose      = flag.Bool("verbose", false, "Log propagation and search progress to stderr.")
)

func parseStrategy(s string) nonogrid.ImpactStrategy {
	switch s {
	case "sum":
		return nonogrid.Sum
	case "max":
		return nonogrid.Max
	case "product":
		return nonogrid.Product
	case "sqrt":
		return nonogrid.SqrtBased
	case "log":
		return nonogrid.LogBased
	default:
		return nonogrid.Min
	}
}

// domainFor picks the binary or multicolor cell algebra based on
// whether the puzzle file declared a [colors] table.
func domainFor(pf *puzzlefile.Puzzle) color.Domain {
	if len(pf.Colors) == 0 {
		return color.BinaryDomain{}
	}
	ids := make([]color.ID, 0, len(pf.Colors)+1)
	ids = append(ids, color.BlankID)
	for _, id := range pf.Colors {
		ids = append(ids, id)
	}
	return color.NewMultiDomain(ids)
}

func main() {
	flag.Parse()

	if *puzzlePath == "" {
		log.Fatal("Missing required -puzzle flag.")
	}

	pf, err := puzzlefile.Load(*puzzlePath)
	if err != nil {
		log.Fatalf("Couldn't load puzzle: %v", err)
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	puzzle := nonogrid.New(pf.Rows, pf.Columns, domainFor(pf), nonogrid.Options{
		MaxSolutions: *maxSolutions,
		MaxDepth:     *maxDepth,
		Timeout:      *timeout,
		Strategy:     parseStrategy(*strategy),
		Logger:       logger,
	})

	solutions, err := puzzle.Solve(context.Background())
	if err != nil && len(solutions) == 0 {
		log.Fatalf("Couldn't solve puzzle: %v", err)
	}
	if err != nil {
		log.Printf("Search stopped early: %v", err)
	}

	if *view {
		if len(solutions) > 0 {
			puzzle.Board().Restore(solutions[0])
		}
		if verr := gridview.Run(puzzle.Board()); verr != nil {
			log.Fatal(verr)
		}
		return
	}

	for i, snap := range solutions {
		if len(solutions) > 1 {
			log.Printf("solution %d of %d:", i+1, len(solutions))
		}
		gridtext.RenderSnapshot(os.Stdout, snap, puzzle.Board().Width())
	}
}
