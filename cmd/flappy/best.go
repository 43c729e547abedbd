package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

var flagBestReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset the stored best score",
	Long: `Print the best score the game keeps between runs.

The score lives in the store picked by --store (sqlite by default).

Examples:
  flappy best
  flappy best --store gdata
  flappy best --reset`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagBestReset, "reset", false, "Forget the stored best score")
}

func runBest(_ *cobra.Command, _ []string) {
	e := setup(io.Discard)
	key := e.cfg.Storage.BestKey

	if flagBestReset {
		err := e.best.Delete(key)
		e.close()
		if err != nil {
			fatal("resetting best score: %v", err)
		}
		fmt.Println("Best score reset.")
		return
	}

	scores := flappy.NewScoreStore(e.best, key)
	err := scores.Load()
	e.close()
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Best: %d\n", scores.Best())
}
