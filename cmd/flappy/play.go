package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round straight away",
	Long: `Start playing without the title menu.

Controls:
  Space/Up/W/Enter/Click  - Flap (and start or restart a round)
  P                       - Pause
  Esc/B                   - Leave (on the result screen or while paused)
  Ctrl+S                  - Save a text screenshot to ~/.flappy/screenshots
  Q/Ctrl+C                - Quit

Difficulty options:
  easy   - Pipes start at 75% speed
  normal - Default speed
  hard   - Pipes start at 150% speed

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --seed 42 --fps 30
  flappy play --config ./my-flappy.yaml --store gdata`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	e := setup(io.Discard)

	_, err := tui.Run(e.games()(), historyOf(e.history), runtimeConfig(), tui.WithModelLogger(e.logger))
	e.close()

	if err != nil {
		fatal("running game: %v", err)
	}
}
