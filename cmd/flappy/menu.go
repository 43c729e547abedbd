package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
)

// runMenu opens the title menu. After a round you return to it.
func runMenu(_ *cobra.Command, _ []string) {
	e := setup(io.Discard)

	err := tui.RunSession(e.games(), historyOf(e.history), runtimeConfig(), tui.WithModelLogger(e.logger))
	e.close()

	if err != nil {
		fatal("running menu: %v", err)
	}
}
