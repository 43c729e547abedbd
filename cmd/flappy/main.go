// flappy is a terminal Flappy Bird: tap to flap through an endless stream
// of pipes, locally or over SSH.
//
// Usage:
//
//	flappy                   - Title menu (play, high scores)
//	flappy play              - Start a round straight away
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show the best recorded rounds
//	flappy best [--reset]    - Show or clear the stored best score
//	flappy config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.flappy/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - easy, normal or hard
//	--store <kind>       - Where the best score lives: sqlite, gdata or memory
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagStore      string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy is a terminal remake of Flappy Bird.

Tap Space, Up, W, Enter or click to flap. Every pipe pair you pass is a
point and makes the pipes scroll a little faster.

Available commands:
  play     - Start a round straight away
  serve    - Start SSH server for remote play
  scores   - View the best recorded rounds
  best     - Show or reset the stored best score
  config   - Print the default configuration

Run without a command to open the title menu.

Examples:
  flappy
  flappy play --difficulty hard
  flappy serve --ssh :2222
  flappy best --reset`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Best score store: sqlite, gdata, memory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(configCmd)
}
