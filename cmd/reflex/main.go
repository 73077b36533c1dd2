// reflex is a terminal trainer for spatial working memory: memorize a grid
// of angled mirrors, then predict where a ball entering from the edge will
// exit after bouncing through them.
//
// Usage:
//
//	reflex list              - List available drills
//	reflex play <drill>      - Play a drill
//	reflex menu              - Start menu to pick drills interactively
//	reflex serve             - Start SSH server for remote play
//	reflex scores <drill>    - Show best results for a drill
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible puzzles
//	--db <path>     - Set database path (default: ~/.reflex/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import drills to register them
	_ "github.com/dmerkulov/tui-reflex/internal/drills/bounce"
)

var (
	// Global flags
	flagSeed   uint64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "Bounce Recall - train spatial memory in your terminal",
	Long: `Bounce Recall is a terminal trainer for spatial working memory.

Each trial briefly shows a grid of angled mirrors, hides them, then asks
where a ball entering from the edge will exit after bouncing through.

Available commands:
  list     - Show all available drills
  play     - Play a specific drill directly
  menu     - Interactive drill picker menu
  serve    - Start SSH server for remote play
  scores   - View best results

Examples:
  reflex list
  reflex play bounce
  reflex menu
  reflex serve --ssh :2222
  reflex scores bounce`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.reflex/results.db", "Path to results database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
