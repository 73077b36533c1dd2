package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmerkulov/tui-reflex/internal/drills/bounce"
	"github.com/dmerkulov/tui-reflex/internal/platform/tui"
	"github.com/dmerkulov/tui-reflex/internal/registry"
	"github.com/dmerkulov/tui-reflex/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <drill>",
	Short: "Play a drill",
	Long: `Start playing the specified drill.

Controls:
  Arrows/hjkl  - Move the zone cursor
  Tab          - Jump to the next edge
  Enter/Space  - Lock in your guess
  Esc/B        - Back to menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Longer memorize windows, fewer decoys
  normal - The configured level table as is
  hard   - Shorter memorize windows, extra decoys
  fixed  - Same as normal (no preset adjustments)

Examples:
  reflex play bounce
  reflex play bounce --difficulty easy
  reflex play bounce_blitz --level 3
  reflex play bounce --config ./my-bounce.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom drill config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (0 = resume where you left off)")
}

func runPlay(cmd *cobra.Command, args []string) {
	drillID := args[0]

	// Check if drill exists
	if !registry.Exists(drillID) {
		fmt.Fprintf(os.Stderr, "Error: unknown drill %q\n", drillID)
		fmt.Fprintln(os.Stderr, "Run 'reflex list' to see available drills.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Set config path and difficulty before creation
	bounce.SetConfigPath(flagConfig)
	bounce.SetDifficultyPreset(flagDifficulty)

	// Create drill instance
	drill, err := registry.Create(drillID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating drill: %v\n", err)
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the drill still works
		store = nil
	}

	// Run the drill
	runErr := tui.Run(drill, store, flagSeed, flagLevel, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running drill: %v\n", runErr)
		os.Exit(1)
	}
}
