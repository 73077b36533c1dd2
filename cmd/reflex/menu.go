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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the trainer with a drill picker menu",
	Long: `Start the trainer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a drill.
After a drill run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select drill
  Tab          - View results
  Q            - Quit

Examples:
  reflex menu
  reflex menu --db ./results.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--seed, --db)
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the results screen
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from results screen
		}

		drillID := menuResult.DrillID
		if drillID == "" {
			break
		}

		// Menu play uses the default config and difficulty
		bounce.SetConfigPath("")
		bounce.SetDifficultyPreset("")

		// Create drill instance
		drill, err := registry.Create(drillID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating drill: %v\n", err)
			continue
		}

		// Run the drill
		if err := tui.Run(drill, store, flagSeed, 0, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running drill: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
