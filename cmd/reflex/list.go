package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerkulov/tui-reflex/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available drills",
	Long:  `Shows a list of all registered drills and their level counts.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	drills := registry.List()

	if len(drills) == 0 {
		fmt.Println("No drills available.")
		return
	}

	fmt.Println("Available drills:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, d := range drills {
		if len(d.ID) > maxIDLen {
			maxIDLen = len(d.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "------", "-----")

	// Print drills
	for _, d := range drills {
		levels := "?"
		if drill, err := registry.Create(d.ID); err == nil {
			if table, err := drill.Levels(); err == nil {
				levels = fmt.Sprintf("%d", len(table))
			}
		}
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, d.ID, levels, d.Title)
	}

	fmt.Println()
	fmt.Println("Run 'reflex play <id>' to start a drill.")
}
