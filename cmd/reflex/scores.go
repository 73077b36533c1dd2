package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmerkulov/tui-reflex/internal/registry"
	"github.com/dmerkulov/tui-reflex/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <drill>",
	Short: "Show best results for a drill",
	Long: `Display the top 10 results for the specified drill.

Examples:
  reflex scores bounce
  reflex scores bounce_blitz`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	drillID := args[0]

	// Check if drill exists
	if !registry.Exists(drillID) {
		fmt.Fprintf(os.Stderr, "Error: unknown drill %q\n", drillID)
		fmt.Fprintln(os.Stderr, "Run 'reflex list' to see available drills.")
		os.Exit(1)
	}

	// Get drill title
	drill, err := registry.Create(drillID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating drill: %v\n", err)
		os.Exit(1)
	}
	title := drill.Title()

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Get top results
	results, err := store.TopResults(drillID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	// Display results
	fmt.Printf("Best Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'reflex play %s' to set the first one!\n", drillID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-5s  %-8s  %-5s  %-10s  %s\n", "Rank", "Lvl", "Score", "Acc", "Result", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-5s  %-10s  %s\n", "----", "---", "-----", "---", "------", "----")

	// Print results
	for i, entry := range results {
		verdict := "failed"
		switch {
		case !entry.Completed:
			verdict = "abandoned"
		case entry.Perfect:
			verdict = "perfect"
		case entry.Passed:
			verdict = "passed"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-5d  %-8d  %3.0f%%  %-10s  %s\n",
			i+1, entry.Level, entry.Score, entry.Accuracy*100, verdict, dateStr)
	}

	// Show aggregate stats
	fmt.Println()
	if stats, err := store.GetDrillStats(drillID); err == nil && stats.RunsCount > 0 {
		fmt.Printf("Runs: %d  Best: %d  Avg accuracy: %.0f%%  Total reward: %d\n",
			stats.RunsCount, stats.BestScore, stats.AvgAccuracy*100, stats.TotalReward)
	}
}
