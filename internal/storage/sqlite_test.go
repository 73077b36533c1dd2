package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmerkulov/tui-reflex/internal/trial"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func levelResult(score, correct, total int, completed bool) trial.LevelResult {
	acc := 0.0
	if total > 0 {
		acc = float64(correct) / float64(total)
	}
	return trial.LevelResult{
		TotalScore:   score,
		CorrectCount: correct,
		TotalTrials:  total,
		Accuracy:     acc,
		Perfect:      completed && correct == total,
		Passed:       completed && acc >= 0.7,
		Completed:    completed,
		Reward:       score / 2,
		Duration:     90 * time.Second,
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some results
	if _, err := store.SaveResult("bounce", 1, levelResult(450, 9, 10, true)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult("bounce", 1, levelResult(200, 5, 10, true)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult("bounce", 2, levelResult(900, 10, 10, true)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	// Different drill
	if _, err := store.SaveResult("bounce_blitz", 1, levelResult(300, 7, 10, true)); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	// Retrieve top results for bounce
	results, err := store.TopResults("bounce", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	// Should be sorted by score descending
	if results[0].Score != 900 {
		t.Errorf("Expected highest score to be 900, got %d", results[0].Score)
	}
	if results[1].Score != 450 {
		t.Errorf("Expected second score to be 450, got %d", results[1].Score)
	}
	if results[2].Score != 200 {
		t.Errorf("Expected third score to be 200, got %d", results[2].Score)
	}

	// Round-trip of the flag and stat columns
	if !results[0].Perfect || !results[0].Passed || !results[0].Completed {
		t.Errorf("Perfect run flags not preserved: %+v", results[0])
	}
	if results[2].Perfect {
		t.Errorf("5/10 run marked perfect: %+v", results[2])
	}
	if results[0].DurationSecs != 90 {
		t.Errorf("Expected duration 90s, got %d", results[0].DurationSecs)
	}

	// Other drill is isolated
	blitz, err := store.TopResults("bounce_blitz", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(blitz) != 1 || blitz[0].Score != 300 {
		t.Errorf("Expected 1 blitz result with score 300, got %+v", blitz)
	}
}

func TestBestScore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Empty database
	best, err := store.BestScore("bounce")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty database, got %d", best)
	}

	store.SaveResult("bounce", 1, levelResult(100, 4, 10, true))
	store.SaveResult("bounce", 3, levelResult(650, 9, 10, true))

	best, err = store.BestScore("bounce")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 650 {
		t.Errorf("Expected best score 650, got %d", best)
	}
}

func TestHighestPassedLevel(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	level, err := store.HighestPassedLevel("bounce")
	if err != nil {
		t.Fatalf("HighestPassedLevel() failed: %v", err)
	}
	if level != 0 {
		t.Errorf("Expected 0 for empty database, got %d", level)
	}

	store.SaveResult("bounce", 1, levelResult(400, 8, 10, true)) // passed
	store.SaveResult("bounce", 2, levelResult(500, 9, 10, true)) // passed
	store.SaveResult("bounce", 3, levelResult(100, 4, 10, true)) // failed
	store.SaveResult("bounce", 4, levelResult(0, 0, 10, false))  // abandoned

	level, err = store.HighestPassedLevel("bounce")
	if err != nil {
		t.Fatalf("HighestPassedLevel() failed: %v", err)
	}
	if level != 2 {
		t.Errorf("Expected highest passed level 2, got %d", level)
	}
}

func TestClearResults(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveResult("bounce", 1, levelResult(100, 5, 10, true))
	store.SaveResult("bounce_blitz", 1, levelResult(200, 6, 10, true))

	if err := store.ClearResults("bounce"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, err := store.TopResults("bounce", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}

	// Other drill untouched
	blitz, err := store.TopResults("bounce_blitz", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(blitz) != 1 {
		t.Errorf("Expected 1 blitz result to survive, got %d", len(blitz))
	}
}

func TestDrillStats(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveResult("bounce", 1, levelResult(400, 8, 10, true))
	store.SaveResult("bounce", 2, levelResult(600, 10, 10, true))
	store.SaveResult("bounce_blitz", 1, levelResult(300, 6, 10, true))

	stats, err := store.GetDrillStats("bounce")
	if err != nil {
		t.Fatalf("GetDrillStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.RunsCount)
	}
	if stats.BestScore != 600 {
		t.Errorf("Expected best score 600, got %d", stats.BestScore)
	}
	if stats.AvgAccuracy < 0.89 || stats.AvgAccuracy > 0.91 {
		t.Errorf("Expected avg accuracy 0.9, got %v", stats.AvgAccuracy)
	}

	all, err := store.GetAllDrillStats()
	if err != nil {
		t.Fatalf("GetAllDrillStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 drills, got %d", len(all))
	}
	if all["bounce_blitz"] == nil || all["bounce_blitz"].RunsCount != 1 {
		t.Errorf("Blitz stats missing or wrong: %+v", all["bounce_blitz"])
	}
}

func TestOpenHomePathExpansion(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	store, err := Open("~/.reflex/results.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	expected := filepath.Join(tmpHome, ".reflex", "results.db")
	if _, err := os.Stat(expected); os.IsNotExist(err) {
		t.Errorf("Database not created at expanded path %s", expected)
	}
}
