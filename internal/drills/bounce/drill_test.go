package bounce

import (
	"testing"
	"time"

	"github.com/dmerkulov/tui-reflex/internal/config"
	"github.com/dmerkulov/tui-reflex/internal/registry"
)

func TestRegistered(t *testing.T) {
	for _, id := range []string{"bounce", "bounce_blitz"} {
		if !registry.Exists(id) {
			t.Errorf("drill %q not registered", id)
		}
		d, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if d.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, d.ID())
		}
		if d.Title() == "" {
			t.Errorf("drill %q has empty title", id)
		}
	}
}

func TestLevelsFromDefaultConfig(t *testing.T) {
	cfg := config.DefaultBounceConfig()

	levels, err := Levels(cfg, VariantStandard)
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	if len(levels) != len(cfg.Levels) {
		t.Fatalf("got %d levels, config has %d", len(levels), len(cfg.Levels))
	}

	for i, lc := range levels {
		src := cfg.Levels[i]
		if lc.Gen.GridSize != cfg.Grid.Size {
			t.Errorf("level %d grid size %d, expected %d", i+1, lc.Gen.GridSize, cfg.Grid.Size)
		}
		if lc.Gen.Reflectors != src.Reflectors || lc.Gen.Decoys != src.Decoys {
			t.Errorf("level %d mirrors %d/%d, expected %d/%d",
				i+1, lc.Gen.Reflectors, lc.Gen.Decoys, src.Reflectors, src.Decoys)
		}
		if lc.Memorize != time.Duration(src.MemorizeMs)*time.Millisecond {
			t.Errorf("level %d memorize %v, expected %dms", i+1, lc.Memorize, src.MemorizeMs)
		}
		if lc.TotalTrials != src.Trials {
			t.Errorf("level %d trials %d, expected %d", i+1, lc.TotalTrials, src.Trials)
		}
		if lc.BasePoints != cfg.Scoring.BasePoints || lc.StreakBonus != cfg.Scoring.StreakBonus {
			t.Errorf("level %d scoring not carried from config", i+1)
		}
	}
}

func TestBlitzVariantTightensLevels(t *testing.T) {
	cfg := config.DefaultBounceConfig()

	standard, err := Levels(cfg, VariantStandard)
	if err != nil {
		t.Fatal(err)
	}
	blitz, err := Levels(cfg, VariantBlitz)
	if err != nil {
		t.Fatal(err)
	}

	for i := range blitz {
		if blitz[i].Memorize >= standard[i].Memorize {
			t.Errorf("level %d blitz memorize %v not shorter than %v",
				i+1, blitz[i].Memorize, standard[i].Memorize)
		}
		if blitz[i].Gen.Decoys != standard[i].Gen.Decoys+blitzExtraDecoys {
			t.Errorf("level %d blitz decoys %d, expected %d",
				i+1, blitz[i].Gen.Decoys, standard[i].Gen.Decoys+blitzExtraDecoys)
		}
		// Everything else tracks the standard table.
		if blitz[i].Predict != standard[i].Predict || blitz[i].TotalTrials != standard[i].TotalTrials {
			t.Errorf("level %d blitz changed predict window or trial count", i+1)
		}
	}
}

func TestLevelsRejectsEmptyTable(t *testing.T) {
	cfg := config.DefaultBounceConfig()
	cfg.Levels = nil
	if _, err := Levels(cfg, VariantStandard); err == nil {
		t.Error("empty level table did not error")
	}

	cfg = config.DefaultBounceConfig()
	cfg.Grid.Size = 1
	if _, err := Levels(cfg, VariantStandard); err == nil {
		t.Error("degenerate grid size did not error")
	}
}
