// Package bounce defines the Bounce Recall drill family: memorize a grid of
// angled mirrors, then predict where a ball entering from the edge will exit
// once the mirrors are hidden.
package bounce

import (
	"fmt"
	"time"

	"github.com/dmerkulov/tui-reflex/internal/config"
	"github.com/dmerkulov/tui-reflex/internal/registry"
	"github.com/dmerkulov/tui-reflex/internal/scenario"
	"github.com/dmerkulov/tui-reflex/internal/trial"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// Variant selects between the standard drill and the blitz variant.
type Variant int

const (
	VariantStandard Variant = iota
	VariantBlitz
)

// Blitz tuning relative to the standard tables.
const (
	blitzMemorizeNum = 3 // memorize window scaled by 3/5
	blitzMemorizeDen = 5
	blitzExtraDecoys = 2
)

// Drill exposes the bounce level tables through the registry.
type Drill struct {
	variant Variant
}

// New creates the standard bounce drill.
func New() *Drill {
	return &Drill{variant: VariantStandard}
}

// NewBlitz creates the blitz variant: shorter memorize windows and extra
// decoy mirrors on the same level progression.
func NewBlitz() *Drill {
	return &Drill{variant: VariantBlitz}
}

// ID returns the drill identifier.
func (d *Drill) ID() string {
	if d.variant == VariantBlitz {
		return "bounce_blitz"
	}
	return "bounce"
}

// Title returns the display name.
func (d *Drill) Title() string {
	if d.variant == VariantBlitz {
		return "Bounce Recall: Blitz"
	}
	return "Bounce Recall"
}

// Levels loads the configured level table and converts it into trial
// configurations.
func (d *Drill) Levels() ([]trial.Config, error) {
	cfg, err := config.LoadBounce(configPath)
	if err != nil {
		return nil, fmt.Errorf("bounce: load config: %w", err)
	}
	if difficultyPreset != "" {
		config.ApplyBouncePreset(&cfg, difficultyPreset)
	}
	return Levels(cfg, d.variant)
}

// Levels converts a loaded configuration into trial configs for a variant.
func Levels(cfg config.BounceConfig, v Variant) ([]trial.Config, error) {
	if len(cfg.Levels) == 0 {
		return nil, fmt.Errorf("bounce: config has no levels")
	}
	if cfg.Grid.Size < 2 {
		return nil, fmt.Errorf("bounce: grid size %d too small", cfg.Grid.Size)
	}

	out := make([]trial.Config, 0, len(cfg.Levels))
	for _, lvl := range cfg.Levels {
		memorize := lvl.MemorizeMs
		decoys := lvl.Decoys
		if v == VariantBlitz {
			memorize = memorize * blitzMemorizeNum / blitzMemorizeDen
			decoys += blitzExtraDecoys
		}

		gen := scenario.DefaultParams()
		gen.GridSize = cfg.Grid.Size
		gen.Reflectors = lvl.Reflectors
		gen.Decoys = decoys
		if cfg.Generator.PlaceProbability > 0 {
			gen.PlaceProbability = cfg.Generator.PlaceProbability
		}
		if cfg.Generator.MaxAttempts > 0 {
			gen.MaxAttempts = cfg.Generator.MaxAttempts
		}
		if cfg.Generator.DedupAttempts > 0 {
			gen.DedupAttempts = cfg.Generator.DedupAttempts
		}

		out = append(out, trial.Config{
			Gen:                  gen,
			Memorize:             time.Duration(memorize) * time.Millisecond,
			Predict:              time.Duration(lvl.PredictMs) * time.Millisecond,
			Reveal:               time.Duration(lvl.RevealMs) * time.Millisecond,
			TotalTrials:          lvl.Trials,
			PassThresholdPercent: lvl.PassThresholdPercent,
			RewardPoints:         lvl.Reward,
			BasePoints:           cfg.Scoring.BasePoints,
			StreakBonus:          cfg.Scoring.StreakBonus,
			PerfectBonus:         cfg.Scoring.PerfectBonus,
		})
	}
	return out, nil
}

func init() {
	registry.Register("bounce", func() registry.Drill {
		return New()
	})
	registry.Register("bounce_blitz", func() registry.Drill {
		return NewBlitz()
	})
}
