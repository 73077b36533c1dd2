// Package config provides YAML-based drill configuration loading and
// difficulty presets for the trainer.
package config

// BounceConfig contains all configuration for the bounce drill family.
type BounceConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Generator GeneratorConfig `yaml:"generator"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Levels    []LevelConfig   `yaml:"levels"`
}

// GridConfig defines the playing field.
type GridConfig struct {
	Size int `yaml:"size"` // Cells per side
}

// GeneratorConfig exposes the puzzle-generation tuning knobs. These shape
// the difficulty curve and are expected to be retuned, so they live in
// config rather than as constants.
type GeneratorConfig struct {
	PlaceProbability float64 `yaml:"place_probability"`
	MaxAttempts      int     `yaml:"max_attempts"`
	DedupAttempts    int     `yaml:"dedup_attempts"`
}

// ScoringConfig defines per-trial scoring.
type ScoringConfig struct {
	BasePoints   int `yaml:"base_points"`
	StreakBonus  int `yaml:"streak_bonus"`
	PerfectBonus int `yaml:"perfect_bonus"`
}

// LevelConfig defines one level of a drill.
type LevelConfig struct {
	Reflectors           int `yaml:"reflectors"`
	Decoys               int `yaml:"decoys"`
	MemorizeMs           int `yaml:"memorize_ms"`
	PredictMs            int `yaml:"predict_ms"`
	RevealMs             int `yaml:"reveal_ms"`
	Trials               int `yaml:"trials"`
	PassThresholdPercent int `yaml:"pass_threshold_percent"`
	Reward               int `yaml:"reward"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ApplyBouncePreset adjusts the level table for a difficulty preset.
// Easy stretches the memorize window and drops a decoy; hard shortens the
// window and adds decoys. Normal and fixed leave the table as configured.
func ApplyBouncePreset(cfg *BounceConfig, preset DifficultyPreset) {
	for i := range cfg.Levels {
		lvl := &cfg.Levels[i]
		switch preset {
		case DifficultyEasy:
			lvl.MemorizeMs = lvl.MemorizeMs * 3 / 2
			if lvl.Decoys > 0 {
				lvl.Decoys--
			}
		case DifficultyHard:
			lvl.MemorizeMs = lvl.MemorizeMs * 7 / 10
			lvl.Decoys += 2
		}
	}
}
