package config

import (
	_ "embed"
)

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

// DefaultBounceConfig returns the default bounce drill configuration,
// matching defaults/bounce.yaml. Used as the last-resort fallback when the
// embedded YAML cannot be parsed.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Grid: GridConfig{Size: 6},
		Generator: GeneratorConfig{
			PlaceProbability: 0.35,
			MaxAttempts:      100,
			DedupAttempts:    20,
		},
		Scoring: ScoringConfig{
			BasePoints:   100,
			StreakBonus:  25,
			PerfectBonus: 250,
		},
		Levels: []LevelConfig{
			{Reflectors: 1, Decoys: 0, MemorizeMs: 3500, PredictMs: 6000, RevealMs: 2500, Trials: 10, PassThresholdPercent: 60, Reward: 100},
			{Reflectors: 2, Decoys: 1, MemorizeMs: 3200, PredictMs: 6000, RevealMs: 2500, Trials: 10, PassThresholdPercent: 60, Reward: 150},
			{Reflectors: 2, Decoys: 2, MemorizeMs: 3000, PredictMs: 5500, RevealMs: 2500, Trials: 12, PassThresholdPercent: 65, Reward: 200},
			{Reflectors: 3, Decoys: 1, MemorizeMs: 3000, PredictMs: 5500, RevealMs: 2500, Trials: 12, PassThresholdPercent: 65, Reward: 250},
			{Reflectors: 3, Decoys: 2, MemorizeMs: 2800, PredictMs: 5000, RevealMs: 2500, Trials: 12, PassThresholdPercent: 67, Reward: 300},
			{Reflectors: 4, Decoys: 2, MemorizeMs: 2600, PredictMs: 5000, RevealMs: 2500, Trials: 15, PassThresholdPercent: 67, Reward: 350},
			{Reflectors: 4, Decoys: 3, MemorizeMs: 2400, PredictMs: 4500, RevealMs: 2500, Trials: 15, PassThresholdPercent: 70, Reward: 400},
			{Reflectors: 5, Decoys: 3, MemorizeMs: 2200, PredictMs: 4500, RevealMs: 2500, Trials: 15, PassThresholdPercent: 70, Reward: 450},
			{Reflectors: 5, Decoys: 4, MemorizeMs: 2000, PredictMs: 4000, RevealMs: 2500, Trials: 15, PassThresholdPercent: 75, Reward: 500},
			{Reflectors: 6, Decoys: 4, MemorizeMs: 1800, PredictMs: 4000, RevealMs: 2500, Trials: 15, PassThresholdPercent: 80, Reward: 550},
		},
	}
}
