package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used when that file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:       512,
			Height:      512,
			Gravity:     800,
			FloorMargin: 5,
		},
		Bird: BirdConfig{
			X:           100,
			Y:           250,
			Width:       34,
			Height:      24,
			JumpImpulse: 300,
		},
		Pipes: PipesConfig{
			OriginX: 400,
			AnchorY: 500,
			Width:   52,
			Height:  320,
			GapMin:  200,
			GapBand: 40,
		},
		Speed: SpeedConfig{
			Base:     2,
			PerPoint: 0.1,
		},
		Storage: StorageConfig{
			BestKey: "bestFlappyBirdScore",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
