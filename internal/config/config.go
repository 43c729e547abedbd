// Package config provides YAML-based game configuration loading and the
// speed progression for the flappy game.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the flappy game.
type FlappyConfig struct {
	World   WorldConfig   `yaml:"world"`
	Bird    BirdConfig    `yaml:"bird"`
	Pipes   PipesConfig   `yaml:"pipes"`
	Speed   SpeedConfig   `yaml:"speed"`
	Storage StorageConfig `yaml:"storage"`
}

// WorldConfig defines the play field in world units.
type WorldConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Gravity     float64 `yaml:"gravity"`
	FloorMargin float64 `yaml:"floor_margin"`
}

// BirdConfig defines the controlled entity.
type BirdConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

// PipesConfig defines the obstacle pair geometry.
type PipesConfig struct {
	OriginX float64 `yaml:"origin_x"`
	AnchorY float64 `yaml:"anchor_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GapMin  float64 `yaml:"gap_min"`
	GapBand float64 `yaml:"gap_band"`
}

// SpeedConfig defines the linear scroll speed-up.
type SpeedConfig struct {
	Base     float64 `yaml:"base"`
	PerPoint float64 `yaml:"per_point"`
}

// StorageConfig names the persisted keys.
type StorageConfig struct {
	BestKey string `yaml:"best_key"`
}

// Floor returns the y-coordinate past which the bird has left the play field.
func (c FlappyConfig) Floor() float64 {
	return float64(c.World.Height)
}

// Validate reports the first setting that would make the game unplayable.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	case c.World.Gravity < 0:
		return fmt.Errorf("config: gravity must not be negative, got %v", c.World.Gravity)
	case c.Bird.Width <= 0 || c.Bird.Height <= 0:
		return fmt.Errorf("config: bird size must be positive, got %vx%v", c.Bird.Width, c.Bird.Height)
	case c.Pipes.Width <= 0 || c.Pipes.Height <= 0:
		return fmt.Errorf("config: pipe size must be positive, got %vx%v", c.Pipes.Width, c.Pipes.Height)
	case c.Pipes.GapMin <= 0 || c.Pipes.GapBand < 0:
		return fmt.Errorf("config: pipe gap must be positive, got min %v band %v", c.Pipes.GapMin, c.Pipes.GapBand)
	case c.Speed.Base <= 0 || c.Speed.PerPoint < 0:
		return fmt.Errorf("config: speed must be positive and non-decreasing, got base %v per point %v", c.Speed.Base, c.Speed.PerPoint)
	case c.Storage.BestKey == "":
		return errors.New("config: storage.best_key must not be empty")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset maps a CLI value to a preset. Empty means "use config".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// baseSpeedFactor returns the multiplier a preset applies to speed.base.
func baseSpeedFactor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}
