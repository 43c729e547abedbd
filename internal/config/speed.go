package config

// SpeedCurve computes the scroll speed for a score.
// Speed grows linearly with the score and falls back to the base when the
// score resets.
type SpeedCurve struct {
	base     float64
	perPoint float64
}

// NewSpeedCurve creates a speed curve from configuration.
func NewSpeedCurve(cfg SpeedConfig) SpeedCurve {
	return SpeedCurve{
		base:     cfg.Base,
		perPoint: max(cfg.PerPoint, 0),
	}
}

// At returns the speed for the given score: base + score*perPoint.
func (c SpeedCurve) At(score int) float64 {
	if score < 0 {
		score = 0
	}
	return c.base + float64(score)*c.perPoint
}

// Base returns the speed at score 0.
func (c SpeedCurve) Base() float64 {
	return c.base
}
