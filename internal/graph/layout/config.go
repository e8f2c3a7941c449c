package layout

import "math"

// Config carries every tunable of the force simulation. The defaults
// reproduce the d3-force parameters the dashboard renders with.
type Config struct {
	Width  float64
	Height float64

	LinkDistance   float64
	LinkIterations int
	ChargeStrength float64
	CenterStrength float64
	AxisStrength   float64

	VelocityDecay float64
	AlphaMin      float64
	AlphaDecay    float64
}

func DefaultConfig(width, height float64) Config {
	alphaMin := 0.001
	return Config{
		Width:          width,
		Height:         height,
		LinkDistance:   100,
		LinkIterations: 1,
		ChargeStrength: -400,
		CenterStrength: 1,
		AxisStrength:   0.1,
		VelocityDecay:  0.4,
		AlphaMin:       alphaMin,
		AlphaDecay:     1 - math.Pow(alphaMin, 1.0/300),
	}
}

// CenterX and CenterY are the attraction point for the center and axis
// forces, the middle of the canvas.
func (c Config) CenterX() float64 { return c.Width / 2 }
func (c Config) CenterY() float64 { return c.Height / 2 }
