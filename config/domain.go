package config

import (
	"github.com/pthm-cable/driftfield/fluid"
	"github.com/pthm-cable/driftfield/shading"
)

// FieldParams returns the physics parameters without an interaction. Use
// FieldParamsFor when the field size is known.
func (c *Config) FieldParams() fluid.Params {
	return fluid.Params{
		Spacing:      float32(c.Field.Spacing),
		Damping:      float32(c.Physics.Damping),
		Gravity:      float32(c.Physics.Gravity),
		MaxSpeedHint: float32(c.Field.MaxSpeedHint),
	}
}

// FieldParamsFor returns the physics parameters for a width x height field,
// including the repulsion when interaction is enabled.
func (c *Config) FieldParamsFor(width, height int) fluid.Params {
	p := c.FieldParams()
	if c.Interaction.Enabled {
		p.Interaction = fluid.NewRepulsion(
			float32(width),
			float32(height),
			float32(c.Interaction.Radius),
			float32(c.Interaction.Scale),
		)
	}
	return p
}

// Palette returns the sprite color endpoints and alpha.
func (c *Config) Palette() shading.Palette {
	return shading.Palette{
		Slow:  toRGB(c.Render.SlowColor),
		Fast:  toRGB(c.Render.FastColor),
		Alpha: float32(c.Render.Alpha),
	}
}

// ClearColor returns the background color.
func (c *Config) ClearColor() shading.RGB {
	return toRGB(c.Render.ClearColor)
}

func toRGB(v [3]float64) shading.RGB {
	return shading.RGB{R: float32(v[0]), G: float32(v[1]), B: float32(v[2])}
}
