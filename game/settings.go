package game

import (
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/input"
	"github.com/pthm-cable/driftfield/renderer"
)

func renderOptions(cfg *config.Config) renderer.Options {
	r := cfg.Render
	return renderer.Options{
		ParticleSize: float32(r.ParticleSize),
		BlurPasses:   r.BlurPasses,
		SpeedEpsilon: float32(r.SpeedEpsilon),
		Palette:      cfg.Palette(),
		ClearColor:   cfg.ClearColor(),
	}
}

func inputMapper(cfg *config.Config) input.Mapper {
	return input.Mapper{
		Radius:          float32(cfg.Input.Radius),
		AttractStrength: float32(cfg.Input.AttractStrength),
		RepelStrength:   float32(cfg.Input.RepelStrength),
	}
}
