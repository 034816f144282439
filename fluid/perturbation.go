package fluid

// Perturbation is a radial velocity impulse request. Strength < 0 attracts
// particles toward (X, Y), strength > 0 repels them.
type Perturbation struct {
	X, Y     float32
	Radius   float32
	Strength float32
}

// Attracts reports whether the perturbation pulls particles inward.
func (p Perturbation) Attracts() bool {
	return p.Strength < 0
}
