package shading

// PingPong holds two render targets and the index of the one holding the
// latest image. A pass reads Read(), writes Write(), then calls Swap, so
// after n passes the latest image is in targets[n%2] and Swaps() == n.
type PingPong[T any] struct {
	targets [2]T
	latest  int
	swaps   int
}

// NewPingPong creates a pair with a holding the initial image.
func NewPingPong[T any](a, b T) *PingPong[T] {
	return &PingPong[T]{targets: [2]T{a, b}}
}

// Read returns the target holding the latest image.
func (p *PingPong[T]) Read() T {
	return p.targets[p.latest]
}

// Write returns the target the next pass renders into.
func (p *PingPong[T]) Write() T {
	return p.targets[1-p.latest]
}

// Swap marks the write target as holding the latest image.
func (p *PingPong[T]) Swap() {
	p.latest = 1 - p.latest
	p.swaps++
}

// Reset makes the first target current again, as at the start of a frame.
func (p *PingPong[T]) Reset() {
	p.latest = 0
	p.swaps = 0
}

// Latest returns the index of the target holding the latest image.
func (p *PingPong[T]) Latest() int {
	return p.latest
}

// Swaps returns the number of swaps since the last Reset.
func (p *PingPong[T]) Swaps() int {
	return p.swaps
}

// Targets returns both targets in construction order.
func (p *PingPong[T]) Targets() [2]T {
	return p.targets
}
