package ur_arm

import (
	"math"

	"github.com/golang/geo/r3"
)

// Chaotic samplers integrate a dynamical system with forward Euler and hold
// mutable state between samples. Each waypoint advances the system exactly
// one step, so the sample order matters and a sampler cannot be reused across
// trajectories. The renormalization after every step is load bearing:
// unbounded attractor coordinates would otherwise escape the coupling ranges
// the joint deltas are tuned for.

// lorenzAttractor integrates the Lorenz system
// dx = sigma(y-x), dy = x(rho-z)-y, dz = xy - beta·z.
type lorenzAttractor struct {
	sigma  float64
	rho    float64
	beta   float64
	dt     float64
	radius float64
	state  r3.Vector
}

func newLorenzAttractor(scale, complexity float64) *lorenzAttractor {
	return &lorenzAttractor{
		sigma:  10.0,
		rho:    28.0 * complexity,
		beta:   8.0 / 3.0,
		dt:     0.01,
		radius: scale * 10,
		state:  r3.Vector{X: 1, Y: 1, Z: 1},
	}
}

func (a *lorenzAttractor) Sample(_ float64) r3.Vector {
	s := a.state
	d := r3.Vector{
		X: a.sigma * (s.Y - s.X),
		Y: s.X*(a.rho-s.Z) - s.Y,
		Z: s.X*s.Y - a.beta*s.Z,
	}
	s = s.Add(d.Mul(a.dt))
	if n := s.Norm(); n > 0 {
		s = s.Mul(a.radius / n)
	}
	a.state = s
	return s
}

func lorenzCoupling(p r3.Vector, _ float64) JointAngles {
	return JointAngles{
		p.X * 0.5,
		p.Y * 0.4,
		p.Z * 0.3,
		p.X * 0.2,
		p.Y * 0.2,
		p.Z * 0.2,
	}
}

// rosslerAttractor integrates the Rössler system
// dx = -y-z, dy = x + a·y, dz = b + z(x-c).
type rosslerAttractor struct {
	a, b, c float64
	dt      float64
	radius  float64
	state   r3.Vector
}

func newRosslerAttractor(scale, complexity float64) *rosslerAttractor {
	return &rosslerAttractor{
		a:      0.1,
		b:      0.1,
		c:      14.0 * complexity,
		dt:     0.01,
		radius: scale * 8,
		state:  r3.Vector{X: 1, Y: 0, Z: 0},
	}
}

func (a *rosslerAttractor) Sample(_ float64) r3.Vector {
	s := a.state
	d := r3.Vector{
		X: -s.Y - s.Z,
		Y: s.X + a.a*s.Y,
		Z: a.b + s.Z*(s.X-a.c),
	}
	s = s.Add(d.Mul(a.dt))
	if n := s.Norm(); n > 0 {
		s = s.Mul(a.radius / n)
	}
	a.state = s
	return s
}

// The Rössler wrists ride a slow sinusoid on the sample index rather than
// the attractor state, which keeps tool orientation smooth while the arm
// follows the chaotic spiral.
func rosslerCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.6,
		p.Y * 0.5,
		p.Z * 0.35,
		math.Sin(t/10) * 0.3,
		math.Cos(t/10) * 0.3,
		p.Z * 0.2,
	}
}

// henonMap iterates the discrete Hénon map x' = 1 - a·x² + y, y' = b·x with
// a synthetic Z combining both coordinates for depth. Each axis is clamped
// to ±scale after the update, and the clamped state feeds the next
// iteration, which keeps the map bounded even for divergent parameter
// choices.
type henonMap struct {
	a, b  float64
	scale float64
	state r3.Vector
}

func newHenonMap(scale, complexity float64) *henonMap {
	return &henonMap{
		a:     1.4 * complexity,
		b:     0.3,
		scale: scale,
	}
}

func (m *henonMap) Sample(_ float64) r3.Vector {
	nx := 1 - m.a*m.state.X*m.state.X + m.state.Y
	ny := m.b * m.state.X
	nz := (nx + ny) * 0.5
	m.state = r3.Vector{
		X: clampUnit(nx) * m.scale,
		Y: clampUnit(ny) * m.scale,
		Z: clampUnit(nz) * m.scale,
	}
	return m.state
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func henonCoupling(p r3.Vector, _ float64) JointAngles {
	return JointAngles{
		p.X * 0.7,
		p.Y * 0.5,
		p.Z * 0.4,
		p.X * p.Y * 0.3,
		p.Y * p.Z * 0.3,
		p.Z * p.X * 0.3,
	}
}
