package ur_arm

import (
	"math"

	"github.com/golang/geo/r3"
)

// Sampler produces one curve-local coordinate per progress value. Closed-form
// curves are pure functions of t and can be sampled in any order; chaotic
// samplers (attractors.go) carry internal state and must be advanced once per
// waypoint.
type Sampler interface {
	Sample(t float64) r3.Vector
}

// jointCoupler maps a curve sample plus the progress value to the six joint
// deltas applied around the home posture. Each pattern ships its own
// hand-tuned coupling constants.
type jointCoupler func(p r3.Vector, t float64) JointAngles

// infinityCurve traces a lemniscate (figure-8) in the horizontal plane with a
// doubled-frequency vertical component for depth.
type infinityCurve struct {
	scale float64
}

func (c infinityCurve) Sample(t float64) r3.Vector {
	denom := 1 + math.Sin(t)*math.Sin(t)
	return r3.Vector{
		X: c.scale * math.Cos(t) / denom,
		Y: c.scale * math.Cos(t) * math.Sin(t) / denom,
		Z: c.scale * math.Sin(2*t) * 0.4,
	}
}

func infinityCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.8,
		p.Y * 0.5,
		p.Z*0.5 + (p.X+p.Y)*0.2,
		math.Sin(2*t) * 0.15,
		math.Cos(2*t) * 0.15,
		t * 0.08,
	}
}

// Circle planes.
const (
	PlaneHorizontal = "horizontal"
	PlaneVerticalXZ = "vertical_xz"
	PlaneVerticalYZ = "vertical_yz"
)

// circleCurve traces a circle of the given radius in one of three planes.
// The horizontal variant adds a gentle bobbing motion on Z.
type circleCurve struct {
	radius float64
	plane  string
}

func (c circleCurve) Sample(t float64) r3.Vector {
	switch c.plane {
	case PlaneVerticalXZ:
		return r3.Vector{X: c.radius * math.Cos(t), Z: c.radius * math.Sin(t)}
	case PlaneVerticalYZ:
		return r3.Vector{Y: c.radius * math.Cos(t), Z: c.radius * math.Sin(t)}
	default:
		return r3.Vector{
			X: c.radius * math.Cos(t),
			Y: c.radius * math.Sin(t),
			Z: c.radius * 0.3 * math.Sin(2*t),
		}
	}
}

func circleCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.8,
		p.Y*0.5 + p.Z*0.5,
		(p.X + p.Z) * 0.4,
		math.Sin(2*t) * 0.15,
		math.Cos(2*t) * 0.15,
		t * 0.08,
	}
}

// waveCurve sweeps the arm side to side while Y follows a sine wave. The
// lateral traverse is linear in progress, so the sampler keeps the total
// domain span to recover progress from t.
type waveCurve struct {
	amplitude float64
	span      float64
}

func (c waveCurve) Sample(t float64) r3.Vector {
	progress := t / c.span
	return r3.Vector{
		X: progress*0.8 - 0.4,
		Y: c.amplitude * math.Sin(t),
		Z: c.amplitude * math.Cos(t*0.5) * 0.7,
	}
}

func waveCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.5,
		p.Y * 0.5,
		p.Y*0.4 + p.Z*0.4,
		math.Sin(t) * 0.15,
		math.Cos(t) * 0.15,
		t * 0.04,
	}
}

// spiralCurve is a helix: circular motion with a linear climb over the full
// sweep (two turns by default).
type spiralCurve struct {
	radius float64
	height float64
	span   float64
}

func (c spiralCurve) Sample(t float64) r3.Vector {
	return r3.Vector{
		X: c.radius * math.Cos(t),
		Y: c.radius * math.Sin(t),
		Z: t / c.span * c.height,
	}
}

func spiralCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.8,
		p.Y * 0.5,
		p.Z*0.8 + p.X*p.Y*0.3,
		math.Sin(t) * 0.15,
		math.Cos(t) * 0.15,
		t * 0.08,
	}
}

// heartCurve traces the classic heart parametric curve
// x = 16·sin³t, y = 13·cos t − 5·cos 2t − 2·cos 3t − cos 4t,
// with a subtle vertical component.
type heartCurve struct {
	scale float64
}

func (c heartCurve) Sample(t float64) r3.Vector {
	s := math.Sin(t)
	return r3.Vector{
		X: c.scale * 16 * s * s * s,
		Y: c.scale * (13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)),
		Z: c.scale * 0.2 * math.Sin(3*t),
	}
}

func heartCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.6,
		p.Y * 0.4,
		p.Y*0.3 + p.Z*0.2,
		math.Sin(2*t) * 0.12,
		math.Cos(2*t) * 0.12,
		t * 0.06,
	}
}

// roseCurve traces a k-petaled rose, r = a·cos(k·t), lifted by a slow sine
// on Z.
type roseCurve struct {
	amplitude float64
	petals    float64
}

func (c roseCurve) Sample(t float64) r3.Vector {
	r := c.amplitude * math.Cos(c.petals*t)
	return r3.Vector{
		X: r * math.Cos(t),
		Y: r * math.Sin(t),
		Z: c.amplitude * math.Sin(t) * 0.5,
	}
}

func roseCoupling(petals float64) jointCoupler {
	return func(p r3.Vector, t float64) JointAngles {
		return JointAngles{
			p.X * 0.5,
			p.Y * 0.3,
			p.Z * 0.3,
			math.Sin(2*t) * 0.1,
			math.Cos(petals*t) * 0.1,
			t * 0.05,
		}
	}
}

// lissajousCurve runs different frequencies on each axis.
type lissajousCurve struct {
	amplitude float64
	freqRatio float64
}

func (c lissajousCurve) Sample(t float64) r3.Vector {
	return r3.Vector{
		X: c.amplitude * math.Sin(t),
		Y: c.amplitude * math.Sin(c.freqRatio*t),
		Z: c.amplitude * math.Sin(3*t) * 0.5,
	}
}

func lissajousCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 0.5,
		p.Y * 0.3,
		p.Z * 0.3,
		math.Sin(2*t) * 0.1,
		math.Cos(3*t) * 0.1,
		t * 0.05,
	}
}

// batmanCurve approximates the bat emblem with piecewise wing, ear and head
// segments.
type batmanCurve struct {
	scale float64
}

func (c batmanCurve) Sample(t float64) r3.Vector {
	x := math.Cos(t) * c.scale * 0.4
	y := (math.Sin(t)*0.8 + math.Pow(math.Sin(t), 3)*0.6) * c.scale * 0.2

	// Pointed ears ride on top of the wing outline.
	ears := math.Abs(math.Sin(3*t)) * math.Cos(t)
	y += ears * c.scale * 0.15

	// Flatten the center into the head segment.
	if math.Abs(math.Cos(t)) < 0.3 {
		y = math.Sin(t) * 0.3 * c.scale * 0.2
	}

	return r3.Vector{
		X: x,
		Y: y,
		Z: math.Abs(math.Sin(1.5*t)) * c.scale * 0.25,
	}
}

func batmanCoupling(p r3.Vector, t float64) JointAngles {
	return JointAngles{
		p.X * 1.2,
		p.Y * 0.9,
		p.Z*0.7 + math.Abs(p.X)*0.2,
		math.Sin(2*t) * 0.15,
		math.Cos(2*t) * 0.15,
		t * 0.08,
	}
}
