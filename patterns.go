package ur_arm

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidParameter reports a shape or execution parameter outside its
	// admissible range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownPattern reports a pattern name with no registered generator.
	ErrUnknownPattern = errors.New("unknown pattern")
)

// PatternParams are the shape parameters shared by all generators. Zero
// values are replaced by per-field defaults, so a caller only sets what it
// cares about.
type PatternParams struct {
	Scale      float64 `json:"scale"`
	Speed      float64 `json:"speed"`
	Plane      string  `json:"plane"`
	Wavelength float64 `json:"wavelength"`
	Height     float64 `json:"height"`
	Petals     float64 `json:"petals"`
	FreqRatio  float64 `json:"freq_ratio"`
	Complexity float64 `json:"complexity"`
}

func (p PatternParams) withDefaults() PatternParams {
	if p.Scale == 0 {
		p.Scale = 0.3
	}
	if p.Speed == 0 {
		p.Speed = 1.0
	}
	if p.Plane == "" {
		p.Plane = PlaneHorizontal
	}
	if p.Wavelength == 0 {
		p.Wavelength = 4.0
	}
	if p.Height == 0 {
		p.Height = 0.4
	}
	if p.Petals == 0 {
		p.Petals = 5.0
	}
	if p.FreqRatio == 0 {
		p.FreqRatio = 2.0
	}
	if p.Complexity == 0 {
		p.Complexity = 1.0
	}
	return p
}

func (p PatternParams) validate() error {
	if p.Scale <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "scale %v must be positive", p.Scale)
	}
	if p.Speed <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "speed %v must be positive", p.Speed)
	}
	if p.Complexity <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "complexity %v must be positive", p.Complexity)
	}
	switch p.Plane {
	case PlaneHorizontal, PlaneVerticalXZ, PlaneVerticalYZ:
	default:
		return errors.Wrapf(ErrInvalidParameter, "plane %q must be one of %s, %s, %s",
			p.Plane, PlaneHorizontal, PlaneVerticalXZ, PlaneVerticalYZ)
	}
	return nil
}

// Trajectory is an ordered waypoint sequence for one pattern pass. The order
// defines execution order and the sequence is not modified after building.
type Trajectory struct {
	Pattern   string
	Waypoints []JointAngles
}

// patternSpec binds a curve sampler to its joint coupling. Closed-form
// patterns sweep t over [0, span) with the endpoint excluded so a repeated
// pass does not duplicate the seam waypoint; chaotic patterns advance one
// integration step per sample and receive the sample index as t.
type patternSpec struct {
	build func(p PatternParams) (Sampler, jointCoupler, float64)
	// indexDriven marks samplers stepped by sample index instead of a
	// swept progress value.
	indexDriven bool
}

var patternRegistry = map[string]patternSpec{
	"infinity": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return infinityCurve{scale: p.Scale}, infinityCoupling, 2 * math.Pi * p.Speed
	}},
	"circle": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return circleCurve{radius: p.Scale, plane: p.Plane}, circleCoupling, 2 * math.Pi * p.Speed
	}},
	"wave": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		span := p.Wavelength * 2 * math.Pi * p.Speed
		return waveCurve{amplitude: p.Scale, span: span}, waveCoupling, span
	}},
	"spiral": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		span := 4 * math.Pi * p.Speed
		return spiralCurve{radius: p.Scale, height: p.Height, span: span}, spiralCoupling, span
	}},
	"heart": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return heartCurve{scale: p.Scale}, heartCoupling, 2 * math.Pi * p.Speed
	}},
	"batman": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return batmanCurve{scale: p.Scale}, batmanCoupling, 2 * math.Pi * p.Speed
	}},
	"rose": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return roseCurve{amplitude: p.Scale, petals: p.Petals}, roseCoupling(p.Petals), 2 * math.Pi * p.Speed
	}},
	"lissajous": {build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return lissajousCurve{amplitude: p.Scale, freqRatio: p.FreqRatio}, lissajousCoupling, 2 * math.Pi * p.Speed
	}},
	"lorenz": {indexDriven: true, build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return newLorenzAttractor(p.Scale, p.Complexity), lorenzCoupling, 0
	}},
	"rossler": {indexDriven: true, build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return newRosslerAttractor(p.Scale, p.Complexity), rosslerCoupling, 0
	}},
	"henon": {indexDriven: true, build: func(p PatternParams) (Sampler, jointCoupler, float64) {
		return newHenonMap(p.Scale, p.Complexity), henonCoupling, 0
	}},
}

// PatternNames returns the registered pattern names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patternRegistry))
	for name := range patternRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateTrajectory builds a trajectory of exactly samples waypoints for
// the named pattern, oscillating around home. Every waypoint is clamped to
// the joint limits before it is appended.
func GenerateTrajectory(name string, samples int, params PatternParams, home JointAngles) (Trajectory, error) {
	if samples <= 0 {
		return Trajectory{}, errors.Wrapf(ErrInvalidParameter, "sample count %d must be positive", samples)
	}
	spec, ok := patternRegistry[name]
	if !ok {
		return Trajectory{}, errors.Wrapf(ErrUnknownPattern, "pattern %q (known: %v)", name, PatternNames())
	}
	params = params.withDefaults()
	if err := params.validate(); err != nil {
		return Trajectory{}, err
	}

	sampler, couple, span := spec.build(params)

	// Sweep [0, span) with the endpoint excluded, so t_i = (i/samples)·span.
	// Index-driven samplers advance one step per sample and see the index.
	ts := floats.Span(make([]float64, samples+1), 0, span)[:samples]

	waypoints := make([]JointAngles, 0, samples)
	for i, t := range ts {
		if spec.indexDriven {
			t = float64(i)
		}
		deltas := couple(sampler.Sample(t), t)
		waypoints = append(waypoints, clampToLimits(home.add(deltas)))
	}
	return Trajectory{Pattern: name, Waypoints: waypoints}, nil
}
