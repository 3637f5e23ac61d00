package ur_arm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every closed-form sampler must be a pure function of t: evaluating twice
// at the same point yields bit-identical samples.
func TestClosedFormSamplersArePure(t *testing.T) {
	samplers := map[string]Sampler{
		"infinity":          infinityCurve{scale: 0.3},
		"circle_horizontal": circleCurve{radius: 0.3, plane: PlaneHorizontal},
		"circle_xz":         circleCurve{radius: 0.3, plane: PlaneVerticalXZ},
		"circle_yz":         circleCurve{radius: 0.3, plane: PlaneVerticalYZ},
		"wave":              waveCurve{amplitude: 0.3, span: 8 * math.Pi},
		"spiral":            spiralCurve{radius: 0.3, height: 0.4, span: 4 * math.Pi},
		"heart":             heartCurve{scale: 0.25},
		"batman":            batmanCurve{scale: 0.25},
		"rose":              roseCurve{amplitude: 0.3, petals: 5},
		"lissajous":         lissajousCurve{amplitude: 0.3, freqRatio: 2},
	}

	for name, sampler := range samplers {
		t.Run(name, func(t *testing.T) {
			for _, tv := range []float64{0, 0.5, 1.7, math.Pi, 2 * math.Pi, 11.3} {
				first := sampler.Sample(tv)
				second := sampler.Sample(tv)
				if first != second {
					t.Errorf("sampler not pure at t=%v: %v != %v", tv, first, second)
				}
			}
		})
	}
}

func TestCirclePlanes(t *testing.T) {
	tests := []struct {
		name  string
		plane string
		t     float64
		want  [3]float64
	}{
		{name: "horizontal at t=0", plane: PlaneHorizontal, t: 0, want: [3]float64{0.3, 0, 0}},
		{name: "horizontal quarter turn", plane: PlaneHorizontal, t: math.Pi / 2, want: [3]float64{0, 0.3, 0}},
		{name: "vertical_xz at t=0", plane: PlaneVerticalXZ, t: 0, want: [3]float64{0.3, 0, 0}},
		{name: "vertical_xz quarter turn", plane: PlaneVerticalXZ, t: math.Pi / 2, want: [3]float64{0, 0, 0.3}},
		{name: "vertical_yz at t=0", plane: PlaneVerticalYZ, t: 0, want: [3]float64{0, 0.3, 0}},
		{name: "vertical_yz quarter turn", plane: PlaneVerticalYZ, t: math.Pi / 2, want: [3]float64{0, 0, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := circleCurve{radius: 0.3, plane: tt.plane}
			p := c.Sample(tt.t)
			assert.InDelta(t, tt.want[0], p.X, 1e-9)
			assert.InDelta(t, tt.want[1], p.Y, 1e-9)
			assert.InDelta(t, tt.want[2], p.Z, 1e-9)
		})
	}
}

func TestInfinityDenominatorNeverZero(t *testing.T) {
	c := infinityCurve{scale: 0.5}
	for i := 0; i < 1000; i++ {
		tv := float64(i) * 0.01
		p := c.Sample(tv)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("lemniscate diverged at t=%v: %v", tv, p)
		}
	}
}

func TestWaveTraverseIsLinear(t *testing.T) {
	span := 8 * math.Pi
	c := waveCurve{amplitude: 0.3, span: span}

	start := c.Sample(0)
	mid := c.Sample(span / 2)
	assert.InDelta(t, -0.4, start.X, 1e-9)
	assert.InDelta(t, 0.0, mid.X, 1e-9)
}

func TestSpiralClimbsOverSweep(t *testing.T) {
	span := 4 * math.Pi
	c := spiralCurve{radius: 0.3, height: 0.4, span: span}

	assert.InDelta(t, 0.0, c.Sample(0).Z, 1e-9)
	assert.InDelta(t, 0.2, c.Sample(span/2).Z, 1e-9)
	assert.InDelta(t, 0.4, c.Sample(span).Z, 1e-9)
}

func TestHeartCurveShape(t *testing.T) {
	c := heartCurve{scale: 0.25}

	// t=0: sin=0, so x=0 and y = 0.25·(13-5-2-1) = 1.25.
	p := c.Sample(0)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 1.25, p.Y, 1e-9)
}

func TestRoseCurvePetalCount(t *testing.T) {
	c := roseCurve{amplitude: 0.3, petals: 5}

	// At petal tips cos(5t)=±1, so the planar radius equals the amplitude.
	tip := c.Sample(0)
	planar := math.Hypot(tip.X, tip.Y)
	assert.InDelta(t, 0.3, planar, 1e-9)
}
