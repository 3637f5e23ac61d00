package ur_arm

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrajectoryWaypointCount(t *testing.T) {
	for _, name := range PatternNames() {
		t.Run(name, func(t *testing.T) {
			traj, err := GenerateTrajectory(name, 50, PatternParams{}, DefaultHomePosture)
			require.NoError(t, err)
			assert.Equal(t, name, traj.Pattern)
			assert.Len(t, traj.Waypoints, 50)
		})
	}
}

func TestGenerateTrajectoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		samples int
		params  PatternParams
		wantErr error
	}{
		{name: "zero samples", pattern: "circle", samples: 0, wantErr: ErrInvalidParameter},
		{name: "negative samples", pattern: "circle", samples: -5, wantErr: ErrInvalidParameter},
		{name: "unknown pattern", pattern: "dodecahedron", samples: 10, wantErr: ErrUnknownPattern},
		{name: "negative scale", pattern: "circle", samples: 10, params: PatternParams{Scale: -0.3}, wantErr: ErrInvalidParameter},
		{name: "negative speed", pattern: "wave", samples: 10, params: PatternParams{Speed: -1}, wantErr: ErrInvalidParameter},
		{name: "bogus plane", pattern: "circle", samples: 10, params: PatternParams{Plane: "diagonal"}, wantErr: ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateTrajectory(tt.pattern, tt.samples, tt.params, DefaultHomePosture)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

// Circle, radius 0.3, horizontal plane: at t=0 the sample is (0.3, 0, 0), so
// the base joint lands at home + 0.3·0.8 and the shoulder stays at home.
func TestCirclePatternFirstWaypoint(t *testing.T) {
	traj, err := GenerateTrajectory("circle", 40, PatternParams{Scale: 0.3}, DefaultHomePosture)
	require.NoError(t, err)
	require.Len(t, traj.Waypoints, 40)

	first := traj.Waypoints[0]
	assert.InDelta(t, 0.24, first[0], 1e-6)
	assert.InDelta(t, -1.57, first[1], 1e-6)
}

// Deliberately absurd amplitudes must saturate at the joint limits rather
// than produce out-of-range waypoints.
func TestTrajectorySaturatesAtExtremeScale(t *testing.T) {
	for _, name := range PatternNames() {
		t.Run(name, func(t *testing.T) {
			traj, err := GenerateTrajectory(name, 100, PatternParams{Scale: 50.0}, DefaultHomePosture)
			require.NoError(t, err)

			for i, wp := range traj.Waypoints {
				if !withinLimits(wp) {
					t.Fatalf("waypoint %d out of limits: %v", i, wp)
				}
			}
		})
	}
}

// 500-sample chaotic runs must stay inside the limits on every sample and
// never produce NaN.
func TestChaoticPatternsNumericallyStable(t *testing.T) {
	for _, name := range []string{"lorenz", "rossler", "henon"} {
		t.Run(name, func(t *testing.T) {
			traj, err := GenerateTrajectory(name, 500, PatternParams{Complexity: 1.0}, DefaultHomePosture)
			require.NoError(t, err)
			require.Len(t, traj.Waypoints, 500)

			for i, wp := range traj.Waypoints {
				if !withinLimits(wp) {
					t.Fatalf("waypoint %d out of limits: %v", i, wp)
				}
				for j, v := range wp {
					if math.IsNaN(v) {
						t.Fatalf("waypoint %d joint %d is NaN", i, j+1)
					}
				}
			}
		})
	}
}

// The closed-form sweep excludes the domain endpoint so a repeated pass does
// not duplicate the seam waypoint.
func TestSweepExcludesEndpoint(t *testing.T) {
	traj, err := GenerateTrajectory("circle", 8, PatternParams{Scale: 0.3}, DefaultHomePosture)
	require.NoError(t, err)

	first := traj.Waypoints[0]
	last := traj.Waypoints[len(traj.Waypoints)-1]
	assert.NotEqual(t, first, last, "endpoint waypoint duplicates the start")
}

func TestSingleSampleTrajectory(t *testing.T) {
	traj, err := GenerateTrajectory("infinity", 1, PatternParams{}, DefaultHomePosture)
	require.NoError(t, err)
	assert.Len(t, traj.Waypoints, 1)
}

func TestPatternNamesSorted(t *testing.T) {
	names := PatternNames()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}

	assert.Contains(t, names, "circle")
	assert.Contains(t, names, "lorenz")
	assert.Contains(t, names, "batman")
}

func TestDefaultsApplied(t *testing.T) {
	p := PatternParams{}.withDefaults()
	assert.Equal(t, 0.3, p.Scale)
	assert.Equal(t, 1.0, p.Speed)
	assert.Equal(t, PlaneHorizontal, p.Plane)
	assert.Equal(t, 1.0, p.Complexity)
}
