package ur_arm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampToLimits(t *testing.T) {
	tests := []struct {
		name string
		in   JointAngles
		want JointAngles
	}{
		{
			name: "within limits untouched",
			in:   JointAngles{0.1, -1.0, 1.5, 0.2, 1.0, -0.3},
			want: JointAngles{0.1, -1.0, 1.5, 0.2, 1.0, -0.3},
		},
		{
			name: "saturates at upper bounds",
			in:   JointAngles{5.0, 5.0, 5.0, 5.0, 5.0, 5.0},
			want: JointAngles{3.14, 3.14, 2.5, 3.14, 3.14, 3.14},
		},
		{
			name: "saturates at lower bounds",
			in:   JointAngles{-5.0, -5.0, -5.0, -5.0, -5.0, -5.0},
			want: JointAngles{-3.14, -3.14, 0.5, -3.14, -3.14, -3.14},
		},
		{
			name: "elbow interval is asymmetric",
			in:   JointAngles{0, 0, 0, 0, 0, 0},
			want: JointAngles{0, 0, 0.5, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampToLimits(tt.in))
		})
	}
}

func TestWithinLimits(t *testing.T) {
	if !withinLimits(DefaultHomePosture) {
		t.Fatal("default home posture must satisfy the joint limits")
	}
	if withinLimits(JointAngles{0, 0, 0.4, 0, 0, 0}) {
		t.Fatal("elbow below its lower bound should fail")
	}
	if withinLimits(JointAngles{3.2, 0, 1.5, 0, 0, 0}) {
		t.Fatal("base beyond its upper bound should fail")
	}
}

func TestAddDeltas(t *testing.T) {
	got := DefaultHomePosture.add(JointAngles{0.1, 0.2, -0.1, 0, 0.05, -0.05})
	want := JointAngles{0.1, -1.37, 1.47, 0.0, 1.62, -0.05}
	for i := range got {
		assert.InDelta(t, want[i], got[i], 1e-12, "joint %d", i+1)
	}
}
