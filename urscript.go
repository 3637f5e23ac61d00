package ur_arm

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ExecParams tune how the controller executes each movej instruction.
type ExecParams struct {
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
	BlendRadius  float64 `json:"blend_radius"`
}

func (e ExecParams) validate() error {
	if e.Velocity <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "velocity %v must be positive", e.Velocity)
	}
	if e.Acceleration <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "acceleration %v must be positive", e.Acceleration)
	}
	if e.BlendRadius < 0 {
		return errors.Wrapf(ErrInvalidParameter, "blend radius %v must not be negative", e.BlendRadius)
	}
	return nil
}

// EncodeProgram serializes a trajectory into a URScript program that defines
// and invokes one execute_<pattern>_pattern() block. Joint values are
// rendered to four decimals. Every move carries the configured blend radius
// except the last, which closes with r=0 so the arm settles instead of
// overshooting the final waypoint.
func EncodeProgram(traj Trajectory, exec ExecParams) (string, error) {
	if len(traj.Waypoints) == 0 {
		return "", errors.Wrap(ErrInvalidParameter, "trajectory has no waypoints")
	}
	if err := exec.validate(); err != nil {
		return "", err
	}

	block := scriptIdentifier(traj.Pattern)
	var b strings.Builder
	fmt.Fprintf(&b, "# Pattern: %s\n", strings.ToUpper(traj.Pattern))
	fmt.Fprintf(&b, "def execute_%s_pattern():\n", block)
	for i, wp := range traj.Waypoints {
		blend := exec.BlendRadius
		if i == len(traj.Waypoints)-1 {
			blend = 0
		}
		fmt.Fprintf(&b, "  movej(%s, a=%g, v=%g, r=%g)\n",
			formatJoints(wp), exec.Acceleration, exec.Velocity, blend)
	}
	b.WriteString("end\n\n")
	fmt.Fprintf(&b, "execute_%s_pattern()\n", block)
	return b.String(), nil
}

// EncodeSingleMove serializes one movej to the given posture with no blend.
func EncodeSingleMove(target JointAngles, exec ExecParams) (string, error) {
	if err := exec.validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("movej(%s, a=%g, v=%g)\n", formatJoints(target), exec.Acceleration, exec.Velocity), nil
}

// EncodeStop serializes an immediate joint-space stop.
func EncodeStop(deceleration float64) string {
	if deceleration <= 0 {
		deceleration = 2.0
	}
	return fmt.Sprintf("stopj(%g)\n", deceleration)
}

func formatJoints(j JointAngles) string {
	parts := make([]string, len(j))
	for i, v := range j {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// scriptIdentifier rewrites a pattern name into a valid URScript identifier
// fragment.
func scriptIdentifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "pattern"
	}
	return b.String()
}
