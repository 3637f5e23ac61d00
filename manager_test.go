package ur_arm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.viam.com/rdk/logging"
)

func TestSafeControllerStopDuringDwell(t *testing.T) {
	fake := newFakeController(t)
	logger := logging.NewTestLogger(t)

	c := &SafeURController{
		URScriptController: NewURScriptController(fake.address(), time.Second, 600*time.Millisecond, logger),
	}

	done := make(chan error, 1)
	go func() {
		done <- c.SendProgram(context.Background(), "movej([0.0000, -1.5700, 1.5700, 0.0000, 1.5700, 0.0000], a=1.2, v=0.6, r=0)\n")
	}()

	// Let the write land, then confirm a stop goes through while the move
	// is still dwelling instead of waiting the dwell out.
	time.Sleep(100 * time.Millisecond)
	start := time.Now()
	require.NoError(t, c.SendImmediate("stopj(2)\n"))
	assert.Less(t, time.Since(start), 300*time.Millisecond)

	require.NoError(t, <-done)
}

func TestConfigsEqual(t *testing.T) {
	base := &Config{Address: "10.0.0.5", Port: 30002, Timeout: time.Second, Dwell: time.Second}
	same := &Config{Address: "10.0.0.5", Port: 30002, Timeout: time.Second, Dwell: time.Second}
	other := &Config{Address: "10.0.0.5", Port: 30002, Timeout: time.Second, Dwell: 2 * time.Second}

	assert.True(t, configsEqual(base, same))
	assert.False(t, configsEqual(base, other))
	assert.False(t, configsEqual(base, nil))
	assert.True(t, configsEqual(nil, nil))
}
