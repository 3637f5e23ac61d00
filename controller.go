package ur_arm

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
)

// ErrConnection reports a failure to reach or write to the controller.
var ErrConnection = errors.New("controller connection error")

// URScriptController sends programs to a UR controller's secondary client
// interface. The interface is write-only: the controller parses and runs
// whatever program arrives, and reports nothing back on this port. Each send
// opens a fresh connection, writes the full program, then holds for the dwell
// period so a caller does not pipeline a second program onto a running one.
type URScriptController struct {
	address string
	timeout time.Duration
	dwell   time.Duration
	logger  logging.Logger
}

// NewURScriptController returns a controller client for the given
// host:port address. timeout bounds both connect and write; dwell is the
// post-send hold.
func NewURScriptController(address string, timeout, dwell time.Duration, logger logging.Logger) *URScriptController {
	return &URScriptController{
		address: address,
		timeout: timeout,
		dwell:   dwell,
		logger:  logger,
	}
}

// Address returns the controller endpoint this client targets.
func (c *URScriptController) Address() string {
	return c.address
}

// Ping dials the controller and immediately closes, verifying reachability.
func (c *URScriptController) Ping() error {
	conn, err := net.DialTimeout("tcp", c.address, c.timeout)
	if err != nil {
		return errors.Wrapf(ErrConnection, "ping %s: %v", c.address, err)
	}
	return conn.Close()
}

// send dials the controller, writes the full program, and closes. Connect
// and write are both bounded by the configured timeout.
func (c *URScriptController) send(program string) error {
	conn, err := net.DialTimeout("tcp", c.address, c.timeout)
	if err != nil {
		return errors.Wrapf(ErrConnection, "dial %s: %v", c.address, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return errors.Wrapf(ErrConnection, "set deadline on %s: %v", c.address, err)
	}
	if _, err := conn.Write([]byte(program)); err != nil {
		return errors.Wrapf(ErrConnection, "write to %s: %v", c.address, err)
	}
	return nil
}

// holdDwell blocks for the dwell period. The dwell is cut short when ctx is
// cancelled; the program keeps running on the controller in that case.
func (c *URScriptController) holdDwell(ctx context.Context) error {
	if c.dwell <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		c.logger.Warn("dwell interrupted, program may still be running on the controller")
		return ctx.Err()
	case <-time.After(c.dwell):
		return nil
	}
}

// SendProgram writes the program to the controller and holds for the dwell
// period so the caller does not pipeline a second program onto a running one.
func (c *URScriptController) SendProgram(ctx context.Context, program string) error {
	if err := c.send(program); err != nil {
		return err
	}
	c.logger.Debugf("sent %d byte program to %s", len(program), c.address)
	return c.holdDwell(ctx)
}

// SendImmediate writes a program without any dwell. Used for stop commands
// where holding would defeat the purpose.
func (c *URScriptController) SendImmediate(program string) error {
	return c.send(program)
}
