package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	urarm "ur_arm"

	"go.viam.com/rdk/components/arm"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
)

var (
	pattern    = flag.String("pattern", "circle", "pattern name (see -list)")
	list       = flag.Bool("list", false, "list available patterns and exit")
	samples    = flag.Int("samples", 200, "waypoints per pattern")
	scale      = flag.Float64("scale", 0.3, "pattern scale")
	speed      = flag.Float64("speed", 1.0, "traverse speed factor")
	plane      = flag.String("plane", "horizontal", "circle plane: horizontal, vertical_xz, vertical_yz")
	complexity = flag.Float64("complexity", 1.0, "chaotic pattern complexity")

	velocity = flag.Float64("velocity", 0.6, "movej velocity (rad/s)")
	accel    = flag.Float64("accel", 1.2, "movej acceleration (rad/s^2)")
	blend    = flag.Float64("blend", 0.05, "movej blend radius (m)")

	address = flag.String("address", "", "robot controller IP, empty to print the program instead of sending")
	port    = flag.Int("port", 30002, "controller secondary interface port")
	dwell   = flag.Duration("dwell", 15*time.Second, "hold time after sending")

	archivePath = flag.String("archive", "", "optional sqlite archive path")
	outPath     = flag.String("out", "", "optional file to write the program to")
)

func main() {
	flag.Parse()
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func realMain() error {
	ctx := context.Background()
	logger := logging.NewLogger("ur-pattern-cli")

	if *list {
		for _, name := range urarm.PatternNames() {
			fmt.Println(name)
		}
		return nil
	}

	params := urarm.PatternParams{
		Scale:      *scale,
		Speed:      *speed,
		Plane:      *plane,
		Complexity: *complexity,
	}

	traj, err := urarm.GenerateTrajectory(*pattern, *samples, params, urarm.DefaultHomePosture)
	if err != nil {
		return err
	}

	program, err := urarm.EncodeProgram(traj, urarm.ExecParams{
		Velocity:     *velocity,
		Acceleration: *accel,
		BlendRadius:  *blend,
	})
	if err != nil {
		return err
	}

	logger.Infof("Generated %s pattern with %d waypoints", traj.Pattern, len(traj.Waypoints))

	if *archivePath != "" {
		archive, err := urarm.OpenArchive(*archivePath)
		if err != nil {
			return err
		}
		defer archive.Close()

		id, err := archive.SaveProgram(traj.Pattern, fmt.Sprintf("%+v", params), program)
		if err != nil {
			return err
		}
		logger.Infof("Archived program as id %d", id)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(program), 0644); err != nil {
			return err
		}
		logger.Infof("Wrote program to %s", *outPath)
	}

	if *address == "" {
		fmt.Print(program)
		return nil
	}

	cfg := &urarm.Config{
		Address:      *address,
		Port:         *port,
		Timeout:      5 * time.Second,
		Dwell:        *dwell,
		Velocity:     *velocity,
		Acceleration: *accel,
		BlendRadius:  *blend,
		Samples:      *samples,
		Logger:       logger,
	}
	if _, _, err := cfg.Validate(""); err != nil {
		return err
	}

	patternArm, err := urarm.NewUR10PatternArm(ctx, resource.Dependencies{}, resource.NewName(arm.API, "ur10-pattern"), cfg, logger)
	if err != nil {
		return err
	}
	defer patternArm.Close(ctx)

	result, err := patternArm.DoCommand(ctx, map[string]interface{}{
		"command":    "run_pattern",
		"pattern":    *pattern,
		"samples":    float64(*samples),
		"scale":      *scale,
		"speed":      *speed,
		"plane":      *plane,
		"complexity": *complexity,
	})
	if err != nil {
		return err
	}

	logger.Infof("Pattern executed: %v", result)
	return nil
}
