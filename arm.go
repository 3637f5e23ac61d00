package ur_arm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	commonpb "go.viam.com/api/common/v1"
	"go.viam.com/rdk/components/arm"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/operation"
	"go.viam.com/rdk/referenceframe"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/utils/rpc"
)

var (
	UR10Pattern      = resource.NewModel("urmotion", "arm", "ur10-pattern")
	errUnimplemented = errors.New("unimplemented")
)

func init() {
	resource.RegisterComponent(arm.API, UR10Pattern,
		resource.Registration[arm.Arm, *Config]{
			Constructor: newURPatternArm,
		},
	)
}

// Main arm structure. The UR controller's secondary interface is write-only,
// so the component runs open loop: it generates joint-space programs, sends
// them, and never reads positions back.
type urPatternArm struct {
	resource.AlwaysRebuild

	name       resource.Name
	logger     logging.Logger
	cfg        *Config
	opMgr      *operation.SingleOperationManager
	controller *SafeURController
	archive    *Archive

	// Motion control
	mu       sync.RWMutex
	moveLock sync.Mutex
	isMoving atomic.Bool

	home        JointAngles
	jointLimits [6][2]float64

	// Motion parameters, adjustable via DoCommand
	exec    ExecParams
	samples int

	cancelCtx  context.Context
	cancelFunc func()
}

func newURPatternArm(ctx context.Context, deps resource.Dependencies, rawConf resource.Config, logger logging.Logger) (arm.Arm, error) {
	conf, err := resource.NativeConfig[*Config](rawConf)
	if err != nil {
		return nil, err
	}
	conf.Logger = logger
	return NewUR10PatternArm(ctx, deps, rawConf.ResourceName(), conf, logger)
}

func NewUR10PatternArm(ctx context.Context, deps resource.Dependencies, name resource.Name, conf *Config, logger logging.Logger) (arm.Arm, error) {
	cancelCtx, cancelFunc := context.WithCancel(context.Background())

	if conf.Logger == nil {
		conf.Logger = logger
	}

	controller, err := sharedRegistry.GetController(conf.controllerAddress(), conf)
	if err != nil {
		cancelFunc()
		return nil, fmt.Errorf("failed to initialize UR controller client: %w", err)
	}

	var archive *Archive
	if conf.ArchivePath != "" {
		archive, err = OpenArchive(conf.ArchivePath)
		if err != nil {
			sharedRegistry.ReleaseController(conf.controllerAddress())
			cancelFunc()
			return nil, fmt.Errorf("failed to open program archive: %w", err)
		}
	}

	home, fromFile := conf.LoadHomePosture(logger)
	if fromFile {
		logger.Infof("Home posture: %v", home)
	}

	s := &urPatternArm{
		name:        name,
		logger:      logger,
		cfg:         conf,
		opMgr:       operation.NewSingleOperationManager(),
		controller:  controller,
		archive:     archive,
		home:        home,
		jointLimits: ur10JointLimits,
		exec:        conf.execParams(),
		samples:     conf.Samples,
		cancelCtx:   cancelCtx,
		cancelFunc:  cancelFunc,
	}

	logger.Infof("UR10 pattern arm initialized for controller %s (dwell %s, %d samples per pattern)",
		conf.controllerAddress(), conf.Dwell, conf.Samples)
	return s, nil
}

func (s *urPatternArm) Close(context.Context) error {
	s.logger.Info("Closing UR10 pattern arm")

	s.cancelFunc()

	sharedRegistry.ReleaseController(s.cfg.controllerAddress())

	if s.archive != nil {
		return s.archive.Close()
	}
	return nil
}

// Standard arm interface methods

func (s *urPatternArm) Name() resource.Name {
	return s.name
}

func (s *urPatternArm) NewClientFromConn(ctx context.Context, conn rpc.ClientConn, remoteName string, name resource.Name, logger logging.Logger) (arm.Arm, error) {
	return nil, errors.New("remote client not implemented")
}

func (s *urPatternArm) EndPosition(ctx context.Context, extra map[string]interface{}) (spatialmath.Pose, error) {
	return nil, errors.Wrap(errUnimplemented, "controller interface is write-only, no pose feedback")
}

func (s *urPatternArm) MoveToPosition(ctx context.Context, pose spatialmath.Pose, extra map[string]interface{}) error {
	return errors.Wrap(errUnimplemented, "Cartesian moves require a kinematic model, use joint positions")
}

func (s *urPatternArm) MoveToJointPositions(ctx context.Context, positions []referenceframe.Input, extra map[string]interface{}) error {
	ctx, done := s.opMgr.New(ctx)
	defer done()

	s.moveLock.Lock()
	defer s.moveLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.inputsToJointAngles(positions)
	if err != nil {
		return err
	}

	s.isMoving.Store(true)
	defer s.isMoving.Store(false)

	program, err := EncodeSingleMove(target, s.currentExecParams())
	if err != nil {
		return err
	}

	if err := s.controller.SendImmediate(program); err != nil {
		return fmt.Errorf("failed to move to joint positions: %w", err)
	}
	return nil
}

func (s *urPatternArm) MoveThroughJointPositions(ctx context.Context, positions [][]referenceframe.Input, options *arm.MoveOptions, extra map[string]interface{}) error {
	ctx, done := s.opMgr.New(ctx)
	defer done()

	s.moveLock.Lock()
	defer s.moveLock.Unlock()

	if len(positions) == 0 {
		return nil
	}

	waypoints := make([]JointAngles, 0, len(positions))
	for _, step := range positions {
		wp, err := s.inputsToJointAngles(step)
		if err != nil {
			return err
		}
		waypoints = append(waypoints, wp)
	}

	exec := s.currentExecParams()
	if options != nil {
		if options.MaxVelRads > 0 {
			exec.Velocity = options.MaxVelRads
		}
		if options.MaxAccRads > 0 {
			exec.Acceleration = options.MaxAccRads
		}
	}

	program, err := EncodeProgram(Trajectory{Pattern: "joint_sequence", Waypoints: waypoints}, exec)
	if err != nil {
		return err
	}

	s.isMoving.Store(true)
	defer s.isMoving.Store(false)

	if err := s.controller.SendProgram(ctx, program); err != nil {
		return fmt.Errorf("failed to move through joint positions: %w", err)
	}
	return nil
}

func (s *urPatternArm) inputsToJointAngles(positions []referenceframe.Input) (JointAngles, error) {
	if len(positions) != 6 {
		return JointAngles{}, fmt.Errorf("expected 6 joint positions for UR10, got %d", len(positions))
	}

	var target JointAngles
	for i, input := range positions {
		angle := float64(input)
		min, max := s.jointLimits[i][0], s.jointLimits[i][1]

		// Clamp to joint limits
		if angle < min {
			s.logger.Warnf("Joint %d angle %.3f rad below limit %.3f rad, clamping", i+1, angle, min)
			angle = min
		} else if angle > max {
			s.logger.Warnf("Joint %d angle %.3f rad above limit %.3f rad, clamping", i+1, angle, max)
			angle = max
		}

		target[i] = angle
	}
	return target, nil
}

func (s *urPatternArm) JointPositions(ctx context.Context, extra map[string]interface{}) ([]referenceframe.Input, error) {
	return nil, errors.Wrap(errUnimplemented, "controller interface is write-only, no joint feedback")
}

func (s *urPatternArm) Stop(ctx context.Context, extra map[string]interface{}) error {
	// Cancel any in-flight move so its dwell releases before the stop lands.
	s.opMgr.CancelRunning(ctx)
	s.isMoving.Store(false)
	if err := s.controller.SendImmediate(EncodeStop(2.0)); err != nil {
		return fmt.Errorf("failed to stop arm: %w", err)
	}
	return nil
}

func (s *urPatternArm) Kinematics(ctx context.Context) (referenceframe.Model, error) {
	return nil, errors.Wrap(errUnimplemented, "no kinematic model configured")
}

func (s *urPatternArm) Get3DModels(ctx context.Context, extra map[string]interface{}) (map[string]*commonpb.Mesh, error) {
	return nil, errors.Wrap(errUnimplemented, "no mesh models configured")
}

func (s *urPatternArm) CurrentInputs(ctx context.Context) ([]referenceframe.Input, error) {
	return nil, errors.Wrap(errUnimplemented, "controller interface is write-only, no joint feedback")
}

func (s *urPatternArm) GoToInputs(ctx context.Context, inputSteps ...[]referenceframe.Input) error {
	return s.MoveThroughJointPositions(ctx, inputSteps, nil, nil)
}

func (s *urPatternArm) IsMoving(ctx context.Context) (bool, error) {
	return s.isMoving.Load() || s.opMgr.OpRunning(), nil
}

func (s *urPatternArm) Geometries(ctx context.Context, extra map[string]interface{}) ([]spatialmath.Geometry, error) {
	return []spatialmath.Geometry{}, nil
}

func (s *urPatternArm) currentExecParams() ExecParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exec
}

func (s *urPatternArm) currentSamples() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.samples
}

func (s *urPatternArm) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	switch cmd["command"] {
	case "run_pattern":
		return s.runPattern(ctx, cmd, true)

	case "preview_pattern":
		return s.runPattern(ctx, cmd, false)

	case "list_patterns":
		names := PatternNames()
		patterns := make([]interface{}, len(names))
		for i, n := range names {
			patterns[i] = n
		}
		return map[string]interface{}{"patterns": patterns}, nil

	case "ping_controller":
		err := s.controller.Ping()
		return map[string]interface{}{"success": err == nil}, err

	case "controller_status":
		refCount, connected, summary := sharedRegistry.GetControllerStatus(s.cfg.controllerAddress())
		return map[string]interface{}{
			"ref_count": refCount,
			"connected": connected,
			"summary":   summary,
		}, nil

	case "set_motion_params":
		result := make(map[string]interface{})

		if velVal, ok := cmd["velocity"].(float64); ok {
			if velVal <= 0 {
				return nil, fmt.Errorf("velocity must be positive, got %v", velVal)
			}
			s.mu.Lock()
			s.exec.Velocity = velVal
			s.mu.Unlock()
			result["velocity_set"] = velVal
		}

		if accVal, ok := cmd["acceleration"].(float64); ok {
			if accVal <= 0 {
				return nil, fmt.Errorf("acceleration must be positive, got %v", accVal)
			}
			s.mu.Lock()
			s.exec.Acceleration = accVal
			s.mu.Unlock()
			result["acceleration_set"] = accVal
		}

		if blendVal, ok := cmd["blend_radius"].(float64); ok {
			if blendVal < 0 {
				return nil, fmt.Errorf("blend radius must not be negative, got %v", blendVal)
			}
			s.mu.Lock()
			s.exec.BlendRadius = blendVal
			s.mu.Unlock()
			result["blend_radius_set"] = blendVal
		}

		if samplesVal, ok := cmd["samples"].(float64); ok {
			samples := int(samplesVal)
			if samples < 1 {
				return nil, fmt.Errorf("samples must be positive, got %d", samples)
			}
			s.mu.Lock()
			s.samples = samples
			s.mu.Unlock()
			result["samples_set"] = samples
		}

		return result, nil

	case "replay_program":
		return s.replayProgram(ctx, cmd)

	case "recent_programs":
		return s.recentPrograms(cmd)

	default:
		return nil, fmt.Errorf("unknown command: %v", cmd["command"])
	}
}

func (s *urPatternArm) runPattern(ctx context.Context, cmd map[string]interface{}, send bool) (map[string]interface{}, error) {
	name, ok := cmd["pattern"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("run_pattern command requires 'pattern' string parameter")
	}

	samples := s.currentSamples()
	if samplesVal, ok := cmd["samples"].(float64); ok {
		samples = int(samplesVal)
	}

	params := patternParamsFromCmd(cmd)
	traj, err := GenerateTrajectory(name, samples, params, s.home)
	if err != nil {
		return nil, err
	}

	program, err := EncodeProgram(traj, s.currentExecParams())
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"pattern":   traj.Pattern,
		"waypoints": len(traj.Waypoints),
	}

	if s.archive != nil {
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode pattern params: %w", err)
		}
		id, err := s.archive.SaveProgram(traj.Pattern, string(paramsJSON), program)
		if err != nil {
			s.logger.Warnf("Failed to archive program: %v", err)
		} else {
			result["archive_id"] = id
		}
	}

	if !send {
		result["program"] = program
		return result, nil
	}

	ctx, done := s.opMgr.New(ctx)
	defer done()

	s.moveLock.Lock()
	defer s.moveLock.Unlock()

	s.isMoving.Store(true)
	defer s.isMoving.Store(false)

	if err := s.controller.SendProgram(ctx, program); err != nil {
		return nil, err
	}
	result["sent"] = true
	return result, nil
}

func (s *urPatternArm) replayProgram(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("no archive configured")
	}
	idVal, ok := cmd["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("replay_program command requires 'id' number parameter")
	}

	archived, err := s.archive.Program(int64(idVal))
	if err != nil {
		return nil, err
	}

	ctx, done := s.opMgr.New(ctx)
	defer done()

	s.moveLock.Lock()
	defer s.moveLock.Unlock()

	s.isMoving.Store(true)
	defer s.isMoving.Store(false)

	if err := s.controller.SendProgram(ctx, archived.Program); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"pattern": archived.Pattern,
		"sent":    true,
	}, nil
}

func (s *urPatternArm) recentPrograms(cmd map[string]interface{}) (map[string]interface{}, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("no archive configured")
	}
	limit := 10
	if limitVal, ok := cmd["limit"].(float64); ok && limitVal > 0 {
		limit = int(limitVal)
	}

	programs, err := s.archive.Recent(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]interface{}, 0, len(programs))
	for _, p := range programs {
		entries = append(entries, map[string]interface{}{
			"id":         p.ID,
			"pattern":    p.Pattern,
			"params":     p.Params,
			"created_at": p.CreatedAt,
		})
	}
	return map[string]interface{}{"programs": entries}, nil
}

func patternParamsFromCmd(cmd map[string]interface{}) PatternParams {
	var params PatternParams
	if v, ok := cmd["scale"].(float64); ok {
		params.Scale = v
	}
	if v, ok := cmd["speed"].(float64); ok {
		params.Speed = v
	}
	if v, ok := cmd["plane"].(string); ok {
		params.Plane = v
	}
	if v, ok := cmd["wavelength"].(float64); ok {
		params.Wavelength = v
	}
	if v, ok := cmd["height"].(float64); ok {
		params.Height = v
	}
	if v, ok := cmd["petals"].(float64); ok {
		params.Petals = v
	}
	if v, ok := cmd["freq_ratio"].(float64); ok {
		params.FreqRatio = v
	}
	if v, ok := cmd["complexity"].(float64); ok {
		params.Complexity = v
	}
	return params
}
