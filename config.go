package ur_arm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.viam.com/rdk/logging"
)

type Config struct {
	Address string `json:"address"`
	Port    int    `json:"port,omitempty"`

	Timeout time.Duration `json:"timeout,omitempty"`
	Dwell   time.Duration `json:"dwell,omitempty"`

	Velocity     float64 `json:"velocity,omitempty"`
	Acceleration float64 `json:"acceleration,omitempty"`
	BlendRadius  float64 `json:"blend_radius,omitempty"`

	Samples int `json:"samples,omitempty"`

	HomePostureFile string `json:"home_posture_file,omitempty"`
	ArchivePath     string `json:"archive_path,omitempty"`

	// Not serialized
	Logger logging.Logger `json:"-"`
}

// Validate ensures all parts of the config are valid and applies defaults.
func (cfg *Config) Validate(path string) ([]string, []string, error) {
	if cfg.Address == "" {
		return nil, nil, fmt.Errorf("must specify address of the robot controller")
	}

	if cfg.Port == 0 {
		cfg.Port = 30002
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, nil, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Timeout < 0 {
		return nil, nil, fmt.Errorf("timeout must not be negative")
	}

	if cfg.Dwell == 0 {
		cfg.Dwell = 15 * time.Second
	}
	if cfg.Dwell < 0 {
		return nil, nil, fmt.Errorf("dwell must not be negative")
	}

	if cfg.Velocity == 0 {
		cfg.Velocity = 0.6
	}
	if cfg.Velocity < 0 {
		return nil, nil, fmt.Errorf("velocity must be positive")
	}

	if cfg.Acceleration == 0 {
		cfg.Acceleration = 1.2
	}
	if cfg.Acceleration < 0 {
		return nil, nil, fmt.Errorf("acceleration must be positive")
	}

	if cfg.BlendRadius == 0 {
		cfg.BlendRadius = 0.05
	}
	if cfg.BlendRadius < 0 {
		return nil, nil, fmt.Errorf("blend radius must not be negative")
	}

	if cfg.Samples == 0 {
		cfg.Samples = 200
	}
	if cfg.Samples < 1 {
		return nil, nil, fmt.Errorf("samples must be positive")
	}

	return nil, nil, nil
}

func (cfg *Config) controllerAddress() string {
	return fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
}

func (cfg *Config) execParams() ExecParams {
	return ExecParams{
		Velocity:     cfg.Velocity,
		Acceleration: cfg.Acceleration,
		BlendRadius:  cfg.BlendRadius,
	}
}

// HomePostureFileFormat is the on-disk representation with named joints.
type HomePostureFileFormat struct {
	Base     float64 `json:"base"`
	Shoulder float64 `json:"shoulder"`
	Elbow    float64 `json:"elbow"`
	Wrist1   float64 `json:"wrist_1"`
	Wrist2   float64 `json:"wrist_2"`
	Wrist3   float64 `json:"wrist_3"`
}

func (f HomePostureFileFormat) toJointAngles() JointAngles {
	return JointAngles{f.Base, f.Shoulder, f.Elbow, f.Wrist1, f.Wrist2, f.Wrist3}
}

func homePostureToFileFormat(j JointAngles) HomePostureFileFormat {
	return HomePostureFileFormat{
		Base: j[0], Shoulder: j[1], Elbow: j[2],
		Wrist1: j[3], Wrist2: j[4], Wrist3: j[5],
	}
}

// LoadHomePosture loads the home posture from file or returns the default.
// Returns (posture, fromFile) where fromFile indicates if loaded from file.
func (cfg *Config) LoadHomePosture(logger logging.Logger) (JointAngles, bool) {
	if cfg.HomePostureFile == "" {
		if logger != nil {
			logger.Debug("No home posture file specified, using default posture")
		}
		return DefaultHomePosture, false
	}

	// Handle relative paths using VIAM_MODULE_DATA
	if !filepath.IsAbs(cfg.HomePostureFile) {
		moduleDataDir := os.Getenv("VIAM_MODULE_DATA")
		if moduleDataDir == "" {
			moduleDataDir = "/tmp"
		}
		cfg.HomePostureFile = filepath.Join(moduleDataDir, cfg.HomePostureFile)
	}

	posture, err := LoadHomePostureFromFile(cfg.HomePostureFile)
	if err != nil {
		if logger != nil {
			logger.Warnf("Failed to load home posture from %s: %v, using default posture", cfg.HomePostureFile, err)
		}
		return DefaultHomePosture, false
	}

	if logger != nil {
		logger.Infof("Loaded home posture from %s", cfg.HomePostureFile)
	}
	return posture, true
}

// LoadHomePostureFromFile loads and validates a home posture from a JSON file.
func LoadHomePostureFromFile(filePath string) (JointAngles, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return JointAngles{}, fmt.Errorf("failed to read home posture file: %w", err)
	}

	var fileFormat HomePostureFileFormat
	if err := json.Unmarshal(data, &fileFormat); err != nil {
		return JointAngles{}, fmt.Errorf("failed to parse home posture JSON: %w", err)
	}

	posture := fileFormat.toJointAngles()
	if !withinLimits(posture) {
		return JointAngles{}, fmt.Errorf("home posture %v violates joint limits", posture)
	}

	return posture, nil
}

// SaveHomePostureToFile writes the home posture to a JSON file.
func SaveHomePostureToFile(filePath string, posture JointAngles) error {
	if !withinLimits(posture) {
		return fmt.Errorf("home posture %v violates joint limits", posture)
	}

	data, err := json.MarshalIndent(homePostureToFileFormat(posture), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal home posture: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write home posture file: %w", err)
	}

	return nil
}
