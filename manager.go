package ur_arm

import (
	"context"
	"sync"
)

// SafeURController wraps the low-level controller with thread-safe access.
// The secondary interface runs whatever program arrives, so two components
// sharing one controller must never interleave sends.
type SafeURController struct {
	*URScriptController
	mu sync.Mutex
}

func (s *SafeURController) SendProgram(ctx context.Context, program string) error {
	s.mu.Lock()
	err := s.URScriptController.send(program)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	// The dwell happens outside the lock so a stop program is never queued
	// behind a move that is still holding.
	return s.URScriptController.holdDwell(ctx)
}

func (s *SafeURController) SendImmediate(program string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.URScriptController.SendImmediate(program)
}

func (s *SafeURController) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.URScriptController.Ping()
}

// Compare configs for compatibility on a shared address.
func configsEqual(a, b *Config) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Address == b.Address &&
		a.Port == b.Port &&
		a.Timeout == b.Timeout &&
		a.Dwell == b.Dwell
}
