package ur_arm

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ControllerEntry tracks one shared controller and the components holding it.
type ControllerEntry struct {
	controller *SafeURController
	config     *Config
	refCount   int64 // Atomic reference counter
	lastError  error
	mu         sync.RWMutex
}

// ControllerRegistry shares one controller client per address so multiple
// components configured against the same robot serialize their program sends
// through a single mutex instead of racing on the socket.
type ControllerRegistry struct {
	entries map[string]*ControllerEntry // host:port -> entry
	mu      sync.RWMutex
}

func NewControllerRegistry() *ControllerRegistry {
	return &ControllerRegistry{
		entries: make(map[string]*ControllerEntry),
	}
}

func (r *ControllerRegistry) GetController(address string, config *Config) (*SafeURController, error) {
	r.mu.RLock()
	entry, exists := r.entries[address]
	r.mu.RUnlock()

	if exists {
		return r.getExistingController(entry, config)
	}

	return r.createNewController(address, config)
}

func (r *ControllerRegistry) getExistingController(entry *ControllerEntry, config *Config) (*SafeURController, error) {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.controller == nil {
		if entry.lastError != nil {
			return nil, fmt.Errorf("cached controller creation error: %w", entry.lastError)
		}
		return nil, fmt.Errorf("controller not available for address %s", entry.config.controllerAddress())
	}

	if !configsEqual(entry.config, config) {
		currentRefCount := atomic.LoadInt64(&entry.refCount)
		return nil, fmt.Errorf("conflict: existing controller for %s uses different config (refCount: %d)",
			entry.config.controllerAddress(), currentRefCount)
	}

	atomic.AddInt64(&entry.refCount, 1)
	return entry.controller, nil
}

func (r *ControllerRegistry) createNewController(address string, config *Config) (*SafeURController, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, exists := r.entries[address]; exists {
		return r.getExistingController(entry, config)
	}

	entry := &ControllerEntry{
		config: config,
	}

	controller := NewURScriptController(address, config.Timeout, config.Dwell, config.Logger)
	if err := controller.Ping(); err != nil {
		entry.lastError = err
		r.entries[address] = entry
		return nil, fmt.Errorf("failed to reach controller at %s: %w", address, err)
	}

	entry.controller = &SafeURController{URScriptController: controller}
	entry.lastError = nil
	atomic.StoreInt64(&entry.refCount, 1)

	r.entries[address] = entry

	if config.Logger != nil {
		config.Logger.Infof("Connected controller client for %s", address)
	}

	return entry.controller, nil
}

// ReleaseController drops one reference and removes the entry once the last
// holder is gone. Lock order is registry then entry, same as creation.
func (r *ControllerRegistry) ReleaseController(address string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[address]
	if !exists {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	currentRefCount := atomic.AddInt64(&entry.refCount, -1)
	if currentRefCount <= 0 {
		delete(r.entries, address)

		entry.controller = nil
		entry.config = nil
		atomic.StoreInt64(&entry.refCount, 0)
		entry.lastError = nil
	}
}

func (r *ControllerRegistry) GetControllerStatus(address string) (int64, bool, string) {
	r.mu.RLock()
	entry, exists := r.entries[address]
	r.mu.RUnlock()

	if !exists {
		return 0, false, ""
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	currentRefCount := atomic.LoadInt64(&entry.refCount)
	hasController := entry.controller != nil
	configSummary := ""

	if entry.config != nil {
		configSummary = fmt.Sprintf("TCP: %s, dwell: %s", entry.config.controllerAddress(), entry.config.Dwell)
	}

	return currentRefCount, hasController, configSummary
}

// Shared registry used by all component instances in one module process.
var sharedRegistry = NewControllerRegistry()
