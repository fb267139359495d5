package hook

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/glorpus-work/fetchy/internal/logger"
)

// DefaultHookManager keeps the registered hooks per type and runs them
// through a TengoExecutor.
type DefaultHookManager struct {
	executor *TengoExecutor
	hooks    map[HookType][]Hook
	mutex    sync.RWMutex
}

var _ HookManager = (*DefaultHookManager)(nil)

// NewHookManager creates a new hook manager.
func NewHookManager() *DefaultHookManager {
	return &DefaultHookManager{
		executor: NewTengoExecutor(),
		hooks:    make(map[HookType][]Hook),
	}
}

// Execute runs the hooks of hookType with a background context.
func (m *DefaultHookManager) Execute(hookType HookType, ctx HookContext) error {
	return m.ExecuteContext(context.Background(), hookType, ctx)
}

// ExecuteContext runs every hook of hookType in registration order and stops
// at the first failure. Canceling ctx aborts the running script.
func (m *DefaultHookManager) ExecuteContext(ctx context.Context, hookType HookType, hctx HookContext) error {
	m.mutex.RLock()
	hooks := slices.Clone(m.hooks[hookType])
	m.mutex.RUnlock()

	if hctx.Vars == nil {
		hctx.Vars = make(map[string]interface{})
	}
	for _, h := range hooks {
		logger.Debug("Running hook", logger.Fields{"type": string(hookType), "script": h.Name})
		if err := m.executor.Run(ctx, h, hctx); err != nil {
			return err
		}
	}
	return nil
}

// AddHook appends a hook to the ones registered for its type.
func (m *DefaultHookManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !slices.Contains(ValidTypes(), hook.Type) {
		return fmt.Errorf("%w: %s", ErrUnsupportedHookType, hook.Type)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.hooks[hook.Type] = append(m.hooks[hook.Type], hook)
	return nil
}

// RemoveHook removes all hooks of the specified type.
func (m *DefaultHookManager) RemoveHook(hookType HookType) error {
	if hookType == "" {
		return ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.hooks, hookType)
	return nil
}

// HasHook checks if a hook of the specified type exists.
func (m *DefaultHookManager) HasHook(hookType HookType) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.hooks[hookType]) > 0
}

// Count returns the number of registered hooks across all types.
func (m *DefaultHookManager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	n := 0
	for _, hs := range m.hooks {
		n += len(hs)
	}
	return n
}
