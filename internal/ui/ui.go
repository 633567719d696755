// Package ui is the hook for a graphical or tray front-end. None exists yet.
package ui

import (
	"context"

	"go.uber.org/zap"
)

// Manager owns the front-end lifecycle.
type Manager struct {
	logger *zap.Logger
}

// NewManager returns a Manager that logs to logger, or discards logs if nil.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Initialize is a no-op and always succeeds.
func (m *Manager) Initialize(_ context.Context) error {
	m.logger.Debug("ui initialize: no front-end configured")
	return nil
}
