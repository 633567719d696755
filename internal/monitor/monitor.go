// Package monitor polls the clipboard and records every new value in the history.
//
// One goroutine runs the loop and each tick completes before the next begins.
// The clipboard handle and the last-observed value are guarded separately so a
// second reader can be added without reworking the loop.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/clipmesh/internal/clip"
)

// PollInterval is the fixed delay between clipboard reads.
const PollInterval = 500 * time.Millisecond

// Clipboard is the read side of the clipboard provider.
type Clipboard interface {
	ReadText() (string, error)
}

// Enricher appends derived results to a freshly captured item.
type Enricher interface {
	Apply(item *clip.Item) int
}

// Recorder makes an item durable.
type Recorder interface {
	Add(item clip.Item) error
}

// Monitor detects clipboard changes and commits them.
type Monitor struct {
	clipMu    sync.Mutex
	clipboard Clipboard

	lastMu  sync.Mutex
	last    string
	hasLast bool

	deviceID string
	engine   Enricher
	store    Recorder
	interval time.Duration
	logger   *zap.Logger
}

// New creates a Monitor. The device id is fixed for the lifetime of the Monitor.
func New(cb Clipboard, engine Enricher, store Recorder, deviceID string, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		clipboard: cb,
		deviceID:  deviceID,
		engine:    engine,
		store:     store,
		interval:  PollInterval,
		logger:    logger,
	}
}

// DeviceID returns the id stamped on every captured item.
func (m *Monitor) DeviceID() string {
	return m.deviceID
}

// Run polls until ctx is cancelled. It returns nil on cancellation; every
// recorded item is already durable by then.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", zap.String("device_id", m.deviceID), zap.Duration("interval", m.interval))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if _, err := m.Check(ctx); err != nil {
			m.logger.Error("store write failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Check runs one iteration of the loop. It reports whether a new value was
// observed; the error is the commit failure, if any. A failed commit is not
// retried: the value still becomes the last observed one.
func (m *Monitor) Check(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, nil
	}

	content, ok := m.read()
	if !ok {
		return false, nil
	}
	if strings.TrimSpace(content) == "" {
		return false, nil
	}

	m.lastMu.Lock()
	unchanged := m.hasLast && m.last == content
	m.lastMu.Unlock()
	if unchanged {
		return false, nil
	}

	item := clip.NewItem(content, m.deviceID)
	n := m.engine.Apply(&item)
	err := m.store.Add(item)

	m.lastMu.Lock()
	m.last = content
	m.hasLast = true
	m.lastMu.Unlock()

	if err != nil {
		return true, fmt.Errorf("record %s: %w", item.ID, err)
	}

	m.logger.Info("clipboard item captured",
		zap.String("id", item.ID),
		zap.String("content_type", string(item.ContentType)),
		zap.Int("transformations", n),
	)
	return true, nil
}

func (m *Monitor) read() (string, bool) {
	m.clipMu.Lock()
	defer m.clipMu.Unlock()

	content, err := m.clipboard.ReadText()
	if err != nil {
		m.logger.Debug("clipboard read failed", zap.Error(err))
		return "", false
	}
	return content, true
}
