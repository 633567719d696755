package history

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store whenever another process rewrites its file.
type Watcher struct {
	store   *Store
	fs      *fsnotify.Watcher
	logger  *zap.Logger
	reloads chan struct{}
}

// Watch registers a filesystem watch on the store's directory. The directory
// is watched rather than the file because writers replace the file by rename.
// Call Run to start processing events.
func (s *Store) Watch(logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(s.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	return &Watcher{
		store:   s,
		fs:      fw,
		logger:  logger,
		reloads: make(chan struct{}, 1),
	}, nil
}

// Reloaded receives a value after each successful reload (coalesced).
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloads
}

// Run processes filesystem events until ctx is cancelled, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	name := filepath.Base(w.store.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				w.logger.Warn("history reload failed", zap.String("path", w.store.path), zap.Error(err))
				continue
			}
			w.logger.Debug("history reloaded", zap.Int("items", w.store.Len()))
			select {
			case w.reloads <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("history watcher error", zap.Error(err))
		}
	}
}
