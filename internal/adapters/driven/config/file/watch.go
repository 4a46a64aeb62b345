package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/workflowhub/internal/core/ports/driven"
	"github.com/custodia-labs/workflowhub/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigWatcher = (*ConfigStore)(nil)

// Watch reloads the file whenever it is written or replaced, then calls onChange.
// The directory is watched rather than the file so editors that save by
// rename are still seen.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.filePath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.isConfigChange(event) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.L().Warn("reloading config", zap.String("path", s.filePath), zap.Error(err))
				continue
			}
			logger.L().Debug("config reloaded", zap.String("path", s.filePath))
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.L().Warn("config watcher", zap.Error(err))
		}
	}
}

func (s *ConfigStore) isConfigChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
