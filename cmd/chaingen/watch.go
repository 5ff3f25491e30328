package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sghaida/fluent/pkg/log"
)

// defaultDebounce coalesces the burst of events editors emit on save.
const defaultDebounce = 100 * time.Millisecond

// watch regenerates whenever the spec file is written or re-created, until
// ctx is done. A failed regeneration is logged and watching continues.
//
// The spec's directory is watched rather than the file itself so editors that
// save by rename keep being followed.
func (g *generator) watch(ctx context.Context, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	specPath := filepath.Clean(g.specPath)
	if err := watcher.Add(filepath.Dir(specPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(specPath), err)
	}
	g.logger.Info("watching spec", log.String("spec", specPath))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != specPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			if err := g.generate(); err != nil {
				g.logger.Error("regenerate failed", log.Err(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Warn("watcher error", log.Err(err))
		}
	}
}
