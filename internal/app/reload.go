package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/probeview/internal/config"
	"github.com/philipparndt/probeview/pkg/watcher"
)

// setupFileWatcher watches the config file and flags a reload on change
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(300*time.Millisecond, app.log)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(changedFile string) {
		app.log.Infof("config changed: %s", changedFile)
		app.FileWatch.needsReload.Store(true)
	}

	if err := fw.Watch([]string{app.FileWatch.configPath}, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch config: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	app.log.Infof("watching config for changes: %s", app.FileWatch.configPath)
	return nil
}

// reloadConfig rebuilds the session from the config file, keeping the
// interactive state of the current one. Must run on the main thread.
func (app *App) reloadConfig() {
	start := time.Now()
	app.FileWatch.lastReload = start

	cfg, err := config.Load(app.FileWatch.configPath)
	if err != nil {
		app.reloadFailed(err)
		return
	}

	prev := app.Viewer.controller.Session()
	viewer, err := newViewerState(cfg, app.renderer, app.log)
	if err != nil {
		app.reloadFailed(err)
		return
	}
	viewer.controller.Session().Adopt(prev)
	viewer.controls.Sync(viewer.controller.Session().Camera)
	viewer.controller.Slider().Sync(viewer.controller.Session().Assembly.Offset())

	app.renderer.Reset()
	app.Viewer = viewer
	app.log.SetDebug(cfg.Debug)
	app.FileWatch.lastError = ""
	app.log.Infof("config reloaded in %.2fs", time.Since(start).Seconds())
}

func (app *App) reloadFailed(err error) {
	app.FileWatch.lastError = err.Error()
	app.log.Warnf("reload failed, keeping previous scene: %v", err)
}
