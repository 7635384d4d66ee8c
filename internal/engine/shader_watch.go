package engine

import (
	"path/filepath"

	"Tekka/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// shaderWatcher posts the path of every written shader file on Changed. It
// watches the parent directories so editors that replace files on save are
// still seen. It never touches the device.
type shaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	Changed chan string
	done    chan struct{}
}

func newShaderWatcher(paths []string) (*shaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	sw := &shaderWatcher{
		watcher: watcher,
		files:   make(map[string]bool),
		Changed: make(chan string, 16),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		sw.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
		dirs[dir] = true
	}

	go sw.run()
	return sw, nil
}

func (sw *shaderWatcher) run() {
	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !sw.files[path] {
				continue
			}
			select {
			case sw.Changed <- path:
			default:
				// A reload for this frame is already queued.
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Shader watcher error", zap.Error(err))
		}
	}
}

func (sw *shaderWatcher) Close() {
	close(sw.done)
	sw.watcher.Close()
}
