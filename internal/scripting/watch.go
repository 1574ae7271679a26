package scripting

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports Lua script changes under the engine's directories. Events
// are only signals: the game loop drains Changes between ticks and calls
// Engine.Reload itself.
type Watcher struct {
	watcher *fsnotify.Watcher
	Changes chan string
	log     *zap.Logger
	closeCh chan struct{}
	once    sync.Once
	done    chan struct{}
}

// Watch starts watching dir and its core/ and ai/ subdirectories. Missing
// subdirectories are skipped.
func Watch(dir string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	added := 0
	for _, d := range []string{dir, filepath.Join(dir, "core"), filepath.Join(dir, "ai")} {
		if err := fw.Add(d); err != nil {
			log.Debug("script watch skipped", zap.String("dir", d), zap.Error(err))
			continue
		}
		added++
	}
	if added == 0 {
		_ = fw.Close()
		return nil, &NoDirError{Dir: dir}
	}

	w := &Watcher{
		watcher: fw,
		Changes: make(chan string, 16),
		log:     log,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// NoDirError is returned when none of the script directories can be watched.
type NoDirError struct{ Dir string }

func (e *NoDirError) Error() string { return "no script directory to watch under " + e.Dir }

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- event.Name:
			default: // a reload is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("script watch error", zap.Error(err))
		case <-w.closeCh:
			return
		}
	}
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lua")
}
