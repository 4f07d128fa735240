package filesystem

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/veracity-labs/originality-cli/internal/logger"
)

// debounceWindow coalesces bursts of filesystem events into one signal.
const debounceWindow = 500 * time.Millisecond

// watcher wraps fsnotify and reduces its event stream to "the corpus
// changed" signals.
type watcher struct {
	fsw  *fsnotify.Watcher
	exts map[string]struct{}
}

func newWatcher(rootPath string, exts map[string]struct{}) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(rootPath); err != nil {
		fsw.Close()
		return nil, err
	}
	return &watcher{fsw: fsw, exts: exts}, nil
}

// run forwards debounced change signals until ctx is cancelled.
func (w *watcher) run(ctx context.Context) <-chan struct{} {
	signals := make(chan struct{}, 1)

	go func() {
		defer close(signals)

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				logger.Debug("corpus change detected: %s %s", event.Op, event.Name)
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					fire = timer.C
				} else {
					// The timer may have fired with its tick still
					// queued; drain before rearming so the stale tick
					// cannot cut the new window short.
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounceWindow)
				}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("corpus watch error: %v", err)
			case <-fire:
				timer = nil
				fire = nil
				select {
				case signals <- struct{}{}:
				default:
				}
			}
		}
	}()

	return signals
}

// relevant reports whether an event can affect audit results.
// Sidecar edits count: authored timestamps steer arbitration.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, MetaSuffix) {
		return true
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

func (w *watcher) close() error {
	return w.fsw.Close()
}
