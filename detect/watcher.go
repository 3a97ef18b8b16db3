package detect

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/Shulepov/wallet-kit/adapter"
)

// ScanFunc loads the adapters currently present under a directory.
type ScanFunc func(dir string) ([]adapter.Adapter, error)

// LogWriter receives traces from the watcher. Nil disables logging.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Watcher keeps a Hub in sync with a directory of agent files. Filesystem
// events are debounced, and rescans are rate limited so a burst of writes
// (an agent import, an editor save churn) triggers one rescan, not dozens.
type Watcher struct {
	dir      string
	hub      *Hub
	scan     ScanFunc
	debounce time.Duration
	limiter  *rate.Limiter
	log      LogWriter
}

// NewWatcher creates a watcher feeding hub from scan results over dir.
func NewWatcher(dir string, hub *Hub, scan ScanFunc) *Watcher {
	return &Watcher{
		dir:      dir,
		hub:      hub,
		scan:     scan,
		debounce: 500 * time.Millisecond,
		limiter:  rate.NewLimiter(rate.Limit(2), 1),
	}
}

// WithDebounce sets the debounce duration.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithRateLimit sets the rescan rate limit.
func (w *Watcher) WithRateLimit(perSecond float64, burst int) *Watcher {
	w.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return w
}

// WithLogger sets the trace logger.
func (w *Watcher) WithLogger(log LogWriter) *Watcher {
	w.log = log
	return w
}

// Start performs an initial scan, then watches the directory until the
// context is canceled. It blocks; run it in its own goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	w.debugf("watching %s for agent changes", w.dir)
	w.rescan(ctx)

	var debounceTimer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Restart the debounce window on every relevant event
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(w.debounce)
				fire = debounceTimer.C
			} else {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(w.debounce)
			}

		case <-fire:
			debounceTimer = nil
			fire = nil
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			w.rescan(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.errorf("watcher error: %v", err)

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()
		}
	}
}

// rescan reloads the directory and publishes the result to the hub. A scan
// failure keeps the previous adapter list.
func (w *Watcher) rescan(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	adapters, err := w.scan(w.dir)
	if err != nil {
		w.errorf("scan %s failed: %v", w.dir, err)
		return
	}

	w.debugf("scan %s found %d agent(s)", w.dir, len(adapters))
	w.hub.SetAdapters(adapters)
}

func (w *Watcher) debugf(format string, args ...any) {
	if w.log != nil {
		w.log.Debug(format, args...)
	}
}

func (w *Watcher) errorf(format string, args ...any) {
	if w.log != nil {
		w.log.Error(format, args...)
	}
}
