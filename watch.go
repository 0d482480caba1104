package treechart

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// StateUpdate is a decoded state file, or the error from decoding it.
type StateUpdate struct {
	State any
	Err   error
}

// StateWatcher re-reads a state file whenever it changes and publishes the
// decoded state. It watches the file's directory so that editors which save
// by rename are picked up too.
//
// Updates are delivered on a channel; the consumer should call
// Chart.RenderChart from its own UI loop rather than from the watcher.
type StateWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan StateUpdate

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	started  bool
	stopOnce sync.Once

	// debounce collapses bursts of events into one reload.
	debounce time.Duration
}

// NewStateWatcher creates a watcher for the state file at path.
func NewStateWatcher(path string) (*StateWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &StateWatcher{
		path:     abs,
		watcher:  watcher,
		updates:  make(chan StateUpdate, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}, nil
}

// Start begins watching. On error the underlying watcher is closed; Stop
// is still safe to call.
func (w *StateWatcher) Start() error {
	if w.started {
		return errors.New("state watcher already started")
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = w.watcher.Close()
		return errors.Wrapf(err, "watch %s", filepath.Dir(w.path))
	}
	w.started = true
	go w.watchLoop()
	return nil
}

// Stop shuts the watcher down and closes the updates channel. It may be
// called more than once, and without a successful Start.
func (w *StateWatcher) Stop() {
	w.stopOnce.Do(func() {
		w.cancel()
		_ = w.watcher.Close()
		if w.started {
			<-w.done
			return
		}
		close(w.done)
		close(w.updates)
	})
}

// Updates returns the channel decoded states are published on. Only the
// most recent undelivered update is kept.
func (w *StateWatcher) Updates() <-chan StateUpdate {
	return w.updates
}

func (w *StateWatcher) watchLoop() {
	defer close(w.done)
	defer close(w.updates)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			state, err := ReadStateFile(w.path)
			w.publish(StateUpdate{State: state, Err: err})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publish(StateUpdate{Err: errors.Wrap(err, "watch state")})
		}
	}
}

// publish replaces any undelivered update with u.
func (w *StateWatcher) publish(u StateUpdate) {
	for {
		select {
		case w.updates <- u:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
