package trigger

import (
	_c "context"
	"sync"
	"time"

	"github.com/RuiFG/cachesnap/common/safe"
	"github.com/RuiFG/cachesnap/log"
	"github.com/RuiFG/cachesnap/persist"
)

// Interval persists the cache on a fixed period until deactivated.
// Persist failures are logged and left to the next fire, the trigger owns
// its retry policy by firing again.
type Interval struct {
	ctx       _c.Context
	cancel    _c.CancelFunc
	logger    log.Logger
	persistor *persist.Persistor
	every     time.Duration
	done      chan error
}

func NewInterval(persistor *persist.Persistor, every time.Duration) *Interval {
	ctx, cancel := _c.WithCancel(_c.Background())
	return &Interval{
		ctx:       ctx,
		cancel:    cancel,
		logger:    log.Global().Named("interval-trigger"),
		persistor: persistor,
		every:     every,
	}
}

func (t *Interval) Activate() {
	t.done = safe.Go(func() error {
		ticker := time.NewTicker(t.every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := t.persistor.Persist(); err != nil {
					t.logger.Warnw("persist failed, waiting for the next fire", "err", err)
				}
			case <-t.ctx.Done():
				t.logger.Info("interval trigger stopped")
				return nil
			}
		}
	})
	t.logger.Infof("started")
}

func (t *Interval) Deactivate() {
	t.cancel()
	if t.done != nil {
		<-t.done
	}
}

// Write persists the cache a debounce window after the last Notify call,
// collapsing bursts of cache writes into a single persist cycle.
type Write struct {
	mutex     sync.Mutex
	logger    log.Logger
	persistor *persist.Persistor
	debounce  time.Duration
	timer     *time.Timer
	closed    bool
}

func NewWrite(persistor *persist.Persistor, debounce time.Duration) *Write {
	return &Write{
		logger:    log.Global().Named("write-trigger"),
		persistor: persistor,
		debounce:  debounce,
	}
}

// Notify schedules a persist cycle, restarting the debounce window.
func (t *Write) Notify() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.closed {
		return
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.debounce, t.fire)
	} else {
		t.timer.Reset(t.debounce)
	}
}

func (t *Write) fire() {
	if err := t.persistor.Persist(); err != nil {
		t.logger.Warnw("persist failed, waiting for the next notify", "err", err)
	}
}

func (t *Write) Deactivate() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
