package persist

import (
	"sync"

	"github.com/RuiFG/cachesnap/cache"
	"github.com/RuiFG/cachesnap/common/safe"
	"github.com/RuiFG/cachesnap/common/status"
	"github.com/RuiFG/cachesnap/filter"
	"github.com/RuiFG/cachesnap/log"
	"github.com/RuiFG/cachesnap/snapshot"
	"github.com/RuiFG/cachesnap/storage"
	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
)

// DefaultMaxSize is the serialized snapshot size ceiling applied when
// Options.MaxSize is left zero.
const DefaultMaxSize = 1048576

type Options struct {
	//maximum serialized snapshot size in bytes,
	//0 means DefaultMaxSize, negative disables the ceiling
	MaxSize int
	//entity keys to keep, mutually intended with Blacklist
	Whitelist []string
	//entity keys to drop
	Blacklist []string
	//transport codec, defaults to snapshot.JSONCodec
	Codec snapshot.Codec
	//defaults to the global logger
	Logger log.Logger
	//metrics scope, defaults to a noop scope
	Scope tally.Scope
}

var DefaultOptions = Options{MaxSize: DefaultMaxSize}

type metrics struct {
	persistSuccess tally.Counter
	persistSkipped tally.Counter
	persistError   tally.Counter
	persistLatency tally.Timer
	restoreSuccess tally.Counter
	restoreEmpty   tally.Counter
	restoreError   tally.Counter
	purgeSuccess   tally.Counter
	purgeError     tally.Counter
	snapshotBytes  tally.Gauge
}

func newMetrics(scope tally.Scope) metrics {
	return metrics{
		persistSuccess: scope.Counter("persist_success"),
		persistSkipped: scope.Counter("persist_skipped"),
		persistError:   scope.Counter("persist_error"),
		persistLatency: scope.Timer("persist_latency"),
		restoreSuccess: scope.Counter("restore_success"),
		restoreEmpty:   scope.Counter("restore_empty"),
		restoreError:   scope.Counter("restore_error"),
		purgeSuccess:   scope.Counter("purge_success"),
		purgeError:     scope.Counter("purge_error"),
		snapshotBytes:  scope.Gauge("snapshot_bytes"),
	}
}

// Persistor selectively persists cache snapshots to durable storage.
// Persist, Restore and Purge are serialized internally, each moves the
// persistor Idle -> operation -> Idle on both success and failure paths.
type Persistor struct {
	mutex   sync.Mutex
	cache   cache.Cache
	storage storage.Storage
	logger  log.Logger
	metrics metrics
	codec   snapshot.Codec

	maxSize   int
	whitelist []string
	blacklist []string

	st status.Status
	//paused suppresses at most one write cycle, mutated only inside Persist
	paused bool
}

func New(c cache.Cache, s storage.Storage, options Options) *Persistor {
	logger := options.Logger
	if logger == nil {
		logger = log.Global().Named("persistor")
	}
	codec := options.Codec
	if codec == nil {
		codec = snapshot.JSONCodec{}
	}
	scope := options.Scope
	if scope == nil {
		scope = tally.NoopScope
	}
	maxSize := options.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	if len(options.Whitelist) > 0 && len(options.Blacklist) > 0 {
		logger.Warnf("whitelist and blacklist are both configured, both filters will be applied")
	}
	return &Persistor{
		cache:     c,
		storage:   s,
		logger:    logger,
		metrics:   newMetrics(scope),
		codec:     codec,
		maxSize:   maxSize,
		whitelist: options.Whitelist,
		blacklist: options.Blacklist,
	}
}

// Status reports which operation is currently running.
func (p *Persistor) Status() status.Status {
	return status.Load(&p.st)
}

// Paused reports whether the next persist cycle is the post-purge retry.
func (p *Persistor) Paused() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.paused
}

// Persist extracts, filters, serializes and writes the current cache
// snapshot. An oversized snapshot purges storage and pauses persisting
// instead of writing, the following cycle proceeds regardless of size.
// Failures are logged once and returned, never retried.
func (p *Persistor) Persist() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	status.Store(&p.st, status.Persisting)
	defer status.Store(&p.st, status.Idle)
	stopwatch := p.metrics.persistLatency.Start()
	defer stopwatch.Stop()

	var snap snapshot.Snapshot
	if err := safe.Run(func() error {
		snap = p.cache.Extract()
		return nil
	}); err != nil {
		p.metrics.persistError.Inc(1)
		p.logger.Errorw("failed to extract cache snapshot", "err", err)
		return errors.WithMessage(err, "failed to extract cache snapshot")
	}
	data, err := p.codec.Encode(filter.Apply(snap, p.whitelist, p.blacklist))
	if err != nil {
		p.metrics.persistError.Inc(1)
		p.logger.Errorw("failed to encode cache snapshot", "err", err)
		return errors.WithMessage(err, "failed to encode cache snapshot")
	}

	verdict := Evaluate(len(data), p.maxSize, p.paused)
	if verdict.Action == PurgeAndPause {
		if err := p.purge(); err != nil {
			p.metrics.persistError.Inc(1)
			return err
		}
		p.paused = true
		p.metrics.persistSkipped.Inc(1)
		p.logger.Warnw("snapshot size over limit, purged storage and paused persisting",
			"bytes", len(data), "maxSize", p.maxSize)
		return nil
	}
	p.paused = verdict.NextPaused

	if err := safe.Run(func() error {
		return p.storage.Write(data)
	}); err != nil {
		p.metrics.persistError.Inc(1)
		p.logger.Errorw("failed to write cache snapshot", "err", err)
		return errors.WithMessage(err, "failed to write cache snapshot")
	}
	p.metrics.persistSuccess.Inc(1)
	p.metrics.snapshotBytes.Update(float64(len(data)))
	p.logger.Infow("persisted cache snapshot", "bytes", len(data))
	return nil
}

// Restore loads the persisted snapshot back into the cache.
// An absent snapshot is a normal empty-state outcome, not an error.
func (p *Persistor) Restore() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	status.Store(&p.st, status.Restoring)
	defer status.Store(&p.st, status.Idle)

	var data []byte
	if err := safe.Run(func() error {
		var readErr error
		data, readErr = p.storage.Read()
		return readErr
	}); err != nil {
		p.metrics.restoreError.Inc(1)
		p.logger.Errorw("failed to read persisted snapshot", "err", err)
		return errors.WithMessage(err, "failed to read persisted snapshot")
	}
	if data == nil {
		p.metrics.restoreEmpty.Inc(1)
		p.logger.Info("no stored cache snapshot to restore")
		return nil
	}
	if err := safe.Run(func() error {
		return p.cache.Restore(data)
	}); err != nil {
		p.metrics.restoreError.Inc(1)
		p.logger.Errorw("failed to restore cache snapshot", "err", err)
		return errors.WithMessage(err, "failed to restore cache snapshot")
	}
	p.metrics.restoreSuccess.Inc(1)
	p.logger.Infow("restored cache snapshot", "bytes", len(data))
	return nil
}

// Purge erases the persisted snapshot from storage.
func (p *Persistor) Purge() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	status.Store(&p.st, status.Purging)
	defer status.Store(&p.st, status.Idle)
	return p.purge()
}

func (p *Persistor) purge() error {
	if err := safe.Run(func() error {
		return p.storage.Purge()
	}); err != nil {
		p.metrics.purgeError.Inc(1)
		p.logger.Errorw("failed to purge persisted snapshot", "err", err)
		return errors.WithMessage(err, "failed to purge persisted snapshot")
	}
	p.metrics.purgeSuccess.Inc(1)
	p.logger.Info("purged persisted snapshot")
	return nil
}
