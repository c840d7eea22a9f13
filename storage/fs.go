package storage

import (
	"sync"

	"github.com/RuiFG/cachesnap/log"
	"github.com/pkg/errors"
	"github.com/xujiajun/nutsdb"
)

const (
	snapshotBucket = "cachesnap"
	snapshotKey    = "snapshot"
)

type fs struct {
	logger log.Logger
	mutex  sync.RWMutex
	db     *nutsdb.DB
	//data mirrors the persisted snapshot bytes, nil when nothing is stored
	data []byte
}

func (f *fs) init() error {
	return f.db.View(func(tx *nutsdb.Tx) error {
		found := false
		if err := tx.IterateBuckets(nutsdb.DataStructureBPTree, "*", func(bucket string) bool {
			if bucket == snapshotBucket {
				found = true
			}
			return true
		}); err != nil {
			return errors.WithMessage(err, "unable to iterate buckets, the store maybe corrupted")
		}
		if !found {
			return nil
		}
		entries, err := tx.GetAll(snapshotBucket)
		if err != nil {
			return errors.WithMessage(err, "failed to get persisted snapshot")
		}
		for _, entry := range entries {
			if string(entry.Key) == snapshotKey {
				f.data = append([]byte(nil), entry.Value...)
			}
		}
		return nil
	})
}

func (f *fs) Write(data []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(snapshotBucket, []byte(snapshotKey), data, 0)
	}); err != nil {
		return errors.WithMessage(err, "failed to write snapshot")
	}
	f.data = append([]byte(nil), data...)
	return nil
}

func (f *fs) Read() ([]byte, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	if f.data == nil {
		return nil, nil
	}
	return append([]byte(nil), f.data...), nil
}

func (f *fs) Purge() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.data == nil {
		return nil
	}
	if err := f.db.Update(func(tx *nutsdb.Tx) error {
		return tx.DeleteBucket(nutsdb.DataStructureBPTree, snapshotBucket)
	}); err != nil {
		return errors.WithMessage(err, "failed to purge snapshot")
	}
	f.data = nil
	f.logger.Debugf("purged persisted snapshot")
	return nil
}

func (f *fs) Close() error {
	return f.db.Close()
}

// NewFs returns a durable backend storing the snapshot in a nutsdb
// database under dir, the previously persisted snapshot is loaded on open.
func NewFs(logger log.Logger, dir string) (Storage, error) {
	opts := nutsdb.DefaultOptions
	opts.Dir = dir
	db, err := nutsdb.Open(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to open snapshot store")
	}
	store := &fs{
		logger: logger,
		db:     db,
	}
	return store, store.init()
}
