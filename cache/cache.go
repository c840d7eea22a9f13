package cache

import (
	"sync"

	"github.com/RuiFG/cachesnap/snapshot"
	"github.com/pkg/errors"
)

// Cache is the live normalized cache a persistor snapshots and restores.
type Cache interface {
	//Extract reads the current cache contents as a fresh snapshot
	Extract() snapshot.Snapshot
	//Restore loads previously serialized snapshot bytes back into the cache,
	//may fail on malformed data
	Restore(data []byte) error
}

// Map is an in-memory normalized cache guarded by a RWMutex.
type Map struct {
	mutex    sync.RWMutex
	codec    snapshot.Codec
	contents snapshot.Snapshot
}

func NewMap(codec snapshot.Codec) *Map {
	return &Map{
		codec:    codec,
		contents: snapshot.Snapshot{snapshot.RootQuery: map[string]any{}},
	}
}

// Write stores a top-level entity entry.
func (m *Map) Write(key string, value any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.contents[key] = value
}

// WriteField stores a field entry inside the root query container.
func (m *Map) WriteField(field string, value any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	root, ok := m.contents[snapshot.RootQuery].(map[string]any)
	if !ok {
		root = map[string]any{}
		m.contents[snapshot.RootQuery] = root
	}
	root[field] = value
}

func (m *Map) Read(key string) (any, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.contents[key]
	return value, ok
}

func (m *Map) ReadField(field string) (any, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.contents.Root()[field]
	return value, ok
}

func (m *Map) Delete(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.contents, key)
}

func (m *Map) Extract() snapshot.Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.contents.Clone()
}

func (m *Map) Restore(data []byte) error {
	restored, err := m.codec.Decode(data)
	if err != nil {
		return errors.WithMessage(err, "failed to restore cache")
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.contents = restored
	return nil
}
